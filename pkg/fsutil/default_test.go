package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saulvaldelvira/http-server/pkg/httpmsg"
	"github.com/saulvaldelvira/http-server/pkg/router"
	"github.com/saulvaldelvira/http-server/pkg/stream"
)

func TestRegisterDefaultsServesIndexAndFiles(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("welcome"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "page.txt"), []byte("page body"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rt := router.New()
	RegisterDefaults(rt)

	buf := stream.NewBuffer(nil)
	req, err := httpmsg.NewRequestBuilder().Method(httpmsg.MethodGET).URL("/").Stream(buf).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := rt.Handle(req); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(string(buf.Output()), "welcome") {
		t.Fatalf("GET / response = %q, want body welcome", buf.Output())
	}

	buf = stream.NewBuffer(nil)
	req, err = httpmsg.NewRequestBuilder().Method(httpmsg.MethodGET).URL("/page.txt").Stream(buf).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := rt.Handle(req); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(string(buf.Output()), "page body") {
		t.Fatalf("GET /page.txt response = %q, want body page body", buf.Output())
	}
}

func TestRegisterDefaultsDeletePost(t *testing.T) {
	chdirTemp(t)
	rt := router.New()
	RegisterDefaults(rt)

	buf := stream.NewBufferString("payload")
	req, err := httpmsg.NewRequestBuilder().
		Method(httpmsg.MethodPOST).
		URL("/uploaded.txt").
		Header("Content-Length", "7").
		Stream(buf).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := rt.Handle(req); err != nil {
		t.Fatalf("Handle POST: %v", err)
	}
	if got, err := os.ReadFile("uploaded.txt"); err != nil || string(got) != "payload" {
		t.Fatalf("uploaded.txt = %q, err %v", got, err)
	}

	buf2 := stream.NewBuffer(nil)
	req2, err := httpmsg.NewRequestBuilder().Method(httpmsg.MethodDELETE).URL("/uploaded.txt").Stream(buf2).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := rt.Handle(req2); err != nil {
		t.Fatalf("Handle DELETE: %v", err)
	}
	if _, err := os.Stat("uploaded.txt"); !os.IsNotExist(err) {
		t.Fatalf("uploaded.txt should be gone after DELETE")
	}
}
