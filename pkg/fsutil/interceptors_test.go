package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saulvaldelvira/http-server/pkg/httpmsg"
)

func TestAcceptRangesHeader(t *testing.T) {
	req := newGetRequest(t, "/x")
	AcceptRanges(req)
	v, ok := req.Header("Accept-Ranges")
	if !ok || v != "bytes" {
		t.Fatalf("Accept-Ranges header = %q, %v", v, ok)
	}
}

func TestSuffixHTMLLeavesExistingFileAlone(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(dir, "raw"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	req := newGetRequest(t, "/raw")
	SuffixHTML(req)
	if req.URL() != "/raw" {
		t.Fatalf("URL = %q, want unchanged /raw", req.URL())
	}
}

func TestSuffixHTMLTriesPHP(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(dir, "script.php"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	req := newGetRequest(t, "/script")
	SuffixHTML(req)
	if req.URL() != "/script.php" {
		t.Fatalf("URL = %q, want /script.php", req.URL())
	}
}

func TestLogFileAppendsLine(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "access.log")

	interceptor, err := LogFile(logPath)
	if err != nil {
		t.Fatalf("LogFile: %v", err)
	}

	req := newGetRequest(t, "/hello")
	req.SetStatus(httpmsg.StatusOK)
	interceptor(req)

	got, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(got), "GET /hello 200 OK") {
		t.Fatalf("log line = %q", got)
	}
}
