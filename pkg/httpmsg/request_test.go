package httpmsg

import (
	"strings"
	"testing"

	"github.com/saulvaldelvira/http-server/pkg/stream"
)

func TestRequestRespondBuf(t *testing.T) {
	buf := stream.NewBuffer(nil)
	req, err := NewRequestBuilder().
		Method(MethodGET).
		URL("/hello").
		Stream(buf).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := req.RespondBuf([]byte("hi")); err != nil {
		t.Fatalf("RespondBuf: %v", err)
	}

	out := string(buf.Output())
	if !strings.HasPrefix(out, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("status line missing, got %q", out)
	}
	if !strings.Contains(out, "Content-Length: 2\r\n") {
		t.Fatalf("Content-Length missing, got %q", out)
	}
	if !strings.HasSuffix(out, "\r\n\r\nhi") {
		t.Fatalf("body missing, got %q", out)
	}
}

func TestRequestNotFound(t *testing.T) {
	buf := stream.NewBuffer(nil)
	req, err := NewRequestBuilder().Method(MethodGET).URL("/missing").Stream(buf).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := req.NotFound(); err != nil {
		t.Fatalf("NotFound: %v", err)
	}

	out := string(buf.Output())
	if !strings.HasPrefix(out, "HTTP/1.1 404 NOT FOUND\r\n") {
		t.Fatalf("status line = %q", out)
	}
	if !strings.Contains(out, "<title>404 NOT FOUND</title>") {
		t.Fatalf("error page missing title, got %q", out)
	}
}

func TestRequestBuilderRequiresMethodAndURL(t *testing.T) {
	if _, err := NewRequestBuilder().URL("/x").Build(); err != ErrMissingMethod {
		t.Fatalf("error = %v, want ErrMissingMethod", err)
	}
	if _, err := NewRequestBuilder().Method(MethodGET).Build(); err != ErrMissingURL {
		t.Fatalf("error = %v, want ErrMissingURL", err)
	}
}

func TestRequestChunkedResponse(t *testing.T) {
	buf := stream.NewBuffer(nil)
	req, err := NewRequestBuilder().Method(MethodGET).URL("/stream").Stream(buf).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	body := strings.NewReader("chunked payload")
	if err := req.RespondChunked(body); err != nil {
		t.Fatalf("RespondChunked: %v", err)
	}

	out := string(buf.Output())
	if !strings.Contains(out, "Transfer-Encoding: chunked\r\n") {
		t.Fatalf("missing Transfer-Encoding header, got %q", out)
	}
	if !strings.HasSuffix(out, "0\r\n\r\n") {
		t.Fatalf("missing terminating chunk, got %q", out)
	}
}
