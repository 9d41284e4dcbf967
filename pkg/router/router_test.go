package router

import (
	"errors"
	"strings"
	"testing"

	"github.com/saulvaldelvira/http-server/pkg/httpmsg"
	"github.com/saulvaldelvira/http-server/pkg/stream"
)

func newTestRequest(t *testing.T, method httpmsg.Method, url string) (*httpmsg.Request, *stream.Buffer) {
	t.Helper()
	buf := stream.NewBuffer(nil)
	req, err := httpmsg.NewRequestBuilder().Method(method).URL(url).Stream(buf).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return req, buf
}

func TestRouterExactMatch(t *testing.T) {
	rt := New()
	called := false
	rt.Get(Literal("/hello"), func(req *httpmsg.Request) error {
		called = true
		return req.Ok()
	})

	req, _ := newTestRequest(t, httpmsg.MethodGET, "/hello")
	if err := rt.Handle(req); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !called {
		t.Fatal("exact handler was not called")
	}
}

func TestRouterRegexFallbackOrder(t *testing.T) {
	rt := New()
	var hit string
	rt.Get(MustRegex(`^/files/.*$`), func(req *httpmsg.Request) error {
		hit = "regex"
		return req.Ok()
	})
	rt.AddDefault(httpmsg.MethodGET, func(req *httpmsg.Request) error {
		hit = "default"
		return req.Ok()
	})

	req, _ := newTestRequest(t, httpmsg.MethodGET, "/files/a.txt")
	if err := rt.Handle(req); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if hit != "regex" {
		t.Fatalf("hit = %q, want regex", hit)
	}

	req2, _ := newTestRequest(t, httpmsg.MethodGET, "/other")
	if err := rt.Handle(req2); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if hit != "default" {
		t.Fatalf("hit = %q, want default", hit)
	}
}

func TestRouterNoMatchForbidden(t *testing.T) {
	rt := New()
	req, buf := newTestRequest(t, httpmsg.MethodGET, "/nope")
	if err := rt.Handle(req); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(string(buf.Output()), "403") {
		t.Fatalf("expected 403 response, got %q", buf.Output())
	}
}

func TestRouterHandlerErrorRespondsServerError(t *testing.T) {
	rt := New()
	rt.Get(Literal("/boom"), func(req *httpmsg.Request) error {
		return errors.New("boom")
	})

	req, buf := newTestRequest(t, httpmsg.MethodGET, "/boom")
	if err := rt.Handle(req); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(string(buf.Output()), "500") {
		t.Fatalf("expected 500 response, got %q", buf.Output())
	}
}

func TestRouterInterceptorOrder(t *testing.T) {
	rt := New()
	var order []string
	rt.PreInterceptor(func(req *httpmsg.Request) { order = append(order, "pre1") })
	rt.PreInterceptor(func(req *httpmsg.Request) { order = append(order, "pre2") })
	rt.PostInterceptor(func(req *httpmsg.Request) { order = append(order, "post1") })
	rt.Get(Literal("/x"), func(req *httpmsg.Request) error {
		order = append(order, "handler")
		return req.Ok()
	})

	req, _ := newTestRequest(t, httpmsg.MethodGET, "/x")
	if err := rt.Handle(req); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	want := []string{"pre1", "pre2", "handler", "post1"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
