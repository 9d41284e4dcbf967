package server

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/saulvaldelvira/http-server/pkg/httpmsg"
	"github.com/saulvaldelvira/http-server/pkg/router"
	"github.com/saulvaldelvira/http-server/pkg/stream"
)

var errBoom = errors.New("boom")

func TestServeKeepAliveSingleRequestNoKeepAlive(t *testing.T) {
	buf := stream.NewBufferString("GET /hello HTTP/1.1\r\nHost: x\r\n\r\n")
	rt := router.New()
	called := 0
	rt.Get(router.Literal("/hello"), func(req *httpmsg.Request) error {
		called++
		return req.Ok()
	})

	if err := serveKeepAlive(buf, rt, 0, 0); err != nil {
		t.Fatalf("serveKeepAlive: %v", err)
	}
	if called != 1 {
		t.Fatalf("handler called %d times, want 1", called)
	}
}

func TestServeKeepAliveTwoRequests(t *testing.T) {
	buf := stream.NewBufferString(
		"GET /a HTTP/1.1\r\nConnection: keep-alive\r\n\r\n" +
			"GET /b HTTP/1.1\r\nConnection: keep-alive\r\n\r\n",
	)
	rt := router.New()
	var seen []string
	rt.Get(router.MustRegex("^/[ab]$"), func(req *httpmsg.Request) error {
		seen = append(seen, req.URL())
		return req.Ok()
	})

	if err := serveKeepAlive(buf, rt, 5*time.Second, 10); err != nil {
		t.Fatalf("serveKeepAlive: %v", err)
	}
	if len(seen) != 2 || seen[0] != "/a" || seen[1] != "/b" {
		t.Fatalf("seen = %v, want [/a /b]", seen)
	}
}

func TestServeKeepAliveHandlerErrorYields500(t *testing.T) {
	buf := stream.NewBufferString("GET /boom HTTP/1.1\r\n\r\n")
	rt := router.New()
	rt.AddDefault(httpmsg.MethodGET, func(req *httpmsg.Request) error {
		return errBoom
	})

	if err := serveKeepAlive(buf, rt, 0, 0); err != nil {
		t.Fatalf("serveKeepAlive: %v (handler errors should become a 500, not abort the connection)", err)
	}
	if !strings.Contains(string(buf.Output()), "500") {
		t.Fatalf("expected a 500 response, got %q", buf.Output())
	}
}

func TestConnectionStateString(t *testing.T) {
	cases := map[connectionState]string{
		stateNew:    "new",
		stateActive: "active",
		stateIdle:   "idle",
		stateClosed: "closed",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
