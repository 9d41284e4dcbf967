package server

import (
	"errors"
	"io"
	"time"

	"github.com/saulvaldelvira/http-server/pkg/httpmsg"
	"github.com/saulvaldelvira/http-server/pkg/logging"
	"github.com/saulvaldelvira/http-server/pkg/router"
	"github.com/saulvaldelvira/http-server/pkg/stream"
)

// connectionState tracks where a connection sits in its keep-alive
// lifecycle, for logging; it carries no behavior of its own.
type connectionState int

const (
	stateNew connectionState = iota
	stateActive
	stateIdle
	stateClosed
)

func (s connectionState) String() string {
	switch s {
	case stateNew:
		return "new"
	case stateActive:
		return "active"
	case stateIdle:
		return "idle"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// serveKeepAlive parses and dispatches requests off st in a loop,
// reusing the connection as long as the client asks for keep-alive,
// the server allows it (timeout > 0), the per-connection request cap
// isn't reached, and a short non-blocking peek still finds bytes
// before the remaining budget runs out.
func serveKeepAlive(st stream.Stream, rt *router.Router, timeout time.Duration, maxRequests uint16) error {
	setState(stateNew)

	req, err := httpmsg.ParseRequest(st)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	setState(stateActive)
	if err := rt.Handle(req); err != nil {
		return err
	}

	connHeader, _ := req.Header("Connection")
	keepAliveRequested := connHeader == "keep-alive"
	keepAliveAllowed := timeout > 0

	if !keepAliveRequested || !keepAliveAllowed {
		setState(stateClosed)
		return nil
	}

	deadline := time.Now().Add(timeout)
	var n uint16 = 1

	for time.Now().Before(deadline) && n < maxRequests {
		setState(stateIdle)
		remaining := time.Until(deadline)

		if !peek(st, remaining) {
			break
		}

		req, err = req.KeepAlive()
		if err != nil {
			break
		}

		setState(stateActive)
		if err := rt.Handle(req); err != nil {
			return err
		}
		n++

		if v, ok := req.Header("Connection"); ok && v == "close" {
			break
		}
	}

	setState(stateClosed)
	return nil
}

func setState(s connectionState) {
	logging.Infof("connection state -> %s", s)
}

// peek reports whether at least one more byte is available on st
// within budget, without consuming it. It toggles st between
// non-blocking (bounded by budget) and blocking modes so the next
// real Read isn't left with a stale deadline.
func peek(st stream.Stream, budget time.Duration) bool {
	if budget <= 0 {
		return false
	}
	if err := st.SetNonBlocking(budget); err != nil {
		return false
	}
	defer st.SetBlocking()

	buf := make([]byte, 1)
	n, err := st.Peek(buf)
	return err == nil && n > 0
}
