// Package stream provides the Stream abstraction every other component
// in this module talks to instead of net.Conn directly: a readable,
// writable, peekable transport that can be backed by a real TCP/TLS
// socket, an in-memory buffer (for tests), or a discarded sink.
package stream

import (
	"io"
	"time"
)

// Stream is the transport abstraction used throughout the request
// pipeline. Implementations must support peeking at unread input
// without consuming it, and switching between blocking and
// deadline-bound reads.
type Stream interface {
	io.Reader
	io.Writer

	// Peek returns up to len(buf) unread bytes without advancing the
	// read position. It may return fewer bytes than requested if that
	// is all that is currently available.
	Peek(buf []byte) (int, error)

	// Flush pushes any buffered output to the underlying transport.
	Flush() error

	// SetBlocking removes any read deadline, so Read blocks until data
	// arrives or the stream is closed.
	SetBlocking() error

	// SetNonBlocking installs a read deadline of timeout, after which
	// Read returns a timeout error.
	SetNonBlocking(timeout time.Duration) error

	// Close releases the underlying transport.
	Close() error
}
