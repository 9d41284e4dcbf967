package stream

import (
	"bufio"
	"net"
	"time"

	"golang.org/x/sys/unix"
)

// TCP wraps a net.TCPConn (or any net.Conn) into a Stream, adding a
// peekable buffered reader and best-effort Linux socket tuning.
type TCP struct {
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
}

// NewTCP wraps conn. If conn is a *net.TCPConn, TCP_NODELAY is applied
// via the raw file descriptor so small HTTP responses aren't held back
// by Nagle's algorithm.
func NewTCP(conn net.Conn) *TCP {
	if tc, ok := conn.(*net.TCPConn); ok {
		tuneTCPConn(tc)
	}
	return &TCP{
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
	}
}

func tuneTCPConn(tc *net.TCPConn) {
	raw, err := tc.SyscallConn()
	if err != nil {
		return
	}
	_ = raw.Control(func(fd uintptr) {
		_ = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
	})
}

func (t *TCP) Read(buf []byte) (int, error) {
	return t.reader.Read(buf)
}

func (t *TCP) Peek(buf []byte) (int, error) {
	b, err := t.reader.Peek(len(buf))
	copy(buf, b)
	return len(b), err
}

func (t *TCP) Write(buf []byte) (int, error) {
	return t.writer.Write(buf)
}

func (t *TCP) Flush() error {
	return t.writer.Flush()
}

func (t *TCP) SetBlocking() error {
	return t.conn.SetReadDeadline(time.Time{})
}

func (t *TCP) SetNonBlocking(timeout time.Duration) error {
	return t.conn.SetReadDeadline(time.Now().Add(timeout))
}

func (t *TCP) Close() error {
	return t.conn.Close()
}

// listenerTune applies SO_REUSEADDR to a freshly created listener's
// socket, grounded on the same best-effort tuning philosophy as the
// per-connection TCP_NODELAY above: failures are non-fatal.
func listenerTune(ln *net.TCPListener) {
	raw, err := ln.SyscallConn()
	if err != nil {
		return
	}
	_ = raw.Control(func(fd uintptr) {
		_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
}

// ListenerTune is the exported entry point server.Server uses right
// after net.ListenTCP to apply socket tuning to the listening socket
// itself (as opposed to tuning each accepted connection, done above).
func ListenerTune(ln *net.TCPListener) {
	listenerTune(ln)
}
