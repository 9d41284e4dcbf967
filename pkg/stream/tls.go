package stream

import (
	"bufio"
	"crypto/tls"
	"time"
)

// TLS wraps a *tls.Conn into a Stream. Socket-level tuning is left to
// the underlying net.Conn the TLS handshake was negotiated over; this
// type only adds the peekable buffering every Stream needs.
type TLS struct {
	conn   *tls.Conn
	reader *bufio.Reader
	writer *bufio.Writer
}

// NewTLS wraps an already-dialed or already-accepted *tls.Conn.
func NewTLS(conn *tls.Conn) *TLS {
	return &TLS{
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
	}
}

func (t *TLS) Read(buf []byte) (int, error) {
	return t.reader.Read(buf)
}

func (t *TLS) Peek(buf []byte) (int, error) {
	b, err := t.reader.Peek(len(buf))
	copy(buf, b)
	return len(b), err
}

func (t *TLS) Write(buf []byte) (int, error) {
	return t.writer.Write(buf)
}

func (t *TLS) Flush() error {
	return t.writer.Flush()
}

func (t *TLS) SetBlocking() error {
	return t.conn.SetReadDeadline(time.Time{})
}

func (t *TLS) SetNonBlocking(timeout time.Duration) error {
	return t.conn.SetReadDeadline(time.Now().Add(timeout))
}

func (t *TLS) Close() error {
	return t.conn.Close()
}
