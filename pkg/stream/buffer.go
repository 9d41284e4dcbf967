package stream

import (
	"errors"
	"io"
	"time"
)

// Buffer is an in-memory Stream: reads are served from a fixed input
// slice, writes accumulate into an output buffer. It is used by tests
// that need a Stream without opening a real socket.
type Buffer struct {
	input  []byte
	offset int
	output []byte
}

// NewBuffer returns a Buffer whose reads are served from input.
func NewBuffer(input []byte) *Buffer {
	return &Buffer{input: input}
}

// NewBufferString is a convenience wrapper around NewBuffer for string
// input.
func NewBufferString(input string) *Buffer {
	return NewBuffer([]byte(input))
}

func (b *Buffer) Peek(buf []byte) (int, error) {
	remaining := len(b.input) - b.offset
	if remaining <= 0 {
		return 0, io.EOF
	}
	n := len(buf)
	if n > remaining {
		n = remaining
	}
	copy(buf[:n], b.input[b.offset:b.offset+n])
	return n, nil
}

func (b *Buffer) Read(buf []byte) (int, error) {
	n, err := b.Peek(buf)
	b.offset += n
	return n, err
}

func (b *Buffer) Write(buf []byte) (int, error) {
	b.output = append(b.output, buf...)
	return len(buf), nil
}

// Output returns the bytes written so far.
func (b *Buffer) Output() []byte {
	return b.output
}

func (b *Buffer) Flush() error                          { return nil }
func (b *Buffer) SetBlocking() error                     { return nil }
func (b *Buffer) SetNonBlocking(_ time.Duration) error   { return nil }
func (b *Buffer) Close() error                           { return nil }

// Dummy is a Stream that discards all writes and reports EOF on every
// read. It stands in for a transport when none is needed, e.g. when
// building a response outside of a live connection.
type Dummy struct{}

func (Dummy) Read(_ []byte) (int, error)  { return 0, io.EOF }
func (Dummy) Peek(_ []byte) (int, error)  { return 0, io.EOF }
func (Dummy) Write(buf []byte) (int, error) { return len(buf), nil }
func (Dummy) Flush() error                   { return nil }
func (Dummy) SetBlocking() error              { return nil }
func (Dummy) SetNonBlocking(_ time.Duration) error { return nil }
func (Dummy) Close() error                     { return nil }

var errClosed = errors.New("stream: use of closed stream")
