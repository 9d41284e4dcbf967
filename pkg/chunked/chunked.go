// Package chunked implements the HTTP chunked transfer-encoding codec:
// a streaming encoder that frames an upstream io.Reader into
// "<hex length>\r\n<payload>\r\n" pieces, and a symmetric decoder.
package chunked

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/valyala/bytebufferpool"
)

// DefaultChunkSize is the size of each framed piece the Encoder pulls
// from its upstream reader per chunk.
const DefaultChunkSize = 1024

// ErrMalformedChunk is returned by Decoder.Read when the chunk framing
// (size line or trailing CRLF) does not match the expected grammar.
var ErrMalformedChunk = errors.New("chunked: malformed chunk framing")

// Encoder wraps an io.Reader and emits it framed as HTTP chunked
// transfer encoding. It does not write the terminating "0\r\n\r\n"
// chunk itself; once upstream is drained, Read returns io.EOF like any
// other reader, leaving the decision of whether and how to terminate
// the body to the caller (see Terminator).
type Encoder struct {
	upstream  io.Reader
	chunkSize int
	buf       *bytebufferpool.ByteBuffer
	offset    int
	done      bool
}

// NewEncoder wraps r with the default chunk size.
func NewEncoder(r io.Reader) *Encoder {
	return NewEncoderSize(r, DefaultChunkSize)
}

// NewEncoderSize wraps r, pulling up to chunkSize bytes from it per
// framed chunk.
func NewEncoderSize(r io.Reader, chunkSize int) *Encoder {
	return &Encoder{
		upstream:  r,
		chunkSize: chunkSize,
		buf:       bytebufferpool.Get(),
	}
}

// Close returns the encoder's scratch buffer to the pool. Safe to call
// even if the encoder was never fully drained.
func (e *Encoder) Close() error {
	bytebufferpool.Put(e.buf)
	e.buf = nil
	return nil
}

func (e *Encoder) nextChunk() (bool, error) {
	e.buf.Reset()
	e.offset = 0

	tmp := make([]byte, e.chunkSize)
	n, err := e.upstream.Read(tmp)
	if n == 0 {
		if err != nil && err != io.EOF {
			return false, err
		}
		return false, nil
	}

	fmt.Fprintf(e.buf, "%X\r\n", n)
	e.buf.Write(tmp[:n])
	e.buf.Write(crlf)
	return true, nil
}

var crlf = []byte("\r\n")

// Read implements io.Reader. It returns io.EOF once the upstream
// reader has been fully drained.
func (e *Encoder) Read(p []byte) (int, error) {
	if e.done {
		return 0, io.EOF
	}
	if e.offset >= e.buf.Len() {
		ok, err := e.nextChunk()
		if err != nil {
			return 0, err
		}
		if !ok {
			e.done = true
			return 0, io.EOF
		}
	}

	b := e.buf.B[e.offset:]
	n := copy(p, b)
	e.offset += n
	return n, nil
}

// Terminator is the final empty chunk that ends a chunked body with no
// trailers. Write it after an Encoder has returned io.EOF.
const Terminator = "0\r\n\r\n"

// Decoder reads a chunked-encoded stream back into its original bytes,
// symmetric with Encoder. Chunk extensions (";...") are accepted and
// discarded; trailer fields after the last chunk are read and ignored.
type Decoder struct {
	r         *bufio.Reader
	remaining int64
	eof       bool
}

// NewDecoder wraps r. If r is not already a *bufio.Reader, it is
// wrapped in one.
func NewDecoder(r io.Reader) *Decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{r: br}
}

func (d *Decoder) Read(p []byte) (int, error) {
	if d.eof {
		return 0, io.EOF
	}
	if d.remaining == 0 {
		size, err := d.readChunkSize()
		if err != nil {
			return 0, err
		}
		if size == 0 {
			if err := d.readTrailers(); err != nil {
				return 0, err
			}
			d.eof = true
			return 0, io.EOF
		}
		d.remaining = size
	}

	toRead := int64(len(p))
	if toRead > d.remaining {
		toRead = d.remaining
	}
	n, err := d.r.Read(p[:toRead])
	d.remaining -= int64(n)
	if err != nil {
		if err == io.EOF {
			err = ErrMalformedChunk
		}
		return n, err
	}

	if d.remaining == 0 {
		if err := d.readCRLF(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (d *Decoder) readChunkSize() (int64, error) {
	line, err := d.r.ReadSlice('\n')
	if err != nil {
		if err == io.EOF {
			return 0, ErrMalformedChunk
		}
		return 0, err
	}
	line = bytes.TrimRight(line, "\r\n")
	if idx := bytes.IndexByte(line, ';'); idx >= 0 {
		line = line[:idx]
	}
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return 0, ErrMalformedChunk
	}

	var size int64
	for _, b := range line {
		size <<= 4
		switch {
		case b >= '0' && b <= '9':
			size |= int64(b - '0')
		case b >= 'a' && b <= 'f':
			size |= int64(b-'a') + 10
		case b >= 'A' && b <= 'F':
			size |= int64(b-'A') + 10
		default:
			return 0, ErrMalformedChunk
		}
	}
	return size, nil
}

func (d *Decoder) readCRLF() error {
	var b [2]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		if err == io.EOF {
			return ErrMalformedChunk
		}
		return err
	}
	if b[0] != '\r' || b[1] != '\n' {
		return ErrMalformedChunk
	}
	return nil
}

func (d *Decoder) readTrailers() error {
	for {
		line, err := d.r.ReadSlice('\n')
		if err != nil {
			if err == io.EOF {
				return ErrMalformedChunk
			}
			return err
		}
		if len(line) == 2 && line[0] == '\r' && line[1] == '\n' {
			return nil
		}
	}
}
