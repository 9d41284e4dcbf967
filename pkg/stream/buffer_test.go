package stream

import (
	"bytes"
	"io"
	"testing"
)

func TestBufferReadWrite(t *testing.T) {
	b := NewBufferString("hello world")

	peek := make([]byte, 5)
	n, err := b.Peek(peek)
	if err != nil || n != 5 || string(peek) != "hello" {
		t.Fatalf("Peek = (%d, %v, %q)", n, err, peek)
	}

	read := make([]byte, 5)
	n, err = b.Read(read)
	if err != nil || n != 5 || string(read) != "hello" {
		t.Fatalf("Read = (%d, %v, %q)", n, err, read)
	}

	rest, err := io.ReadAll(b)
	if err != nil {
		t.Fatal(err)
	}
	if string(rest) != " world" {
		t.Fatalf("remaining = %q, want %q", rest, " world")
	}

	if _, err := b.Write([]byte("response")); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b.Output(), []byte("response")) {
		t.Fatalf("Output = %q", b.Output())
	}
}

func TestBufferEOF(t *testing.T) {
	b := NewBuffer(nil)
	buf := make([]byte, 4)
	if _, err := b.Read(buf); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestDummy(t *testing.T) {
	var d Dummy
	buf := make([]byte, 4)
	if _, err := d.Read(buf); err != io.EOF {
		t.Fatalf("Dummy.Read error = %v, want io.EOF", err)
	}
	n, err := d.Write([]byte("abc"))
	if err != nil || n != 3 {
		t.Fatalf("Dummy.Write = (%d, %v)", n, err)
	}
}
