package chunked

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
)

func encodeAll(t *testing.T, input string, chunkSize int) []byte {
	t.Helper()
	enc := NewEncoderSize(strings.NewReader(input), chunkSize)
	defer enc.Close()
	out, err := io.ReadAll(enc)
	if err != nil {
		t.Fatalf("ReadAll(encoder): %v", err)
	}
	return out
}

func expectedFraming(input string, chunkSize int) []byte {
	var buf bytes.Buffer
	b := []byte(input)
	for i := 0; i < len(b); i += chunkSize {
		end := i + chunkSize
		if end > len(b) {
			end = len(b)
		}
		piece := b[i:end]
		fmt.Fprintf(&buf, "%X\r\n", len(piece))
		buf.Write(piece)
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}

func TestEncoderFraming(t *testing.T) {
	const size = 16
	cases := []string{
		"abcdefg",
		strings.Repeat("a", size),
		strings.Repeat("a", size*2),
		strings.Repeat("a", size+5),
		"",
	}
	for _, c := range cases {
		got := encodeAll(t, c, size)
		want := expectedFraming(c, size)
		if !bytes.Equal(got, want) {
			t.Fatalf("encode(%q) = %q, want %q", c, got, want)
		}
	}
}

func TestDecoderRoundTrip(t *testing.T) {
	input := "The quick brown fox jumps over the lazy dog, repeatedly, to pad this out past one chunk."
	encoded := encodeAll(t, input, 16)
	encoded = append(encoded, []byte(Terminator)...)

	dec := NewDecoder(bytes.NewReader(encoded))
	out, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("ReadAll(decoder): %v", err)
	}
	if string(out) != input {
		t.Fatalf("decoded = %q, want %q", out, input)
	}
}

func TestDecoderMalformed(t *testing.T) {
	dec := NewDecoder(strings.NewReader("not-hex\r\ndata\r\n0\r\n\r\n"))
	if _, err := io.ReadAll(dec); err != ErrMalformedChunk {
		t.Fatalf("error = %v, want ErrMalformedChunk", err)
	}
}

func TestDecoderIgnoresChunkExtensions(t *testing.T) {
	dec := NewDecoder(strings.NewReader("5;foo=bar\r\nhello\r\n0\r\n\r\n"))
	out, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "hello" {
		t.Fatalf("decoded = %q, want %q", out, "hello")
	}
}
