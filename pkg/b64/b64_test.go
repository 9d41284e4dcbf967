package b64

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte("Hello world!"),
		[]byte("a"),
		[]byte("ab"),
		[]byte("abc"),
		[]byte(""),
		[]byte("user:passwd"),
	}
	for _, c := range cases {
		enc := Encode(c)
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(Encode(%q)) error: %v", c, err)
		}
		if !bytes.Equal(dec, c) {
			t.Fatalf("round trip failed: %q -> %q -> %q", c, enc, dec)
		}
	}
}

func TestEncodeKnownVector(t *testing.T) {
	got := Encode([]byte("Hello world!"))
	want := "SGVsbG8gd29ybGQh"
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestDecodeMissingPadding(t *testing.T) {
	dec, err := Decode("dXNlcjpwYXNzd2Q")
	if err != nil {
		t.Fatalf("Decode without padding: %v", err)
	}
	if string(dec) != "user:passwd" {
		t.Fatalf("Decode = %q, want %q", dec, "user:passwd")
	}
}

func TestDecodeInvalidCharacter(t *testing.T) {
	if _, err := Decode("not a base64 string!!"); err == nil {
		t.Fatal("expected error for invalid character")
	}
}
