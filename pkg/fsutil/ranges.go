// Package fsutil implements the default filesystem-backed request
// handlers: serving files and directory indexes, accepting uploads and
// deletes, the suffix-rewriting and access-logging interceptors, and
// the plain redirect handler factory.
package fsutil

import (
	"fmt"
	"strconv"
	"strings"
)

// ByteRange is an inclusive-start, exclusive-end byte range, e.g. for
// "bytes=0-100" on a 1000-byte file, Start=0 End=100 (bytes 0..99).
type ByteRange struct {
	Start uint64
	End   uint64
}

// ErrUnknownRangeUnit is returned when a Range header names a unit
// other than "bytes".
var ErrUnknownRangeUnit = fmt.Errorf("fsutil: unknown range unit")

// ParseRange parses a Range header value ("bytes=start-end", with the
// end bound optional) against a resource of the given length. A
// missing or unparsable end defaults to len; a missing start is an
// error (the "last N bytes" suffix-range form is not implemented).
func ParseRange(header string, length uint64) (ByteRange, error) {
	unit, rest, found := strings.Cut(header, "=")
	if !found {
		return ByteRange{}, fmt.Errorf("fsutil: missing range unit")
	}
	if unit != "bytes" {
		return ByteRange{}, ErrUnknownRangeUnit
	}

	startStr, endStr, _ := strings.Cut(rest, "-")
	start, err := strconv.ParseUint(startStr, 10, 64)
	if err != nil {
		return ByteRange{}, fmt.Errorf("fsutil: invalid range start: %w", err)
	}

	end := length
	if endStr != "" {
		if n, err := strconv.ParseUint(endStr, 10, 64); err == nil {
			end = n
		}
	}

	return ByteRange{Start: start, End: end}, nil
}
