// Package urlenc implements the percent-encoding used for URL paths and
// query parameters throughout this module. It is a minimal, ASCII-only
// coder: unreserved characters pass through unchanged, everything else
// is escaped as a two-digit uppercase hex triple.
package urlenc

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// isUnreserved reports whether b never needs percent-encoding.
func isUnreserved(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b == '-' || b == '.' || b == '_' || b == '~':
		return true
	default:
		return false
	}
}

// Encode percent-encodes s, leaving unreserved characters untouched and
// escaping every other byte as "%XX" (uppercase hex).
func Encode(s string) string {
	needsEscaping := false
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			needsEscaping = true
			break
		}
	}
	if !needsEscaping {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// Decode percent-decodes s. A literal '+' decodes to a space, matching
// application/x-www-form-urlencoded query strings. Returns an error
// naming a truncated escape, an invalid hex digit, or an invalid UTF-8
// result.
func Decode(s string) (string, error) {
	if !strings.ContainsAny(s, "%+") {
		return s, nil
	}

	buf := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '+':
			buf = append(buf, ' ')
			i++
		case c == '%':
			if i+2 >= len(s) {
				return "", fmt.Errorf("urlenc: missing byte after '%%'")
			}
			hi, err := fromHexDigit(s[i+1])
			if err != nil {
				return "", err
			}
			lo, err := fromHexDigit(s[i+2])
			if err != nil {
				return "", err
			}
			buf = append(buf, hi<<4|lo)
			i += 3
		default:
			buf = append(buf, c)
			i++
		}
	}

	if !utf8.Valid(buf) {
		return "", fmt.Errorf("urlenc: decoded bytes are not valid UTF-8")
	}
	return string(buf), nil
}

func fromHexDigit(d byte) (byte, error) {
	switch {
	case d >= '0' && d <= '9':
		return d - '0', nil
	case d >= 'A' && d <= 'F':
		return d - 'A' + 10, nil
	case d >= 'a' && d <= 'f':
		return d - 'a' + 10, nil
	default:
		return 0, fmt.Errorf("urlenc: %q is not a valid hex digit", d)
	}
}
