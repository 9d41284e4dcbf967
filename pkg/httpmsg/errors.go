package httpmsg

import "errors"

// Parse errors. Named after the original failure, matching the style
// of error values the rest of this module uses (sentinel where the
// message needs no extra data, a typed error otherwise).
var (
	// ErrMalformedRequestLine indicates a request/status line did not
	// split into the expected whitespace-delimited tokens.
	ErrMalformedRequestLine = errors.New("httpmsg: malformed request line")

	// ErrMalformedVersion indicates the HTTP/<version> token failed to
	// parse as "Could not parse HTTP Version".
	ErrMalformedVersion = errors.New("httpmsg: could not parse HTTP version")

	// ErrMalformedStatusLine indicates a response's status line did not
	// split into the expected tokens.
	ErrMalformedStatusLine = errors.New("httpmsg: malformed status line")

	// ErrMalformedStatusCode indicates the status token was not a valid
	// unsigned integer.
	ErrMalformedStatusCode = errors.New("httpmsg: malformed status code")

	// ErrNoBody names a message that carries no body. The Body
	// accessors do not return it: without a Content-Length they read
	// until EOF and return what they got, which may be empty.
	ErrNoBody = errors.New("httpmsg: message has no body")
)
