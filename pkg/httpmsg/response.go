package httpmsg

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/saulvaldelvira/http-server/pkg/stream"
)

// Response is an HTTP response: parsed off a stream on the client
// side, or assembled with a ResponseBuilder for tests. Its body is
// lazily materialized, same as Request's.
type Response struct {
	headers Headers
	status  StatusCode
	version float32

	body    []byte
	hasBody bool

	stream stream.Stream
	reader *bufio.Reader
}

// Status returns the response's status code.
func (r *Response) Status() StatusCode { return r.status }

// Version returns the response's HTTP version.
func (r *Response) Version() float32 { return r.version }

// Headers returns the response's headers.
func (r *Response) Headers() Headers { return r.headers }

// Header returns a single response header.
func (r *Response) Header(key string) (string, bool) { return r.headers.Get(key) }

// Stream returns the transport this response was parsed from, so
// callers can close the underlying connection once they're done
// reading the body.
func (r *Response) Stream() stream.Stream { return r.stream }

// ContentLength returns the parsed Content-Length header, or 0 if
// absent or unparsable.
func (r *Response) ContentLength() int {
	v, ok := r.headers.Get("Content-Length")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// IsHTTPOk reports whether the status is a 2xx.
func (r *Response) IsHTTPOk() bool { return r.status.IsOK() }

// IsHTTPErr reports whether the status is a 4xx or 5xx.
func (r *Response) IsHTTPErr() bool { return r.status.IsUserErr() || r.status.IsServerErr() }

// Body drains the response body into the cached slot on first call,
// up to Content-Length bytes (or until EOF if absent), and returns it.
func (r *Response) Body() ([]byte, error) {
	if r.hasBody {
		return r.body, nil
	}
	length := r.ContentLength()
	var buf []byte
	if length > 0 {
		buf = make([]byte, length)
		if _, err := io.ReadFull(r.reader, buf); err != nil {
			return nil, err
		}
	} else {
		var err error
		buf, err = io.ReadAll(r.reader)
		if err != nil {
			return nil, err
		}
	}
	r.body = buf
	r.hasBody = true
	return r.body, nil
}

// ParseResponse reads and parses one HTTP response from s: a status
// line of the form "HTTP/<version> <status> <phrase>" (the phrase is
// discarded), then headers up to the terminating blank line.
func ParseResponse(s stream.Stream) (*Response, error) {
	reader := bufio.NewReader(s)

	line, err := readLine(reader)
	if err != nil {
		return nil, err
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, ErrMalformedStatusLine
	}

	version, err := parseVersionToken(fields[0])
	if err != nil {
		return nil, err
	}

	code, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return nil, ErrMalformedStatusCode
	}

	headers, err := readHeaders(reader)
	if err != nil {
		return nil, err
	}

	return &Response{
		headers: headers,
		status:  StatusCode(code),
		version: version,
		stream:  s,
		reader:  reader,
	}, nil
}

// ResponseBuilder constructs a synthetic Response, primarily for
// tests.
type ResponseBuilder struct {
	resp Response
}

// NewResponseBuilder returns a builder defaulting to HTTP/1.1, status
// 200, and a Dummy stream.
func NewResponseBuilder() *ResponseBuilder {
	b := &ResponseBuilder{}
	b.resp = Response{
		headers: Headers{},
		version: 1.1,
		status:  StatusOK,
		stream:  stream.Dummy{},
	}
	return b
}

// Status overrides the default 200 status.
func (b *ResponseBuilder) Status(status StatusCode) *ResponseBuilder {
	b.resp.status = status
	return b
}

// Header stages one response header.
func (b *ResponseBuilder) Header(key, value string) *ResponseBuilder {
	b.resp.headers.Set(key, value)
	return b
}

// Version overrides the default HTTP version (1.1).
func (b *ResponseBuilder) Version(version float32) *ResponseBuilder {
	b.resp.version = version
	return b
}

// Body attaches a pre-materialized body.
func (b *ResponseBuilder) Body(body []byte) *ResponseBuilder {
	b.resp.body = body
	b.resp.hasBody = true
	return b
}

// Build returns the assembled Response. Unlike RequestBuilder, no
// field is strictly required: an unset status defaults to 200.
func (b *ResponseBuilder) Build() *Response {
	resp := b.resp
	return &resp
}
