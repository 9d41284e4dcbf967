package httpmsg

import (
	"bufio"
	"errors"

	"github.com/saulvaldelvira/http-server/pkg/stream"
)

// ErrMissingMethod and ErrMissingURL are returned by RequestBuilder.Build
// when a required field was never set; Go has no typestate to enforce
// this at compile time, so the check runs at Build time instead.
var (
	ErrMissingMethod = errors.New("httpmsg: request builder missing method")
	ErrMissingURL    = errors.New("httpmsg: request builder missing url")
)

// RequestBuilder constructs a synthetic Request, e.g. for a client
// sending an outbound call or a test exercising a handler directly.
type RequestBuilder struct {
	req       Request
	hasMethod bool
	hasURL    bool
}

// NewRequestBuilder returns a builder with the defaults every
// unspecified field takes: version 1.1, status 200, a Dummy stream,
// and empty header/param maps.
func NewRequestBuilder() *RequestBuilder {
	b := &RequestBuilder{}
	b.req = Request{
		headers:         Headers{},
		params:          QueryParams{},
		responseHeaders: Headers{},
		version:         1.1,
		status:          StatusOK,
		stream:          stream.Dummy{},
	}
	return b
}

// Method sets the request method. Required for Build to succeed.
func (b *RequestBuilder) Method(m Method) *RequestBuilder {
	b.req.method = m
	b.hasMethod = true
	return b
}

// URL sets the request path. Required for Build to succeed.
func (b *RequestBuilder) URL(url string) *RequestBuilder {
	b.req.url = url
	b.hasURL = true
	return b
}

// Header stages one request header.
func (b *RequestBuilder) Header(key, value string) *RequestBuilder {
	b.req.headers.Set(key, value)
	return b
}

// Param stages one query parameter.
func (b *RequestBuilder) Param(key, value string) *RequestBuilder {
	b.req.params[key] = value
	return b
}

// Version overrides the default HTTP version (1.1).
func (b *RequestBuilder) Version(version float32) *RequestBuilder {
	b.req.version = version
	return b
}

// Body attaches a pre-materialized body.
func (b *RequestBuilder) Body(body []byte) *RequestBuilder {
	b.req.body = body
	b.req.hasBody = true
	return b
}

// Stream overrides the default Dummy stream.
func (b *RequestBuilder) Stream(s stream.Stream) *RequestBuilder {
	b.req.stream = s
	return b
}

// Build validates required fields and returns the assembled Request.
func (b *RequestBuilder) Build() (*Request, error) {
	if !b.hasMethod {
		return nil, ErrMissingMethod
	}
	if !b.hasURL {
		return nil, ErrMissingURL
	}
	req := b.req
	if req.reader == nil {
		req.reader = bufio.NewReader(req.stream)
	}
	return &req, nil
}
