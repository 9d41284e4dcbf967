// Package httpmsg implements the typed request/response message model:
// parsing from a stream, building synthetic messages, and the response
// lifecycle (respond/respond_buf/respond_chunked/...) a server handler
// drives against the stream attached to a request.
package httpmsg

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/saulvaldelvira/http-server/pkg/chunked"
	"github.com/saulvaldelvira/http-server/pkg/stream"
	"github.com/saulvaldelvira/http-server/pkg/urlenc"
)

const respondChunkSize = 1024

// Request is an HTTP request: either parsed off a stream on the server
// side, or assembled with a RequestBuilder for the client side. It
// doubles as the response builder for the connection that produced it,
// since it is the one object that owns the stream in both directions.
type Request struct {
	method Method
	url    string
	headers Headers
	params  QueryParams

	responseHeaders Headers
	version         float32
	status          StatusCode

	body    []byte
	hasBody bool

	stream stream.Stream
	reader *bufio.Reader
}

// Method returns the request's HTTP method.
func (r *Request) Method() Method { return r.method }

// URL returns the request's path, already percent-decoded.
func (r *Request) URL() string { return r.url }

// SetURL overwrites the request's path, e.g. for an internal redirect.
func (r *Request) SetURL(url string) { r.url = url }

// Params returns the request's query parameters.
func (r *Request) Params() QueryParams { return r.params }

// Param returns a single query parameter.
func (r *Request) Param(key string) (string, bool) { return r.params.Get(key) }

// Headers returns the request's headers.
func (r *Request) Headers() Headers { return r.headers }

// Header returns a single request header.
func (r *Request) Header(key string) (string, bool) { return r.headers.Get(key) }

// SetHeader stages a header on the eventual response.
func (r *Request) SetHeader(key, value string) { r.responseHeaders.Set(key, value) }

// ResponseHeaders returns the headers staged for the response.
func (r *Request) ResponseHeaders() Headers { return r.responseHeaders }

// Version returns the request's HTTP version (e.g. 1.1).
func (r *Request) Version() float32 { return r.version }

// Status returns the status currently staged for the response.
func (r *Request) Status() StatusCode { return r.status }

// SetStatus stages a status code for the response and returns r for
// chaining.
func (r *Request) SetStatus(status StatusCode) *Request {
	r.status = status
	return r
}

// Stream returns the transport this request was parsed from (or built
// against).
func (r *Request) Stream() stream.Stream { return r.stream }

// KeepAlive parses the next request off the same stream this request
// was read from, tagging it with a Connection: keep-alive response
// header. Callers use this to serve a second request over a reused
// connection without re-accepting it.
func (r *Request) KeepAlive() (*Request, error) {
	next, err := parseRequestWithReader(r.stream, r.reader)
	if err != nil {
		return nil, err
	}
	next.SetHeader("Connection", "keep-alive")
	return next, nil
}

// ContentLength returns the parsed Content-Length header, or 0 if
// absent or unparsable.
func (r *Request) ContentLength() int {
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

// Filename computes the server-local filesystem path corresponding to
// this request's URL, joining it with the process's working directory.
// The core does not interpret the result; filesystem handlers do.
func (r *Request) Filename() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, strings.TrimPrefix(r.url, "/")), nil
}

// Body returns the request body, reading it from the stream on first
// call (up to Content-Length bytes, or until EOF if absent) and
// caching the result for subsequent calls.
func (r *Request) Body() ([]byte, error) {
	if r.hasBody {
		return r.body, nil
	}
	length := r.ContentLength()
	capHint := length
	if capHint < 32 {
		capHint = 32
	}
	buf := make([]byte, 0, capHint)
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

// HasBody reports whether a body is already cached, or whether the
// stream's peek indicates further bytes are available. It never
// consumes bytes.
func (r *Request) HasBody() bool {
	if r.hasBody {
		return len(r.body) > 0
	}
	if r.reader.Buffered() > 0 {
		return true
	}
	peek := make([]byte, 1)
	n, _ := r.stream.Peek(peek)
	return n > 0
}

// ReadBody copies the request body into w, in fixed-size chunks,
// without caching it on the request.
func (r *Request) ReadBody(w io.Writer) error {
	length := r.ContentLength()
	buf := make([]byte, respondChunkSize)
	n := length / respondChunkSize
	remainder := length % respondChunkSize

	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(r.reader, buf); err != nil {
			return err
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	if remainder > 0 {
		if _, err := io.ReadFull(r.reader, buf[:remainder]); err != nil {
			return err
		}
		if _, err := w.Write(buf[:remainder]); err != nil {
			return err
		}
	}
	return nil
}

// WriteTo serializes the request for transmission (client side): the
// request line, then headers, then an attached body if any, then a
// terminating blank line.
//
// If params are non-empty, the current implementation leaves a
// trailing '&' after the last key=value pair; this matches the wire
// format every client and server in this system expects.
func (r *Request) WriteTo(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s %s", r.method, r.url); err != nil {
		return err
	}
	if len(r.params) > 0 {
		if _, err := io.WriteString(w, "?"); err != nil {
			return err
		}
		for k, v := range r.params {
			ke := urlenc.Encode(k)
			ve := urlenc.Encode(v)
			if _, err := fmt.Fprintf(w, "%s=%s&", ke, ve); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(w, " HTTP/%g\r\n", r.version); err != nil {
		return err
	}
	for k, v := range r.headers {
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", k, v); err != nil {
			return err
		}
	}
	if r.hasBody {
		if _, err := w.Write(r.body); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\r\n")
	return err
}

// SendTo writes the request to s, flushes, and parses the response
// that comes back over the same stream.
func (r *Request) SendTo(s stream.Stream) (*Response, error) {
	if err := r.WriteTo(s); err != nil {
		return nil, err
	}
	if err := s.Flush(); err != nil {
		return nil, err
	}
	return ParseResponse(s)
}

// Respond emits the status line and staged response headers, followed
// by a blank line. It writes no body.
func (r *Request) Respond() error {
	statusLine := fmt.Sprintf("HTTP/%g %d %s\r\n", r.version, r.status, r.status.Phrase())
	if _, err := io.WriteString(r.stream, statusLine); err != nil {
		return err
	}
	for k, v := range r.responseHeaders {
		if _, err := fmt.Fprintf(r.stream, "%s: %s\r\n", k, v); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(r.stream, "\r\n"); err != nil {
		return err
	}
	return r.stream.Flush()
}

// RespondBuf sets Content-Length to len(buf), then responds with buf
// as the body.
func (r *Request) RespondBuf(buf []byte) error {
	r.SetHeader("Content-Length", strconv.Itoa(len(buf)))
	return r.respondReaderNoFlushGuard(bytes.NewReader(buf))
}

// RespondStr is a convenience wrapper over RespondBuf for string
// bodies.
func (r *Request) RespondStr(text string) error {
	return r.RespondBuf([]byte(text))
}

// RespondReader calls Respond then streams reader's output to the
// client in fixed-size chunks until EOF.
func (r *Request) RespondReader(reader io.Reader) error {
	return r.respondReaderNoFlushGuard(reader)
}

func (r *Request) respondReaderNoFlushGuard(reader io.Reader) error {
	if err := r.Respond(); err != nil {
		return err
	}
	buf := make([]byte, respondChunkSize)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			if _, werr := r.stream.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if n == 0 {
			break
		}
	}
	return r.stream.Flush()
}

// RespondChunked sets Transfer-Encoding: chunked, wraps reader in the
// chunked encoder, and streams it; the Content-Length of the body
// doesn't need to be known ahead of time.
func (r *Request) RespondChunked(reader io.Reader) error {
	r.SetHeader("Transfer-Encoding", "chunked")
	enc := chunked.NewEncoder(reader)
	defer enc.Close()
	if err := r.respondReaderNoFlushGuard(enc); err != nil {
		return err
	}
	_, err := io.WriteString(r.stream, chunked.Terminator)
	if err != nil {
		return err
	}
	return r.stream.Flush()
}

// ErrorPage renders a minimal HTML document for the request's current
// status code and phrase.
func (r *Request) ErrorPage() string {
	code := r.status
	msg := code.Phrase()
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
    <head>
        <meta charset="utf-8">
        <title>%d %s</title>
    </head>
<body>
    <h1>%d %s</h1>
</body>
</html>`, code, msg, code, msg)
}

// RespondErrorPage sets Content-Type: text/html and responds with
// ErrorPage() as the body.
func (r *Request) RespondErrorPage() error {
	r.SetHeader("Content-Type", "text/html")
	return r.RespondStr(r.ErrorPage())
}

// Ok responds 200 with no body.
func (r *Request) Ok() error {
	return r.SetStatus(StatusOK).Respond()
}

// Forbidden responds 403 with an error page.
func (r *Request) Forbidden() error {
	return r.SetStatus(StatusForbidden).RespondErrorPage()
}

// Unauthorized responds 401 with an error page.
func (r *Request) Unauthorized() error {
	return r.SetStatus(StatusUnauthorized).RespondErrorPage()
}

// NotFound responds 404 with an error page.
func (r *Request) NotFound() error {
	return r.SetStatus(StatusNotFound).RespondErrorPage()
}

// ServerError responds 500 with an error page.
func (r *Request) ServerError() error {
	return r.SetStatus(StatusInternalServerError).RespondErrorPage()
}

// IsHTTPOk reports whether the staged status is a 2xx.
func (r *Request) IsHTTPOk() bool { return r.status.IsOK() }

// IsHTTPErr reports whether the staged status is a 4xx or 5xx.
func (r *Request) IsHTTPErr() bool { return r.status.IsUserErr() || r.status.IsServerErr() }
