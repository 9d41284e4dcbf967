package httpmsg

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/saulvaldelvira/http-server/pkg/stream"
	"github.com/saulvaldelvira/http-server/pkg/urlenc"
)

// ParseRequest reads and parses one HTTP request from s. On success,
// the stream is left positioned at byte 0 of the body (if any);
// headers, including the terminating blank line, have been fully
// consumed. The body itself is not read here — see Request.Body.
func ParseRequest(s stream.Stream) (*Request, error) {
	return parseRequestWithReader(s, bufio.NewReader(s))
}

// parseRequestWithReader parses a request off an already-buffered
// reader, so a second request pipelined or sent after a keep-alive
// wait is not lost behind a fresh bufio.Reader's empty buffer.
func parseRequestWithReader(s stream.Stream, reader *bufio.Reader) (*Request, error) {
	line, err := readLine(reader)
	if err != nil {
		return nil, err
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrMalformedRequestLine
	}

	methodTok := fields[0]
	var target string
	if len(fields) > 1 {
		target = fields[1]
	}
	var versionTok string
	if len(fields) > 2 {
		versionTok = fields[2]
	}

	method, err := ParseMethod(methodTok)
	if err != nil {
		return nil, err
	}

	params := QueryParams{}
	path := target
	if idx := strings.IndexByte(target, '?'); idx >= 0 {
		path = target[:idx]
		query := target[idx+1:]
		for _, pair := range strings.Split(query, "&") {
			if pair == "" {
				continue
			}
			k, v, _ := strings.Cut(pair, "=")
			dk, err := urlenc.Decode(k)
			if err != nil {
				return nil, err
			}
			dv, err := urlenc.Decode(v)
			if err != nil {
				return nil, err
			}
			params[dk] = dv
		}
	}
	decodedPath, err := urlenc.Decode(path)
	if err != nil {
		return nil, err
	}

	version, err := parseVersionToken(versionTok)
	if err != nil {
		return nil, err
	}

	headers, err := readHeaders(reader)
	if err != nil {
		return nil, err
	}

	return &Request{
		method:          method,
		url:             decodedPath,
		headers:         headers,
		params:          params,
		responseHeaders: Headers{},
		version:         version,
		status:          StatusOK,
		stream:          s,
		reader:          reader,
	}, nil
}

func parseVersionToken(tok string) (float32, error) {
	tok = strings.TrimPrefix(tok, "HTTP/")
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, ErrMalformedVersion
	}
	return float32(v), nil
}

// readLine reads one line up to (and excluding) its terminating "\n"
// or "\r\n".
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readHeaders reads header lines until an empty (trimmed) line,
// splitting each at its first ':'. The value is trimmed of one leading
// space and the trailing line terminator.
func readHeaders(r *bufio.Reader) (Headers, error) {
	headers := Headers{}
	for {
		line, err := readLine(r)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		headers[key] = strings.TrimPrefix(value, " ")
	}
	return headers, nil
}
