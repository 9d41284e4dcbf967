package fsutil

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/saulvaldelvira/http-server/pkg/httpmsg"
)

// SuffixHTML is a pre-interceptor: if the request's URL doesn't name
// an existing file, it tries appending ".html" then ".php" and
// rewrites the URL to the first one that exists.
func SuffixHTML(req *httpmsg.Request) {
	if fileExists(strings.TrimPrefix(req.URL(), "/")) {
		return
	}
	for _, suffix := range []string{".html", ".php"} {
		candidate := req.URL() + suffix
		if fileExists(strings.TrimPrefix(candidate, "/")) {
			req.SetURL(candidate)
			return
		}
	}
}

// AcceptRanges is a pre-interceptor that advertises byte-range
// support on every response.
func AcceptRanges(req *httpmsg.Request) {
	req.SetHeader("Accept-Ranges", "bytes")
}

func logLine(w io.Writer, req *httpmsg.Request) {
	fmt.Fprintf(w, "%s %s %d %s\n", req.Method(), req.URL(), req.Status(), req.Status().Phrase())
}

// LogStdout is a post-interceptor that writes one access-log line per
// request to standard output.
func LogStdout(req *httpmsg.Request) {
	logLine(os.Stdout, req)
}

// LogFile returns a post-interceptor that appends one access-log line
// per request to filename, creating it if necessary. Writes are
// serialized with a mutex since interceptors run on worker goroutines.
func LogFile(filename string) (func(req *httpmsg.Request), error) {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("fsutil: opening log file %s: %w", filename, err)
	}

	var mu sync.Mutex
	return func(req *httpmsg.Request) {
		mu.Lock()
		defer mu.Unlock()
		logLine(file, req)
	}, nil
}
