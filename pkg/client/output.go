package client

import (
	"fmt"
	"os"
	"strings"

	"github.com/saulvaldelvira/http-server/pkg/config"
	"github.com/saulvaldelvira/http-server/pkg/httpmsg"
)

// OpenOutput resolves conf.Output/conf.OutFile/conf.URL into the file
// the response body should be written to, creating it if needed.
// OutputStdout returns os.Stdout unmodified (the caller must not close
// it).
func OpenOutput(conf config.ClientConfig) (*os.File, error) {
	switch conf.Output {
	case config.OutputFile:
		f, err := os.Create(conf.OutFile)
		if err != nil {
			return nil, fmt.Errorf("client: creating output file %s: %w", conf.OutFile, err)
		}
		return f, nil

	case config.OutputFromURL:
		name := lastURLSegment(conf.URL)
		if name == "" {
			name = conf.Host
		}
		f, err := os.Create(name)
		if err != nil {
			return nil, fmt.Errorf("client: creating output file %s: %w", name, err)
		}
		return f, nil

	default:
		return os.Stdout, nil
	}
}

// lastURLSegment returns the final non-empty "/"-separated component
// of url, e.g. "/a/b/c.bin" -> "c.bin".
func lastURLSegment(url string) string {
	parts := strings.Split(url, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

// WriteBody copies resp's body to w, returning the number of bytes
// written.
func WriteBody(resp *httpmsg.Response, w *os.File) (int64, error) {
	body, err := resp.Body()
	if err != nil {
		return 0, fmt.Errorf("client: reading response body: %w", err)
	}
	n, err := w.Write(body)
	return int64(n), err
}
