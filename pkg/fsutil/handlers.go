package fsutil

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/saulvaldelvira/http-server/pkg/httpmsg"
	"github.com/saulvaldelvira/http-server/pkg/mimetype"
)

func itoa(n uint64) string { return strconv.FormatUint(n, 10) }

func rangeHeaderValue(rng ByteRange, length uint64) string {
	return fmt.Sprintf("bytes %d-%d/%d", rng.Start, rng.End-1, length)
}

func fileExists(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

func dirExists(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.IsDir()
}

// showHidden reports whether a directory listing should include
// dotfiles: true unless the request explicitly asked for
// "?hidden=false".
func showHidden(req *httpmsg.Request) bool {
	v, ok := req.Param("hidden")
	if !ok {
		return true
	}
	return v != "false"
}

// headHeaders stages the response headers (and status, on error or
// range handling) a GET/HEAD of req's filename would produce, and
// returns the byte range to serve if the client sent a satisfiable
// Range header.
func headHeaders(req *httpmsg.Request) (*ByteRange, error) {
	filename, err := req.Filename()
	if err != nil {
		return nil, err
	}

	if dirExists(filename) {
		req.SetHeader("Content-Type", "text/html")
		return nil, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		status := httpmsg.StatusNotFound
		if os.IsPermission(err) {
			status = httpmsg.StatusForbidden
		}
		req.SetStatus(status)
		return nil, nil
	}
	defer file.Close()

	if mt, err := mimetype.FromFilename(filename); err == nil {
		req.SetHeader("Content-Type", mt)
	}

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	length := uint64(info.Size())
	req.SetHeader("Content-Length", itoa(length))

	rangeHeader, ok := req.Header("Range")
	if !ok {
		return nil, nil
	}

	rng, err := ParseRange(rangeHeader, length)
	if err != nil {
		return nil, err
	}

	if rng.End > length || rng.End <= rng.Start {
		req.SetStatus(httpmsg.StatusRangeNotSatisfiable)
		return nil, nil
	}

	req.SetStatus(httpmsg.StatusPartialContent)
	req.SetHeader("Content-Length", itoa(rng.End-rng.Start))
	req.SetHeader("Content-Range", rangeHeaderValue(rng, length))
	return &rng, nil
}

// CatHandler serves req.Filename(): the file's bytes (optionally
// ranged), or an HTML directory listing, or an error page for a
// status headHeaders already staged.
func CatHandler(req *httpmsg.Request) error {
	rng, err := headHeaders(req)
	if err != nil {
		return err
	}
	if req.IsHTTPErr() {
		return req.RespondErrorPage()
	}

	filename, err := req.Filename()
	if err != nil {
		return err
	}
	if dirExists(filename) {
		page, err := IndexOf(filename, showHidden(req))
		if err != nil {
			return err
		}
		return req.RespondStr(page)
	}

	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if rng != nil {
		if _, err := file.Seek(int64(rng.Start), io.SeekStart); err != nil {
			return err
		}
		return req.RespondReader(io.LimitReader(file, int64(rng.End-rng.Start)))
	}
	return req.RespondReader(file)
}

// HeadHandler mirrors the headers CatHandler would produce, without a
// body.
func HeadHandler(req *httpmsg.Request) error {
	if _, err := headHeaders(req); err != nil {
		return err
	}

	filename, err := req.Filename()
	if err != nil {
		return err
	}

	var length int
	switch {
	case req.IsHTTPErr():
		length = len(req.ErrorPage())
	case dirExists(filename):
		page, err := IndexOf(filename, showHidden(req))
		if err != nil {
			return err
		}
		length = len(page)
	}

	if length > 0 {
		req.SetHeader("Content-Length", itoa(uint64(length)))
	}
	return req.Respond()
}

// PostHandler writes the request body to req.Filename(), creating or
// truncating it.
func PostHandler(req *httpmsg.Request) error {
	filename, err := req.Filename()
	if err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		if os.IsPermission(err) {
			return req.Forbidden()
		}
		return req.NotFound()
	}
	defer file.Close()

	if err := req.ReadBody(file); err != nil {
		return err
	}
	return req.Ok()
}

// DeleteHandler removes req.Filename().
func DeleteHandler(req *httpmsg.Request) error {
	filename, err := req.Filename()
	if err != nil {
		return err
	}

	err = os.Remove(filename)
	switch {
	case err == nil:
		return req.Ok()
	case os.IsPermission(err):
		return req.Forbidden()
	default:
		return req.NotFound()
	}
}

// RootHandler rewrites "/" to "/index.html" when that file exists,
// then serves it (or the directory listing) via CatHandler.
func RootHandler(req *httpmsg.Request) error {
	if fileExists("index.html") {
		req.SetURL("/index.html")
	}
	return CatHandler(req)
}

// Redirect returns a handler that responds 308 Permanent Redirect
// pointing at uri, with an empty body.
func Redirect(uri string) func(req *httpmsg.Request) error {
	return func(req *httpmsg.Request) error {
		req.SetHeader("Location", uri)
		req.SetHeader("Content-Length", "0")
		return req.SetStatus(httpmsg.StatusPermanentRedirect).Respond()
	}
}
