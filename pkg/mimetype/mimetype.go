// Package mimetype maps file extensions to MIME types using a small
// fixed table, mirroring the original_source mime crate rather than
// pulling in net/http's much larger sniffing-based DB.
package mimetype

import (
	"fmt"
	"path/filepath"
	"strings"
)

var table = map[string]string{
	"txt":  "text/plain",
	"html": "text/html",
	"htm":  "text/html",
	"css":  "text/css",
	"js":   "application/javascript",
	"json": "application/json",
	"xml":  "application/xml",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"mp3":  "audio/mpeg",
	"mp4":  "video/mp4",
	"webm": "video/webm",
	"aac":  "audio/aac",
	"ogg":  "audio/ogg",
	"zip":  "application/zip",
	"gz":   "application/gzip",
	"pdf":  "application/pdf",
}

// UnknownExtensionError is returned by FromFilename/FromExtension when
// the extension has no known entry.
type UnknownExtensionError struct{ Ext string }

func (e *UnknownExtensionError) Error() string {
	return fmt.Sprintf("mimetype: unknown extension %q", e.Ext)
}

// FromExtension looks up the MIME type for a bare extension (without
// the leading dot, case-insensitive).
func FromExtension(ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if mt, ok := table[ext]; ok {
		return mt, nil
	}
	return "", &UnknownExtensionError{Ext: ext}
}

// FromFilename looks up the MIME type for a filename's extension.
func FromFilename(name string) (string, error) {
	ext := filepath.Ext(name)
	return FromExtension(ext)
}
