package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/saulvaldelvira/http-server/pkg/urlenc"
)

var sizeUnits = [...]string{"bytes", "KiB", "MiB", "GiB"}

// sizeHuman renders size using the same 1024-based scale as the
// original implementation: whole numbers for bytes, KiB and MiB, and
// 1 decimal place only at the largest unit (GiB), and only when
// there's something after the decimal point.
func sizeHuman(size int64) string {
	i := 0
	s := float64(size)
	for i < len(sizeUnits)-1 && s >= 1024.0 {
		s /= 1024.0
		i++
	}
	s = float64(int64(s*10+0.5)) / 10
	decimals := 0
	if s != float64(int64(s)) && i == len(sizeUnits)-1 {
		decimals = 1
	}
	return fmt.Sprintf("%.*f %s", decimals, s, sizeUnits[i])
}

// encodePath percent-encodes every path segment of path (relative to
// nothing in particular; callers pass an already cwd-relative path),
// appending "?hidden=false" when showHidden is false.
func encodePath(path string, showHidden bool) string {
	path = filepath.ToSlash(path)
	parts := strings.Split(path, "/")
	var b strings.Builder
	empty := true
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(urlenc.Encode(part))
		empty = false
	}
	if empty {
		b.WriteByte('/')
	}
	if !showHidden {
		b.WriteString("?hidden=false")
	}
	return b.String()
}

// IndexOf renders an HTML directory listing of dirname (an absolute
// or cwd-relative filesystem path), one row per entry with its kind
// icon, a link, and a human-readable size, plus a ".." row linking to
// the parent directory when it's still under the working directory.
func IndexOf(dirname string, showHidden bool) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<html><head><meta charset="UTF-8" />` +
		`<style>body{text-align:left;}` +
		`td{padding-right:1em;}` +
		`td:first-child{padding-right:0.2em;}</style></head><body>`)

	title := strings.TrimPrefix(dirname, cwd)
	if title == "" {
		title = "/"
	}
	fmt.Fprintf(&b, "<h1>Index of / %s</h1>", title)

	entries, err := os.ReadDir(dirname)
	if err != nil {
		return "", err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	b.WriteString(`<table><tr><th>Name</th><th>Size</th></tr>`)

	if parent := filepath.Dir(dirname); strings.HasPrefix(parent, cwd) {
		rel := strings.TrimPrefix(parent, cwd)
		fmt.Fprintf(&b, `<tr><td>&larr;</td><td><a href="%s">..</a></td></tr>`, encodePath(rel, showHidden))
	}

	for _, entry := range entries {
		name := entry.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return "", err
		}

		icon := "&#128456;"
		if entry.IsDir() {
			icon = "&#128447;"
		}

		full := filepath.Join(dirname, name)
		rel := strings.TrimPrefix(full, cwd)
		encodedPath := encodePath(rel, showHidden)

		fmt.Fprintf(&b, `<tr><td>%s</td><td><a href="%s">%s</a></td>`, icon, encodedPath, name)
		fmt.Fprintf(&b, `<td>%s</td>`, sizeHuman(info.Size()))
		b.WriteString(`</tr>`)
	}

	b.WriteString(`</table></body></html>`)
	return b.String(), nil
}
