package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSizeHuman(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 bytes"},
		{1023, "1023 bytes"},
		{1024, "1 KiB"},
		{1536, "2 KiB"},
		{1024 * 1024, "1 MiB"},
		{1024 * 1024 * 1024, "1 GiB"},
		{1024 * 1024 * 1024 * 3 / 2, "1.5 GiB"},
	}
	for _, tt := range tests {
		if got := sizeHuman(tt.size); got != tt.want {
			t.Errorf("sizeHuman(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestEncodePath(t *testing.T) {
	if got := encodePath("/a b/c", true); got != "/a%20b/c" {
		t.Errorf("encodePath = %q, want /a%%20b/c", got)
	}
	if got := encodePath("", true); got != "/" {
		t.Errorf("encodePath(\"\") = %q, want /", got)
	}
	if got := encodePath("/a", false); got != "/a?hidden=false" {
		t.Errorf("encodePath with hidden=false = %q", got)
	}
}

func TestIndexOfListsEntries(t *testing.T) {
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })

	if err := os.WriteFile(filepath.Join(dir, "visible.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	page, err := IndexOf(dir, true)
	if err != nil {
		t.Fatalf("IndexOf: %v", err)
	}
	if !strings.Contains(page, "visible.txt") {
		t.Fatalf("listing missing visible.txt: %q", page)
	}
	if !strings.Contains(page, ".hidden") {
		t.Fatalf("listing missing .hidden with showHidden=true: %q", page)
	}
	if !strings.Contains(page, "subdir") {
		t.Fatalf("listing missing subdir: %q", page)
	}

	page, err = IndexOf(dir, false)
	if err != nil {
		t.Fatalf("IndexOf: %v", err)
	}
	if strings.Contains(page, ".hidden") {
		t.Fatalf("listing should hide dotfiles when showHidden=false: %q", page)
	}
}
