package fileutil_test

// Notes:
// - WriteFileAtomic write/close/chmod failure branches are not tested:
//   triggering disk failures mid-write is platform-specific.
// - The rename failure branch is covered by targeting an existing directory.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-nb2md/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestIsNotebook - Extension matching
// ---------------------------------------------------------------------------

func TestIsNotebook(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"analysis.ipynb", true},
		{"my_notebook.ipynb", true},
		{"a.b.ipynb", true},
		{".ipynb", false},
		{"notes.md", false},
		{"analysis.IPYNB", false},
		{"analysis.ipynb.bak", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsNotebook(tt.name); got != tt.want {
				t.Errorf("IsNotebook(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMarkdownName - Output file naming
// ---------------------------------------------------------------------------

func TestMarkdownName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"my_notebook.ipynb", "my_notebook.md"},
		{filepath.Join("notebooks", "a.b.ipynb"), "a.b.md"},
		{"README", "README.md"},
		{"ipynb.ipynb", "ipynb.md"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.MarkdownName(tt.path); got != tt.want {
				t.Errorf("MarkdownName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists - Stat helpers
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "exists.md")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file.md")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if !fileutil.DirExists(dir) {
		t.Error("DirExists(dir) = false, want true")
	}
	if fileutil.DirExists(file) {
		t.Error("DirExists(file) = true, want false")
	}
	if fileutil.DirExists(filepath.Join(dir, "missing")) {
		t.Error("DirExists(missing) = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Replace-in-place writes
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")

	if err := fileutil.WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() first write: %v", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() overwrite: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file %q left behind", e.Name())
		}
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.md")
	if err := fileutil.WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
		t.Error("WriteFileAtomic() into missing directory succeeded, want error")
	}
}

func TestWriteFileAtomic_TargetIsDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "taken.md")
	if err := os.Mkdir(target, 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	// Keep the directory non-empty so rename cannot replace it.
	if err := os.WriteFile(filepath.Join(target, "child"), []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := fileutil.WriteFileAtomic(target, []byte("x"), 0o644); err == nil {
		t.Error("WriteFileAtomic() over a directory succeeded, want error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the target directory", len(entries))
	}
}
