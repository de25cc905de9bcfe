// Package fileutil provides file and path utility functions.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File extensions handled by the converter.
const (
	NotebookExt = ".ipynb"
	MarkdownExt = ".md"
)

// IsNotebook reports whether name carries the notebook extension.
// The match is case-sensitive: "a.IPYNB" is not a notebook.
func IsNotebook(name string) bool {
	return strings.HasSuffix(name, NotebookExt) && len(name) > len(NotebookExt)
}

// MarkdownName returns the Markdown file name for a notebook path:
// the base name with a trailing .ipynb replaced by .md.
//
// Examples:
//   - "my_notebook.ipynb" -> "my_notebook.md"
//   - "dir/a.b.ipynb" -> "a.b.md"
//   - "README" -> "README.md"
func MarkdownName(notebookPath string) string {
	base := filepath.Base(notebookPath)
	return strings.TrimSuffix(base, NotebookExt) + MarkdownExt
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// WriteFileAtomic writes data to path through a temporary file in the same
// directory, renamed into place once complete. Readers never observe a
// partially written file, and an existing file is replaced.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".nb2md-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
