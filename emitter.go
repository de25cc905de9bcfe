package nb2md

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-nb2md/internal/fileutil"
	"github.com/alnah/go-nb2md/internal/yamlutil"
)

const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// EnsureDir creates dir if it is missing. Only the last path element is
// created; a missing parent is an error. An existing directory is not an
// error, so concurrent callers may race safely.
func EnsureDir(dir string) error {
	err := os.Mkdir(dir, dirPermissions)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrExist) {
		if fileutil.DirExists(dir) {
			return nil
		}
		return fmt.Errorf("%w: %s exists and is not a directory", ErrOutputDir, dir)
	}
	return fmt.Errorf("%w: %v", ErrOutputDir, err)
}

// Bytes returns the file content: front matter holding the title, then the
// Markdown body.
func (d *Document) Bytes() ([]byte, error) {
	header, err := yamlutil.FrontMatter(d.Title)
	if err != nil {
		return nil, err
	}
	return []byte(header + d.Body), nil
}

// Emit writes doc into dir under the notebook's name with a .md extension,
// replacing any existing file, and returns the written path. Failures are
// reported as *WriteError.
func Emit(dir, notebookPath string, doc *Document) (string, error) {
	outPath := filepath.Join(dir, fileutil.MarkdownName(notebookPath))

	if doc == nil {
		return "", &WriteError{Path: outPath, Err: errors.New("nil document")}
	}
	if err := EnsureDir(dir); err != nil {
		return "", &WriteError{Path: outPath, Err: err}
	}

	data, err := doc.Bytes()
	if err != nil {
		return "", &WriteError{Path: outPath, Err: err}
	}
	// #nosec G306 -- Markdown is published site content
	if err := fileutil.WriteFileAtomic(outPath, data, filePermissions); err != nil {
		return "", &WriteError{Path: outPath, Err: err}
	}
	return outPath, nil
}
