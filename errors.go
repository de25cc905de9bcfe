package nb2md

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrMalformedNotebook = errors.New("malformed notebook")
	ErrReadNotebook      = errors.New("failed to read notebook")
	ErrNormalization     = errors.New("HTML normalization failed")
	ErrConversion        = errors.New("markdown conversion failed")
	ErrWrite             = errors.New("failed to write markdown")

	// Directory-level faults abort the whole run.
	ErrOutputDir = errors.New("output directory unavailable")
	ErrSourceDir = errors.New("source directory unreadable")
)

// MalformedNotebookError reports input that is not a notebook document.
// The file is skipped; siblings are still converted.
type MalformedNotebookError struct {
	Path string
	Err  error
}

func (e *MalformedNotebookError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *MalformedNotebookError) Unwrap() error { return e.Err }

func (e *MalformedNotebookError) Is(target error) bool { return target == ErrMalformedNotebook }

// NormalizationError reports HTML the pipeline produced but could not
// process. It indicates a defect rather than bad input.
type NormalizationError struct {
	Path  string
	Stage string
	Err   error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *NormalizationError) Unwrap() error { return e.Err }

func (e *NormalizationError) Is(target error) bool { return target == ErrNormalization }

// ConversionError reports a failure turning normalized HTML into Markdown.
type ConversionError struct {
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// WriteError reports a filesystem failure emitting one Markdown file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrWrite, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrWrite }
