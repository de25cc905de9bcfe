package main

import (
	"errors"
	"os"

	nb2md "github.com/alnah/go-nb2md"
	"github.com/alnah/go-nb2md/internal/config"
)

// Exit codes for the nb2md CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Every notebook converted
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags or config
	ExitIO         = 3 // Unreadable source, unusable output, write failures
	ExitConversion = 4 // At least one notebook could not be converted
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped and joined errors, so callers must use
// fmt.Errorf("%w", err) or errors.Join.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Notebook conversion errors (exit 4)
	if errors.Is(err, nb2md.ErrMalformedNotebook) ||
		errors.Is(err, nb2md.ErrNormalization) ||
		errors.Is(err, nb2md.ErrConversion) {
		return ExitConversion
	}

	// I/O errors (exit 3)
	if errors.Is(err, nb2md.ErrReadNotebook) ||
		errors.Is(err, nb2md.ErrWrite) ||
		errors.Is(err, nb2md.ErrOutputDir) ||
		errors.Is(err, nb2md.ErrSourceDir) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidDebounce) ||
		errors.Is(err, ErrTooManyArgs) {
		return ExitUsage
	}

	return ExitGeneral
}
