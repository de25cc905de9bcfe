// Package logfields defines the structured log keys shared by the library and
// the CLI, so every record about a notebook carries the same attribute names.
package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyFile       = "file"
	KeyOutput     = "output"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyWorkers    = "workers"
	KeyCount      = "count"
	KeyDir        = "dir"
	KeyError      = "error"
)

func RunID(id string) slog.Attr    { return slog.String(KeyRunID, id) }
func File(path string) slog.Attr   { return slog.String(KeyFile, path) }
func Output(path string) slog.Attr { return slog.String(KeyOutput, path) }
func Stage(name string) slog.Attr  { return slog.String(KeyStage, name) }
func Workers(n int) slog.Attr      { return slog.Int(KeyWorkers, n) }
func Count(n int) slog.Attr        { return slog.Int(KeyCount, n) }
func Dir(path string) slog.Attr    { return slog.String(KeyDir, path) }

// Duration reports d in fractional milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
