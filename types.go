package nb2md

import (
	"errors"
	"log/slog"
	"time"

	"github.com/alnah/go-nb2md/internal/metrics"
)

// Input is one notebook to convert.
type Input struct {
	Name      string // file name or path; drives the title and error messages
	Notebook  []byte // raw .ipynb JSON
	SourceDir string // directory holding the notebook, for relative assets
	OutputDir string // directory the Markdown is written to
}

// Document is the converted Markdown: a title for the front matter and the
// body that follows it.
type Document struct {
	Title string
	Body  string
}

// FileResult is the outcome of converting one notebook file.
type FileResult struct {
	Input    string
	Output   string // empty unless the file was written
	Err      error
	Duration time.Duration
}

// Report collects per-file results of a directory run, in discovery order.
type Report struct {
	RunID    string
	Results  []FileResult
	Duration time.Duration
}

// Succeeded returns the number of notebooks written.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of notebooks skipped because of an error.
func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Err joins every per-file error, or returns nil when all files converted.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// Option configures a Converter or a directory run.
type Option func(*options)

type options struct {
	workers      int
	logger       *slog.Logger
	recorder     metrics.Recorder
	titles       TitleDeriver
	rewritePaths bool
}

func newOptions(opts []Option) options {
	o := options{
		logger:   slog.New(slog.DiscardHandler),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWorkers sets the number of notebooks converted concurrently.
// Zero or negative selects a size from GOMAXPROCS (see ResolvePoolSize).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the structured logger. Nil keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder. Nil keeps the no-op default.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithTitleDeriver replaces the default first-underscore title rule.
func WithTitleDeriver(d TitleDeriver) Option {
	return func(o *options) {
		o.titles = d
	}
}

// WithPathRewrite makes relative image and link targets resolve from the
// output directory instead of the notebook's directory.
func WithPathRewrite(enabled bool) Option {
	return func(o *options) {
		o.rewritePaths = enabled
	}
}
