package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for CLI usage.
var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidDebounce    = errors.New("invalid debounce interval")
	ErrTooManyArgs        = errors.New("too many arguments")
)

const defaultDebounce = 300 * time.Millisecond

// cliFlags holds every flag of the nb2md command.
type cliFlags struct {
	config  string
	output  string
	workers int

	quiet   bool
	verbose bool
	noColor bool

	allUnderscores bool
	rewritePaths   bool
	metricsFile    string
	logFormat      string

	watch    bool
	debounce time.Duration

	version bool
	help    bool
}

// newFlagSet binds f to a FlagSet. Usage output is handled by the caller.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("nb2md", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.output, "output", "o", "", "output directory (last element is created)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show a result table and debug logs")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")

	fs.BoolVar(&f.allUnderscores, "all-underscores", false, "replace every underscore in titles")
	fs.BoolVar(&f.rewritePaths, "rewrite-paths", false, "rewrite relative asset paths for the output directory")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after each run")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")

	fs.BoolVar(&f.watch, "watch", false, "re-convert when notebooks change")
	fs.DurationVar(&f.debounce, "debounce", defaultDebounce, "quiet period before a watch re-run")

	fs.BoolVar(&f.version, "version", false, "show version")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
	return fs
}

// parseFlags parses args (without the program name) and returns the flags
// and positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := newFlagSet(f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if f.help || f.version {
		return f, fs.Args(), nil
	}

	if err := f.validate(fs.Args()); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func (f *cliFlags) validate(positional []string) error {
	if f.workers < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkerCount, f.workers)
	}
	if f.watch && f.debounce <= 0 {
		return fmt.Errorf("%w: %v (must be > 0)", ErrInvalidDebounce, f.debounce)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one notebooks directory, got %d", ErrTooManyArgs, len(positional))
	}
	return nil
}
