package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	nb2md "github.com/alnah/go-nb2md"
	"github.com/alnah/go-nb2md/internal/config"
	"github.com/alnah/go-nb2md/internal/logfields"
	"github.com/alnah/go-nb2md/internal/metrics"
)

// resolveConfig loads the config named by --config (or the defaults), then
// applies flags and the positional notebooks directory on top. CLI wins.
func resolveConfig(f *cliFlags, positional []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.config != "" {
		var err error
		cfg, err = config.LoadConfig(f.config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	mergeFlags(f, positional, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags overrides config values with flags that were set.
func mergeFlags(f *cliFlags, positional []string, cfg *config.Config) {
	if len(positional) == 1 {
		cfg.Notebooks.Dir = positional[0]
	}
	if f.output != "" {
		// Split so Validate still sees a single created folder.
		clean := filepath.Clean(f.output)
		cfg.Docs.Dir = filepath.Dir(clean)
		cfg.Docs.OutputFolder = filepath.Base(clean)
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	if f.allUnderscores {
		cfg.Titles.ReplaceAllUnderscores = true
	}
	if f.rewritePaths {
		cfg.Assets.RewritePaths = true
	}
	if f.metricsFile != "" {
		cfg.Metrics.Textfile = f.metricsFile
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}
	switch {
	case f.verbose:
		cfg.Logging.Level = "debug"
	case f.quiet:
		cfg.Logging.Level = "error"
	}
}

// session holds what a CLI invocation shares across conversion runs.
type session struct {
	env      *Environment
	cfg      *config.Config
	flags    *cliFlags
	logger   *slog.Logger
	recorder *metrics.PrometheusRecorder // nil when metrics are disabled
	out      *printer
}

func newSession(f *cliFlags, env *Environment) *session {
	s := &session{
		env:    env,
		cfg:    env.Config,
		flags:  f,
		logger: newLogger(env.Stderr, env.Config.Logging),
		out:    newPrinter(env, f.quiet, f.verbose, f.noColor),
	}
	if env.Config.Metrics.Textfile != "" {
		s.recorder = metrics.NewPrometheusRecorder(nil)
	}
	return s
}

func (s *session) sourceDir() string { return s.cfg.Notebooks.Dir }
func (s *session) outputDir() string { return s.cfg.OutputDir() }

func (s *session) options() []nb2md.Option {
	opts := []nb2md.Option{
		nb2md.WithWorkers(s.cfg.Workers),
		nb2md.WithLogger(s.logger),
		nb2md.WithTitleDeriver(nb2md.TitleDeriver{ReplaceAllUnderscores: s.cfg.Titles.ReplaceAllUnderscores}),
		nb2md.WithPathRewrite(s.cfg.Assets.RewritePaths),
	}
	if s.recorder != nil {
		opts = append(opts, nb2md.WithRecorder(s.recorder))
	}
	return opts
}

// runOnce performs one full conversion and prints its results.
func (s *session) runOnce(ctx context.Context) (*nb2md.Report, error) {
	report, err := nb2md.ConvertDir(ctx, s.sourceDir(), s.outputDir(), s.options()...)
	s.writeMetrics()

	if report != nil {
		s.out.printReport(report, s.sourceDir())
	}
	return report, err
}

// convert runs a single conversion and returns the exit code.
func (s *session) convert(ctx context.Context) int {
	report, err := s.runOnce(ctx)
	if err != nil {
		s.out.printError(err, s.outputDir())
		return exitCodeFor(err)
	}
	return exitCodeFor(report.Err())
}

// writeMetrics exports the recorder to the configured textfile. A failed
// export is logged and does not change the exit code.
func (s *session) writeMetrics() {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.WriteTextfile(s.cfg.Metrics.Textfile); err != nil {
		s.logger.Warn("metrics export failed",
			logfields.File(s.cfg.Metrics.Textfile), logfields.Error(err))
	}
}
