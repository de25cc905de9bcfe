package nb2md

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-nb2md/internal/fileutil"
	"github.com/alnah/go-nb2md/internal/logfields"
	"github.com/alnah/go-nb2md/internal/metrics"
)

// DiscoverNotebooks lists the .ipynb files directly inside dir, sorted by
// name. Subdirectories are not walked. A missing dir yields no files and no
// error; any other read failure is ErrSourceDir.
func DiscoverNotebooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceDir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !fileutil.IsNotebook(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// ConvertDir converts every notebook in sourceDir into a Markdown file in
// outputDir.
//
// Per-file failures (malformed notebooks, write errors) are recorded in the
// Report and do not stop the run. The returned error is non-nil only for
// faults that make the run meaningless: an unreadable sourceDir, an
// outputDir that cannot be created, or a cancelled ctx. On cancellation the
// Report is still returned, with unprocessed files marked by ctx.Err().
//
// A missing sourceDir is a valid empty run: no files, no error, and
// outputDir is left untouched.
func ConvertDir(ctx context.Context, sourceDir, outputDir string, opts ...Option) (*Report, error) {
	o := newOptions(opts)
	start := time.Now()
	report := &Report{RunID: uuid.NewString()}
	logger := o.logger.With(logfields.RunID(report.RunID))

	files, err := DiscoverNotebooks(sourceDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Info("no notebooks found", logfields.Dir(sourceDir))
		report.Duration = time.Since(start)
		return report, nil
	}

	if err := EnsureDir(outputDir); err != nil {
		return nil, err
	}

	workers := min(ResolvePoolSize(o.workers), len(files))
	o.recorder.SetWorkers(workers)
	logger.Info("converting notebooks",
		logfields.Dir(sourceDir),
		logfields.Output(outputDir),
		logfields.Count(len(files)),
		logfields.Workers(workers),
	)

	pool := newConverterPool(workers, o)
	report.Results = convertBatch(ctx, pool, files, outputDir, logger, o.recorder)
	report.Duration = time.Since(start)
	o.recorder.ObserveRunDuration(report.Duration)

	logger.Info("conversion finished",
		slog.Int("succeeded", report.Succeeded()),
		slog.Int("failed", report.Failed()),
		logfields.Duration(report.Duration),
	)

	return report, ctx.Err()
}

// convertBatch processes files concurrently. Results keep the order of files.
func convertBatch(ctx context.Context, pool *ConverterPool, files []string, outputDir string, logger *slog.Logger, rec metrics.Recorder) []FileResult {
	results := make([]FileResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < pool.Size(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = FileResult{Input: files[idx], Err: ctx.Err()}
				} else {
					results[idx] = convertFile(ctx, conv, files[idx], outputDir)
				}
				record(logger, rec, results[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile reads, converts and emits a single notebook.
func convertFile(ctx context.Context, conv *Converter, path, outputDir string) FileResult {
	start := time.Now()
	result := FileResult{Input: path}

	data, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %s: %v", ErrReadNotebook, path, err)
		result.Duration = time.Since(start)
		return result
	}

	doc, err := conv.Convert(ctx, Input{
		Name:      path,
		Notebook:  data,
		SourceDir: filepath.Dir(path),
		OutputDir: outputDir,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	emitStart := time.Now()
	result.Output, result.Err = Emit(outputDir, path, doc)
	conv.observe(StageEmit, emitStart)

	result.Duration = time.Since(start)
	return result
}

// record logs one result and updates metrics.
func record(logger *slog.Logger, rec metrics.Recorder, r FileResult) {
	rec.ObserveFileDuration(r.Duration)
	outcome := outcomeFor(r.Err)
	rec.IncFileOutcome(outcome)

	switch {
	case r.Err == nil:
		logger.Debug("converted notebook",
			logfields.File(r.Input), logfields.Output(r.Output), logfields.Duration(r.Duration))
	case outcome == metrics.OutcomeCanceled:
		logger.Debug("skipped notebook", logfields.File(r.Input), logfields.Error(r.Err))
	case outcome == metrics.OutcomeMalformed:
		logger.Warn("skipping malformed notebook", logfields.File(r.Input), logfields.Error(r.Err))
	case errors.Is(r.Err, ErrNormalization):
		var ne *NormalizationError
		stage := ""
		if errors.As(r.Err, &ne) {
			stage = ne.Stage
		}
		logger.Error("normalization defect",
			logfields.File(r.Input), logfields.Stage(stage), logfields.Error(r.Err))
	default:
		logger.Error("notebook conversion failed", logfields.File(r.Input), logfields.Error(r.Err))
	}
}

func outcomeFor(err error) metrics.Outcome {
	switch {
	case err == nil:
		return metrics.OutcomeConverted
	case errors.Is(err, ErrMalformedNotebook):
		return metrics.OutcomeMalformed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeFailed
	}
}
