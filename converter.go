package nb2md

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-nb2md/internal/notebook"
	"github.com/alnah/go-nb2md/internal/pipeline"
)

// Stage names used for metrics labels and log records.
const (
	StageParse     = "parse"
	StageRender    = "render"
	StageRewrite   = "rewrite"
	StageNormalize = "normalize"
	StageMarkdown  = "markdown"
	StageEmit      = "emit"
)

// Converter runs the notebook-to-Markdown pipeline for one file at a time.
// A Converter owns its renderer and Markdown converter; give each goroutine
// its own (see ConverterPool).
type Converter struct {
	opts     options
	renderer *pipeline.Renderer
	markdown *pipeline.MarkdownConverter
}

// NewConverter creates a Converter. WithWorkers and WithLogger have no
// effect here; they configure ConvertDir.
func NewConverter(opts ...Option) *Converter {
	return newConverter(newOptions(opts))
}

func newConverter(o options) *Converter {
	return &Converter{
		opts:     o,
		renderer: pipeline.NewRenderer(),
		markdown: pipeline.NewMarkdownConverter(),
	}
}

// Convert parses input.Notebook, renders it to HTML, normalizes the HTML and
// converts it to Markdown. The title is derived from input.Name.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &ConversionError{Path: input.Name, Err: fmt.Errorf("internal error: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	nb, err := notebook.Parse(input.Notebook)
	c.observe(StageParse, start)
	if err != nil {
		return nil, &MalformedNotebookError{Path: input.Name, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	htmlContent, err := c.renderer.Render(nb)
	c.observe(StageRender, start)
	if err != nil {
		return nil, &NormalizationError{Path: input.Name, Stage: StageRender, Err: err}
	}

	if c.opts.rewritePaths && input.SourceDir != "" && input.OutputDir != "" {
		start = time.Now()
		htmlContent, err = pipeline.RewriteAssetPaths(htmlContent, input.SourceDir, input.OutputDir)
		c.observe(StageRewrite, start)
		if err != nil {
			return nil, &NormalizationError{Path: input.Name, Stage: StageRewrite, Err: err}
		}
	}

	start = time.Now()
	htmlContent, err = pipeline.Normalize(htmlContent)
	c.observe(StageNormalize, start)
	if err != nil {
		return nil, &NormalizationError{Path: input.Name, Stage: StageNormalize, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	body, err := c.markdown.ToMarkdown(ctx, htmlContent)
	c.observe(StageMarkdown, start)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ConversionError{Path: input.Name, Err: err}
	}

	return &Document{
		Title: c.opts.titles.Derive(input.Name),
		Body:  body,
	}, nil
}

func (c *Converter) observe(stage string, start time.Time) {
	c.opts.recorder.ObserveStageDuration(stage, time.Since(start))
}
