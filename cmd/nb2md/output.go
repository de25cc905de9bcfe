package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	nb2md "github.com/alnah/go-nb2md"
	"github.com/alnah/go-nb2md/internal/config"
	"github.com/alnah/go-nb2md/internal/hints"
)

// printer writes human-facing results. Successes go to stdout, failures
// with hints to stderr.
type printer struct {
	stdout  io.Writer
	stderr  io.Writer
	quiet   bool
	verbose bool
	ok      func(a ...any) string
	fail    func(a ...any) string
	note    func(a ...any) string
}

func newPrinter(env *Environment, quiet, verbose, noColor bool) *printer {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	if noColor {
		green.DisableColor()
		red.DisableColor()
		yellow.DisableColor()
	}

	return &printer{
		stdout:  env.Stdout,
		stderr:  env.Stderr,
		quiet:   quiet,
		verbose: verbose,
		ok:      green.SprintFunc(),
		fail:    red.SprintFunc(),
		note:    yellow.SprintFunc(),
	}
}

// printReport prints one line per notebook (or a table in verbose mode),
// then a summary. Failures are always printed.
func (p *printer) printReport(r *nb2md.Report, sourceDir string) {
	if len(r.Results) == 0 {
		if !p.quiet {
			fmt.Fprintf(p.stdout, "%s%s\n", p.note("No notebooks found"), hints.ForNoNotebooks(sourceDir))
		}
		return
	}

	for _, res := range r.Results {
		if res.Err != nil {
			fmt.Fprintf(p.stderr, "%s %s: %v%s\n", p.fail("FAILED"), res.Input, res.Err, resultHint(res.Err))
			continue
		}
		if !p.quiet && !p.verbose {
			fmt.Fprintf(p.stdout, "%s %s\n", p.ok("Created"), res.Output)
		}
	}

	if p.quiet {
		return
	}
	if p.verbose {
		p.printTable(r)
	}
	fmt.Fprintf(p.stdout, "\n%d succeeded, %d failed (%v)\n",
		r.Succeeded(), r.Failed(), r.Duration.Round(time.Millisecond))
}

func (p *printer) printTable(r *nb2md.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(p.stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Notebook", "Output", "Status", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignRight},
	})

	for _, res := range r.Results {
		status := "ok"
		if res.Err != nil {
			status = failureStatus(res.Err)
		}
		t.AppendRow(table.Row{res.Input, res.Output, status, res.Duration.Round(time.Millisecond).String()})
	}
	t.AppendFooter(table.Row{"Run " + r.RunID, "", "", r.Duration.Round(time.Millisecond).String()})
	t.Render()
}

// printError prints a run-level error with a hint.
func (p *printer) printError(err error, outputDir string) {
	fmt.Fprintf(p.stderr, "%s %v%s\n", p.fail("error:"), err, runHint(err, outputDir))
}

func failureStatus(err error) string {
	switch {
	case errors.Is(err, nb2md.ErrMalformedNotebook):
		return "malformed"
	case errors.Is(err, nb2md.ErrWrite):
		return "write failed"
	case errors.Is(err, nb2md.ErrNormalization):
		return "normalization failed"
	default:
		return "failed"
	}
}

// resultHint returns a hint for a per-file error, or "".
func resultHint(err error) string {
	if errors.Is(err, nb2md.ErrMalformedNotebook) {
		return hints.ForMalformedNotebook()
	}
	return ""
}

// runHint returns a hint for a run-level error, or "".
func runHint(err error, outputDir string) string {
	switch {
	case errors.Is(err, nb2md.ErrOutputDir):
		return hints.ForOutputDirectory(outputDir)
	case errors.Is(err, nb2md.ErrSourceDir):
		return hints.ForSourceDirectory()
	}
	return ""
}

// configHint returns a hint for config loading errors, or "".
func configHint(err error, name string) string {
	if errors.Is(err, config.ErrConfigNotFound) {
		return hints.ForConfigNotFound(config.SearchPaths(name))
	}
	return ""
}
