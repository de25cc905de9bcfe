package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nb2md [flags] [notebooks-dir]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Jupyter notebooks to Markdown pages with a title front matter.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  notebooks-dir    Directory of .ipynb files (default: notebooks.dir from config)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: docs/notebooks)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --all-underscores     Replace every underscore in titles, not just the first")
	fmt.Fprintln(w, "      --rewrite-paths       Rewrite relative image and link paths for the output directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "      --watch               Re-convert when notebooks change")
	fmt.Fprintln(w, "      --debounce <d>        Quiet period before re-converting (default 300ms)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Observability:")
	fmt.Fprintln(w, "      --metrics-file <path> Write Prometheus metrics after each run")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show a result table and debug logs")
	fmt.Fprintln(w, "      --no-color            Disable colored output")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 general error, 2 usage or config, 3 I/O, 4 notebook conversion")
}
