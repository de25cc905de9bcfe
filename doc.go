// Package nb2md converts Jupyter notebooks (.ipynb) into Markdown pages with
// YAML front matter, for documentation sites that treat notebooks as prose.
//
// # Quick Start
//
// Convert every notebook in a directory:
//
//	report, err := nb2md.ConvertDir(ctx, "notebooks", "docs/notebooks")
//	if err != nil {
//	    log.Fatal(err) // source unreadable or output directory unusable
//	}
//	for _, r := range report.Results {
//	    if r.Err != nil {
//	        log.Printf("%s: %v", r.Input, r.Err)
//	    }
//	}
//
// Each notebook becomes one file named after it, for example
// my_notebook.ipynb becomes my_notebook.md:
//
//	---
//	title: My notebook
//	---
//
//	<converted Markdown body>
//
// # Conversion Pipeline
//
// Each notebook goes through these stages:
//
//  1. Parsing the notebook JSON into ordered cells and outputs
//  2. Rendering cells to HTML (Goldmark for markdown cells, language-tagged
//     code blocks, images and placeholders for outputs)
//  3. Optionally rewriting relative asset paths for the output directory
//  4. Normalizing the HTML tree (no style blocks, inline styles, comments,
//     redundant attributes or insignificant whitespace)
//  5. Converting to GitHub-flavored Markdown (fenced code, pipe tables,
//     strikethrough)
//  6. Writing the front matter and body to the output directory
//
// # Single Notebooks
//
// Use a Converter directly to convert bytes already in memory:
//
//	conv := nb2md.NewConverter()
//	doc, err := conv.Convert(ctx, nb2md.Input{
//	    Name:     "my_notebook.ipynb",
//	    Notebook: data,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path, err := nb2md.Emit("docs/notebooks", "my_notebook.ipynb", doc)
//
// A Converter is not safe for concurrent use. ConverterPool hands one to each
// goroutine.
//
// # Errors
//
// Per-file failures are typed so callers can tell input problems from
// defects:
//
//	var malformed *nb2md.MalformedNotebookError
//	switch {
//	case errors.As(err, &malformed):
//	    // not a notebook; skip it
//	case errors.Is(err, nb2md.ErrNormalization):
//	    // internal defect; report it
//	case errors.Is(err, nb2md.ErrWrite):
//	    // filesystem problem for this file only
//	}
//
// # Options
//
// ConvertDir accepts functional options:
//
//	report, err := nb2md.ConvertDir(ctx, src, out,
//	    nb2md.WithWorkers(4),
//	    nb2md.WithLogger(slog.Default()),
//	    nb2md.WithTitleDeriver(nb2md.TitleDeriver{ReplaceAllUnderscores: true}),
//	    nb2md.WithPathRewrite(true),
//	)
package nb2md
