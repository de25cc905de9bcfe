package pipeline

// Notes:
// - Render output is asserted with substring checks: html.Render's attribute
//   order and escaping are stable, but whole-document golden strings would
//   couple the tests to goldmark's exact HTML.
// - Notebooks are built in Go rather than parsed from JSON so each test states
//   only the cells it cares about.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-nb2md/internal/notebook"
)

func renderString(t *testing.T, nb *notebook.Notebook) string {
	t.Helper()
	got, err := NewRenderer().Render(nb)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	return got
}

func codeCell(source string, outputs ...notebook.Output) notebook.Cell {
	return notebook.Cell{Kind: notebook.KindCode, Source: source, Outputs: outputs}
}

func bundleOutput(data notebook.MIMEBundle) notebook.Output {
	return notebook.Output{Kind: notebook.OutputDisplayData, Data: data}
}

// ---------------------------------------------------------------------------
// TestRender - Cells
// ---------------------------------------------------------------------------

func TestRender_CellOrder(t *testing.T) {
	t.Parallel()

	nb := &notebook.Notebook{
		Language: "python",
		Cells: []notebook.Cell{
			{Kind: notebook.KindMarkdown, Source: "# First"},
			codeCell("second = 2"),
			{Kind: notebook.KindRaw, Source: "third"},
		},
	}

	got := renderString(t, nb)

	first := strings.Index(got, "First")
	second := strings.Index(got, "second = 2")
	third := strings.Index(got, "third")
	if first < 0 || second < 0 || third < 0 {
		t.Fatalf("Render() missing cell content: %q", got)
	}
	if !(first < second && second < third) {
		t.Errorf("Render() cell order = %d, %d, %d, want increasing", first, second, third)
	}
}

func TestRender_CellWrappers(t *testing.T) {
	t.Parallel()

	nb := &notebook.Notebook{Cells: []notebook.Cell{
		{Kind: notebook.KindMarkdown, Source: "text"},
		codeCell("x"),
		{Kind: notebook.KindRaw, Source: "raw"},
	}}

	got := renderString(t, nb)

	for _, want := range []string{
		`<div class="notebook">`,
		`<div class="cell cell-markdown">`,
		`<div class="cell cell-code">`,
		`<div class="cell cell-raw">`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() = %q, want to contain %q", got, want)
		}
	}
}

func TestRender_EmptyCells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cell notebook.Cell
		want string
	}{
		{"empty code", codeCell(""), "<em>Empty code cell</em>"},
		{"blank markdown", notebook.Cell{Kind: notebook.KindMarkdown, Source: "  \n"}, "<em>Empty markdown cell</em>"},
		{"empty raw", notebook.Cell{Kind: notebook.KindRaw}, "<em>Empty raw cell</em>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := renderString(t, &notebook.Notebook{Cells: []notebook.Cell{tt.cell}})
			if !strings.Contains(got, tt.want) {
				t.Errorf("Render() = %q, want to contain %q", got, tt.want)
			}
		})
	}

	// A code cell with outputs but no source shows only its outputs.
	got := renderString(t, &notebook.Notebook{Cells: []notebook.Cell{
		codeCell("", notebook.Output{Kind: notebook.OutputStream, Text: "x"}),
	}})
	if strings.Contains(got, "Empty code cell") {
		t.Errorf("Render() = %q, want no empty-cell marker when outputs exist", got)
	}
}

func TestRender_CodeLanguage(t *testing.T) {
	t.Parallel()

	nb := &notebook.Notebook{
		Language: "python3",
		Cells:    []notebook.Cell{codeCell(`print("x")`)},
	}

	got := renderString(t, nb)

	want := `<pre><code class="language-python">print(&#34;x&#34;)</code></pre>`
	if !strings.Contains(got, want) {
		t.Errorf("Render() = %q, want to contain %q", got, want)
	}
}

func TestRender_CodeWithoutLanguage(t *testing.T) {
	t.Parallel()

	got := renderString(t, &notebook.Notebook{Cells: []notebook.Cell{codeCell("x = 1")}})

	if !strings.Contains(got, "<pre><code>x = 1</code></pre>") {
		t.Errorf("Render() = %q, want unannotated code block", got)
	}
}

func TestRender_MarkdownCell(t *testing.T) {
	t.Parallel()

	nb := &notebook.Notebook{Cells: []notebook.Cell{{
		Kind:   notebook.KindMarkdown,
		Source: "## Section\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n<span style=\"color:red\">inline</span>",
	}}}

	got := renderString(t, nb)

	for _, want := range []string{"<h2>Section</h2>", "<table>", "<th>a</th>", "<td>2</td>", `<span style="color:red">inline</span>`} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() = %q, want to contain %q", got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRender - Outputs
// ---------------------------------------------------------------------------

func TestRender_Outputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		output       notebook.Output
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "stream",
			output:       notebook.Output{Kind: notebook.OutputStream, Stream: "stdout", Text: "x\n"},
			wantContains: []string{`<div class="output"><pre><code>x</code></pre></div>`},
		},
		{
			name: "error traceback strips ANSI",
			output: notebook.Output{
				Kind:      notebook.OutputError,
				EName:     "ValueError",
				EValue:    "bad",
				Traceback: []string{"\x1b[0;31mValueError\x1b[0m: bad"},
			},
			wantContains: []string{"ValueError: bad"},
			wantExcludes: []string{"\x1b", "[0;31m"},
		},
		{
			name:         "error without traceback",
			output:       notebook.Output{Kind: notebook.OutputError, EName: "KeyError", EValue: "'k'"},
			wantContains: []string{"KeyError: &#39;k&#39;"},
		},
		{
			name:         "html wins over plain text",
			output:       bundleOutput(notebook.MIMEBundle{"text/html": "<b>rich</b>", "text/plain": "plain"}),
			wantContains: []string{"<b>rich</b>"},
			wantExcludes: []string{"plain"},
		},
		{
			name:         "markdown output",
			output:       bundleOutput(notebook.MIMEBundle{"text/markdown": "**bold**", "text/plain": "plain"}),
			wantContains: []string{"<strong>bold</strong>"},
		},
		{
			name:         "png image",
			output:       bundleOutput(notebook.MIMEBundle{"image/png": "iVBO\nRw0K\n", "text/plain": "<Figure>"}),
			wantContains: []string{`<img alt="output" src="data:image/png;base64,iVBORw0K"/>`},
		},
		{
			name:         "svg image encoded",
			output:       bundleOutput(notebook.MIMEBundle{"image/svg+xml": "<svg></svg>"}),
			wantContains: []string{`src="data:image/svg+xml;base64,PHN2Zz48L3N2Zz4="`},
		},
		{
			name:         "latex",
			output:       bundleOutput(notebook.MIMEBundle{"text/latex": "$x^2$"}),
			wantContains: []string{`<code class="language-latex">$x^2$</code>`},
		},
		{
			name:         "json indented",
			output:       bundleOutput(notebook.MIMEBundle{"application/json": `{"a":1}`}),
			wantContains: []string{`<code class="language-json">{` + "\n" + `  &#34;a&#34;: 1` + "\n" + `}</code>`},
		},
		{
			name:         "plain text",
			output:       notebook.Output{Kind: notebook.OutputExecuteResult, Data: notebook.MIMEBundle{"text/plain": "42"}},
			wantContains: []string{"<pre><code>42</code></pre>"},
		},
		{
			name:         "unknown media type placeholder",
			output:       bundleOutput(notebook.MIMEBundle{"application/vnd.custom+json": "{}"}),
			wantContains: []string{"<p><em>Output not rendered: application/vnd.custom+json</em></p>"},
		},
		{
			name:         "unknown output kind placeholder",
			output:       notebook.Output{Kind: "update_display_data"},
			wantContains: []string{"Output not rendered: output type update_display_data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nb := &notebook.Notebook{Cells: []notebook.Cell{codeCell("run()", tt.output)}}
			got := renderString(t, nb)

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Render() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("Render() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestRender_OutputsFollowSource(t *testing.T) {
	t.Parallel()

	nb := &notebook.Notebook{Cells: []notebook.Cell{codeCell("run()",
		notebook.Output{Kind: notebook.OutputStream, Text: "first"},
		notebook.Output{Kind: notebook.OutputStream, Text: "second"},
	)}}

	got := renderString(t, nb)

	src := strings.Index(got, "run()")
	first := strings.Index(got, "first")
	second := strings.Index(got, "second")
	if !(src < first && first < second) {
		t.Errorf("Render() output order wrong: %q", got)
	}
}

func TestRender_NilNotebook(t *testing.T) {
	t.Parallel()

	_, err := NewRenderer().Render(nil)
	if !errors.Is(err, ErrRender) {
		t.Errorf("Render(nil) error = %v, want ErrRender", err)
	}
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	nb := &notebook.Notebook{Language: "python", Cells: []notebook.Cell{
		{Kind: notebook.KindMarkdown, Source: "# T"},
		codeCell("x", bundleOutput(notebook.MIMEBundle{"b/x": "", "a/y": ""})),
	}}

	if renderString(t, nb) != renderString(t, nb) {
		t.Error("Render() is not deterministic")
	}
}
