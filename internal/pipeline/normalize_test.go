package pipeline

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNormalize - Presentation removal
// ---------------------------------------------------------------------------

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "style element removed with content",
			html:         `<div><style>.x { color: red; }</style><p>kept</p></div>`,
			wantContains: []string{"<p>kept</p>"},
			wantExcludes: []string{"<style", "color: red"},
		},
		{
			name:         "style attribute removed",
			html:         `<p style="margin:0">text</p>`,
			wantContains: []string{"<p>text</p>"},
			wantExcludes: []string{"style="},
		},
		{
			name:         "comments removed",
			html:         `<p>a<!-- hidden -->b</p>`,
			wantContains: []string{"<p>ab</p>"},
			wantExcludes: []string{"hidden"},
		},
		{
			name:         "redundant script attributes",
			html:         `<div><script type="text/javascript" language="javascript">run()</script></div>`,
			wantContains: []string{"<script>run()</script>"},
		},
		{
			name:         "non-default script type kept",
			html:         `<div><script type="module">run()</script></div>`,
			wantContains: []string{`type="module"`},
		},
		{
			name:         "redundant form and input attributes",
			html:         `<form method="get"><input type="text" name="q"/></form>`,
			wantContains: []string{"<form>", `<input name="q"/>`},
		},
		{
			name:         "redundant area shape",
			html:         `<map name="m"><area shape="rect" href="x"/></map>`,
			wantContains: []string{`<area href="x"/>`},
		},
		{
			name:         "other attributes kept",
			html:         `<a href="x" class="link" style="color:red">l</a>`,
			wantContains: []string{`href="x"`, `class="link"`},
			wantExcludes: []string{"color"},
		},
		{
			name:         "whitespace collapsed",
			html:         "<p>one   two\n\n\tthree</p>",
			wantContains: []string{"<p>one two three</p>"},
		},
		{
			name:         "block edges trimmed",
			html:         "<p>\n  text\n</p>",
			wantContains: []string{"<p>text</p>"},
		},
		{
			name:         "whitespace between blocks dropped",
			html:         "<div>\n  <p>a</p>\n  <p>b</p>\n</div>",
			wantContains: []string{"<div><p>a</p><p>b</p></div>"},
		},
		{
			name:         "inline spacing kept",
			html:         "<p><b>a</b> <i>b</i></p>",
			wantContains: []string{"<b>a</b> <i>b</i>"},
		},
		{
			name:         "pre content verbatim",
			html:         "<pre><code>def f():\n    return  1\n</code></pre>",
			wantContains: []string{"def f():\n    return  1\n"},
		},
		{
			name:         "non-breaking space kept",
			html:         "<p>a&nbsp;&nbsp;b</p>",
			wantContains: []string{"a&nbsp;&nbsp;b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Normalize(tt.html)
			if err != nil {
				t.Fatalf("Normalize() unexpected error: %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Normalize() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("Normalize() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestNormalize_NoStyleLeaks(t *testing.T) {
	t.Parallel()

	// Shapes notebook HTML outputs commonly take: pandas tables with scoped
	// styles, styled spans, stray style blocks outside any container.
	input := `<style scoped>
    .dataframe tbody tr th { vertical-align: top; }
</style>
<div class="cell"><table class="dataframe" border="1" style="width:100%">
  <thead><tr style="text-align: right;"><th></th><th>a</th></tr></thead>
  <tbody><tr><th>0</th><td style="color:red">1</td></tr></tbody>
</table></div>
<STYLE>p { margin: 0 }</STYLE><p STYLE="x">end</p>`

	got, err := Normalize(input)
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}

	lower := strings.ToLower(got)
	for _, leak := range []string{"<style", "style=", "vertical-align", "margin"} {
		if strings.Contains(lower, leak) {
			t.Errorf("Normalize() leaked %q: %q", leak, got)
		}
	}
}

func TestNormalize_PreservesTableLayout(t *testing.T) {
	t.Parallel()

	input := `<table><thead><tr><th>h1</th><th>h2</th></tr></thead>
<tbody><tr><td>a</td><td>b</td></tr><tr><td>c</td><td>d</td></tr></tbody></table>`

	got, err := Normalize(input)
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}

	if n := strings.Count(got, "<tr>"); n != 3 {
		t.Errorf("rows = %d, want 3 in %q", n, got)
	}
	if n := strings.Count(got, "<td>"); n != 4 {
		t.Errorf("cells = %d, want 4 in %q", n, got)
	}
	if n := strings.Count(got, "<th>"); n != 2 {
		t.Errorf("header cells = %d, want 2 in %q", n, got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	input := "<div>\n<p style=\"x\">a  <b>b</b></p><!-- c --><pre> keep  this </pre></div>"

	once, err := Normalize(input)
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}
	twice, err := Normalize(once)
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}
	if once != twice {
		t.Errorf("Normalize() not idempotent:\n once: %q\ntwice: %q", once, twice)
	}
}

func TestNormalize_Empty(t *testing.T) {
	t.Parallel()

	got, err := Normalize("")
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty", got)
	}
}
