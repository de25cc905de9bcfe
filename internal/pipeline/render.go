package pipeline

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-nb2md/internal/notebook"
)

// ErrRender indicates the notebook could not be rendered to HTML.
var ErrRender = errors.New("render failed")

// outputPriority orders rich output media types, richest first.
var outputPriority = []string{
	"text/html",
	"text/markdown",
	"image/svg+xml",
	"image/png",
	"image/jpeg",
	"image/gif",
	"text/latex",
	"application/json",
	"text/plain",
}

// ansiEscape matches terminal color and cursor sequences found in tracebacks.
var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// Renderer turns a parsed notebook into one HTML document.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GFM markdown support.
// Raw HTML inside markdown cells is passed through; the normalizer cleans it
// afterwards.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render returns the HTML form of nb. Cells appear in notebook order, each in
// its own div.cell, with outputs following their code cell.
func (r *Renderer) Render(nb *notebook.Notebook) (string, error) {
	if nb == nil {
		return "", fmt.Errorf("%w: nil notebook", ErrRender)
	}

	root := element(atom.Div, "class", "notebook")
	for i, cell := range nb.Cells {
		node, err := r.renderCell(cell, nb.Language)
		if err != nil {
			return "", fmt.Errorf("%w: cell %d: %v", ErrRender, i, err)
		}
		root.AppendChild(node)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.String(), nil
}

func (r *Renderer) renderCell(cell notebook.Cell, kernel string) (*html.Node, error) {
	div := element(atom.Div, "class", "cell cell-"+string(cell.Kind))

	if strings.TrimSpace(cell.Source) == "" && len(cell.Outputs) == 0 {
		div.AppendChild(emptyCell(cell.Kind))
		return div, nil
	}

	switch cell.Kind {
	case notebook.KindMarkdown:
		nodes, err := r.markdown(cell.Source)
		if err != nil {
			return nil, err
		}
		appendAll(div, nodes)

	case notebook.KindCode:
		if cell.Source != "" {
			div.AppendChild(codeBlock(cell.Source, cellLanguage(cell.Source, kernel)))
		}
		for _, out := range cell.Outputs {
			nodes, err := r.renderOutput(out)
			if err != nil {
				return nil, err
			}
			wrap := element(atom.Div, "class", "output")
			appendAll(wrap, nodes)
			div.AppendChild(wrap)
		}

	default:
		if cell.Source != "" {
			div.AppendChild(codeBlock(cell.Source, ""))
		}
	}

	return div, nil
}

func (r *Renderer) renderOutput(out notebook.Output) ([]*html.Node, error) {
	switch out.Kind {
	case notebook.OutputStream:
		return []*html.Node{codeBlock(out.Text, "")}, nil

	case notebook.OutputError:
		return []*html.Node{codeBlock(errorText(out), "")}, nil

	case notebook.OutputExecuteResult, notebook.OutputDisplayData:
		return r.renderBundle(out.Data)

	default:
		return []*html.Node{placeholder("output type " + string(out.Kind))}, nil
	}
}

// renderBundle renders the richest media type of a MIME bundle.
func (r *Renderer) renderBundle(bundle notebook.MIMEBundle) ([]*html.Node, error) {
	for _, mediaType := range outputPriority {
		payload, ok := bundle[mediaType]
		if !ok {
			continue
		}

		switch mediaType {
		case "text/html":
			return parseFragment(payload)
		case "text/markdown":
			return r.markdown(payload)
		case "image/svg+xml":
			encoded := base64.StdEncoding.EncodeToString([]byte(payload))
			return []*html.Node{image(mediaType, encoded)}, nil
		case "image/png", "image/jpeg", "image/gif":
			return []*html.Node{image(mediaType, strings.Join(strings.Fields(payload), ""))}, nil
		case "text/latex":
			return []*html.Node{codeBlock(payload, "latex")}, nil
		case "application/json":
			return []*html.Node{codeBlock(indentJSON(payload), "json")}, nil
		default:
			return []*html.Node{codeBlock(payload, "")}, nil
		}
	}

	if len(bundle) == 0 {
		return []*html.Node{placeholder("empty output")}, nil
	}
	return []*html.Node{placeholder(strings.Join(bundle.Types(), ", "))}, nil
}

// markdown renders markdown text through goldmark and returns the parsed
// nodes, ready to be attached to the tree.
func (r *Renderer) markdown(source string) ([]*html.Node, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return nil, err
	}
	return parseFragment(buf.String())
}

// parseFragment parses an HTML snippet in a div context.
func parseFragment(content string) ([]*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
	}
	return html.ParseFragment(strings.NewReader(content), context)
}

func errorText(out notebook.Output) string {
	msg := strings.Join(out.Traceback, "\n")
	if msg == "" {
		msg = out.EName
		if out.EValue != "" {
			msg += ": " + out.EValue
		}
	}
	return ansiEscape.ReplaceAllString(msg, "")
}

func indentJSON(payload string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(payload), "", "  "); err != nil {
		return payload
	}
	return buf.String()
}

// ---------------------------------------------------------------------------
// Node builders
// ---------------------------------------------------------------------------

// element creates an element node with attributes given as key/value pairs.
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func appendAll(parent *html.Node, nodes []*html.Node) {
	for _, n := range nodes {
		parent.AppendChild(n)
	}
}

// codeBlock builds <pre><code class="language-lang">. Trailing newlines are
// dropped so fences do not end with blank lines.
func codeBlock(source, lang string) *html.Node {
	code := element(atom.Code)
	if lang != "" {
		code.Attr = append(code.Attr, html.Attribute{Key: "class", Val: "language-" + lang})
	}
	code.AppendChild(text(strings.TrimRight(source, "\n")))

	pre := element(atom.Pre)
	pre.AppendChild(code)
	return pre
}

func image(mediaType, base64Data string) *html.Node {
	return element(atom.Img,
		"alt", "output",
		"src", "data:"+mediaType+";base64,"+base64Data,
	)
}

// emptyCell keeps a cell without content visible as its own block.
func emptyCell(kind notebook.CellKind) *html.Node {
	em := element(atom.Em)
	em.AppendChild(text("Empty " + string(kind) + " cell"))
	p := element(atom.P)
	p.AppendChild(em)
	return p
}

// placeholder marks an output that has no renderable representation.
func placeholder(what string) *html.Node {
	em := element(atom.Em)
	em.AppendChild(text("Output not rendered: " + what))
	p := element(atom.P)
	p.AppendChild(em)
	return p
}
