package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNormalization indicates the HTML could not be parsed or serialized
// during normalization.
var ErrNormalization = errors.New("HTML normalization failed")

// Normalize strips presentation from an HTML document before Markdown
// conversion. It removes <style> elements, style attributes, comments and
// attributes that only restate the HTML default, then collapses whitespace
// outside preformatted content. Returns the normalized body content.
//
// Tag nesting and table layout are preserved.
func Normalize(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNormalization, err)
	}

	// html.Parse hoists stray <style> into <head>; cleaning the whole document
	// keeps it out of the result either way.
	cleanNode(doc, false)

	body := findBody(doc)
	if body == nil {
		return "", nil
	}

	var buf strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("%w: %v", ErrNormalization, err)
		}
	}
	return buf.String(), nil
}

// cleanNode removes unwanted nodes and attributes below n. preserve is true
// inside elements whose whitespace is significant.
func cleanNode(n *html.Node, preserve bool) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling

		switch c.Type {
		case html.CommentNode:
			n.RemoveChild(c)

		case html.ElementNode:
			if c.DataAtom == atom.Style {
				n.RemoveChild(c)
				break
			}
			cleanAttrs(c)
			cleanNode(c, preserve || preservesWhitespace(c.DataAtom))

		case html.TextNode:
			if preserve {
				break
			}
			c.Data = collapseWhitespace(c.Data)
			if c.Data == "" || (c.Data == " " && nextToBlock(c)) {
				n.RemoveChild(c)
			}

		default:
			cleanNode(c, preserve)
		}

		c = next
	}

	if !preserve && isBlock(n.DataAtom) {
		trimEdges(n)
	}
}

// cleanAttrs drops style attributes and attributes equal to their default.
func cleanAttrs(n *html.Node) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && redundantAttr(n.DataAtom, a) {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

func redundantAttr(tag atom.Atom, a html.Attribute) bool {
	key := strings.ToLower(a.Key)
	val := strings.ToLower(strings.TrimSpace(a.Val))

	if key == "style" {
		return true
	}

	switch tag {
	case atom.Script:
		return (key == "type" && val == "text/javascript") || key == "language"
	case atom.Style, atom.Link:
		return (key == "type" && val == "text/css") || (key == "media" && val == "all")
	case atom.Form:
		return key == "method" && val == "get"
	case atom.Input:
		return key == "type" && val == "text"
	case atom.Area:
		return key == "shape" && val == "rect"
	}
	return false
}

// collapseWhitespace replaces every run of HTML whitespace with one space.
// Non-breaking spaces are content and are kept.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for i := 0; i < len(s); i++ {
		if isHTMLSpace(s[i]) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		b.WriteByte(s[i])
		inSpace = false
	}
	return b.String()
}

// trimEdges removes leading whitespace from the first text child of a block
// and trailing whitespace from its last one.
func trimEdges(n *html.Node) {
	if first := n.FirstChild; first != nil && first.Type == html.TextNode {
		first.Data = strings.TrimLeft(first.Data, " ")
		if first.Data == "" {
			n.RemoveChild(first)
		}
	}
	if last := n.LastChild; last != nil && last.Type == html.TextNode {
		last.Data = strings.TrimRight(last.Data, " ")
		if last.Data == "" {
			n.RemoveChild(last)
		}
	}
}

// nextToBlock reports whether a whitespace-only text node touches a block
// boundary, where it has no rendering effect.
func nextToBlock(n *html.Node) bool {
	if prev := n.PrevSibling; prev == nil {
		if n.Parent != nil && isBlock(n.Parent.DataAtom) {
			return true
		}
	} else if prev.Type == html.ElementNode && isBlock(prev.DataAtom) {
		return true
	}

	if next := n.NextSibling; next == nil {
		if n.Parent != nil && isBlock(n.Parent.DataAtom) {
			return true
		}
	} else if next.Type == html.ElementNode && isBlock(next.DataAtom) {
		return true
	}
	return false
}

func isHTMLSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func preservesWhitespace(a atom.Atom) bool {
	switch a {
	case atom.Pre, atom.Code, atom.Textarea, atom.Script:
		return true
	}
	return false
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.Html, atom.Head, atom.Body,
		atom.Div, atom.P, atom.Pre, atom.Blockquote, atom.Hr, atom.Br,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Ul, atom.Ol, atom.Li, atom.Dl, atom.Dt, atom.Dd,
		atom.Table, atom.Caption, atom.Colgroup, atom.Col,
		atom.Thead, atom.Tbody, atom.Tfoot, atom.Tr, atom.Td, atom.Th,
		atom.Section, atom.Article, atom.Aside, atom.Header, atom.Footer,
		atom.Nav, atom.Main, atom.Figure, atom.Figcaption,
		atom.Details, atom.Summary, atom.Form, atom.Fieldset:
		return true
	}
	return false
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}
