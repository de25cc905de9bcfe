package pipeline

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteAssetPaths re-roots relative image and link references so they keep
// pointing at the same files once the document moves from sourceDir to
// outputDir. When both directories resolve to the same place, or either is
// empty, the HTML is returned unchanged.
//
// Rewrites:
//   - img[src]: relative paths to images
//   - a[href]: relative file paths (not anchors, not URLs)
//
// Leaves alone:
//   - URLs with a scheme (http, https, file, data, attachment, ...)
//   - protocol-relative URLs, anchors and absolute paths
//   - srcset, CSS url() and script[src]
func RewriteAssetPaths(htmlContent, sourceDir, outputDir string) (string, error) {
	if sourceDir == "" || outputDir == "" {
		return htmlContent, nil
	}

	prefix, err := relativePrefix(sourceDir, outputDir)
	if err != nil {
		return "", err
	}
	if prefix == "." {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, prefix)

	return renderHTML(doc, isFragment)
}

// relativePrefix returns the slash-separated path leading from outputDir to
// sourceDir.
func relativePrefix(sourceDir, outputDir string) (string, error) {
	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", fmt.Errorf("resolving source directory: %w", err)
	}
	absOutput, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	rel, err := filepath.Rel(absOutput, absSource)
	if err != nil {
		return "", fmt.Errorf("relating %s to %s: %w", sourceDir, outputDir, err)
	}
	return filepath.ToSlash(rel), nil
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	lower := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	appendAll(container, nodes)
	return container, true, nil
}

// renderHTML renders the document back to string.
// Fragments render their children only, without an <html><body> wrapper.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, prefix string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", prefix)
		case atom.A:
			rewriteAttr(n, "href", prefix)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, prefix)
	}
}

func rewriteAttr(n *html.Node, attrName, prefix string) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}
		n.Attr[i].Val = path.Join(prefix, attr.Val)
	}
}

// isRelativePath returns true if the reference is a relative file path.
func isRelativePath(ref string) bool {
	if ref == "" ||
		strings.HasPrefix(ref, "#") ||
		strings.HasPrefix(ref, "//") ||
		strings.HasPrefix(ref, "/") ||
		filepath.IsAbs(ref) {
		return false
	}

	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == ""
}
