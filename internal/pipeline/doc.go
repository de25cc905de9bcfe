// Package pipeline implements the notebook-to-Markdown conversion stages.
//
// Stages run in a fixed order, each one a pure string or tree transform:
//   - Render: notebook cells and outputs to an HTML document (x/net/html tree)
//   - RewriteAssetPaths: optional relocation of relative asset references
//   - Normalize: removal of styling, comments and redundant attributes,
//     whitespace collapse
//   - ToMarkdown: HTML to GitHub-flavored Markdown via html-to-markdown
//
// Front matter, file naming and directory traversal live in the root nb2md
// package. This package never touches the filesystem.
package pipeline
