package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// ErrMarkdownConversion indicates HTML to Markdown conversion failed.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// MarkdownConverter converts normalized HTML to GitHub-flavored Markdown.
type MarkdownConverter struct {
	conv *converter.Converter
}

// NewMarkdownConverter creates a MarkdownConverter producing ATX headings,
// fenced code blocks, pipe tables and ~~strikethrough~~. Tables without a
// header row use their first row as the header, so row counts are kept.
func NewMarkdownConverter() *MarkdownConverter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
				commonmark.WithCodeBlockFence("```"),
			),
			table.NewTablePlugin(table.WithHeaderPromotion(true)),
			strikethrough.NewStrikethroughPlugin(),
		),
	)
	return &MarkdownConverter{conv: conv}
}

// ToMarkdown converts HTML content to Markdown. The result ends with exactly
// one newline, or is empty when the HTML has no content.
// ctx is handed to the converter's render handlers and checked before and
// after the conversion; a canceled ctx discards the result.
func (c *MarkdownConverter) ToMarkdown(ctx context.Context, htmlContent string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	md, err := c.conv.ConvertString(htmlContent, converter.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	md = strings.TrimSpace(md)
	if md != "" {
		md += "\n"
	}
	return md, nil
}
