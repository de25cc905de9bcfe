// Package yamlutil wraps YAML encoding for configuration files and Markdown
// front matter, isolating the goccy/go-yaml dependency from callers.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// frontMatterDelimiter opens and closes a front matter block.
const frontMatterDelimiter = "---\n"

func checkDecode(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict decodes YAML into v and rejects unknown fields, so typos
// in config keys surface as errors.
func UnmarshalStrict(data []byte, v any) error {
	if err := checkDecode(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

// frontMatter is the metadata block written at the top of each document.
type frontMatter struct {
	Title string `yaml:"title"`
}

// FrontMatter renders a YAML front matter block carrying title, followed by
// one blank line:
//
//	---
//	title: My notebook
//	---
//
// Titles that need quoting in YAML are quoted, so the block always parses.
func FrontMatter(title string) (string, error) {
	body, err := Marshal(frontMatter{Title: title})
	if err != nil {
		return "", err
	}
	return frontMatterDelimiter + string(body) + frontMatterDelimiter + "\n", nil
}
