package nb2md

import (
	"os"
	"path/filepath"
	"testing"
)

// myNotebook is a markdown cell "# Hello" and a code cell print("x") whose
// stream output is "x\n".
const myNotebook = `{
  "cells": [
    {"cell_type": "markdown", "metadata": {}, "source": ["# Hello"]},
    {
      "cell_type": "code",
      "execution_count": 1,
      "metadata": {},
      "source": ["print(\"x\")"],
      "outputs": [{"output_type": "stream", "name": "stdout", "text": ["x\n"]}]
    }
  ],
  "metadata": {"kernelspec": {"name": "python3", "language": "python"}},
  "nbformat": 4,
  "nbformat_minor": 5
}`

// styledNotebook carries CSS both as a style block and as inline attributes
// inside a markdown cell and an HTML output.
const styledNotebook = `{
  "cells": [
    {"cell_type": "markdown", "metadata": {}, "source": "<style>.x { color: red; }</style>\n\n<p style=\"font-size: 12px\">Styled</p>"},
    {
      "cell_type": "code",
      "metadata": {},
      "source": "df",
      "outputs": [{
        "output_type": "execute_result",
        "execution_count": 1,
        "metadata": {},
        "data": {"text/html": "<style scoped>.dataframe tbody tr th { vertical-align: top; }</style><table class=\"dataframe\" style=\"border: 1px\"><thead><tr><th>a</th><th>b</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>"}
      }]
    }
  ],
  "metadata": {},
  "nbformat": 4,
  "nbformat_minor": 5
}`

// writeFile creates dir/name with content, failing the test on error.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: writing %s: %v", path, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
