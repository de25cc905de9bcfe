// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-nb2md/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-nb2md") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
// The output folder is created one level deep, so its parent must exist.
func ForOutputDirectory(dir string) string {
	parent := parentDir(dir)
	if parent != "" {
		if _, err := os.Stat(parent); os.IsNotExist(err) {
			return format("create " + parent + " first; only the last path element is created")
		}
	}
	return format("check the parent directory exists and is writable")
}

// ForSourceDirectory returns hints for an unreadable notebooks directory.
func ForSourceDirectory() string {
	return format("check the notebooks directory is readable, or set notebooks.dir in the config")
}

// ForMalformedNotebook returns hints for notebooks that fail to parse.
func ForMalformedNotebook() string {
	return format("open the notebook in Jupyter and save it again to repair its JSON")
}

// ForNoNotebooks returns hints when a run finds nothing to convert.
func ForNoNotebooks(dir string) string {
	return format("no .ipynb files in " + dir + "; pass the notebooks directory as an argument or set notebooks.dir")
}

func parentDir(dir string) string {
	trimmed := strings.TrimRight(dir, `/\`)
	i := strings.LastIndexAny(trimmed, `/\`)
	if i <= 0 {
		return ""
	}
	return trimmed[:i]
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
