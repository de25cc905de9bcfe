// Package notebook parses Jupyter notebook documents (.ipynb) into an ordered
// cell model. It never executes code and never touches the network.
package notebook

import (
	"sort"
	"strings"
)

// CellKind is the type of a notebook cell.
type CellKind string

// Cell kinds defined by nbformat 4.
const (
	KindCode     CellKind = "code"
	KindMarkdown CellKind = "markdown"
	KindRaw      CellKind = "raw"
)

// OutputKind is the nbformat output_type of a code cell output.
type OutputKind string

// Output kinds defined by nbformat 4.
const (
	OutputStream        OutputKind = "stream"
	OutputExecuteResult OutputKind = "execute_result"
	OutputDisplayData   OutputKind = "display_data"
	OutputError         OutputKind = "error"
)

// Notebook is a parsed notebook document.
// Cells keep the exact order of the source document.
type Notebook struct {
	Cells       []Cell
	Language    string // kernel language, empty when the metadata has none
	Format      int    // nbformat
	FormatMinor int    // nbformat_minor
}

// Cell is one unit of notebook content.
// Outputs is always empty for markdown and raw cells.
type Cell struct {
	Kind           CellKind
	Source         string
	Outputs        []Output
	ExecutionCount *int
}

// Output is one rendered artifact attached to a code cell.
type Output struct {
	Kind      OutputKind
	Stream    string     // stream name for stream outputs ("stdout", "stderr")
	Text      string     // stream payload
	Data      MIMEBundle // execute_result and display_data payloads
	EName     string     // error name
	EValue    string     // error value
	Traceback []string   // error traceback lines
}

// MIMEBundle maps a media type to its payload.
// JSON media types keep their raw JSON encoding, everything else is text.
type MIMEBundle map[string]string

// Types returns the media types in the bundle, sorted.
func (b MIMEBundle) Types() []string {
	types := make([]string, 0, len(b))
	for t := range b {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// IsJSONType reports whether a media type carries a JSON document
// (application/json or any +json suffix).
func IsJSONType(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
