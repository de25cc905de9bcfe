package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed indicates the input is not a usable notebook document.
var ErrMalformed = errors.New("malformed notebook")

// rawNotebook mirrors the top-level nbformat document.
// Cells is a pointer so a missing list can be told apart from an empty one.
type rawNotebook struct {
	Cells         *[]rawCell      `json:"cells"`
	Metadata      json.RawMessage `json:"metadata"`
	NBFormat      int             `json:"nbformat"`
	NBFormatMinor int             `json:"nbformat_minor"`
}

type rawCell struct {
	CellType       string          `json:"cell_type"`
	Source         multiline       `json:"source"`
	Outputs        json.RawMessage `json:"outputs"`
	ExecutionCount *int            `json:"execution_count"`
}

type rawOutput struct {
	OutputType string                     `json:"output_type"`
	Name       string                     `json:"name"`
	Text       multiline                  `json:"text"`
	Data       map[string]json.RawMessage `json:"data"`
	EName      string                     `json:"ename"`
	EValue     string                     `json:"evalue"`
	Traceback  []string                   `json:"traceback"`
}

type rawMetadata struct {
	LanguageInfo struct {
		Name string `json:"name"`
	} `json:"language_info"`
	KernelSpec struct {
		Language string `json:"language"`
	} `json:"kernelspec"`
}

// multiline decodes nbformat's "multiline string": either a single string or
// a list of line fragments that already carry their own newlines.
type multiline string

func (m *multiline) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = multiline(s)
		return nil
	}

	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return errors.New("expected a string or a list of strings")
	}
	*m = multiline(strings.Join(parts, ""))
	return nil
}

// Parse decodes raw notebook bytes into a Notebook.
// Returns an error wrapping ErrMalformed when the bytes are not JSON or the
// document lacks a cell list. Identical input always yields an identical
// Notebook.
func Parse(data []byte) (*Notebook, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: top level is not a JSON object", ErrMalformed)
	}

	var raw rawNotebook
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw.Cells == nil {
		return nil, fmt.Errorf("%w: missing cells list", ErrMalformed)
	}

	nb := &Notebook{
		Cells:       make([]Cell, 0, len(*raw.Cells)),
		Language:    parseLanguage(raw.Metadata),
		Format:      raw.NBFormat,
		FormatMinor: raw.NBFormatMinor,
	}

	for i, rc := range *raw.Cells {
		cell, err := parseCell(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d: %v", ErrMalformed, i, err)
		}
		nb.Cells = append(nb.Cells, cell)
	}

	return nb, nil
}

func parseCell(rc rawCell) (Cell, error) {
	cell := Cell{
		Kind:   CellKind(rc.CellType),
		Source: string(rc.Source),
	}

	switch cell.Kind {
	case KindMarkdown, KindRaw:
		// Outputs on non-code cells are not part of the model.
		return cell, nil
	case KindCode:
	case "":
		return Cell{}, errors.New("missing cell_type")
	default:
		return Cell{}, fmt.Errorf("unknown cell_type %q", rc.CellType)
	}

	cell.ExecutionCount = rc.ExecutionCount

	if len(rc.Outputs) == 0 || bytes.Equal(rc.Outputs, []byte("null")) {
		return cell, nil
	}

	var outputs []rawOutput
	if err := json.Unmarshal(rc.Outputs, &outputs); err != nil {
		return Cell{}, fmt.Errorf("outputs: %v", err)
	}

	cell.Outputs = make([]Output, 0, len(outputs))
	for _, ro := range outputs {
		cell.Outputs = append(cell.Outputs, Output{
			Kind:      OutputKind(ro.OutputType),
			Stream:    ro.Name,
			Text:      string(ro.Text),
			Data:      parseBundle(ro.Data),
			EName:     ro.EName,
			EValue:    ro.EValue,
			Traceback: ro.Traceback,
		})
	}

	return cell, nil
}

// parseBundle flattens a MIME bundle. JSON media types keep their encoded
// form; text types accept a string or a list of strings. Payloads that fit
// neither shape are kept as raw JSON rather than dropped.
func parseBundle(data map[string]json.RawMessage) MIMEBundle {
	if len(data) == 0 {
		return nil
	}

	bundle := make(MIMEBundle, len(data))
	for mediaType, payload := range data {
		if IsJSONType(mediaType) {
			bundle[mediaType] = string(payload)
			continue
		}
		var text multiline
		if err := json.Unmarshal(payload, &text); err != nil {
			bundle[mediaType] = string(payload)
			continue
		}
		bundle[mediaType] = string(text)
	}
	return bundle
}

// parseLanguage extracts the kernel language from notebook metadata.
// Metadata is free-form, so decoding problems are ignored rather than
// failing the whole notebook.
func parseLanguage(metadata json.RawMessage) string {
	if len(metadata) == 0 {
		return ""
	}

	var md rawMetadata
	if err := json.Unmarshal(metadata, &md); err != nil {
		return ""
	}

	if md.LanguageInfo.Name != "" {
		return md.LanguageInfo.Name
	}
	return md.KernelSpec.Language
}
