package diag

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnknownFormat is returned for output formats nobody can write.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects a writer.
type Format int

const (
	_ Format = iota
	FormatText
	FormatPretty
	FormatJSON
	FormatSARIF
	FormatYAML
)

var formatValueMap = map[Format]string{
	FormatText:   "text",
	FormatPretty: "pretty",
	FormatJSON:   "json",
	FormatSARIF:  "sarif",
	FormatYAML:   "yaml",
}

func (f Format) String() string {
	v, ok := formatValueMap[f]
	if !ok {
		return fmt.Sprintf("format-invalid(%d)", f)
	}

	return v
}

func (f *Format) UnmarshalText(b []byte) error {
	text := string(b)
	for k, v := range formatValueMap {
		if v == text {
			*f = k
			return nil
		}
	}

	return fmt.Errorf("%q: %w", text, ErrUnknownFormat)
}

func (f Format) MarshalText() ([]byte, error) {
	v, ok := formatValueMap[f]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid Format(%d)", f)
	}

	return []byte(v), nil
}

// WriteOptions tunes writers. Fields irrelevant for a format are ignored.
type WriteOptions struct {
	// Color enables ANSI colors of the pretty writer.
	Color bool

	// Source returns file content for source excerpts of the pretty writer.
	Source func(file string) ([]byte, bool)

	// ToolName and ToolVersion fill SARIF driver data.
	ToolName    string
	ToolVersion string
}

// Write renders diagnoses in the given format.
func Write(w io.Writer, ds []Diagnosis, f Format, opts WriteOptions) error {
	switch f {
	case FormatText:
		return WriteText(w, ds)
	case FormatPretty:
		return WritePretty(w, ds, opts)
	case FormatJSON:
		return WriteJSON(w, ds)
	case FormatSARIF:
		return WriteSARIF(w, ds, opts)
	case FormatYAML:
		return WriteYAML(w, ds)
	default:
		return fmt.Errorf("write diagnostics as %s: %w", f, ErrUnknownFormat)
	}
}
