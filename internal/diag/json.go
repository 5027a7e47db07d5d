package diag

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// LocationDTO is the machine-readable span form.
type LocationDTO struct {
	File      string `json:"file" yaml:"file"`
	StartByte int    `json:"start_byte" yaml:"start_byte"`
	EndByte   int    `json:"end_byte" yaml:"end_byte"`
	StartLine int    `json:"start_line,omitempty" yaml:"start_line,omitempty"`
	StartCol  int    `json:"start_col,omitempty" yaml:"start_col,omitempty"`
	EndLine   int    `json:"end_line,omitempty" yaml:"end_line,omitempty"`
	EndCol    int    `json:"end_col,omitempty" yaml:"end_col,omitempty"`
}

// DiagnosisDTO is the machine-readable diagnosis form.
type DiagnosisDTO struct {
	Severity string      `json:"severity" yaml:"severity"`
	Class    string      `json:"class" yaml:"class"`
	Code     string      `json:"code" yaml:"code"`
	Rule     string      `json:"rule" yaml:"rule"`
	Category string      `json:"category" yaml:"category"`
	Summary  string      `json:"summary" yaml:"summary"`
	Help     string      `json:"help,omitempty" yaml:"help,omitempty"`
	Unit     string      `json:"unit,omitempty" yaml:"unit,omitempty"`
	Location LocationDTO `json:"location" yaml:"location"`
}

// OutputDTO is the root of JSON and YAML outputs.
type OutputDTO struct {
	Diagnostics []DiagnosisDTO `json:"diagnostics" yaml:"diagnostics"`
	Count       int            `json:"count" yaml:"count"`
}

// BuildOutput converts diagnoses into their machine-readable form.
func BuildOutput(ds []Diagnosis) OutputDTO {
	out := OutputDTO{
		Diagnostics: make([]DiagnosisDTO, 0, len(ds)),
		Count:       len(ds),
	}

	for _, d := range ds {
		out.Diagnostics = append(out.Diagnostics, DiagnosisDTO{
			Severity: d.Severity.String(),
			Class:    d.Class.String(),
			Code:     d.Code.ID(),
			Rule:     d.Rule,
			Category: d.Category.String(),
			Summary:  d.Summary,
			Help:     d.Help,
			Unit:     d.Unit,
			Location: LocationDTO{
				File:      d.Span.File,
				StartByte: d.Span.Start,
				EndByte:   d.Span.End,
				StartLine: d.Span.Line,
				StartCol:  d.Span.Col,
				EndLine:   d.Span.EndLine,
				EndCol:    d.Span.EndCol,
			},
		})
	}

	return out
}

// WriteJSON writes diagnoses as an indented JSON document.
func WriteJSON(w io.Writer, ds []Diagnosis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildOutput(ds))
}

// WriteYAML writes diagnoses as a YAML document.
func WriteYAML(w io.Writer, ds []Diagnosis) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildOutput(ds)); err != nil {
		return err
	}

	return enc.Close()
}
