package diag

import (
	"encoding/json"
	"io"
	"slices"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
	ByteOffset  int `json:"byteOffset"`
	ByteLength  int `json:"byteLength"`
}

func sarifLevel(s Severity) string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes diagnoses as a SARIF 2.1.0 log with a single run.
func WriteSARIF(w io.Writer, ds []Diagnosis, opts WriteOptions) error {
	name := opts.ToolName
	if name == "" {
		name = "refguard"
	}

	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: name, Version: opts.ToolVersion}},
		Results: make([]sarifResult, 0, len(ds)),
	}

	var ruleIDs []string
	for _, d := range ds {
		id := d.Code.ID()
		idx := slices.Index(ruleIDs, id)
		if idx < 0 {
			idx = len(ruleIDs)
			ruleIDs = append(ruleIDs, id)
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
				ID:               id,
				Name:             d.Rule,
				ShortDescription: sarifMessage{Text: d.Code.Description()},
			})
		}

		text := d.Summary
		if d.Help != "" {
			text += "\n" + d.Help
		}

		run.Results = append(run.Results, sarifResult{
			RuleID:    id,
			RuleIndex: idx,
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: text},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysical{
					ArtifactLocation: sarifArtifact{URI: d.Span.File},
					Region: sarifRegion{
						StartLine:   d.Span.Line,
						StartColumn: d.Span.Col,
						EndLine:     d.Span.EndLine,
						EndColumn:   d.Span.EndCol,
						ByteOffset:  d.Span.Start,
						ByteLength:  d.Span.End - d.Span.Start,
					},
				},
			}},
		})
	}
	if run.Tool.Driver.Rules == nil {
		run.Tool.Driver.Rules = []sarifRule{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs:    []sarifRun{run},
	})
}
