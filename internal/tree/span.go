package tree

import "fmt"

// Span locates a node in the source: byte offsets [Start, End) and 1-based
// line and column of both ends. Line data is optional, zero means unknown.
type Span struct {
	File    string `json:"file" yaml:"file" msgpack:"file"`
	Start   int    `json:"start" yaml:"start" msgpack:"start"`
	End     int    `json:"end" yaml:"end" msgpack:"end"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty" msgpack:"line,omitempty"`
	Col     int    `json:"col,omitempty" yaml:"col,omitempty" msgpack:"col,omitempty"`
	EndLine int    `json:"end_line,omitempty" yaml:"end_line,omitempty" msgpack:"end_line,omitempty"`
	EndCol  int    `json:"end_col,omitempty" yaml:"end_col,omitempty" msgpack:"end_col,omitempty"`
}

// Contains reports whether other lies within s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

func (s Span) String() string {
	if s.Line > 0 {
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
	}

	return fmt.Sprintf("%s:[%d,%d)", s.File, s.Start, s.End)
}
