package diag

import (
	"encoding"
	"fmt"

	"github.com/sirkon/refguard/internal/rgrules"
	"github.com/sirkon/refguard/internal/tree"
)

// Severity defines the importance of a diagnosis.
type Severity uint8

const (
	SevNote Severity = iota
	SevWarning
	SevError
)

var severityValueMap = map[Severity]string{
	SevNote:    "note",
	SevWarning: "warning",
	SevError:   "error",
}

func (s Severity) String() string {
	v, ok := severityValueMap[s]
	if !ok {
		return fmt.Sprintf("severity-invalid(%d)", s)
	}

	return v
}

var _ encoding.TextUnmarshaler = (*Severity)(nil)

// UnmarshalText for setting values with configs, CLI, etc.
func (s *Severity) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range severityValueMap {
		if v == text {
			*s = k
			return nil
		}
	}

	return fmt.Errorf("unknown severity %q", text)
}

func (s Severity) MarshalText() ([]byte, error) {
	v, ok := severityValueMap[s]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid Severity(%d)", s)
	}

	return []byte(v), nil
}

// Class separates user-facing lint findings from failures of the analysis.
type Class uint8

const (
	ClassLint Class = iota
	ClassInternal
)

func (c Class) String() string {
	switch c {
	case ClassLint:
		return "lint"
	case ClassInternal:
		return "internal"
	default:
		return fmt.Sprintf("class-invalid(%d)", c)
	}
}

func (c Class) MarshalText() ([]byte, error) {
	switch c {
	case ClassLint, ClassInternal:
		return []byte(c.String()), nil
	default:
		return nil, fmt.Errorf("cannot marshal invalid Class(%d)", c)
	}
}

// Diagnosis is a single confirmed finding.
type Diagnosis struct {
	Span     tree.Span
	Severity Severity
	Class    Class
	Code     rgrules.Rule
	Category rgrules.Category

	// Rule is the name of the originating rule.
	Rule string

	// Summary is a one-line message.
	Summary string

	// Help is a possibly multi-line explanation.
	Help string

	// Unit names the syntactic unit the diagnosis belongs to.
	Unit string
}

// Internal builds the internal-error diagnosis for a unit whose analysis
// was aborted.
func Internal(unit string, span tree.Span, err error) Diagnosis {
	return Diagnosis{
		Span:     span,
		Severity: SevError,
		Class:    ClassInternal,
		Code:     rgrules.InternalError(),
		Category: rgrules.CategoryInternal,
		Rule:     "internal-error",
		Summary:  fmt.Sprintf("analysis of %s aborted: %s", unit, err),
		Help:     rgrules.InternalError().Description(),
		Unit:     unit,
	}
}

func (d Diagnosis) String() string {
	return fmt.Sprintf("%s: %s[%s]: %s", d.Span, d.Severity, d.Rule, d.Summary)
}
