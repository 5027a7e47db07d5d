package rgrules

import (
	"encoding"
	"fmt"
)

// Rule represents a refguard rule code (RG-series). The zero value is
// not a code.
type Rule int

const (
	ruleInvalid Rule = iota

	RG000InternalError
	RG001InvalidRef
	RG002TransmutingNull
)

// String returns the canonical code and short name of the rule.
func (r Rule) String() string {
	switch r {
	case RG000InternalError:
		return "RG000: InternalError"
	case RG001InvalidRef:
		return "RG001: InvalidRef"
	case RG002TransmutingNull:
		return "RG002: TransmutingNull"
	default:
		return fmt.Sprintf("rule-unknown(%d)", r)
	}
}

// ID returns the bare code, "RG001".
func (r Rule) ID() string {
	if !r.Known() {
		return fmt.Sprintf("RG?%d", r)
	}

	return fmt.Sprintf("RG%03d", int(r-RG000InternalError))
}

// Known reports whether r is one of the defined codes.
func (r Rule) Known() bool {
	switch r {
	case RG000InternalError, RG001InvalidRef, RG002TransmutingNull:
		return true
	default:
		return false
	}
}

// Description returns the human-readable explanation of the rule.
func (r Rule) Description() string {
	switch r {
	case RG000InternalError:
		return "Upstream typed tree is inconsistent, the unit was not analyzed."
	case RG001InvalidRef:
		return "Creation of a null or uninitialized reference."
	case RG002TransmutingNull:
		return "Transmuting a known null pointer into a reference."
	default:
		return fmt.Sprintf("unknown-rule(%d)", r)
	}
}

// Constructors for stable call sites.

func InternalError() Rule   { return RG000InternalError }
func InvalidRef() Rule      { return RG001InvalidRef }
func TransmutingNull() Rule { return RG002TransmutingNull }

// Category groups rules by the kind of problem they point at.
type Category int

const (
	_ Category = iota
	CategoryCorrectness
	CategorySuspicious
	CategoryStyle
	CategoryInternal
)

var categoryValueMap = map[Category]string{
	CategoryCorrectness: "correctness",
	CategorySuspicious:  "suspicious",
	CategoryStyle:       "style",
	CategoryInternal:    "internal",
}

func (c Category) String() string {
	v, ok := categoryValueMap[c]
	if !ok {
		return fmt.Sprintf("category-invalid(%d)", c)
	}

	return v
}

var _ encoding.TextUnmarshaler = (*Category)(nil)

func (c *Category) UnmarshalText(b []byte) error {
	text := string(b)
	for k, v := range categoryValueMap {
		if v == text {
			*c = k
			return nil
		}
	}

	return fmt.Errorf("unknown rule category %q", text)
}

func (c Category) MarshalText() ([]byte, error) {
	v, ok := categoryValueMap[c]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid Category(%d)", c)
	}

	return []byte(v), nil
}
