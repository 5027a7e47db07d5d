package guard

import "github.com/sirkon/refguard/internal/diag"

// Outcome of a rule evaluation, either [Matched] or [NotMatched].
type Outcome interface {
	isOutcome()
}

// Matched carries the diagnosis justified by a fully successful chain.
type Matched struct {
	Diagnosis diag.Diagnosis
}

// NotMatched names the step that declined.
type NotMatched struct {
	Step string
}

func (Matched) isOutcome()    {}
func (NotMatched) isOutcome() {}
