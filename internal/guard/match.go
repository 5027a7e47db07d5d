package guard

import (
	"github.com/sirkon/refguard/internal/canon"
	"github.com/sirkon/refguard/internal/tree"
)

// Match is the scratch state of one chain evaluation. Steps read what
// earlier steps recorded and add their own findings.
type Match struct {
	Node tree.Node
	Env  Env

	// Call is set by call structure steps.
	Call tree.Call

	// Shape is set by ResultShape.
	Shape Shape

	// Identity is set by ResolveCallee.
	Identity canon.Identity

	// Tag is set by ClassifyCallee.
	Tag canon.Tag

	summary string
	emitted bool
}

// Emit records the diagnosis summary. It must be called by the last step.
func (m *Match) Emit(summary string) {
	m.summary = summary
	m.emitted = true
}
