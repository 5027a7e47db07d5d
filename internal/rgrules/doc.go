// Package rgrules defines the canonical rule codes (RG-series) reported by refguard.
//
// Each code gives a finding a stable numeric and textual identity so that
// diagnostics can be filtered, suppressed and cross-referenced consistently
// across output formats.
//
// # Structure
//
// Codes follow the format “RG<NNN>: <Name>” and are grouped by area:
//
//	000        Internal failures of the analysis itself
//	001–099    Invalid values fabricated by well-known constructors
//
// Example:
//
//	rgrules.RG001InvalidRef.String()      → "RG001: InvalidRef"
//	rgrules.RG001InvalidRef.Description() → "Creation of a null or uninitialized reference."
//
// # Notes
//
//   - Codes are stable; never renumber existing ones.
//   - RG000 is never produced by a rule. The visitor emits it when upstream
//     input of a unit turned out to be inconsistent.
package rgrules
