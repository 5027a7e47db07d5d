// Package visit runs registered rules over syntactic units.
//
// A unit is walked once in document order. At every node all rules
// registered for the node kind are evaluated in registration order, a match
// of one rule never hides other rules. Diagnoses of a unit are committed to
// the reporter only when the whole unit was analyzed: inconsistent upstream
// data aborts the unit, drops everything found in it and leaves a single
// internal-error diagnosis instead.
package visit
