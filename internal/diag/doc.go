// Package diag holds diagnoses produced by rules and the reporter that
// accumulates them, along with writers rendering them as text, pretty
// colored text, JSON, SARIF and YAML.
//
// The reporter keeps diagnoses exactly in the order they were reported and
// never deduplicates: two rules may flag the same span with different
// messages. Presentation is left to the writers.
package diag
