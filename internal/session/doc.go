// Package session runs the visitor over many units concurrently and merges
// their diagnoses back in a deterministic order.
package session
