// Package tree defines the host-neutral view of a typed syntax tree that
// rules work with.
//
// Hosts (the typed-tree interchange in package hir, the Go host in package
// gohost) expose their nodes through these interfaces. The view is read-only:
// nothing in the analysis ever mutates a node.
package tree
