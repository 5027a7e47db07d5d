// Package hir reads typed trees produced by an upstream compiler and serves
// them to rules.
//
// A dump is a [Crate]: source files, declarations, the type table, trait
// implementations and analyzable units with their expression trees. It can
// be stored as JSON, YAML or MessagePack. [Crate.Index] validates the
// crate-level tables and builds the host-neutral view: units implementing
// [tree.Unit], a [Resolver], an [Oracle] and a [SpanIndex].
//
// References from expression nodes into the declaration and type tables
// are checked lazily. A dangling one fails only the unit it belongs to.
package hir
