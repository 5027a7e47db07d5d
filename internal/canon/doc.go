// Package canon maps well-known dangerous operations to their canonical,
// alias-independent identity.
//
// A canonical path is the chain of segments naming the place where a
// declaration actually lives (crate, modules, item), never the path a call
// site happened to use. Resolvers turn whatever a call site wrote into an
// [Identity] built from that canonical path, and rules look identities up
// in a [Table] to learn which family of dangerous constructors they belong to.
//
// The predefined table is built once per process and is read-only afterwards,
// so it is shared between concurrent analyses without locking.
package canon
