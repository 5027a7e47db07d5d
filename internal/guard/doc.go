// Package guard implements rules as declarative guard chains.
//
// A guard chain is an ordered list of steps. Each step either confirms a
// precondition (possibly recording what it found into the shared [Match])
// or declines. Steps run strictly left to right and the chain stops at the
// first step that declines: later steps never see a node an earlier step
// rejected. A chain that runs to completion must have produced a diagnosis.
//
// Steps get the world through an [Env]: a [Resolver] turning a callee into
// its canonical identity and an [Oracle] classifying inferred types into a
// [Shape]. Both are read-only views over upstream data, so rules carry no
// state of their own and are registered once.
//
// Errors returned by steps mean inconsistent upstream input, never a
// mismatch. They abort the evaluation and are propagated to the visitor.
package guard
