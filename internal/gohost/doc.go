// Package gohost runs rules over Go code.
//
// Function declarations are units. Canonical paths of Go functions are the
// package import path followed by the receiver type name for methods and
// the function name: "example.com/mem::Zeroed", "example.com/mem::Pool::Get".
// Pointer types are references, unsafe.Pointer and uintptr are raw
// pointers.
package gohost
