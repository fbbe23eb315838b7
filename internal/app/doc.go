// Package app wires the configuration layer together: it loads a model
// document and a dataset document, reconstructs the live objects they
// describe, and validates the binding between them before any training work
// could begin.
//
// The phase ordering matters and is the package's main invariant: parse,
// then build (classes resolved, callables compiled), then selection resolved
// and checked, then binding validated. Every failure in this chain is a
// configuration error that aborts run setup; nothing is retried.
package app
