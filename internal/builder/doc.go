// Package builder reconstructs live object graphs from configuration node
// trees.
//
// Build resolves every class name through the registry and constructs nested
// arguments depth-first, children before parents, so a constructor always
// receives fully materialized argument values. Embedded callable literals are
// compiled (inline source) or resolved (class references) during the same
// descent.
//
// The builder is pure with respect to the registry: it only resolves,
// never registers, and it performs no I/O. Failures are configuration
// errors; each one names the argument path it occurred at, e.g.
// "tasks[0].transform_target".
package builder
