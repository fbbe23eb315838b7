// Package registry provides the process-scoped lookup from class names to
// constructors that the builder uses to reconstruct live objects from
// configuration nodes.
//
// The registry follows a populate-then-freeze lifecycle: every component
// package registers its constructible classes during application startup,
// after which Freeze ends the population phase and the registry is read
// concurrently, never mutated, for the rest of the run. Registration is
// serialized with a mutex so parallel initialization cannot race.
package registry
