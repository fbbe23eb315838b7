// Package expr compiles the two flavors of executable configuration this
// layer embeds as data: partition-selection predicates and inline transform
// functions.
//
// Both are HCL expressions evaluated over cty values. Selection predicates
// are confined to a restricted, deterministic arithmetic/comparison grammar
// (no function calls, no templates, no iteration) so that two evaluations
// with identical inputs always produce identical partitions. Transform
// functions additionally get a small allowlist of pure math functions from
// the cty stdlib.
//
// Compilation happens once, at build time; the compiled expression is cached
// inside the returned value and evaluation is pure thereafter.
package expr
