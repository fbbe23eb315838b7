// Package training defines the binding between a model and the datasets it
// trains on, and the loss-aggregation step that consumes them.
//
// A Task declares which truth columns it predicts and how; a Model owns an
// ordered sequence of tasks plus the opaque graph definition, backbone, and
// optimizer/scheduler specifications. Validate checks, at binding time, that
// every label any task needs is actually produced by every dataset schema,
// so a missing column never surfaces as an opaque lookup failure deep inside
// loss computation.
//
// ComputeLoss is the per-batch reduction: it merges the required truth
// columns across the record sets of all jointly trained datasets, computes
// each task's scalar loss in declaration order, and sums them into the single
// training signal.
package training
