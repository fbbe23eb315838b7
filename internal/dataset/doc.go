// Package dataset defines the declarative description of a data source: its
// feature and truth columns, index column, truth table, and the named
// partition-selection predicates that split events into train/validation/test
// subsets.
//
// The package owns two contracts the rest of the pipeline depends on.
// Selection resolution is deterministic: the same schema and seed always
// produce the same partitions, and distinct partitions are disjoint. Truth
// loading refuses unknown columns before a single row is requested from the
// storage engine, making a missing column a configuration-time failure rather
// than a batch-time one.
//
// The storage engine itself stays behind the TruthSource interface; this
// package never issues SQL.
package dataset
