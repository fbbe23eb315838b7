// Package confignode defines the serialization unit of the configuration
// layer: a named class reference plus an ordered mapping of argument names
// to values.
//
// A Node is pure data. It is created by parsing a YAML document (or
// programmatically, in tests and by Describe on a built object graph) and is
// consumed exactly once by the builder to produce a live object. Values form
// a small sum type: primitives, strings, nested nodes, embedded callable
// literals, and sequences or mappings of the above.
//
// Argument order is preserved through parse/serialize round trips so that a
// document can be reproduced byte-for-byte in structure, which the round-trip
// law in the builder package relies on.
package confignode
