// Package ir provides the universal in-memory representation for vectrune
// documents.
//
// Every supported serialization format (rune, YAML, JSON, XML) parses into
// and serializes out of an ir.Node tree, so the merge engine and the other
// document operations never see format-specific syntax.
//
// A Node is a closed tagged union over the types listed in Types():
//
//   - atoms: null, bool, number, string
//   - containers: array (ordered), object (ordered fields, unique keys)
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i];
// the two slices always have the same length and field order is the
// document's insertion order, which serializers preserve. Nodes maintain
// parent backlinks (Parent, ParentIndex, ParentField) so any node can
// report its position in the tree via Path().
//
// Nodes are not safe for concurrent mutation; clone per goroutine if
// needed.
package ir
