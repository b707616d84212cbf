// Package node provides the immutable tree model of a configuration document.
//
// A Node is one of three kinds:
//   - Mapping: string keys to child nodes, iterated in insertion order
//   - Sequence: ordered child nodes
//   - Scalar: an opaque leaf (string, integer, float, bool or null)
//
// Nodes are values. Updating a container with With or Without returns a new
// container that shares every untouched child with the original, so a
// repaired tree only rebuilds the spine from the root to the changed child.
//
// A Path locates a node from the document root as a sequence of Keys, each
// either a mapping field name or a sequence index:
//
//	node.PathOf(node.Field("collections"), node.Index(0)) // collections[0]
package node
