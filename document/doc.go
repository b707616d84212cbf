// Package document converts YAML configuration documents to and from
// node trees, keeping mapping keys in document order.
package document
