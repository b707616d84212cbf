package node

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind identifies the shape of a Node.
type Kind int

const (
	// KindScalar is an opaque leaf value.
	KindScalar Kind = iota
	// KindMapping is a string-keyed container.
	KindMapping
	// KindSequence is an ordered container.
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is one position's value in a configuration tree.
// The zero value is a null scalar.
type Node struct {
	kind   Kind
	scalar any
	keys   []string
	fields map[string]Node
	items  []Node
}

// Entry is a single mapping field used to build a Mapping.
type Entry struct {
	Key   string
	Value Node
}

// Pair returns an Entry for NewMapping.
func Pair(key string, value Node) Entry {
	return Entry{Key: key, Value: value}
}

// Null returns a null scalar.
func Null() Node {
	return Node{kind: KindScalar}
}

// String returns a string scalar.
func String(s string) Node {
	return Node{kind: KindScalar, scalar: s}
}

// Int returns an integer scalar.
func Int(i int64) Node {
	return Node{kind: KindScalar, scalar: i}
}

// Float returns a floating point scalar.
func Float(f float64) Node {
	return Node{kind: KindScalar, scalar: f}
}

// Bool returns a boolean scalar.
func Bool(b bool) Node {
	return Node{kind: KindScalar, scalar: b}
}

// NewMapping builds a Mapping from entries, keeping their order.
// A repeated key keeps its first position and takes the last value.
func NewMapping(entries ...Entry) Node {
	keys := make([]string, 0, len(entries))
	fields := make(map[string]Node, len(entries))

	for _, e := range entries {
		if _, exists := fields[e.Key]; !exists {
			keys = append(keys, e.Key)
		}

		fields[e.Key] = e.Value
	}

	return Node{kind: KindMapping, keys: keys, fields: fields}
}

// NewSequence builds a Sequence from items.
func NewSequence(items ...Node) Node {
	owned := make([]Node, len(items))
	copy(owned, items)

	return Node{kind: KindSequence, items: owned}
}

// Kind returns the node's shape.
func (n Node) Kind() Kind { return n.kind }

// IsScalar reports whether n is a leaf.
func (n Node) IsScalar() bool { return n.kind == KindScalar }

// IsMapping reports whether n is a Mapping.
func (n Node) IsMapping() bool { return n.kind == KindMapping }

// IsSequence reports whether n is a Sequence.
func (n Node) IsSequence() bool { return n.kind == KindSequence }

// IsNull reports whether n is the null scalar.
func (n Node) IsNull() bool { return n.kind == KindScalar && n.scalar == nil }

// Len returns the number of children. Scalars have none.
func (n Node) Len() int {
	switch n.kind {
	case KindMapping:
		return len(n.keys)
	case KindSequence:
		return len(n.items)
	default:
		return 0
	}
}

// Keys returns the child keys in iteration order: insertion order for a
// Mapping, index order for a Sequence.
func (n Node) Keys() []Key {
	switch n.kind {
	case KindMapping:
		out := make([]Key, len(n.keys))
		for i, name := range n.keys {
			out[i] = Field(name)
		}

		return out
	case KindSequence:
		out := make([]Key, len(n.items))
		for i := range n.items {
			out[i] = Index(i)
		}

		return out
	default:
		return nil
	}
}

// Child returns the child at key.
func (n Node) Child(key Key) (Node, bool) {
	if key.IsIndex() {
		return n.Item(key.Position())
	}

	return n.Get(key.Name())
}

// Get returns a mapping field.
func (n Node) Get(field string) (Node, bool) {
	if n.kind != KindMapping {
		return Node{}, false
	}

	child, ok := n.fields[field]

	return child, ok
}

// Has reports whether the mapping field exists, whatever its value.
func (n Node) Has(field string) bool {
	_, ok := n.Get(field)

	return ok
}

// Item returns a sequence element.
func (n Node) Item(i int) (Node, bool) {
	if n.kind != KindSequence || i < 0 || i >= len(n.items) {
		return Node{}, false
	}

	return n.items[i], true
}

// Value returns the scalar value, or nil for containers.
func (n Node) Value() any {
	if n.kind != KindScalar {
		return nil
	}

	return n.scalar
}

// Text returns the scalar string value.
func (n Node) Text() (string, bool) {
	s, ok := n.Value().(string)

	return s, ok
}

// Blank reports whether n carries no usable value: null, an empty string,
// false or a numeric zero. Containers are never blank, even when empty.
func (n Node) Blank() bool {
	if n.kind != KindScalar {
		return false
	}

	switch v := n.scalar.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case int64:
		return v == 0
	case uint64:
		return v == 0
	case float64:
		return v == 0
	default:
		return false
	}
}

// FieldText returns the string value of a mapping field, or "" when the
// field is missing or not a string.
func (n Node) FieldText(field string) string {
	child, ok := n.Get(field)
	if !ok {
		return ""
	}

	s, _ := child.Text()

	return s
}

// FieldSet reports whether a mapping field exists and is not Blank.
func (n Node) FieldSet(field string) bool {
	child, ok := n.Get(field)

	return ok && !child.Blank()
}

// With returns a copy of n with the child at key replaced.
//
// A Field key on a Mapping sets or appends the field. An Index key on a
// Sequence replaces the element, padding with nulls past the end. A key
// that does not match n's kind yields a fresh container holding only the
// new child. Untouched children are shared with n.
func (n Node) With(key Key, child Node) Node {
	if key.IsIndex() {
		return n.withItem(key.Position(), child)
	}

	return n.WithField(key.Name(), child)
}

// WithField returns a copy of the mapping with field set to child.
func (n Node) WithField(field string, child Node) Node {
	if n.kind != KindMapping {
		return NewMapping(Pair(field, child))
	}

	fields := make(map[string]Node, len(n.fields)+1)
	for k, v := range n.fields {
		fields[k] = v
	}

	keys := n.keys
	if _, exists := n.fields[field]; !exists {
		keys = make([]string, len(n.keys), len(n.keys)+1)
		copy(keys, n.keys)
		keys = append(keys, field)
	}

	fields[field] = child

	return Node{kind: KindMapping, keys: keys, fields: fields}
}

// Without returns a copy of the mapping with field removed.
func (n Node) Without(field string) Node {
	if n.kind != KindMapping || !n.Has(field) {
		return n
	}

	keys := make([]string, 0, len(n.keys)-1)
	fields := make(map[string]Node, len(n.fields)-1)

	for _, k := range n.keys {
		if k == field {
			continue
		}

		keys = append(keys, k)
		fields[k] = n.fields[k]
	}

	return Node{kind: KindMapping, keys: keys, fields: fields}
}

// Append returns a copy of the sequence with child added at the end.
func (n Node) Append(child Node) Node {
	return n.withItem(n.Len(), child)
}

func (n Node) withItem(i int, child Node) Node {
	if i < 0 {
		return n
	}

	var base []Node
	if n.kind == KindSequence {
		base = n.items
	}

	size := max(len(base), i+1)
	items := make([]Node, size)
	copy(items, base)

	for j := len(base); j < i; j++ {
		items[j] = Null()
	}

	items[i] = child

	return Node{kind: KindSequence, items: items}
}

// Equal reports deep value equality. Mapping key order is not significant.
func (n Node) Equal(other Node) bool {
	if n.kind != other.kind {
		return false
	}

	switch n.kind {
	case KindMapping:
		if len(n.fields) != len(other.fields) {
			return false
		}

		for k, v := range n.fields {
			ov, ok := other.fields[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}

		return true
	case KindSequence:
		if len(n.items) != len(other.items) {
			return false
		}

		for i := range n.items {
			if !n.items[i].Equal(other.items[i]) {
				return false
			}
		}

		return true
	default:
		return n.scalar == other.scalar
	}
}

// Same reports whether n and other share storage, as a node and an
// unmodified copy of it do. Empty sequences are always the same.
func (n Node) Same(other Node) bool {
	if n.kind != other.kind {
		return false
	}

	switch n.kind {
	case KindMapping:
		return reflect.ValueOf(n.fields).UnsafePointer() == reflect.ValueOf(other.fields).UnsafePointer()
	case KindSequence:
		if len(n.items) != len(other.items) {
			return false
		}

		return len(n.items) == 0 || &n.items[0] == &other.items[0]
	default:
		return n.scalar == other.scalar
	}
}

// Interface converts n to plain Go values: map[string]any, []any or the
// scalar value.
func (n Node) Interface() any {
	switch n.kind {
	case KindMapping:
		out := make(map[string]any, len(n.fields))
		for k, v := range n.fields {
			out[k] = v.Interface()
		}

		return out
	case KindSequence:
		out := make([]any, len(n.items))
		for i, v := range n.items {
			out[i] = v.Interface()
		}

		return out
	default:
		return n.scalar
	}
}

// String renders n in a compact flow style for logs and test failures.
func (n Node) String() string {
	var b strings.Builder

	n.render(&b)

	return b.String()
}

func (n Node) render(b *strings.Builder) {
	switch n.kind {
	case KindMapping:
		b.WriteByte('{')

		for i, k := range n.keys {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(k)
			b.WriteString(": ")
			n.fields[k].render(b)
		}

		b.WriteByte('}')
	case KindSequence:
		b.WriteByte('[')

		for i, item := range n.items {
			if i > 0 {
				b.WriteString(", ")
			}

			item.render(b)
		}

		b.WriteByte(']')
	default:
		switch v := n.scalar.(type) {
		case nil:
			b.WriteString("null")
		case string:
			fmt.Fprintf(b, "%q", v)
		default:
			fmt.Fprint(b, v)
		}
	}
}
