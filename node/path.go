package node

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Key is one step of a Path: a mapping field name or a sequence index.
type Key struct {
	name    string
	index   int
	isIndex bool
}

// Field returns a mapping key.
func Field(name string) Key {
	return Key{name: name}
}

// Index returns a sequence key.
func Index(i int) Key {
	return Key{index: i, isIndex: true}
}

// IsIndex reports whether k addresses a sequence element.
func (k Key) IsIndex() bool { return k.isIndex }

// Name returns the field name, or "" for an index key.
func (k Key) Name() string { return k.name }

// Position returns the sequence index, or -1 for a field key.
func (k Key) Position() int {
	if !k.isIndex {
		return -1
	}

	return k.index
}

func (k Key) String() string {
	if k.isIndex {
		return "[" + strconv.Itoa(k.index) + "]"
	}

	return k.name
}

// Path is the ordered key sequence from the document root to a node.
// The empty Path is the root. Paths are values: Append never aliases.
type Path []Key

// Root is the empty path.
func Root() Path { return nil }

// PathOf builds a path from keys.
func PathOf(keys ...Key) Path {
	out := make(Path, len(keys))
	copy(out, keys)

	return out
}

// FieldPath builds a path of mapping keys only.
func FieldPath(fields ...string) Path {
	out := make(Path, len(fields))
	for i, f := range fields {
		out[i] = Field(f)
	}

	return out
}

// Len returns the depth of the path.
func (p Path) Len() int { return len(p) }

// IsRoot reports whether p is the empty path.
func (p Path) IsRoot() bool { return len(p) == 0 }

// At returns the i-th key. It panics when i is out of range, like a slice.
func (p Path) At(i int) Key { return p[i] }

// Append returns a new path with key added.
func (p Path) Append(key Key) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = key

	return out
}

// Equal reports element-wise equality.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}

	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}

	return true
}

// Is reports whether p consists exactly of the given field names.
func (p Path) Is(fields ...string) bool {
	return p.Equal(FieldPath(fields...))
}

// String renders the path as "$", "$.backend" or "$.collections[0].name".
func (p Path) String() string {
	var b strings.Builder

	b.WriteByte('$')

	for _, k := range p {
		if !k.isIndex {
			b.WriteByte('.')
		}

		b.WriteString(k.String())
	}

	return b.String()
}

// MarshalJSON encodes the path as an array of field names and indices.
func (p Path) MarshalJSON() ([]byte, error) {
	out := make([]any, len(p))
	for i, k := range p {
		if k.isIndex {
			out[i] = k.index
		} else {
			out[i] = k.name
		}
	}

	return json.Marshal(out) //nolint:wrapcheck
}
