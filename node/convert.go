package node

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnsupportedValue is returned by FromValue for Go values that have no
// Node representation.
var ErrUnsupportedValue = errors.New("unsupported value")

// FromValue converts plain Go values into a Node.
//
// Supported inputs are nil, strings, booleans, all integer and float kinds,
// map[string]any, []any, []string, []map[string]any and Node itself.
// Keys of a Go map have no order, so they are sorted to keep iteration
// deterministic.
func FromValue(v any) (Node, error) {
	if n, ok := scalarFrom(v); ok {
		return n, nil
	}

	switch val := v.(type) {
	case Node:
		return val, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}

		slices.Sort(keys)

		entries := make([]Entry, 0, len(keys))

		for _, k := range keys {
			child, err := FromValue(val[k])
			if err != nil {
				return Node{}, fmt.Errorf("field %q: %w", k, err)
			}

			entries = append(entries, Pair(k, child))
		}

		return NewMapping(entries...), nil
	case []any:
		return sequenceFrom(val)
	case []string:
		items := make([]Node, len(val))
		for i, s := range val {
			items[i] = String(s)
		}

		return Node{kind: KindSequence, items: items}, nil
	case []map[string]any:
		generic := make([]any, len(val))
		for i, m := range val {
			generic[i] = m
		}

		return sequenceFrom(generic)
	default:
		return Node{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// MustFromValue is FromValue for literals known to be convertible.
// It panics on error and is meant for tests and package-level fixtures.
func MustFromValue(v any) Node {
	n, err := FromValue(v)
	if err != nil {
		panic(err)
	}

	return n
}

// Scalar converts a Go scalar into a Node, normalising integer kinds to
// int64 (uint64 above the int64 range is kept as uint64) and float32 to
// float64.
func Scalar(v any) (Node, error) {
	n, ok := scalarFrom(v)
	if !ok {
		return Node{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}

	return n, nil
}

func sequenceFrom(values []any) (Node, error) {
	items := make([]Node, len(values))

	for i, item := range values {
		child, err := FromValue(item)
		if err != nil {
			return Node{}, fmt.Errorf("index %d: %w", i, err)
		}

		items[i] = child
	}

	return Node{kind: KindSequence, items: items}, nil
}

//nolint:cyclop // one case per Go scalar kind
func scalarFrom(v any) (Node, bool) {
	switch val := v.(type) {
	case nil:
		return Null(), true
	case string:
		return String(val), true
	case bool:
		return Bool(val), true
	case int:
		return Int(int64(val)), true
	case int8:
		return Int(int64(val)), true
	case int16:
		return Int(int64(val)), true
	case int32:
		return Int(int64(val)), true
	case int64:
		return Int(val), true
	case uint:
		return unsignedFrom(uint64(val)), true
	case uint8:
		return Int(int64(val)), true
	case uint16:
		return Int(int64(val)), true
	case uint32:
		return Int(int64(val)), true
	case uint64:
		return unsignedFrom(val), true
	case float32:
		return Float(float64(val)), true
	case float64:
		return Float(val), true
	default:
		return Node{}, false
	}
}

func unsignedFrom(u uint64) Node {
	const maxInt64 = 1<<63 - 1
	if u > maxInt64 {
		return Node{kind: KindScalar, scalar: u}
	}

	return Int(int64(u))
}
