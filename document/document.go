package document

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/node"

	"github.com/goccy/go-yaml"
)

// ErrNotMapping is returned when the document root is not a mapping.
var ErrNotMapping = errors.New("document root is not a mapping")

// Decode parses a YAML document into a tree. An empty document (or one that
// only holds comments or an explicit null) decodes to an empty mapping.
func Decode(data []byte) (node.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return node.NewMapping(), nil
	}

	var raw any

	err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap())
	if err != nil {
		return node.Node{}, fmt.Errorf("unmarshal error: %w", err)
	}

	if raw == nil {
		return node.NewMapping(), nil
	}

	root, err := fromYAML(raw)
	if err != nil {
		return node.Node{}, err
	}

	if !root.IsMapping() {
		return node.Node{}, fmt.Errorf("%w: got %s", ErrNotMapping, root.Kind())
	}

	return root, nil
}

// Encode renders a tree as a YAML document, mapping keys in tree order.
func Encode(n node.Node) ([]byte, error) {
	out, err := yaml.Marshal(toYAML(n))
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return out, nil
}

func fromYAML(v any) (node.Node, error) {
	switch val := v.(type) {
	case yaml.MapSlice:
		entries := make([]node.Entry, 0, len(val))

		for _, item := range val {
			key := fmt.Sprint(item.Key)

			child, err := fromYAML(item.Value)
			if err != nil {
				return node.Node{}, fmt.Errorf("field %q: %w", key, err)
			}

			entries = append(entries, node.Pair(key, child))
		}

		return node.NewMapping(entries...), nil
	case []any:
		items := make([]node.Node, len(val))

		for i, item := range val {
			child, err := fromYAML(item)
			if err != nil {
				return node.Node{}, fmt.Errorf("index %d: %w", i, err)
			}

			items[i] = child
		}

		return node.NewSequence(items...), nil
	case time.Time:
		return node.String(val.Format(time.RFC3339)), nil
	default:
		n, err := node.FromValue(val)
		if err != nil {
			return node.Node{}, fmt.Errorf("decoding value: %w", err)
		}

		return n, nil
	}
}

func toYAML(n node.Node) any {
	switch n.Kind() {
	case node.KindMapping:
		out := make(yaml.MapSlice, 0, n.Len())

		for _, key := range n.Keys() {
			child, _ := n.Child(key)
			out = append(out, yaml.MapItem{Key: key.Name(), Value: toYAML(child)})
		}

		return out
	case node.KindSequence:
		out := make([]any, 0, n.Len())

		for _, key := range n.Keys() {
			child, _ := n.Child(key)
			out = append(out, toYAML(child))
		}

		return out
	default:
		return n.Value()
	}
}
