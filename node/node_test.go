package node

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfig() Node {
	return NewMapping(
		Pair("backend", NewMapping(Pair("name", String("github")))),
		Pair("collections", NewSequence(
			NewMapping(Pair("name", String("posts"))),
			NewMapping(Pair("name", String("pages"))),
		)),
	)
}

func TestNewMapping_PreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	n := NewMapping(Pair("z", Int(1)), Pair("a", Int(2)), Pair("m", Int(3)))

	assert.Equal(t, []Key{Field("z"), Field("a"), Field("m")}, n.Keys())
	assert.Equal(t, 3, n.Len())
}

func TestNewMapping_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	t.Parallel()

	n := NewMapping(Pair("a", Int(1)), Pair("b", Int(2)), Pair("a", Int(3)))

	assert.Equal(t, []Key{Field("a"), Field("b")}, n.Keys())

	v, ok := n.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(3), v.Value())
}

func TestNode_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node Node
		kind Kind
	}{
		{name: "zero value", node: Node{}, kind: KindScalar},
		{name: "string", node: String("x"), kind: KindScalar},
		{name: "mapping", node: NewMapping(), kind: KindMapping},
		{name: "sequence", node: NewSequence(), kind: KindSequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.kind, tt.node.Kind())
			assert.Equal(t, tt.kind == KindScalar, tt.node.IsScalar())
			assert.Equal(t, tt.kind == KindMapping, tt.node.IsMapping())
			assert.Equal(t, tt.kind == KindSequence, tt.node.IsSequence())
		})
	}
}

func TestNode_Blank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		node  Node
		blank bool
	}{
		{name: "null", node: Null(), blank: true},
		{name: "empty string", node: String(""), blank: true},
		{name: "false", node: Bool(false), blank: true},
		{name: "zero int", node: Int(0), blank: true},
		{name: "zero float", node: Float(0), blank: true},
		{name: "text", node: String("posts"), blank: false},
		{name: "true", node: Bool(true), blank: false},
		{name: "number", node: Int(7), blank: false},
		{name: "empty mapping", node: NewMapping(), blank: false},
		{name: "empty sequence", node: NewSequence(), blank: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.blank, tt.node.Blank())
		})
	}
}

func TestNode_FieldHelpers(t *testing.T) {
	t.Parallel()

	n := NewMapping(Pair("name", String("posts")), Pair("label", String("")), Pair("count", Int(2)))

	assert.Equal(t, "posts", n.FieldText("name"))
	assert.Empty(t, n.FieldText("count"))
	assert.Empty(t, n.FieldText("missing"))
	assert.True(t, n.FieldSet("name"))
	assert.False(t, n.FieldSet("label"))
	assert.True(t, n.Has("label"))
	assert.False(t, n.FieldSet("missing"))
	assert.False(t, String("x").Has("name"))
}

func TestNode_WithField_DoesNotMutateOriginal(t *testing.T) {
	t.Parallel()

	original := NewMapping(Pair("name", String("github")))
	updated := original.WithField("repo", String("octocat/demo"))

	assert.False(t, original.Has("repo"))
	assert.Equal(t, "octocat/demo", updated.FieldText("repo"))
	assert.Equal(t, []Key{Field("name"), Field("repo")}, updated.Keys())
	assert.Equal(t, []Key{Field("name")}, original.Keys())
}

func TestNode_WithField_ReplacesInPlaceOrder(t *testing.T) {
	t.Parallel()

	original := NewMapping(Pair("a", Int(1)), Pair("b", Int(2)))
	updated := original.WithField("a", Int(9))

	assert.Equal(t, []Key{Field("a"), Field("b")}, updated.Keys())

	a, _ := updated.Get("a")
	assert.Equal(t, int64(9), a.Value())

	a, _ = original.Get("a")
	assert.Equal(t, int64(1), a.Value())
}

func TestNode_WithField_OnScalarBuildsMapping(t *testing.T) {
	t.Parallel()

	n := String("oops").WithField("name", String("posts"))

	require.True(t, n.IsMapping())
	assert.Equal(t, "posts", n.FieldText("name"))
	assert.Equal(t, 1, n.Len())
}

func TestNode_Without(t *testing.T) {
	t.Parallel()

	original := NewMapping(Pair("files", NewSequence()), Pair("folder", String("content")), Pair("name", String("x")))
	updated := original.Without("files")

	assert.Equal(t, []Key{Field("folder"), Field("name")}, updated.Keys())
	assert.True(t, original.Has("files"))
	assert.True(t, updated.Equal(original.Without("files")))
	assert.True(t, original.Without("missing").Equal(original))
}

func TestNode_WithIndex(t *testing.T) {
	t.Parallel()

	seq := NewSequence(String("a"), String("b"))

	replaced := seq.With(Index(1), String("B"))
	assert.Equal(t, "[\"a\", \"B\"]", replaced.String())
	assert.Equal(t, "[\"a\", \"b\"]", seq.String())

	padded := seq.With(Index(3), String("d"))
	assert.Equal(t, "[\"a\", \"b\", null, \"d\"]", padded.String())

	appended := seq.Append(String("c"))
	assert.Equal(t, 3, appended.Len())
	assert.Equal(t, 2, seq.Len())
}

func TestNode_With_SharesUntouchedChildren(t *testing.T) {
	t.Parallel()

	root := sampleConfig()
	collections, _ := root.Get("collections")
	first, _ := collections.Item(0)

	newCollections := collections.With(Index(1), NewMapping(Pair("name", String("about"))))
	newRoot := root.With(Field("collections"), newCollections)

	gotFirst, _ := newCollections.Item(0)
	assert.True(t, gotFirst.Equal(first))

	backend, _ := root.Get("backend")
	newBackend, _ := newRoot.Get("backend")
	assert.True(t, newBackend.Equal(backend))

	assert.False(t, newRoot.Equal(root))
}

func TestNode_Equal(t *testing.T) {
	t.Parallel()

	a := NewMapping(Pair("x", Int(1)), Pair("y", NewSequence(String("a"))))
	b := NewMapping(Pair("y", NewSequence(String("a"))), Pair("x", Int(1)))
	c := NewMapping(Pair("x", Int(1)), Pair("y", NewSequence(String("b"))))

	assert.True(t, a.Equal(b), "mapping order is not significant")
	assert.False(t, a.Equal(c))
	assert.False(t, NewMapping().Equal(NewSequence()))
	assert.False(t, Int(1).Equal(Float(1)))
	assert.True(t, Null().Equal(Node{}))
}

func TestNode_Same(t *testing.T) {
	t.Parallel()

	root := sampleConfig()
	copied := root
	collections, _ := root.Get("collections")
	rebuilt := NewMapping(Pair("x", Int(1)))

	assert.True(t, copied.Same(root))
	assert.False(t, root.WithField("extra", Null()).Same(root))
	assert.False(t, rebuilt.Same(NewMapping(Pair("x", Int(1)))), "equal but built separately")
	assert.True(t, collections.Same(collections))
	assert.False(t, collections.Same(collections.Append(Null())))
	assert.True(t, String("a").Same(String("a")))
	assert.False(t, rebuilt.Same(NewSequence()))
}

func TestNode_Child(t *testing.T) {
	t.Parallel()

	root := sampleConfig()
	collections, ok := root.Child(Field("collections"))
	require.True(t, ok)

	second, ok := collections.Child(Index(1))
	require.True(t, ok)
	assert.Equal(t, "pages", second.FieldText("name"))

	_, ok = collections.Child(Index(5))
	assert.False(t, ok)

	_, ok = collections.Child(Field("name"))
	assert.False(t, ok)
}

func TestNode_Interface(t *testing.T) {
	t.Parallel()

	got := sampleConfig().Interface()

	expected := map[string]any{
		"backend": map[string]any{"name": "github"},
		"collections": []any{
			map[string]any{"name": "posts"},
			map[string]any{"name": "pages"},
		},
	}

	assert.Equal(t, expected, got)
}

func TestFromValue(t *testing.T) {
	t.Parallel()

	n, err := FromValue(map[string]any{
		"b":     []any{1, "two", 3.5, true, nil},
		"a":     uint8(4),
		"names": []string{"x", "y"},
	})
	require.NoError(t, err)

	assert.Equal(t, []Key{Field("a"), Field("b"), Field("names")}, n.Keys(), "map keys are sorted")
	assert.Equal(t, `{a: 4, b: [1, "two", 3.5, true, null], names: ["x", "y"]}`, n.String())
}

func TestFromValue_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := FromValue(map[string]any{"ch": make(chan int)})

	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnsupportedValue)
	assert.Contains(t, err.Error(), `field "ch"`)
}

func TestFromValue_LargeUnsigned(t *testing.T) {
	t.Parallel()

	n, err := Scalar(uint64(1 << 63))
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<63), n.Value())

	n, err = Scalar(uint64(5))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n.Value())
}

func TestPath(t *testing.T) {
	t.Parallel()

	root := Root()
	assert.True(t, root.IsRoot())
	assert.Equal(t, "$", root.String())

	p := root.Append(Field("collections")).Append(Index(0)).Append(Field("name"))
	assert.Equal(t, "$.collections[0].name", p.String())
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "collections", p.At(0).Name())
	assert.Equal(t, 0, p.At(1).Position())
	assert.Equal(t, -1, p.At(2).Position())
	assert.True(t, root.IsRoot(), "append does not alias")

	assert.True(t, FieldPath("backend").Is("backend"))
	assert.False(t, FieldPath("backend", "name").Is("backend"))
	assert.False(t, PathOf(Index(0)).Is())
	assert.True(t, Root().Is())
}

func TestPath_AppendDoesNotAlias(t *testing.T) {
	t.Parallel()

	base := make(Path, 1, 4)
	base[0] = Field("collections")

	a := base.Append(Index(0))
	b := base.Append(Index(1))

	assert.Equal(t, 0, a.At(1).Position())
	assert.Equal(t, 1, b.At(1).Position())
}

func TestPath_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(PathOf(Field("collections"), Index(2)))
	require.NoError(t, err)
	assert.JSONEq(t, `["collections", 2]`, string(data))

	data, err = json.Marshal(Root())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}
