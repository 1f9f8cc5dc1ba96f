package inkwell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreate(t *testing.T, tree *Tree, kind Kind) NodeID {
	t.Helper()
	id, err := tree.Create(kind, nil)
	require.NoError(t, err)
	return id
}

func appendLeaf(t *testing.T, tree *Tree, parent NodeID, text string) NodeID {
	t.Helper()
	leaf, err := tree.CreateText(text)
	require.NoError(t, err)
	require.NoError(t, tree.AppendChild(parent, leaf))
	return leaf
}

func TestTree_AppendAndInsertOrder(t *testing.T) {
	tree := NewTree()
	root := tree.Root()
	a := mustCreate(t, tree, KindBox)
	b := mustCreate(t, tree, KindBox)
	c := mustCreate(t, tree, KindBox)

	require.NoError(t, tree.AppendChild(root, a))
	require.NoError(t, tree.AppendChild(root, b))
	require.NoError(t, tree.InsertBefore(root, c, a))
	assert.Equal(t, []NodeID{c, a, b}, tree.Children(root))

	// Moving an attached node detaches it first.
	require.NoError(t, tree.InsertBefore(root, b, c))
	assert.Equal(t, []NodeID{b, c, a}, tree.Children(root))

	require.NoError(t, tree.AppendChild(a, c))
	assert.Equal(t, []NodeID{b, a}, tree.Children(root))
	assert.Equal(t, a, tree.Parent(c))
}

func TestTree_InsertBeforeNonChildRejected(t *testing.T) {
	tree := NewTree()
	root := tree.Root()
	a := mustCreate(t, tree, KindBox)
	other := mustCreate(t, tree, KindBox)
	child := mustCreate(t, tree, KindBox)
	require.NoError(t, tree.AppendChild(root, a))
	require.NoError(t, tree.AppendChild(a, other))

	err := tree.InsertBefore(root, child, other)

	var mErr *MutationError
	require.ErrorAs(t, err, &mErr)
	assert.ErrorIs(t, err, ErrNotChild)
	assert.Equal(t, "insert_before", mErr.Op)
	assert.Equal(t, other, mErr.Before)
	assert.Equal(t, []NodeID{a}, tree.Children(root))
	assert.Equal(t, NoNode, tree.Parent(child))
}

func TestTree_NestingRules(t *testing.T) {
	type tc struct {
		build   func(t *testing.T, tree *Tree) (parent, child NodeID)
		wantErr error
	}

	tests := map[string]tc{
		"box inside text": {
			build: func(t *testing.T, tree *Tree) (NodeID, NodeID) {
				text := mustCreate(t, tree, KindText)
				return text, mustCreate(t, tree, KindBox)
			},
			wantErr: ErrInvalidNesting,
		},
		"leaf outside text": {
			build: func(t *testing.T, tree *Tree) (NodeID, NodeID) {
				leaf, err := tree.CreateText("x")
				require.NoError(t, err)
				return tree.Root(), leaf
			},
			wantErr: ErrInvalidNesting,
		},
		"root as child": {
			build: func(t *testing.T, tree *Tree) (NodeID, NodeID) {
				return mustCreate(t, tree, KindBox), tree.Root()
			},
			wantErr: ErrInvalidNesting,
		},
		"cycle": {
			build: func(t *testing.T, tree *Tree) (NodeID, NodeID) {
				outer := mustCreate(t, tree, KindBox)
				inner := mustCreate(t, tree, KindBox)
				require.NoError(t, tree.AppendChild(outer, inner))
				return inner, outer
			},
			wantErr: ErrCycle,
		},
		"unknown node": {
			build: func(t *testing.T, tree *Tree) (NodeID, NodeID) {
				return tree.Root(), NodeID(999)
			},
			wantErr: ErrUnknownNode,
		},
		"text inside text is allowed": {
			build: func(t *testing.T, tree *Tree) (NodeID, NodeID) {
				return mustCreate(t, tree, KindText), mustCreate(t, tree, KindText)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tree := NewTree()
			parent, child := tt.build(t, tree)
			err := tree.AppendChild(parent, child)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTree_RemoveChildDestroysSubtree(t *testing.T) {
	tree := NewTree()
	box := mustCreate(t, tree, KindBox)
	text := mustCreate(t, tree, KindText)
	require.NoError(t, tree.AppendChild(tree.Root(), box))
	require.NoError(t, tree.AppendChild(box, text))
	leaf := appendLeaf(t, tree, text, "hi")

	var destroyed []NodeID
	for _, id := range []NodeID{box, text, leaf} {
		id := id
		require.NoError(t, tree.OnDestroy(id, func() { destroyed = append(destroyed, id) }))
	}

	require.NoError(t, tree.RemoveChild(tree.Root(), box))

	assert.Equal(t, []NodeID{leaf, text, box}, destroyed)
	assert.False(t, tree.Exists(box))
	assert.False(t, tree.Exists(leaf))
	assert.Equal(t, 1, tree.Len())
	assert.Empty(t, tree.Children(tree.Root()))

	err := tree.RemoveChild(tree.Root(), box)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestTree_RemoveChildNotChild(t *testing.T) {
	tree := NewTree()
	a := mustCreate(t, tree, KindBox)
	b := mustCreate(t, tree, KindBox)
	require.NoError(t, tree.AppendChild(tree.Root(), a))

	err := tree.RemoveChild(a, b)
	assert.ErrorIs(t, err, ErrNotChild)
	assert.True(t, tree.Exists(b))
}

func TestTree_SetText(t *testing.T) {
	tree := NewTree()
	text := mustCreate(t, tree, KindText)
	require.NoError(t, tree.AppendChild(tree.Root(), text))
	leaf := appendLeaf(t, tree, text, "old")

	require.NoError(t, tree.SetText(leaf, "new"))
	assert.Equal(t, "new", tree.Text(text))

	require.NoError(t, tree.SetText(text, "replaced"))
	assert.Equal(t, "replaced", tree.Text(text))
	assert.False(t, tree.Exists(leaf))
	assert.Len(t, tree.Children(text), 1)

	box := mustCreate(t, tree, KindBox)
	assert.ErrorIs(t, tree.SetText(box, "x"), ErrNotText)
}

func TestTree_MutationsMarkAncestorsDirty(t *testing.T) {
	tree := NewTree()
	outer := mustCreate(t, tree, KindBox)
	inner := mustCreate(t, tree, KindBox)
	sibling := mustCreate(t, tree, KindBox)
	require.NoError(t, tree.AppendChild(tree.Root(), outer))
	require.NoError(t, tree.AppendChild(tree.Root(), sibling))
	require.NoError(t, tree.AppendChild(outer, inner))

	for _, n := range tree.nodes {
		if n != nil {
			n.dirty = false
		}
	}

	require.NoError(t, tree.SetStyle(inner, StyleRecord{Padding: Set(1)}))

	assert.True(t, tree.get(inner).dirty)
	assert.True(t, tree.get(outer).dirty)
	assert.True(t, tree.get(tree.Root()).dirty)
	assert.False(t, tree.get(sibling).dirty)
}

func TestTree_KindDefaults(t *testing.T) {
	tree := NewTree()
	box := mustCreate(t, tree, KindBox)
	s := tree.Style(box)
	assert.Equal(t, FlexRow, s.FlexDirection.Or(""))
	assert.Equal(t, 1.0, s.FlexShrink.Or(0))

	_, err := tree.Create(KindRoot, nil)
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestTree_Unmount(t *testing.T) {
	tree := NewTree()
	box := mustCreate(t, tree, KindBox)
	require.NoError(t, tree.AppendChild(tree.Root(), box))
	called := false
	require.NoError(t, tree.OnDestroy(box, func() { called = true }))

	tree.Unmount()

	assert.True(t, called)
	assert.Equal(t, 0, tree.engine.Len())
	_, err := tree.Create(KindBox, nil)
	assert.True(t, errors.Is(err, ErrUnmounted))
	assert.ErrorIs(t, tree.SetStyle(tree.Root(), StyleRecord{}), ErrUnmounted)
}
