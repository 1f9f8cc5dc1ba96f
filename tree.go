package inkwell

import (
	"maps"

	"github.com/grindlemire/go-inkwell/internal/debug"
	"github.com/grindlemire/go-inkwell/internal/layout"
)

// Tree is the node model: an arena of nodes addressed by NodeID with a
// parallel set of layout engine handles. A Tree is not safe for concurrent
// use; Renderer serializes access.
type Tree struct {
	nodes   []*node // indexed by NodeID; nil once destroyed
	root    NodeID
	engine  *layout.Engine
	owners  map[layout.Handle]NodeID
	static  map[NodeID]*staticCursor
	stopped bool
}

// NewTree creates a tree holding only a root node.
func NewTree() *Tree {
	t := &Tree{
		nodes:  []*node{nil},
		engine: layout.NewEngine(),
		owners: make(map[layout.Handle]NodeID),
		static: make(map[NodeID]*staticCursor),
	}
	t.root = t.alloc(KindRoot, nil)
	return t
}

// Root returns the root node id.
func (t *Tree) Root() NodeID {
	return t.root
}

func (t *Tree) alloc(kind Kind, attrs map[string]any) NodeID {
	id := NodeID(len(t.nodes))
	n := &node{
		id:       id,
		kind:     kind,
		declared: kind,
		style:    kindDefaults(kind),
		attrs:    make(map[string]any, len(attrs)),
		handle:   layout.NoHandle,
		dirty:    true,
	}
	maps.Copy(n.attrs, attrs)
	t.nodes = append(t.nodes, n)
	return id
}

func (t *Tree) get(id NodeID) *node {
	if int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Exists reports whether id addresses a live node.
func (t *Tree) Exists(id NodeID) bool {
	return !t.stopped && t.get(id) != nil
}

// Create allocates a detached Box, Text or VirtualText node. A Text node
// attached inside another text node behaves as VirtualText.
func (t *Tree) Create(kind Kind, attrs map[string]any) (NodeID, error) {
	if t.stopped {
		return NoNode, ErrUnmounted
	}
	switch kind {
	case KindBox, KindText, KindVirtualText:
	default:
		return NoNode, ErrInvalidKind
	}
	return t.alloc(kind, attrs), nil
}

// CreateText allocates a detached raw text leaf.
func (t *Tree) CreateText(text string) (NodeID, error) {
	if t.stopped {
		return NoNode, ErrUnmounted
	}
	id := t.alloc(KindTextLeaf, nil)
	t.nodes[id].text = text
	return id, nil
}

// AppendChild attaches child as the last child of parent. A child that is
// already attached elsewhere is moved.
func (t *Tree) AppendChild(parent, child NodeID) error {
	if err := t.checkAttach(parent, child); err != nil {
		return &MutationError{Op: "append_child", Parent: parent, Child: child, Err: err}
	}
	t.detach(child)
	p := t.get(parent)
	p.children = append(p.children, child)
	t.attached(p, t.get(child))
	return nil
}

// InsertBefore attaches child immediately before the existing child
// before. Referencing a before node that is not a child of parent is
// rejected and leaves the tree unchanged.
func (t *Tree) InsertBefore(parent, child, before NodeID) error {
	wrap := func(err error) error {
		return &MutationError{Op: "insert_before", Parent: parent, Child: child, Before: before, Err: err}
	}
	if err := t.checkAttach(parent, child); err != nil {
		return wrap(err)
	}
	p := t.get(parent)
	if t.get(before) == nil {
		return wrap(ErrUnknownNode)
	}
	if p.indexOf(before) < 0 {
		return wrap(ErrNotChild)
	}
	if child == before {
		return nil
	}
	t.detach(child)
	idx := p.indexOf(before)
	p.children = append(p.children, NoNode)
	copy(p.children[idx+1:], p.children[idx:])
	p.children[idx] = child
	t.attached(p, t.get(child))
	return nil
}

// RemoveChild detaches child from parent and destroys it together with its
// whole subtree, releasing layout handles and running destroy hooks.
func (t *Tree) RemoveChild(parent, child NodeID) error {
	wrap := func(err error) error {
		return &MutationError{Op: "remove_child", Parent: parent, Child: child, Err: err}
	}
	if t.stopped {
		return wrap(ErrUnmounted)
	}
	p, c := t.get(parent), t.get(child)
	if p == nil || c == nil {
		return wrap(ErrUnknownNode)
	}
	if c.parent != parent {
		return wrap(ErrNotChild)
	}
	t.detach(child)
	t.destroy(child)
	return nil
}

// SetAttribute stores an opaque attribute value. A nil value deletes the key.
func (t *Tree) SetAttribute(id NodeID, key string, value any) error {
	n, err := t.live(id, "set_attribute")
	if err != nil {
		return err
	}
	if value == nil {
		delete(n.attrs, key)
	} else {
		n.attrs[key] = value
	}
	t.markDirty(id)
	return nil
}

// Attribute returns an attribute value.
func (t *Tree) Attribute(id NodeID, key string) (any, bool) {
	n := t.get(id)
	if n == nil {
		return nil, false
	}
	v, ok := n.attrs[key]
	return v, ok
}

// SetStyle shallow-merges partial into the node's style.
func (t *Tree) SetStyle(id NodeID, partial StyleRecord) error {
	n, err := t.live(id, "set_style")
	if err != nil {
		return err
	}
	n.style.Merge(partial)
	t.markDirty(id)
	return nil
}

// Style returns the node's current style record.
func (t *Tree) Style(id NodeID) StyleRecord {
	if n := t.get(id); n != nil {
		return n.style
	}
	return StyleRecord{}
}

// SetText updates text content. On a text leaf it replaces the content; on
// a Text or VirtualText node it replaces all children with a single leaf.
func (t *Tree) SetText(id NodeID, text string) error {
	n, err := t.live(id, "set_text")
	if err != nil {
		return err
	}
	switch {
	case n.kind == KindTextLeaf:
		n.text = text
		t.markDirty(id)
		return nil
	case n.kind.isText():
		for _, c := range append([]NodeID(nil), n.children...) {
			t.detach(c)
			t.destroy(c)
		}
		leaf := t.alloc(KindTextLeaf, nil)
		t.nodes[leaf].text = text
		n.children = append(n.children, leaf)
		t.attached(n, t.nodes[leaf])
		return nil
	}
	return &MutationError{Op: "set_text", Child: id, Err: ErrNotText}
}

// Text returns the content of a text leaf, or the concatenated plain
// content of a Text or VirtualText subtree.
func (t *Tree) Text(id NodeID) string {
	n := t.get(id)
	if n == nil {
		return ""
	}
	if n.kind == KindTextLeaf {
		return n.text
	}
	var out string
	for _, c := range n.children {
		out += t.Text(c)
	}
	return out
}

// SetTransform installs a line transform on a Text or VirtualText node.
func (t *Tree) SetTransform(id NodeID, fn Transform) error {
	n, err := t.live(id, "set_transform")
	if err != nil {
		return err
	}
	if !n.kind.isText() {
		return &MutationError{Op: "set_transform", Child: id, Err: ErrNotText}
	}
	n.transform = fn
	t.markDirty(id)
	return nil
}

// OnDestroy registers fn to run when the node is destroyed, either by
// removal or by Unmount.
func (t *Tree) OnDestroy(id NodeID, fn func()) error {
	n, err := t.live(id, "on_destroy")
	if err != nil {
		return err
	}
	n.onDestroy = append(n.onDestroy, fn)
	return nil
}

// Kind returns the effective kind of a node.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.get(id); n != nil {
		return n.kind
	}
	return KindRoot
}

// Parent returns the parent id, or NoNode.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.get(id); n != nil {
		return n.parent
	}
	return NoNode
}

// Children returns a copy of a node's ordered child ids.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.get(id)
	if n == nil {
		return nil
	}
	return append([]NodeID(nil), n.children...)
}

// Len returns the number of live nodes including the root.
func (t *Tree) Len() int {
	count := 0
	for _, n := range t.nodes {
		if n != nil {
			count++
		}
	}
	return count
}

// Unmount destroys every node and stops further mutation.
func (t *Tree) Unmount() {
	if t.stopped {
		return
	}
	t.destroy(t.root)
	t.stopped = true
	debug.Log("tree: unmounted, %d layout nodes remain", t.engine.Len())
}

func (t *Tree) live(id NodeID, op string) (*node, error) {
	if t.stopped {
		return nil, &MutationError{Op: op, Child: id, Err: ErrUnmounted}
	}
	n := t.get(id)
	if n == nil {
		return nil, &MutationError{Op: op, Child: id, Err: ErrUnknownNode}
	}
	return n, nil
}

func (t *Tree) checkAttach(parent, child NodeID) error {
	if t.stopped {
		return ErrUnmounted
	}
	p, c := t.get(parent), t.get(child)
	if p == nil || c == nil {
		return ErrUnknownNode
	}
	if c.kind == KindRoot || p.kind == KindTextLeaf {
		return ErrInvalidNesting
	}
	inText := p.kind.isText()
	switch c.declared {
	case KindBox:
		if inText {
			return ErrInvalidNesting
		}
	case KindTextLeaf, KindVirtualText:
		if !inText {
			return ErrInvalidNesting
		}
	}
	for a := parent; a != NoNode; a = t.nodes[a].parent {
		if a == child {
			return ErrCycle
		}
	}
	return nil
}

// attached finishes linking c under p.
func (t *Tree) attached(p, c *node) {
	c.parent = p.id
	if c.declared == KindText {
		kind := KindText
		if p.kind.isText() {
			kind = KindVirtualText
		}
		if kind != c.kind {
			t.releaseHandle(c)
			c.kind = kind
		}
	}
	t.markDirty(c.id)
}

func (t *Tree) detach(id NodeID) {
	c := t.get(id)
	if c == nil || c.parent == NoNode {
		return
	}
	p := t.get(c.parent)
	if i := p.indexOf(id); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	c.parent = NoNode
	t.markDirty(p.id)
}

// destroy releases a detached subtree, children first.
func (t *Tree) destroy(id NodeID) {
	n := t.get(id)
	if n == nil {
		return
	}
	for _, c := range n.children {
		t.destroy(c)
	}
	n.children = nil
	for _, fn := range n.onDestroy {
		fn()
	}
	t.releaseHandle(n)
	delete(t.static, id)
	if id != t.root {
		t.nodes[id] = nil
	}
}

func (t *Tree) releaseHandle(n *node) {
	if n.handle == layout.NoHandle {
		return
	}
	delete(t.owners, n.handle)
	t.engine.Free(n.handle)
	n.handle = layout.NoHandle
}

func (t *Tree) nodeForHandle(h layout.Handle) NodeID {
	return t.owners[h]
}

// markDirty flags id and its ancestor chain for layout sync.
func (t *Tree) markDirty(id NodeID) {
	for n := t.get(id); n != nil; n = t.get(n.parent) {
		n.dirty = true
	}
}
