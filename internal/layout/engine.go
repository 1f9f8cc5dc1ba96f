package layout

import (
	"errors"
	"fmt"
)

// Handle addresses a node inside an Engine arena.
type Handle int32

// NoHandle is the zero handle value returned for absent nodes.
const NoHandle Handle = -1

// MeasureMode qualifies the width passed to a MeasureFunc.
type MeasureMode uint8

const (
	MeasureUndefined MeasureMode = iota // No constraint; report max-content size
	MeasureExactly                      // The node will be exactly this wide
	MeasureAtMost                       // The node may be at most this wide
)

func (m MeasureMode) String() string {
	switch m {
	case MeasureExactly:
		return "exactly"
	case MeasureAtMost:
		return "at-most"
	default:
		return "undefined"
	}
}

// MeasureFunc reports the content size of a leaf given a width constraint.
// Width is Undefined when mode is MeasureUndefined.
type MeasureFunc func(width float64, mode MeasureMode) (w, h float64)

var (
	// ErrInvalidHandle is returned when a handle does not address a live node.
	ErrInvalidHandle = errors.New("layout: invalid handle")
	// ErrHasParent is returned when inserting a node that is already attached.
	ErrHasParent = errors.New("layout: node already has a parent")
)

// GeometryError reports a non-finite value produced by Calculate.
type GeometryError struct {
	Handle Handle
	Field  string
	Value  float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("layout: node %d computed non-finite %s (%v)", e.Handle, e.Field, e.Value)
}

type node struct {
	style    Style
	children []Handle
	parent   Handle
	measure  MeasureFunc
	layout   Layout
}

// Engine owns an arena of layout nodes. It is not safe for concurrent use.
type Engine struct {
	nodes []*node
	live  int
	cache map[cacheKey]measured
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// NewNode allocates a detached node with DefaultStyle.
func (e *Engine) NewNode() Handle {
	e.nodes = append(e.nodes, &node{style: DefaultStyle(), parent: NoHandle})
	e.live++
	return Handle(len(e.nodes) - 1)
}

// Len returns the number of live nodes.
func (e *Engine) Len() int {
	return e.live
}

func (e *Engine) get(h Handle) *node {
	if h < 0 || int(h) >= len(e.nodes) {
		return nil
	}
	return e.nodes[h]
}

// Valid reports whether h addresses a live node.
func (e *Engine) Valid(h Handle) bool {
	return e.get(h) != nil
}

// Free releases a node. It is detached from its parent and its children are
// orphaned but not freed.
func (e *Engine) Free(h Handle) {
	n := e.get(h)
	if n == nil {
		return
	}
	if n.parent != NoHandle {
		_ = e.RemoveChild(n.parent, h)
	}
	for _, c := range n.children {
		if cn := e.get(c); cn != nil {
			cn.parent = NoHandle
		}
	}
	e.nodes[h] = nil
	e.live--
}

// SetStyle replaces the layout style of a node.
func (e *Engine) SetStyle(h Handle, s Style) error {
	n := e.get(h)
	if n == nil {
		return ErrInvalidHandle
	}
	n.style = s
	return nil
}

// Style returns the layout style of a node.
func (e *Engine) Style(h Handle) Style {
	if n := e.get(h); n != nil {
		return n.style
	}
	return DefaultStyle()
}

// SetMeasureFunc installs (or clears, when fn is nil) a measure callback.
// The callback is only consulted while the node has no children.
func (e *Engine) SetMeasureFunc(h Handle, fn MeasureFunc) error {
	n := e.get(h)
	if n == nil {
		return ErrInvalidHandle
	}
	n.measure = fn
	return nil
}

// HasMeasureFunc reports whether a measure callback is installed.
func (e *Engine) HasMeasureFunc(h Handle) bool {
	n := e.get(h)
	return n != nil && n.measure != nil
}

// InsertChild attaches child to parent at index. An index outside
// [0, len(children)] appends.
func (e *Engine) InsertChild(parent, child Handle, index int) error {
	p, c := e.get(parent), e.get(child)
	if p == nil || c == nil {
		return ErrInvalidHandle
	}
	if c.parent != NoHandle {
		return ErrHasParent
	}
	if index < 0 || index > len(p.children) {
		index = len(p.children)
	}
	p.children = append(p.children, NoHandle)
	copy(p.children[index+1:], p.children[index:])
	p.children[index] = child
	c.parent = parent
	return nil
}

// RemoveChild detaches child from parent.
func (e *Engine) RemoveChild(parent, child Handle) error {
	p, c := e.get(parent), e.get(child)
	if p == nil || c == nil {
		return ErrInvalidHandle
	}
	for i, h := range p.children {
		if h == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			c.parent = NoHandle
			return nil
		}
	}
	return ErrInvalidHandle
}

// RemoveAllChildren detaches every child of parent.
func (e *Engine) RemoveAllChildren(parent Handle) error {
	p := e.get(parent)
	if p == nil {
		return ErrInvalidHandle
	}
	for _, c := range p.children {
		if cn := e.get(c); cn != nil {
			cn.parent = NoHandle
		}
	}
	p.children = p.children[:0]
	return nil
}

// Children returns a copy of a node's child handles.
func (e *Engine) Children(h Handle) []Handle {
	n := e.get(h)
	if n == nil {
		return nil
	}
	out := make([]Handle, len(n.children))
	copy(out, n.children)
	return out
}

// Parent returns the parent handle, or NoHandle.
func (e *Engine) Parent(h Handle) Handle {
	if n := e.get(h); n != nil {
		return n.parent
	}
	return NoHandle
}

// Layout returns the geometry computed by the last Calculate.
func (e *Engine) Layout(h Handle) Layout {
	if n := e.get(h); n != nil {
		return n.layout
	}
	return Layout{}
}

// ComputedBorder returns the border width on one edge.
func (e *Engine) ComputedBorder(h Handle, edge Edge) int {
	if n := e.get(h); n != nil {
		return n.style.Border.Get(edge)
	}
	return 0
}

// ComputedPadding returns the padding on one edge.
func (e *Engine) ComputedPadding(h Handle, edge Edge) int {
	if n := e.get(h); n != nil {
		return n.style.Padding.Get(edge)
	}
	return 0
}

// ComputedMargin returns the margin on one edge.
func (e *Engine) ComputedMargin(h Handle, edge Edge) int {
	if n := e.get(h); n != nil {
		return n.style.Margin.Get(edge)
	}
	return 0
}
