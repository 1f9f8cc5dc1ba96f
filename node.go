package inkwell

import (
	"github.com/grindlemire/go-inkwell/internal/layout"
)

// NodeID identifies a node within a Tree. IDs are never reused.
type NodeID uint32

// NoNode is the zero NodeID; it never addresses a node.
const NoNode NodeID = 0

// Kind is the type of a node.
type Kind uint8

const (
	// KindRoot is the single root of a tree. It cannot be created or moved.
	KindRoot Kind = iota
	// KindBox is a flex container.
	KindBox
	// KindText is a measured text leaf. Its children are text fragments.
	KindText
	// KindVirtualText is a styled fragment nested inside a text node. It
	// does not take part in layout.
	KindVirtualText
	// KindTextLeaf holds raw string content inside a text node.
	KindTextLeaf
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindBox:
		return "box"
	case KindText:
		return "text"
	case KindVirtualText:
		return "virtual-text"
	case KindTextLeaf:
		return "text-leaf"
	}
	return "unknown"
}

func (k Kind) isText() bool {
	return k == KindText || k == KindVirtualText
}

// layoutTransparent reports whether nodes of this kind are skipped by the
// layout engine.
func (k Kind) layoutTransparent() bool {
	return k == KindVirtualText || k == KindTextLeaf
}

// Transform post-processes one finished line of a text subtree. index is
// the running line number within the transform's scope.
type Transform func(line string, index int) string

// AttrStatic is the reserved attribute marking a static region node.
const AttrStatic = "is-static"

type node struct {
	id       NodeID
	kind     Kind
	declared Kind
	parent   NodeID
	children []NodeID

	style     StyleRecord
	attrs     map[string]any
	text      string
	transform Transform

	handle   layout.Handle
	dirty    bool
	resolved ResolvedStyle
	spans    []span

	onDestroy []func()
}

func (n *node) isStatic() bool {
	v, ok := n.attrs[AttrStatic].(bool)
	return ok && v
}

func (n *node) indexOf(child NodeID) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// kindDefaults returns the style every new node of kind starts with.
func kindDefaults(k Kind) StyleRecord {
	switch k {
	case KindBox:
		return StyleRecord{
			FlexDirection: Set(FlexRow),
			FlexWrap:      Set(FlexNoWrap),
			FlexGrow:      Set(0.0),
			FlexShrink:    Set(1.0),
		}
	case KindText:
		return StyleRecord{
			FlexDirection: Set(FlexRow),
			FlexGrow:      Set(0.0),
			FlexShrink:    Set(1.0),
		}
	}
	return StyleRecord{}
}
