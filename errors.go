package inkwell

import (
	"errors"
	"fmt"

	"github.com/grindlemire/go-inkwell/internal/layout"
)

var (
	// ErrUnknownNode is returned when an id does not address a live node.
	ErrUnknownNode = errors.New("unknown node")
	// ErrNotChild is returned when a referenced node is not a child of the
	// stated parent.
	ErrNotChild = errors.New("not a child of parent")
	// ErrInvalidNesting is returned when a node kind may not be placed
	// under the requested parent.
	ErrInvalidNesting = errors.New("invalid nesting")
	// ErrCycle is returned when a node would become its own descendant.
	ErrCycle = errors.New("node would become its own descendant")
	// ErrUnmounted is returned for any operation after Unmount.
	ErrUnmounted = errors.New("tree is unmounted")
	// ErrNotText is returned when a text operation targets a non-text node.
	ErrNotText = errors.New("not a text node")
	// ErrInvalidKind is returned when creating a node of a kind that cannot
	// be created directly.
	ErrInvalidKind = errors.New("invalid node kind")
	// ErrStopped is returned when queueing work on a stopped session.
	ErrStopped = errors.New("session is stopped")
)

// MutationError describes a rejected tree mutation. The tree is left
// unchanged when one is returned.
type MutationError struct {
	Op     string
	Parent NodeID
	Child  NodeID
	Before NodeID
	Err    error
}

func (e *MutationError) Error() string {
	msg := fmt.Sprintf("inkwell: %s parent=%d child=%d", e.Op, e.Parent, e.Child)
	if e.Before != NoNode {
		msg += fmt.Sprintf(" before=%d", e.Before)
	}
	return msg + ": " + e.Err.Error()
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// LayoutError is returned by Commit when layout produced non-finite
// geometry. No frame is emitted for that commit.
type LayoutError struct {
	Node  NodeID
	Field string
	Value float64
	Err   error
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("inkwell: layout of node %d produced non-finite %s (%v)", e.Node, e.Field, e.Value)
}

func (e *LayoutError) Unwrap() error {
	return e.Err
}

func newLayoutError(t *Tree, err error) error {
	var geo *layout.GeometryError
	if !errors.As(err, &geo) {
		return err
	}
	return &LayoutError{
		Node:  t.nodeForHandle(geo.Handle),
		Field: geo.Field,
		Value: geo.Value,
		Err:   err,
	}
}
