package inkwell

import "time"

// DotsFrames is the braille "dots" spinner animation.
var DotsFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerInterval is the frame period of DotsFrames.
const SpinnerInterval = 80 * time.Millisecond

// Spinner animates a text node through a list of frames. The animation is
// owned by the node and stops when the node is destroyed.
type Spinner struct {
	node   NodeID
	frames []string
	frame  int
}

// StartSpinner shows the first frame on node and advances it every
// SpinnerInterval. node must be a Text or text leaf node.
func StartSpinner(s *Session, node NodeID) (*Spinner, error) {
	return StartSpinnerFrames(s, node, DotsFrames, SpinnerInterval)
}

// StartSpinnerFrames is StartSpinner with custom frames and interval.
func StartSpinnerFrames(s *Session, node NodeID, frames []string, interval time.Duration) (*Spinner, error) {
	sp := &Spinner{node: node, frames: frames}
	if err := s.Renderer().SetText(node, sp.current()); err != nil {
		return nil, err
	}
	if err := s.Every(node, interval, sp.advance); err != nil {
		return nil, err
	}
	return sp, nil
}

// Frame returns the index of the frame on screen.
func (sp *Spinner) Frame() int {
	return sp.frame
}

func (sp *Spinner) current() string {
	if len(sp.frames) == 0 {
		return ""
	}
	return sp.frames[sp.frame]
}

func (sp *Spinner) advance(t *Tree) error {
	if len(sp.frames) == 0 || !t.Exists(sp.node) {
		return nil
	}
	sp.frame = (sp.frame + 1) % len(sp.frames)
	return t.SetText(sp.node, sp.current())
}
