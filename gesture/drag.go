package gesture

import (
	"fmt"
	"time"

	"honnef.co/go/tap/f32"
	"honnef.co/go/tap/io/pointer"
	"honnef.co/go/tap/schedule"
	"honnef.co/go/tap/tree"
)

var _ tree.Handler = (*ConstrainedDrag)(nil)

// DragDirection is the direction a constrained drag has committed to.
type DragDirection uint8

const (
	// DragNone is the direction right after a press.
	DragNone DragDirection = iota
	DragLowToHigh
	DragHighToLow
	// DragFree is unconstrained dragging.
	DragFree
)

func (d DragDirection) String() string {
	switch d {
	case DragNone:
		return "none"
	case DragLowToHigh:
		return "low-to-high"
	case DragHighToLow:
		return "high-to-low"
	case DragFree:
		return "free"
	default:
		return fmt.Sprintf("DragDirection(%d)", d)
	}
}

// ConstrainedDrag is a PointerClick for slider-like controls that adds dragging.
//
// A press resets Direction to DragNone. The first move after that claims DragFree, unless
// something set a different direction in the meantime; the click callback may, for example,
// decide that a press beside a slider's thumb pages the value in one direction. The drag
// never overwrites a direction it didn't set itself. While the direction is DragFree, every
// move calls OnDrag, which can read Delta.
type ConstrainedDrag struct {
	PointerClick

	// OnPress is called when a press starts, after the start position has been recorded and
	// before the click callback may run.
	OnPress func()
	OnDrag  func()

	Direction DragDirection

	start f32.Point
}

func NewConstrainedDrag(onClick, onDrag func(), delay, interval time.Duration, s schedule.Scheduler) *ConstrainedDrag {
	d := &ConstrainedDrag{OnDrag: onDrag}
	d.init(onClick, delay, interval, s)
	return d
}

func (d *ConstrainedDrag) Bind(host Host, target tree.ID) {
	d.rebind(host, target, d)
}

func (d *ConstrainedDrag) HandleEvent(ev pointer.Event) pointer.Propagation {
	s := d.classify(ev)
	switch s.phase {
	case phaseDown:
		d.start = s.local
		d.Direction = DragNone
		if d.OnPress != nil {
			d.OnPress()
		}
		return d.down(ev, s)
	case phaseMove:
		if d.Direction == DragNone {
			d.Direction = DragFree
		}
		res := d.move(s)
		if d.Direction == DragFree && d.OnDrag != nil {
			d.OnDrag()
		}
		return res
	default:
		return d.dispatch(ev, s)
	}
}

// StartPosition returns the press position in the target's local space.
func (d *ConstrainedDrag) StartPosition() f32.Point {
	return d.start
}

// Delta returns how far the pointer moved since the press. It is only meaningful while the
// gesture is active.
func (d *ConstrainedDrag) Delta() f32.Point {
	return d.lastPos.Sub(d.start)
}
