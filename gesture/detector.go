package gesture

import (
	"time"

	"honnef.co/go/tap/f32"
	"honnef.co/go/tap/io/pointer"
	"honnef.co/go/tap/tree"

	"go.uber.org/zap"
)

var _ tree.Observer = (*ClickDetector)(nil)

// Hierarchy is what a ClickDetector needs to know about the element tree.
type Hierarchy interface {
	WorldBounds(id tree.ID) f32.Rectangle
	CommonAncestor(x, y tree.ID) tree.ID
	DispatchClick(ev tree.ClickEvent)
}

var _ Hierarchy = (*tree.Router)(nil)

type clickSlot struct {
	target  tree.ID
	downPos f32.Point
	// lastDown is only meaningful while timing is set. A move between presses clears timing,
	// which restarts the next press at a count of one.
	lastDown time.Duration
	timing   bool
	count    int
}

// ClickDetector counts multi-clicks per pointer and synthesizes click notifications. It
// works on the pointer family of events only, which includes the mirrors of mouse input, and
// is independent of any gestures bound to the elements.
//
// A click is attributed to the nearest common ancestor of the pressed and the released
// element, so pressing on one element and releasing on a sibling clicks their parent.
//
// Each input-routing context should have its own detector.
type ClickDetector struct {
	Threshold time.Duration

	h      Hierarchy
	logger *zap.Logger
	slots  [pointer.MaxPointers]clickSlot
}

// NewClickDetector returns a detector that treats presses at most threshold apart as part of
// the same multi-click sequence. A threshold of zero selects pointer.DefaultDoubleClickThreshold.
func NewClickDetector(h Hierarchy, threshold time.Duration, logger *zap.Logger) *ClickDetector {
	if threshold == 0 {
		threshold = pointer.DefaultDoubleClickThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClickDetector{
		Threshold: threshold,
		h:         h,
		logger:    logger,
	}
}

// ObserveEvent feeds ev, which was routed to target, to the detector.
func (d *ClickDetector) ObserveEvent(ev pointer.Event, target tree.ID) {
	pid, ok := ev.Pointer()
	if !ok {
		return
	}
	if int(pid) >= len(d.slots) {
		d.logger.Debug("dropping event of untracked pointer", zap.Stringer("event", ev))
		return
	}
	slot := &d.slots[pid]

	switch ev.Kind {
	case pointer.Press:
		if ev.Button == pointer.Primary {
			if target == tree.None {
				d.logger.Debug("ignoring press without target", zap.Stringer("event", ev))
				return
			}
			d.start(slot, ev, target)
		} else if chorded(ev) {
			d.interrupt(slot)
		}
	case pointer.Release:
		if ev.Button == pointer.Primary {
			d.send(slot, ev, target)
		} else if chorded(ev) {
			d.interrupt(slot)
		}
	case pointer.Move:
		d.interrupt(slot)
	case pointer.Cancel, pointer.Stationary, pointer.DragUpdate:
		*slot = clickSlot{}
	}
}

func (d *ClickDetector) start(slot *clickSlot, ev pointer.Event, target tree.ID) {
	if slot.target != target {
		*slot = clickSlot{}
	}
	slot.target = target
	if !slot.timing || ev.Time-slot.lastDown > d.Threshold {
		slot.count = 1
	} else {
		slot.count++
	}
	slot.lastDown = ev.Time
	slot.timing = true
	slot.downPos = ev.Position
}

// chorded reports whether ev changes a button while other buttons are held. A chorded edge of
// a non-primary button counts as movement within the held press, while a standalone press or
// release of another button leaves the click sequence alone.
func chorded(ev pointer.Event) bool {
	return ev.Buttons&^ev.Button.Mask() != 0
}

// interrupt breaks the timing of the current sequence without forgetting its target.
func (d *ClickDetector) interrupt(slot *clickSlot) {
	if slot.target != tree.None {
		slot.timing = false
	}
}

func (d *ClickDetector) send(slot *clickSlot, ev pointer.Event, target tree.ID) {
	if target == tree.None || !d.h.WorldBounds(target).Contains(ev.Position) {
		return
	}
	if slot.target == tree.None || slot.count <= 0 {
		return
	}
	anc := d.h.CommonAncestor(slot.target, target)
	if anc == tree.None {
		return
	}
	d.h.DispatchClick(tree.ClickEvent{
		Target:     anc,
		Event:      ev,
		ClickCount: slot.count,
	})
}

// Reset forgets the click sequence of pointer pid.
func (d *ClickDetector) Reset(pid pointer.ID) {
	if int(pid) < len(d.slots) {
		d.slots[pid] = clickSlot{}
	}
}

// ClickCount returns the running click count of pointer pid.
func (d *ClickDetector) ClickCount(pid pointer.ID) int {
	if int(pid) >= len(d.slots) {
		return 0
	}
	return d.slots[pid].count
}

// PressPosition returns where pointer pid was last pressed, in world space.
func (d *ClickDetector) PressPosition(pid pointer.ID) f32.Point {
	if int(pid) >= len(d.slots) {
		return f32.Point{}
	}
	return d.slots[pid].downPos
}
