package gesture

import (
	"time"

	"honnef.co/go/tap/io/pointer"
	"honnef.co/go/tap/schedule"
	"honnef.co/go/tap/tree"
)

var _ tree.Handler = (*PointerClick)(nil)

// PointerClick is a Click that also accepts multi-pointer events, such as touches. Each press
// belongs to the pointer that started it; events of other pointers are ignored until it ends.
// A pointer cancellation ends the press without a click.
//
// Pointer events of the mouse pointer are mirrors of the legacy mouse events that Click
// already handles, and are ignored.
type PointerClick struct {
	Click
}

func NewPointerClick(onClick func(), delay, interval time.Duration, s schedule.Scheduler) *PointerClick {
	c := &PointerClick{}
	c.init(onClick, delay, interval, s)
	return c
}

func (c *PointerClick) Bind(host Host, target tree.ID) {
	c.rebind(host, target, c)
}

func (c *PointerClick) HandleEvent(ev pointer.Event) pointer.Propagation {
	return c.dispatch(ev, c.classify(ev))
}

func (c *PointerClick) classify(ev pointer.Event) step {
	if ev.Family != pointer.FamilyPointer || ev.Kind == pointer.CaptureLost {
		return c.Click.classify(ev)
	}
	if c.host == nil || ev.IsMirror() {
		return step{}
	}
	return c.classifyFor(ev, ev.PointerID)
}
