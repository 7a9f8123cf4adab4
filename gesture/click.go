package gesture

import (
	"time"

	"honnef.co/go/tap/f32"
	"honnef.co/go/tap/io/pointer"
	"honnef.co/go/tap/schedule"
	"honnef.co/go/tap/tree"

	"go.uber.org/zap"
)

var _ tree.Handler = (*Click)(nil)

type phase uint8

const (
	phaseNone phase = iota
	phaseDown
	phaseMove
	phaseUp
	phaseCancel
)

// step is the outcome of classifying an event against a gesture's current state.
type step struct {
	phase phase
	pid   pointer.ID
	// local is the event position in the target's local space.
	local f32.Point
}

// Click recognizes presses and clicks of legacy mouse events on its target.
//
// With Delay and Interval both zero, a click is reported once, on release, if the release
// happens within the target. Otherwise the click repeats: it is reported immediately on a press
// within the target, then after Delay, and every Interval after that, for as long as the button
// is held and the pointer is over the target.
//
// While pressed, Click holds the pointer capture and keeps the target's active pseudo-state in
// sync with whether the pointer is over it.
type Click struct {
	Manipulator

	OnClick func()
	// OnClickEvent is like OnClick, but receives the event that completed the click. The event
	// is nil for repeat ticks.
	OnClickEvent func(ev *pointer.Event)

	Delay    time.Duration
	Interval time.Duration
	// Scheduler drives repeat ticks. It is only needed if the click repeats.
	Scheduler schedule.Scheduler

	active  bool
	pid     pointer.ID
	lastPos f32.Point
	// repeat is created on first use and paused, never discarded, on release.
	repeat schedule.Handle
}

// NewClick returns a click that is started by the primary button.
func NewClick(onClick func(), delay, interval time.Duration, s schedule.Scheduler) *Click {
	c := &Click{}
	c.init(onClick, delay, interval, s)
	return c
}

func (c *Click) init(onClick func(), delay, interval time.Duration, s schedule.Scheduler) {
	c.Activators = []ActivationFilter{{Button: pointer.Primary}}
	c.OnClick = onClick
	c.Delay = delay
	c.Interval = interval
	c.Scheduler = s
}

// Bind binds the click to target. Binding to a different target or host cancels a press in
// progress. A bound click has to be unbound before it can be garbage collected independently
// of the host.
func (c *Click) Bind(host Host, target tree.ID) {
	c.rebind(host, target, c)
}

// rebind cancels a press on the previous target before binding self to target.
func (c *Click) rebind(host Host, target tree.ID, self tree.Handler) {
	if c.host != host || c.target != target {
		c.cancel()
	}
	c.bind(host, target, self)
}

// Unbind unbinds the gesture from its target, cancelling a press in progress. Unbinding an
// unbound gesture does nothing.
func (c *Click) Unbind() {
	c.cancel()
	c.unbind()
}

// Active reports whether the gesture is pressed.
func (c *Click) Active() bool {
	return c.active
}

// LastPosition returns the last pointer position seen while pressed, in the target's local
// space.
func (c *Click) LastPosition() f32.Point {
	return c.lastPos
}

// Pointer returns the pointer holding the press.
func (c *Click) Pointer() (pointer.ID, bool) {
	return c.pid, c.active
}

// Repeating reports whether the click repeats while held.
func (c *Click) Repeating() bool {
	return c.Delay > 0 || c.Interval > 0
}

func (c *Click) HandleEvent(ev pointer.Event) pointer.Propagation {
	return c.dispatch(ev, c.classify(ev))
}

// classify accepts mouse-family events and the loss of capture.
func (c *Click) classify(ev pointer.Event) step {
	if c.host == nil {
		return step{}
	}
	if ev.Kind == pointer.CaptureLost {
		if c.active && ev.PointerID == c.pid {
			return step{phase: phaseCancel, pid: c.pid}
		}
		return step{}
	}
	if ev.Family != pointer.FamilyMouse || ev.Kind == pointer.Cancel {
		return step{}
	}
	return c.classifyFor(ev, pointer.MousePointerID)
}

// classifyFor classifies ev as an event of pointer pid.
func (c *Click) classifyFor(ev pointer.Event, pid pointer.ID) step {
	switch ev.Kind {
	case pointer.Press:
		if c.active {
			c.log().Debug("ignoring press while pressed",
				zap.Stringer("event", ev), zap.Uint16("pressed", uint16(c.pid)))
			return step{}
		}
		if !c.CanStart(ev) {
			return step{}
		}
		return step{phase: phaseDown, pid: pid, local: c.host.ToLocal(c.target, ev.Position)}
	case pointer.Move:
		if !c.active || pid != c.pid {
			return step{}
		}
		return step{phase: phaseMove, pid: pid, local: c.host.ToLocal(c.target, ev.Position)}
	case pointer.Release:
		if !c.active || pid != c.pid || !c.CanStop(ev) {
			return step{}
		}
		return step{phase: phaseUp, pid: pid, local: c.host.ToLocal(c.target, ev.Position)}
	case pointer.Cancel:
		if !c.active || pid != c.pid {
			return step{}
		}
		return step{phase: phaseCancel, pid: pid}
	default:
		return step{}
	}
}

func (c *Click) dispatch(ev pointer.Event, s step) pointer.Propagation {
	switch s.phase {
	case phaseDown:
		return c.down(ev, s)
	case phaseMove:
		return c.move(s)
	case phaseUp:
		return c.up(ev, s)
	case phaseCancel:
		c.cancel()
		return pointer.Stop
	default:
		return pointer.Continue
	}
}

func (c *Click) down(ev pointer.Event, s step) pointer.Propagation {
	c.active = true
	c.pid = s.pid
	c.host.Capture(s.pid, c.target)
	c.lastPos = s.local
	if c.Repeating() {
		if c.host.Contains(c.target, s.local) {
			c.invoke(&ev)
			if !c.active {
				// The callback ended the press, for example by unbinding the gesture.
				return pointer.StopImmediate
			}
		}
		c.armRepeat()
	}
	c.host.SetActive(c.target, true)
	return pointer.StopImmediate
}

func (c *Click) move(s step) pointer.Propagation {
	c.lastPos = s.local
	c.host.SetActive(c.target, c.host.Contains(c.target, s.local))
	return pointer.Stop
}

func (c *Click) up(ev pointer.Event, s step) pointer.Propagation {
	c.active = false
	c.host.ReleaseCapture(s.pid, c.target)
	c.host.SetActive(c.target, false)
	if c.Repeating() {
		c.pauseRepeat()
	} else if c.host.Contains(c.target, s.local) {
		c.invoke(&ev)
	}
	return pointer.Stop
}

// cancel ends a press without reporting a click. It does nothing if the gesture isn't pressed.
func (c *Click) cancel() {
	if !c.active {
		return
	}
	c.active = false
	c.host.ReleaseCapture(c.pid, c.target)
	c.host.SetActive(c.target, false)
	c.pauseRepeat()
}

func (c *Click) armRepeat() {
	if c.repeat != nil {
		c.repeat.Rearm(c.Delay)
		return
	}
	if c.Scheduler == nil {
		c.log().Warn("repeating click has no scheduler", zap.Uint32("target", uint32(c.target)))
		return
	}
	c.repeat = c.Scheduler.ScheduleRepeating(c.tick, c.Interval, c.Delay)
}

func (c *Click) pauseRepeat() {
	if c.repeat != nil {
		c.repeat.Pause()
	}
}

func (c *Click) tick() {
	if !c.active || !c.Repeating() || (c.OnClick == nil && c.OnClickEvent == nil) {
		return
	}
	if c.host.Contains(c.target, c.lastPos) {
		c.invoke(nil)
		if c.active {
			c.host.SetActive(c.target, true)
		}
	} else {
		c.host.SetActive(c.target, false)
	}
}

func (c *Click) invoke(ev *pointer.Event) {
	if c.OnClick != nil {
		c.OnClick()
	}
	if c.OnClickEvent != nil {
		c.OnClickEvent(ev)
	}
}
