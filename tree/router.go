package tree

import (
	"slices"

	"honnef.co/go/tap/f32"
	"honnef.co/go/tap/io/pointer"

	"go.uber.org/zap"
)

// Handler receives the events routed to the element it is registered on, and to that
// element's descendants unless they stop propagation.
type Handler interface {
	HandleEvent(ev pointer.Event) pointer.Propagation
}

// Observer sees every routed event after handlers have run, together with the element the
// event was routed to.
type Observer interface {
	ObserveEvent(ev pointer.Event, target ID)
}

// ClickEvent is the synthesized click notification.
type ClickEvent struct {
	// Target is the element the click is attributed to.
	Target ID
	// Event is the release that completed the click.
	Event      pointer.Event
	ClickCount int
}

// Router routes pointer events through an Arena. It also arbitrates pointer capture: while
// an element holds the capture of a pointer, that pointer's events are routed to it instead
// of the element under the pointer.
//
// A Router belongs to a single input-routing context and must only be used from the
// goroutine that delivers that context's input.
type Router struct {
	Arena  *Arena
	Logger *zap.Logger

	handlers  map[ID][]Handler
	listeners map[ID][]func(ClickEvent)
	observers []Observer
	captures  [pointer.MaxPointers]ID
}

func NewRouter(arena *Arena, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		Arena:     arena,
		Logger:    logger,
		handlers:  make(map[ID][]Handler),
		listeners: make(map[ID][]func(ClickEvent)),
	}
}

// AddHandler registers h on id. Registering the same handler twice has no effect.
func (r *Router) AddHandler(id ID, h Handler) {
	hs := r.handlers[id]
	if slices.Contains(hs, h) {
		return
	}
	r.handlers[id] = append(hs, h)
}

// RemoveHandler unregisters h from id. Removing a handler that isn't registered has no effect.
func (r *Router) RemoveHandler(id ID, h Handler) {
	hs := r.handlers[id]
	i := slices.Index(hs, h)
	if i == -1 {
		return
	}
	hs = slices.Delete(slices.Clone(hs), i, i+1)
	if len(hs) == 0 {
		delete(r.handlers, id)
	} else {
		r.handlers[id] = hs
	}
}

// Handlers returns the number of handlers registered on id.
func (r *Router) Handlers(id ID) int {
	return len(r.handlers[id])
}

// Observe adds an observer that sees every routed event.
func (r *Router) Observe(o Observer) {
	r.observers = append(r.observers, o)
}

// OnClick registers fn to be called for click notifications dispatched at id or one of its
// descendants.
func (r *Router) OnClick(id ID, fn func(ClickEvent)) {
	r.listeners[id] = append(r.listeners[id], fn)
}

// DispatchClick delivers ev to the click listeners of ev.Target and its ancestors, nearest
// first.
func (r *Router) DispatchClick(ev ClickEvent) {
	for id := ev.Target; id != None; id = r.Arena.Parent(id) {
		for _, fn := range r.listeners[id] {
			fn(ev)
		}
	}
}

func (r *Router) Contains(id ID, local f32.Point) bool { return r.Arena.Contains(id, local) }
func (r *Router) ToLocal(id ID, p f32.Point) f32.Point  { return r.Arena.ToLocal(id, p) }
func (r *Router) SetActive(id ID, active bool)          { r.Arena.SetActive(id, active) }
func (r *Router) WorldBounds(id ID) f32.Rectangle       { return r.Arena.WorldBounds(id) }
func (r *Router) CommonAncestor(x, y ID) ID             { return r.Arena.CommonAncestor(x, y) }

// HasCapture reports whether id holds the capture of pid.
func (r *Router) HasCapture(pid pointer.ID, id ID) bool {
	return id != None && r.Capturing(pid) == id
}

func (r *Router) validPointer(pid pointer.ID) bool {
	return int(pid) < len(r.captures)
}

// Capturing returns the element holding the capture of pid, or None.
func (r *Router) Capturing(pid pointer.ID) ID {
	if !r.validPointer(pid) {
		return None
	}
	id := r.captures[pid]
	if !r.Arena.Alive(id) {
		r.captures[pid] = None
		return None
	}
	return id
}

// Capture gives id the capture of pid. If another element held it, that element's handlers
// receive a CaptureLost event.
func (r *Router) Capture(pid pointer.ID, id ID) {
	if !r.validPointer(pid) {
		r.Logger.Debug("ignoring capture of out-of-range pointer", zap.Uint16("pointer", uint16(pid)))
		return
	}
	prev := r.Capturing(pid)
	if prev == id {
		return
	}
	r.captures[pid] = id
	if prev != None {
		ev := pointer.FromPointer(pointer.PointerEvent{Kind: pointer.CaptureLost, PointerID: pid})
		r.deliver(prev, ev)
	}
}

// ReleaseCapture releases id's capture of pid. It does nothing if id doesn't hold it.
func (r *Router) ReleaseCapture(pid pointer.ID, id ID) {
	if r.HasCapture(pid, id) {
		r.captures[pid] = None
	}
}

// Remove removes id and its descendants from the arena. Captures held by removed elements are
// revoked first, and their holders receive CaptureLost while they are still alive. Handlers
// and click listeners of removed elements are dropped.
//
// Removing elements directly from the arena also drops their captures, but silently.
func (r *Router) Remove(id ID) {
	if !r.Arena.Alive(id) {
		return
	}
	for i := range r.captures {
		pid := pointer.ID(i)
		holder := r.Capturing(pid)
		if holder == None || !r.within(holder, id) {
			continue
		}
		r.captures[pid] = None
		r.deliver(holder, pointer.FromPointer(pointer.PointerEvent{Kind: pointer.CaptureLost, PointerID: pid}))
	}
	r.Arena.Remove(id)
	for hid := range r.handlers {
		if !r.Arena.Alive(hid) {
			delete(r.handlers, hid)
		}
	}
	for lid := range r.listeners {
		if !r.Arena.Alive(lid) {
			delete(r.listeners, lid)
		}
	}
}

// within reports whether id is root or one of its descendants.
func (r *Router) within(id, root ID) bool {
	for ; id != None; id = r.Arena.Parent(id) {
		if id == root {
			return true
		}
	}
	return false
}

// Route delivers ev and returns the element it was routed to. The event first goes to the
// handlers of the target, then bubbles towards the root until a handler stops it. Observers
// see the event last, even if it was stopped.
func (r *Router) Route(ev pointer.Event) ID {
	pid := ev.PointerID
	if ev.Family == pointer.FamilyMouse {
		pid = pointer.MousePointerID
	}
	target := r.Capturing(pid)
	if target == None {
		target = r.Arena.HitTest(ev.Position)
	}
	if target == None {
		r.Logger.Debug("event has no target", zap.Stringer("event", ev))
	}

	for id := target; id != None; id = r.Arena.Parent(id) {
		if r.deliver(id, ev) != pointer.Continue {
			break
		}
	}
	for _, o := range r.observers {
		o.ObserveEvent(ev, target)
	}
	return target
}

// deliver runs the handlers of a single element.
func (r *Router) deliver(id ID, ev pointer.Event) pointer.Propagation {
	// Handlers may register and unregister handlers while we iterate.
	hs := slices.Clone(r.handlers[id])
	res := pointer.Continue
	for _, h := range hs {
		switch h.HandleEvent(ev) {
		case pointer.StopImmediate:
			return pointer.StopImmediate
		case pointer.Stop:
			res = pointer.Stop
		}
	}
	return res
}
