// Package gesture recognizes clicks, press-and-hold repeats and constrained drags from
// canonical pointer events, and counts multi-clicks per pointer.
package gesture

/*
   Two ways of looking at the same input

   Element-local gestures (Click, PointerClick, ConstrainedDrag) are bound to a single element
   and drive its interaction: they capture the pointer on press, toggle the element's active
   pseudo-state while the pointer is held, and decide whether a release completes a click.
   They only ever see the events routed to their element.

   The ClickDetector sits at the routing root and sees every event, whether or not a gesture
   is bound to the element under the pointer. It doesn't own any element-local state. Its job
   is counting: for each pointer it remembers the element of the last primary press and when
   it happened, and on release it synthesizes a click notification with the accumulated click
   count. Press and release may happen over different elements, in which case the click goes to
   their lowest common ancestor, if that ancestor contains the release point.

   Both consume the same event stream. Mouse input arrives twice, once as a legacy mouse event
   and once as its pointer-family mirror. Gestures handle the legacy event and ignore the
   mirror, the detector counts the pointer event and ignores the legacy one. Either way, each
   physical action is handled once.

   Races

   - A second button going down while the first is held doesn't restart a press: a pressed
     gesture ignores further presses, and a release only ends the press if it is for the
     button that started it.

   - A pointer leaving the element mid-press doesn't end the press. The gesture holds the
     pointer capture and keeps receiving events; it only clears the active pseudo-state until
     the pointer comes back.

   - Capture can be revoked from the outside. The gesture receives CaptureLost and treats it
     like a cancellation.

   - Repeat ticks come from a scheduler and are serialized with input by the event loop. A
     tick that arrives after a release finds the gesture inactive and does nothing.
*/

import (
	"honnef.co/go/tap/f32"
	"honnef.co/go/tap/io/pointer"
	"honnef.co/go/tap/tree"
)

// Host is the element collaborator that gestures are bound through. *tree.Router implements
// it.
type Host interface {
	// Contains reports whether a point in id's local space lies within its bounds.
	Contains(id tree.ID, local f32.Point) bool
	// ToLocal transforms an event-space position into id's local space.
	ToLocal(id tree.ID, p f32.Point) f32.Point
	// SetActive sets the "active" pseudo-state of id.
	SetActive(id tree.ID, active bool)

	Capture(pid pointer.ID, id tree.ID)
	ReleaseCapture(pid pointer.ID, id tree.ID)
	HasCapture(pid pointer.ID, id tree.ID) bool

	AddHandler(id tree.ID, h tree.Handler)
	RemoveHandler(id tree.ID, h tree.Handler)
}

var _ Host = (*tree.Router)(nil)
