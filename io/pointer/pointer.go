// Package pointer defines the canonical input event consumed by gestures.
//
// Two event families reach an element: the legacy single-pointer mouse family and the
// multi-pointer family. Both are adapted into the same Event shape exactly once, at the point
// of ingestion, so that consumers switch on Kind and Family instead of inspecting
// concrete event types. The adaptation also decides, once, whether a pointer event is the
// mirror of a mouse event (see Event.IsMirror).
package pointer

import (
	"fmt"
	"strings"
	"time"

	"honnef.co/go/tap/f32"

	"gioui.org/io/key"
)

type Family uint8

const (
	// FamilyMouse is the legacy single-pointer family. Its events carry no pointer identity;
	// where one is needed, MousePointerID is implied.
	FamilyMouse Family = iota + 1
	// FamilyPointer is the multi-pointer family.
	FamilyPointer
)

func (f Family) String() string {
	switch f {
	case FamilyMouse:
		return "mouse"
	case FamilyPointer:
		return "pointer"
	default:
		return fmt.Sprintf("Family(%d)", f)
	}
}

// ID identifies a pointer. IDs index fixed-size per-pointer tables and are therefore smaller
// than MaxPointers.
type ID uint16

const (
	MousePointerID      ID = 0
	FirstTouchPointerID ID = 1

	MaxPointers = 32
)

// DefaultDoubleClickThreshold is the double-click time used when nothing better is
// configured.
const DefaultDoubleClickThreshold = 500 * time.Millisecond

type Kind uint16

const (
	Cancel Kind = 1 << iota
	Press
	Release
	Move
	Enter
	Leave
	Scroll
	// Stationary is reported for a pointer that is down but did not move this frame.
	Stationary
	// DragUpdate is signalled externally while a drag-and-drop operation is in progress.
	DragUpdate
	// CaptureLost is delivered to an element whose pointer capture was revoked.
	CaptureLost
)

var kindNames = [...]string{
	"Cancel", "Press", "Release", "Move", "Enter", "Leave", "Scroll", "Stationary", "DragUpdate", "CaptureLost",
}

func (k Kind) String() string {
	if k == 0 {
		return "Kind(0)"
	}
	var names []string
	for i, name := range kindNames {
		if k&(1<<i) != 0 {
			names = append(names, name)
			k &^= 1 << i
		}
	}
	if k != 0 {
		names = append(names, fmt.Sprintf("Kind(%#x)", uint16(k)))
	}
	return strings.Join(names, "|")
}

type Source uint8

const (
	Mouse Source = iota
	Touch
	Pen
)

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	case Pen:
		return "Pen"
	default:
		return fmt.Sprintf("Source(%d)", s)
	}
}

// Button enumerates a single button. It is what activation filters match against.
type Button int8

const (
	NoButton Button = iota - 1
	Primary
	Secondary
	Tertiary
)

// Mask returns the bit of b in a Buttons mask.
func (b Button) Mask() Buttons {
	if b < 0 {
		return 0
	}
	return 1 << uint(b)
}

func (b Button) String() string {
	switch b {
	case NoButton:
		return "none"
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Tertiary:
		return "tertiary"
	default:
		return fmt.Sprintf("Button(%d)", int8(b))
	}
}

type Buttons uint32

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user.
	ButtonPrimary Buttons = 1 << iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
)

// Contain reports whether all the buttons in b2 are in b.
func (b Buttons) Contain(b2 Buttons) bool {
	return b&b2 == b2
}

// Propagation is what an event handler reports back to the router.
type Propagation uint8

const (
	// Continue leaves the event to other handlers.
	Continue Propagation = iota
	// Stop halts propagation to ancestors once the current element's handlers have run.
	Stop
	// StopImmediate consumes the event: no further handler sees it.
	StopImmediate
)

// Activatable is the part of an event that activation filters look at. Both event shapes,
// Event and MouseEvent, implement it.
type Activatable interface {
	ActivationButton() Button
	ActivationModifiers() key.Modifiers
	ActivationClickCount() int
}

var _ Activatable = Event{}
var _ Activatable = MouseEvent{}

type Event struct {
	Family    Family
	Kind      Kind
	Source    Source
	PointerID ID
	Time      time.Duration
	// Button is the button whose state changed, for Press and Release. It is NoButton for all
	// other kinds.
	Button Button
	// Buttons are the buttons held after the event.
	Buttons   Buttons
	Position  f32.Point
	Scroll    f32.Point
	Modifiers key.Modifiers
	// ClickCount is the click count reported by the platform for Press and Release.
	ClickCount int

	mirror bool
}

// Pointer returns the event's pointer ID. Mouse-family events have no pointer identity.
func (ev Event) Pointer() (ID, bool) {
	if ev.Family != FamilyPointer {
		return 0, false
	}
	return ev.PointerID, true
}

// IsMirror reports whether ev is the pointer-family duplicate of a mouse-family event. Such
// events describe the same physical action as their mouse counterpart and must only be
// handled once.
func (ev Event) IsMirror() bool {
	return ev.mirror
}

func (ev Event) ActivationButton() Button           { return ev.Button }
func (ev Event) ActivationModifiers() key.Modifiers { return ev.Modifiers }
func (ev Event) ActivationClickCount() int          { return ev.ClickCount }

func (ev Event) String() string {
	return fmt.Sprintf("%s %s{id: %d, button: %s, buttons: %#x, pos: %v, t: %v}",
		ev.Family, ev.Kind, ev.PointerID, ev.Button, uint32(ev.Buttons), ev.Position, ev.Time)
}

// MouseEvent is the legacy single-pointer event shape.
type MouseEvent struct {
	Kind       Kind
	Button     Button
	Buttons    Buttons
	Position   f32.Point
	Scroll     f32.Point
	Modifiers  key.Modifiers
	ClickCount int
	Time       time.Duration
}

func (ev MouseEvent) ActivationButton() Button           { return ev.Button }
func (ev MouseEvent) ActivationModifiers() key.Modifiers { return ev.Modifiers }
func (ev MouseEvent) ActivationClickCount() int          { return ev.ClickCount }

// FromMouse adapts a legacy mouse event.
func FromMouse(ev MouseEvent) Event {
	if ev.Kind != Press && ev.Kind != Release {
		ev.Button = NoButton
	}
	return Event{
		Family:     FamilyMouse,
		Kind:       ev.Kind,
		Source:     Mouse,
		PointerID:  MousePointerID,
		Time:       ev.Time,
		Button:     ev.Button,
		Buttons:    ev.Buttons,
		Position:   ev.Position,
		Scroll:     ev.Scroll,
		Modifiers:  ev.Modifiers,
		ClickCount: ev.ClickCount,
	}
}

// PointerEvent is the multi-pointer event shape.
type PointerEvent struct {
	Kind       Kind
	Source     Source
	PointerID  ID
	Button     Button
	Buttons    Buttons
	Position   f32.Point
	Scroll     f32.Point
	Modifiers  key.Modifiers
	ClickCount int
	Time       time.Duration
}

// FromPointer adapts a multi-pointer event. An event for MousePointerID is marked as the
// mirror of its mouse-family counterpart.
func FromPointer(ev PointerEvent) Event {
	if ev.Kind != Press && ev.Kind != Release {
		ev.Button = NoButton
	}
	return Event{
		Family:     FamilyPointer,
		Kind:       ev.Kind,
		Source:     ev.Source,
		PointerID:  ev.PointerID,
		Time:       ev.Time,
		Button:     ev.Button,
		Buttons:    ev.Buttons,
		Position:   ev.Position,
		Scroll:     ev.Scroll,
		Modifiers:  ev.Modifiers,
		ClickCount: ev.ClickCount,
		mirror:     ev.PointerID == MousePointerID,
	}
}
