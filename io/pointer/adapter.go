package pointer

import (
	"math/bits"
	"time"

	giopointer "gioui.org/io/pointer"
)

// Adapter converts Gio pointer events into canonical events. Gio reports the set of held
// buttons; the adapter remembers that set per pointer to work out which button changed, and
// counts successive presses of the same button for the platform click count.
//
// Mouse input yields two events per Gio event: the pointer-family event, which is a mirror,
// followed by its legacy mouse-family counterpart.
type Adapter struct {
	// DoubleClickThreshold bounds the time between two presses counted as one multi-click.
	// The zero value means DefaultDoubleClickThreshold.
	DoubleClickThreshold time.Duration

	pointers [MaxPointers]adapterPointer
}

type adapterPointer struct {
	buttons    Buttons
	lastPress  time.Duration
	lastButton Button
	clicks     int
}

// Convert appends the canonical events for raw to dst and returns the extended slice. Events
// for pointers that don't fit in the per-pointer tables are dropped.
func (a *Adapter) Convert(dst []Event, raw giopointer.Event) []Event {
	id, ok := adapterID(raw)
	if !ok {
		return dst
	}
	st := &a.pointers[id]

	buttons := Buttons(raw.Buttons)
	if raw.Source != giopointer.Mouse {
		// Touch contact has no buttons of its own and acts as the primary button.
		switch raw.Kind {
		case giopointer.Press, giopointer.Drag:
			buttons = ButtonPrimary
		case giopointer.Release, giopointer.Cancel:
			buttons = 0
		default:
			buttons = st.buttons
		}
	}

	pe := PointerEvent{
		Source:    Mouse,
		PointerID: id,
		Button:    NoButton,
		Position:  raw.Position,
		Scroll:    raw.Scroll,
		Modifiers: raw.Modifiers,
		Time:      raw.Time,
	}
	if raw.Source != giopointer.Mouse {
		pe.Source = Touch
	}

	switch raw.Kind {
	case giopointer.Press:
		for changed := buttons &^ st.buttons; changed != 0; changed &= changed - 1 {
			b := Button(bits.TrailingZeros32(uint32(changed)))
			st.buttons |= b.Mask()
			a.countClick(st, b, raw.Time)
			pe.Kind = Press
			pe.Button = b
			pe.Buttons = st.buttons
			pe.ClickCount = st.clicks
			dst = emit(dst, pe)
		}
	case giopointer.Release:
		for changed := st.buttons &^ buttons; changed != 0; changed &= changed - 1 {
			b := Button(bits.TrailingZeros32(uint32(changed)))
			st.buttons &^= b.Mask()
			pe.Kind = Release
			pe.Button = b
			pe.Buttons = st.buttons
			pe.ClickCount = st.clicks
			dst = emit(dst, pe)
		}
	case giopointer.Move, giopointer.Drag:
		pe.Kind = Move
		pe.Buttons = buttons
		dst = emit(dst, pe)
	case giopointer.Cancel:
		st.buttons = 0
		pe.Kind = Cancel
		dst = emit(dst, pe)
	case giopointer.Enter:
		pe.Kind = Enter
		pe.Buttons = st.buttons
		dst = emit(dst, pe)
	case giopointer.Leave:
		pe.Kind = Leave
		pe.Buttons = st.buttons
		dst = emit(dst, pe)
	case giopointer.Scroll:
		pe.Kind = Scroll
		pe.Buttons = st.buttons
		dst = emit(dst, pe)
	}
	return dst
}

func (a *Adapter) countClick(st *adapterPointer, b Button, t time.Duration) {
	threshold := a.DoubleClickThreshold
	if threshold == 0 {
		threshold = DefaultDoubleClickThreshold
	}
	if st.clicks > 0 && b == st.lastButton && t-st.lastPress <= threshold {
		st.clicks++
	} else {
		st.clicks = 1
	}
	st.lastPress = t
	st.lastButton = b
}

func adapterID(raw giopointer.Event) (ID, bool) {
	if raw.Source == giopointer.Mouse {
		return MousePointerID, true
	}
	id := int(raw.PointerID) + int(FirstTouchPointerID)
	if id >= MaxPointers {
		return 0, false
	}
	return ID(id), true
}

func emit(dst []Event, pe PointerEvent) []Event {
	dst = append(dst, FromPointer(pe))
	if pe.Source != Mouse || pe.Kind == Cancel {
		// The mouse family has no cancellation.
		return dst
	}
	return append(dst, FromMouse(MouseEvent{
		Kind:       pe.Kind,
		Button:     pe.Button,
		Buttons:    pe.Buttons,
		Position:   pe.Position,
		Scroll:     pe.Scroll,
		Modifiers:  pe.Modifiers,
		ClickCount: pe.ClickCount,
		Time:       pe.Time,
	}))
}
