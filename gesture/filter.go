package gesture

import (
	"fmt"
	"strings"

	"honnef.co/go/tap/io/pointer"

	"gioui.org/io/key"
)

// matchedModifiers are the modifiers that activation filters look at. Other modifiers, such
// as Super, neither prevent nor enable a match.
const matchedModifiers = key.ModAlt | key.ModCtrl | key.ModShift | key.ModCommand

// ActivationFilter describes the button, modifiers and click count an event must have to
// start a gesture.
type ActivationFilter struct {
	Button pointer.Button
	// Modifiers must match the event's modifiers exactly: every modifier in the filter must be
	// held, and no other.
	Modifiers key.Modifiers
	// ClickCount is the minimum click count. Zero accepts any count.
	ClickCount int
}

// Matches reports whether ev satisfies the filter.
func (f ActivationFilter) Matches(ev pointer.Activatable) bool {
	if ev.ActivationButton() != f.Button {
		return false
	}
	if ev.ActivationModifiers()&matchedModifiers != f.Modifiers&matchedModifiers {
		return false
	}
	return f.ClickCount == 0 || ev.ActivationClickCount() >= f.ClickCount
}

func (f ActivationFilter) String() string {
	var sb strings.Builder
	if mods := f.Modifiers & matchedModifiers; mods != 0 {
		sb.WriteString(strings.ReplaceAll(mods.String(), "|", "+"))
		sb.WriteByte('+')
	}
	sb.WriteString(f.Button.String())
	if f.ClickCount > 0 {
		fmt.Fprintf(&sb, "×%d", f.ClickCount)
	}
	return sb.String()
}
