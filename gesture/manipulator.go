package gesture

import (
	"honnef.co/go/tap/io/pointer"
	"honnef.co/go/tap/tree"

	"go.uber.org/zap"
)

// Manipulator is the part shared by all element-local gestures: the activation filters, and
// the binding to one target element.
//
// A Manipulator never owns its target. It holds the target's ID and the host the target lives
// in.
type Manipulator struct {
	// Activators are tried in order by CanStart. The first that matches wins.
	Activators []ActivationFilter
	Logger     *zap.Logger

	host    Host
	target  tree.ID
	self    tree.Handler
	current ActivationFilter
}

// Target returns the bound element, or tree.None.
func (m *Manipulator) Target() tree.ID {
	return m.target
}

func (m *Manipulator) Bound() bool {
	return m.host != nil
}

// bind binds self, the concrete gesture embedding m, to target. Binding to a new target
// unbinds from the previous one first. Binding to the current target does nothing.
func (m *Manipulator) bind(host Host, target tree.ID, self tree.Handler) {
	if m.host == host && m.target == target && m.self == self {
		return
	}
	m.unbind()
	m.host = host
	m.target = target
	m.self = self
	host.AddHandler(target, self)
}

// unbind unregisters from the current target, if any.
func (m *Manipulator) unbind() {
	if m.host == nil {
		return
	}
	m.host.RemoveHandler(m.target, m.self)
	m.host = nil
	m.target = tree.None
	m.self = nil
}

// CanStart reports whether ev may start the gesture, and remembers the matching filter for
// CanStop.
func (m *Manipulator) CanStart(ev pointer.Activatable) bool {
	for _, f := range m.Activators {
		if f.Matches(ev) {
			m.current = f
			return true
		}
	}
	return false
}

// CanStop reports whether ev is for the button that started the gesture.
func (m *Manipulator) CanStop(ev pointer.Activatable) bool {
	return ev.ActivationButton() == m.current.Button
}

func (m *Manipulator) log() *zap.Logger {
	if m.Logger == nil {
		return zap.NewNop()
	}
	return m.Logger
}
