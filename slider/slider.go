// Package slider implements the input half of a slider: dragging its thumb, and paging its
// value by pressing on the track beside the thumb.
package slider

import (
	"time"

	"honnef.co/go/tap/f32"
	"honnef.co/go/tap/gesture"
	"honnef.co/go/tap/schedule"
	"honnef.co/go/tap/tree"

	"gioui.org/layout"
)

const (
	// DefaultDelay is how long a press on the track waits before it starts paging repeatedly.
	DefaultDelay = 250 * time.Millisecond
	// DefaultInterval is the time between pages.
	DefaultInterval = 30 * time.Millisecond
)

// Host is the element tree a slider's track lives in.
type Host interface {
	gesture.Host
	WorldBounds(id tree.ID) f32.Rectangle
}

var _ Host = (*tree.Router)(nil)

// Slider maps presses and drags on a track element to a value in [Low, High].
//
// The thumb is ThumbLength long and sits on the track at the position corresponding to the
// value. Pressing on the thumb and moving drags it. Pressing beside the thumb pages the value
// by PageSize towards the pointer, once immediately and then repeatedly while held, until
// the thumb reaches the pointer. If PageSize is zero, pressing beside the thumb moves the
// thumb under the pointer and starts dragging it instead.
type Slider[T Number] struct {
	// Low must not exceed High.
	Low, High T
	PageSize  T
	Axis      layout.Axis
	// ThumbLength is the thumb's size along Axis, in the track's local space.
	ThumbLength float32
	// OnChange is called with the new value whenever input changes it.
	OnChange func(v T)

	value T
	drag  *gesture.ConstrainedDrag
	host  Host
	track tree.ID
	// thumbStart is the thumb's position when the press started.
	thumbStart float32
}

// New returns a slider over [low, high] whose paging is driven by s.
func New[T Number](low, high T, s schedule.Scheduler) *Slider[T] {
	sl := &Slider[T]{Low: low, High: high, value: low}
	sl.drag = gesture.NewConstrainedDrag(sl.page, sl.dragged, DefaultDelay, DefaultInterval, s)
	sl.drag.OnPress = sl.pressed
	return sl
}

// Gesture returns the slider's underlying gesture, for example to change its activators or
// set its logger.
func (s *Slider[T]) Gesture() *gesture.ConstrainedDrag {
	return s.drag
}

func (s *Slider[T]) Bind(h Host, track tree.ID) {
	s.host = h
	s.track = track
	s.drag.Bind(h, track)
}

func (s *Slider[T]) Unbind() {
	s.drag.Unbind()
	s.host = nil
	s.track = tree.None
}

func (s *Slider[T]) Value() T {
	return s.value
}

// SetValue sets the value, clamped to the slider's range. It doesn't call OnChange.
func (s *Slider[T]) SetValue(v T) {
	s.value = s.clamp(v)
}

// Dragging reports whether the thumb is being dragged.
func (s *Slider[T]) Dragging() bool {
	return s.drag.Active() && s.drag.Direction == gesture.DragFree
}

// Thumb returns the thumb's extent along the axis, in the track's local space.
func (s *Slider[T]) Thumb() (start, end float32) {
	start = float32(Unlerp(s.Low, s.High, s.value)) * s.travel()
	return start, start + s.ThumbLength
}

func (s *Slider[T]) clamp(v T) T {
	return max(s.Low, min(s.High, v))
}

func (s *Slider[T]) set(v T) {
	v = s.clamp(v)
	if v == s.value {
		return
	}
	s.value = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

// travel is how far the thumb can move.
func (s *Slider[T]) travel() float32 {
	if s.host == nil {
		return 0
	}
	b := s.host.WorldBounds(s.track)
	l := b.Dx()
	if s.Axis == layout.Vertical {
		l = b.Dy()
	}
	return max(0, l-s.ThumbLength)
}

func (s *Slider[T]) along(p f32.Point) float32 {
	if s.Axis == layout.Vertical {
		return p.Y
	}
	return p.X
}

// setThumb moves the thumb to pos.
func (s *Slider[T]) setThumb(pos float32) {
	travel := s.travel()
	if travel == 0 {
		return
	}
	t := float64(f32.Clamp(pos/travel, 0, 1))
	s.set(Lerp(s.Low, s.High, t))
}

func (s *Slider[T]) pressed() {
	p := s.along(s.drag.StartPosition())
	start, end := s.Thumb()
	switch {
	case p >= start && p < end:
		// On the thumb. The first move claims the drag.
	case s.PageSize == 0:
		s.setThumb(p - s.ThumbLength/2)
		s.drag.Direction = gesture.DragFree
	case p >= end:
		s.drag.Direction = gesture.DragLowToHigh
	default:
		s.drag.Direction = gesture.DragHighToLow
	}
	s.thumbStart, _ = s.Thumb()
}

// page runs on press and on every repeat tick.
func (s *Slider[T]) page() {
	p := s.along(s.drag.LastPosition())
	start, end := s.Thumb()
	switch s.drag.Direction {
	case gesture.DragLowToHigh:
		if p < end {
			return
		}
		// Unsigned values must not wrap around.
		if s.High-s.value <= s.PageSize {
			s.set(s.High)
		} else {
			s.set(s.value + s.PageSize)
		}
	case gesture.DragHighToLow:
		if p >= start {
			return
		}
		if s.value-s.Low <= s.PageSize {
			s.set(s.Low)
		} else {
			s.set(s.value - s.PageSize)
		}
	}
}

func (s *Slider[T]) dragged() {
	s.setThumb(s.thumbStart + s.along(s.drag.Delta()))
}
