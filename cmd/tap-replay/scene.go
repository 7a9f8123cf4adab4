package main

import (
	"fmt"
	"time"

	"honnef.co/go/tap/f32"
	"honnef.co/go/tap/io/pointer"

	"gioui.org/io/key"
	giopointer "gioui.org/io/pointer"
	"github.com/go-json-experiment/json"
)

// Scene is a replay input: an element tree, the gestures bound to it, and a trace of input
// events. Times are in milliseconds since the start of the trace.
type Scene struct {
	Elements []SceneElement `json:"elements"`
	Gestures []SceneGesture `json:"gestures"`
	Events   []SceneEvent   `json:"events"`
}

type SceneElement struct {
	Name string `json:"name"`
	// Parent names an element listed earlier. Empty for roots.
	Parent string `json:"parent,omitzero"`
	// Bounds are min x, min y, max x and max y in the parent's space.
	Bounds [4]float32 `json:"bounds"`
}

type SceneGesture struct {
	// Kind is one of click, repeat, pointer-click, drag and slider.
	Kind    string `json:"kind"`
	Element string `json:"element"`
	// DelayMS and IntervalMS default to zero for click, pointer-click and drag, and to the
	// configured repeat timing for repeat.
	DelayMS    *int64 `json:"delay_ms,omitzero"`
	IntervalMS *int64 `json:"interval_ms,omitzero"`

	Button     string   `json:"button,omitzero"`
	Modifiers  []string `json:"modifiers,omitzero"`
	ClickCount int      `json:"click_count,omitzero"`

	// Slider settings.
	Low   float64 `json:"low,omitzero"`
	High  float64 `json:"high,omitzero"`
	Page  float64 `json:"page,omitzero"`
	Thumb float32 `json:"thumb,omitzero"`
	Axis  string  `json:"axis,omitzero"`
}

type SceneEvent struct {
	TimeMS int64 `json:"time_ms"`
	// Family is mouse or pointer for canonical events, or gio for raw Gio events that go
	// through the adapter.
	Family    string   `json:"family"`
	Kind      string   `json:"kind"`
	Source    string   `json:"source,omitzero"`
	Pointer   int      `json:"pointer,omitzero"`
	Button    string   `json:"button,omitzero"`
	Buttons   []string `json:"buttons,omitzero"`
	X         float32  `json:"x"`
	Y         float32  `json:"y"`
	Modifiers []string `json:"modifiers,omitzero"`
}

// ParseScene parses and checks a scene.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s, json.RejectUnknownMembers(true)); err != nil {
		return nil, fmt.Errorf("couldn't parse scene: %w", err)
	}
	var last int64
	for i, ev := range s.Events {
		if ev.TimeMS < last {
			return nil, fmt.Errorf("event %d at %dms happens before the previous event at %dms", i, ev.TimeMS, last)
		}
		last = ev.TimeMS
	}
	return &s, nil
}

func (e SceneElement) rect() f32.Rectangle {
	return f32.Rect(e.Bounds[0], e.Bounds[1], e.Bounds[2], e.Bounds[3])
}

func (ev SceneEvent) time() time.Duration {
	return time.Duration(ev.TimeMS) * time.Millisecond
}

// convert appends the canonical events for ev to dst.
func (ev SceneEvent) convert(dst []pointer.Event, ad *pointer.Adapter) ([]pointer.Event, error) {
	mods, err := parseModifiers(ev.Modifiers)
	if err != nil {
		return dst, err
	}
	buttons, err := parseButtons(ev.Buttons)
	if err != nil {
		return dst, err
	}
	pos := f32.Pt(ev.X, ev.Y)

	if ev.Family == "gio" {
		kind, ok := gioKinds[ev.Kind]
		if !ok {
			return dst, fmt.Errorf("unknown gio event kind %q", ev.Kind)
		}
		src := giopointer.Mouse
		switch ev.Source {
		case "", "mouse":
		case "touch":
			src = giopointer.Touch
		default:
			return dst, fmt.Errorf("unknown gio pointer source %q", ev.Source)
		}
		return ad.Convert(dst, giopointer.Event{
			Kind:      kind,
			Source:    src,
			PointerID: giopointer.ID(ev.Pointer),
			Time:      ev.time(),
			Buttons:   giopointer.Buttons(buttons),
			Position:  pos,
			Modifiers: mods,
		}), nil
	}

	kind, ok := kinds[ev.Kind]
	if !ok {
		return dst, fmt.Errorf("unknown event kind %q", ev.Kind)
	}
	button, err := parseButton(ev.Button)
	if err != nil {
		return dst, err
	}
	switch ev.Family {
	case "mouse":
		return append(dst, pointer.FromMouse(pointer.MouseEvent{
			Kind:      kind,
			Button:    button,
			Buttons:   buttons,
			Position:  pos,
			Modifiers: mods,
			Time:      ev.time(),
		})), nil
	case "pointer":
		src := pointer.Touch
		switch ev.Source {
		case "", "touch":
		case "mouse":
			src = pointer.Mouse
		case "pen":
			src = pointer.Pen
		default:
			return dst, fmt.Errorf("unknown pointer source %q", ev.Source)
		}
		if ev.Pointer < 0 || ev.Pointer > 0xFFFF {
			return dst, fmt.Errorf("pointer ID %d out of range", ev.Pointer)
		}
		return append(dst, pointer.FromPointer(pointer.PointerEvent{
			Kind:      kind,
			Source:    src,
			PointerID: pointer.ID(ev.Pointer),
			Button:    button,
			Buttons:   buttons,
			Position:  pos,
			Modifiers: mods,
			Time:      ev.time(),
		})), nil
	default:
		return dst, fmt.Errorf("unknown event family %q", ev.Family)
	}
}

var kinds = map[string]pointer.Kind{
	"press":       pointer.Press,
	"release":     pointer.Release,
	"move":        pointer.Move,
	"cancel":      pointer.Cancel,
	"enter":       pointer.Enter,
	"leave":       pointer.Leave,
	"scroll":      pointer.Scroll,
	"stationary":  pointer.Stationary,
	"drag-update": pointer.DragUpdate,
}

var gioKinds = map[string]giopointer.Kind{
	"press":   giopointer.Press,
	"release": giopointer.Release,
	"move":    giopointer.Move,
	"drag":    giopointer.Drag,
	"cancel":  giopointer.Cancel,
	"enter":   giopointer.Enter,
	"leave":   giopointer.Leave,
	"scroll":  giopointer.Scroll,
}

func parseButton(s string) (pointer.Button, error) {
	switch s {
	case "", "primary":
		return pointer.Primary, nil
	case "secondary":
		return pointer.Secondary, nil
	case "tertiary":
		return pointer.Tertiary, nil
	default:
		return pointer.NoButton, fmt.Errorf("unknown button %q", s)
	}
}

func parseButtons(names []string) (pointer.Buttons, error) {
	var bs pointer.Buttons
	for _, name := range names {
		b, err := parseButton(name)
		if err != nil {
			return 0, err
		}
		bs |= b.Mask()
	}
	return bs, nil
}

func parseModifiers(names []string) (key.Modifiers, error) {
	var mods key.Modifiers
	for _, name := range names {
		switch name {
		case "ctrl":
			mods |= key.ModCtrl
		case "command":
			mods |= key.ModCommand
		case "shift":
			mods |= key.ModShift
		case "alt":
			mods |= key.ModAlt
		case "super":
			mods |= key.ModSuper
		default:
			return 0, fmt.Errorf("unknown modifier %q", name)
		}
	}
	return mods, nil
}
