package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"honnef.co/go/tap/config"
	"honnef.co/go/tap/gesture"
	"honnef.co/go/tap/io/pointer"
	"honnef.co/go/tap/schedule"
	"honnef.co/go/tap/slider"
	"honnef.co/go/tap/tree"

	"gioui.org/layout"
	"github.com/go-json-experiment/json"
	"go.uber.org/zap"
)

// Notification is one recognized interaction.
type Notification struct {
	TimeMS  int64  `json:"time_ms"`
	Kind    string `json:"kind"`
	Element string `json:"element"`
	// Count is the click count of detected clicks.
	Count int `json:"count,omitzero"`
	// Direction, DX and DY describe drags.
	Direction string  `json:"direction,omitzero"`
	DX        float32 `json:"dx,omitzero"`
	DY        float32 `json:"dy,omitzero"`
	// Value is a slider's new value.
	Value float64 `json:"value,omitzero"`
}

func (n Notification) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s %s", n.TimeMS, n.Kind, n.Element)
	switch n.Kind {
	case "detected":
		fmt.Fprintf(&sb, " count=%d", n.Count)
	case "drag":
		fmt.Fprintf(&sb, " direction=%s delta=(%g,%g)", n.Direction, n.DX, n.DY)
	case "value":
		fmt.Fprintf(&sb, " value=%g", n.Value)
	}
	return sb.String()
}

// printer writes notifications as text or as JSON lines.
type printer struct {
	w    io.Writer
	json bool
	err  error
}

func (p *printer) print(n Notification) {
	if p.err != nil {
		return
	}
	if p.json {
		var b []byte
		b, p.err = json.Marshal(n)
		if p.err != nil {
			return
		}
		_, p.err = fmt.Fprintf(p.w, "%s\n", b)
		return
	}
	_, p.err = fmt.Fprintln(p.w, n)
}

// replayer owns the state of a single replay.
type replayer struct {
	settings config.Settings
	log      *zap.Logger
	emit     func(Notification)

	arena   *tree.Arena
	router  *tree.Router
	clock   *schedule.Manual
	adapter pointer.Adapter
}

// Replay replays scene and reports every notification to emit. With until past the last
// event, the clock keeps running until then, so that held repeating gestures keep firing.
func Replay(scene *Scene, settings config.Settings, until time.Duration, log *zap.Logger, emit func(Notification)) error {
	if log == nil {
		log = zap.NewNop()
	}
	arena := tree.NewArena()
	r := &replayer{
		settings: settings,
		log:      log,
		emit:     emit,
		arena:    arena,
		router:   tree.NewRouter(arena, log.Named("router")),
		clock:    schedule.NewManual(0),
		adapter:  pointer.Adapter{DoubleClickThreshold: settings.DoubleClickThreshold},
	}
	if err := r.build(scene); err != nil {
		return err
	}

	var evs []pointer.Event
	for i, sev := range scene.Events {
		r.clock.AdvanceTo(sev.time())
		var err error
		evs, err = sev.convert(evs[:0], &r.adapter)
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		for _, ev := range evs {
			target := r.router.Route(ev)
			r.log.Debug("routed event", zap.Stringer("event", ev), zap.String("target", r.arena.Name(target)))
		}
	}
	if until > r.clock.Now() {
		r.clock.AdvanceTo(until)
	}
	return nil
}

func (r *replayer) notify(n Notification) {
	n.TimeMS = r.clock.Now().Milliseconds()
	r.emit(n)
}

func (r *replayer) build(scene *Scene) error {
	for _, el := range scene.Elements {
		if _, ok := r.arena.Lookup(el.Name); ok || el.Name == "" {
			return fmt.Errorf("element name %q is empty or not unique", el.Name)
		}
		parent := tree.None
		if el.Parent != "" {
			p, ok := r.arena.Lookup(el.Parent)
			if !ok {
				return fmt.Errorf("element %q: unknown parent %q", el.Name, el.Parent)
			}
			parent = p
		}
		r.arena.Add(parent, el.rect(), el.Name)
	}

	det := gesture.NewClickDetector(r.router, r.settings.DoubleClickThreshold, r.log.Named("detector"))
	r.router.Observe(det)
	for _, el := range scene.Elements {
		if el.Parent != "" {
			continue
		}
		id, _ := r.arena.Lookup(el.Name)
		// Clicks bubble to the root, so this sees each detected click once.
		r.router.OnClick(id, func(ev tree.ClickEvent) {
			r.notify(Notification{Kind: "detected", Element: r.arena.Name(ev.Target), Count: ev.ClickCount})
		})
	}

	for i, g := range scene.Gestures {
		if err := r.bind(g); err != nil {
			return fmt.Errorf("gesture %d: %w", i, err)
		}
	}
	return nil
}

func (r *replayer) bind(g SceneGesture) error {
	id, ok := r.arena.Lookup(g.Element)
	if !ok {
		return fmt.Errorf("unknown element %q", g.Element)
	}
	var delay, interval time.Duration
	if g.Kind == "repeat" {
		delay, interval = r.settings.RepeatDelay, r.settings.RepeatInterval
	}
	if g.DelayMS != nil {
		delay = time.Duration(*g.DelayMS) * time.Millisecond
	}
	if g.IntervalMS != nil {
		interval = time.Duration(*g.IntervalMS) * time.Millisecond
	}
	if delay < 0 || interval < 0 {
		return fmt.Errorf("negative repeat timing %v, %v", delay, interval)
	}
	filter, err := g.filter()
	if err != nil {
		return err
	}
	log := r.log.Named(g.Kind).With(zap.String("element", g.Element))
	click := func() { r.notify(Notification{Kind: "click", Element: g.Element}) }

	var (
		m    *gesture.Manipulator
		bind func()
	)
	switch g.Kind {
	case "click", "repeat":
		c := gesture.NewClick(click, delay, interval, r.clock)
		m = &c.Manipulator
		bind = func() { c.Bind(r.router, id) }
	case "pointer-click":
		c := gesture.NewPointerClick(click, delay, interval, r.clock)
		m = &c.Manipulator
		bind = func() { c.Bind(r.router, id) }
	case "drag":
		d := gesture.NewConstrainedDrag(click, nil, delay, interval, r.clock)
		d.OnDrag = func() {
			delta := d.Delta()
			r.notify(Notification{Kind: "drag", Element: g.Element, Direction: d.Direction.String(), DX: delta.X, DY: delta.Y})
		}
		m = &d.Manipulator
		bind = func() { d.Bind(r.router, id) }
	case "slider":
		high := g.High
		if high == 0 && g.Low == 0 {
			high = 1
		}
		if g.Low > high {
			return fmt.Errorf("slider range [%g, %g] is empty", g.Low, high)
		}
		s := slider.New(g.Low, high, r.clock)
		s.PageSize = g.Page
		s.ThumbLength = g.Thumb
		switch g.Axis {
		case "", "horizontal":
		case "vertical":
			s.Axis = layout.Vertical
		default:
			return fmt.Errorf("unknown axis %q", g.Axis)
		}
		s.OnChange = func(v float64) { r.notify(Notification{Kind: "value", Element: g.Element, Value: v}) }
		m = &s.Gesture().Manipulator
		bind = func() { s.Bind(r.router, id) }
	default:
		return fmt.Errorf("unknown gesture kind %q", g.Kind)
	}
	m.Logger = log
	m.Activators = []gesture.ActivationFilter{filter}
	bind()
	return nil
}

func (g SceneGesture) filter() (gesture.ActivationFilter, error) {
	b, err := parseButton(g.Button)
	if err != nil {
		return gesture.ActivationFilter{}, err
	}
	mods, err := parseModifiers(g.Modifiers)
	if err != nil {
		return gesture.ActivationFilter{}, err
	}
	if g.ClickCount < 0 {
		return gesture.ActivationFilter{}, fmt.Errorf("negative click count %d", g.ClickCount)
	}
	return gesture.ActivationFilter{Button: b, Modifiers: mods, ClickCount: g.ClickCount}, nil
}
