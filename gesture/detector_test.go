package gesture

import (
	"testing"
	"time"

	"honnef.co/go/tap/f32"
	"honnef.co/go/tap/io/pointer"
	"honnef.co/go/tap/tree"

	"github.com/google/go-cmp/cmp"
)

type click struct {
	Target string
	Count  int
}

// detectorFixture is
//
//	root (0,0)-(400,400)
//	├── container (0,0)-(200,200)
//	│   ├── leaf (10,10)-(50,50)
//	│   └── leaf2 (60,10)-(100,50)
//	└── sibling (250,0)-(350,100)
type detectorFixture struct {
	arena  *tree.Arena
	router *tree.Router
	det    *ClickDetector
	clicks []click
}

func newDetectorFixture() *detectorFixture {
	a := tree.NewArena()
	f := &detectorFixture{arena: a, router: tree.NewRouter(a, nil)}
	root := a.Add(tree.None, f32.Rect(0, 0, 400, 400), "root")
	container := a.Add(root, f32.Rect(0, 0, 200, 200), "container")
	a.Add(container, f32.Rect(10, 10, 50, 50), "leaf")
	a.Add(container, f32.Rect(60, 10, 100, 50), "leaf2")
	a.Add(root, f32.Rect(250, 0, 350, 100), "sibling")

	f.det = NewClickDetector(f.router, 500*ms, nil)
	f.router.Observe(f.det)
	f.router.OnClick(root, func(ev tree.ClickEvent) {
		f.clicks = append(f.clicks, click{a.Name(ev.Target), ev.ClickCount})
	})
	return f
}

func (f *detectorFixture) send(kind pointer.Kind, t time.Duration, x, y float32) {
	f.sendButton(kind, pointer.Primary, 0, t, x, y)
}

// sendButton sends an edge of b with held being the buttons down after the event.
func (f *detectorFixture) sendButton(kind pointer.Kind, b pointer.Button, held pointer.Buttons, t time.Duration, x, y float32) {
	f.router.Route(pointer.FromPointer(pointer.PointerEvent{
		Kind:      kind,
		Source:    pointer.Touch,
		PointerID: 1,
		Button:    b,
		Buttons:   held,
		Position:  f32.Pt(x, y),
		Time:      t,
	}))
}

func (f *detectorFixture) tap(t time.Duration, x, y float32) {
	f.send(pointer.Press, t, x, y)
	f.send(pointer.Release, t, x, y)
}

func TestDoubleClickWindow(t *testing.T) {
	tests := []struct {
		gap  time.Duration
		want int
	}{
		{0, 2},
		{499 * ms, 2},
		{500 * ms, 2},
		{501 * ms, 1},
		{2 * time.Second, 1},
	}
	for _, tt := range tests {
		f := newDetectorFixture()
		f.tap(1000*ms, 20, 20)
		f.tap(1000*ms+tt.gap, 20, 20)
		want := []click{{"leaf", 1}, {"leaf", tt.want}}
		if diff := cmp.Diff(want, f.clicks); diff != "" {
			t.Errorf("gap %v: unexpected clicks (-want +got):\n%s", tt.gap, diff)
		}
	}
}

func TestTripleClick(t *testing.T) {
	f := newDetectorFixture()
	f.tap(1000*ms, 20, 20)
	f.tap(1200*ms, 21, 20)
	f.tap(1400*ms, 22, 20)
	f.tap(2000*ms, 22, 20)
	want := []click{{"leaf", 1}, {"leaf", 2}, {"leaf", 3}, {"leaf", 1}}
	if diff := cmp.Diff(want, f.clicks); diff != "" {
		t.Errorf("unexpected clicks (-want +got):\n%s", diff)
	}
	if got := f.det.ClickCount(1); got != 1 {
		t.Errorf("got running count %d; want 1", got)
	}
	if got := f.det.PressPosition(1); got != f32.Pt(22, 20) {
		t.Errorf("got press position %v; want %v", got, f32.Pt(22, 20))
	}
}

func TestTargetChangeResetsCount(t *testing.T) {
	f := newDetectorFixture()
	f.tap(1000*ms, 20, 20)
	f.tap(1050*ms, 70, 20)
	want := []click{{"leaf", 1}, {"leaf2", 1}}
	if diff := cmp.Diff(want, f.clicks); diff != "" {
		t.Errorf("unexpected clicks (-want +got):\n%s", diff)
	}
}

func TestMoveInvalidatesMultiClick(t *testing.T) {
	f := newDetectorFixture()
	f.tap(1000*ms, 20, 20)
	f.send(pointer.Move, 1050*ms, 21, 20)
	f.tap(1100*ms, 21, 20)
	// The sequence restarts, and the following click continues it as usual.
	f.tap(1200*ms, 21, 20)
	want := []click{{"leaf", 1}, {"leaf", 1}, {"leaf", 2}}
	if diff := cmp.Diff(want, f.clicks); diff != "" {
		t.Errorf("unexpected clicks (-want +got):\n%s", diff)
	}
}

func TestChordedButtonInvalidatesMultiClick(t *testing.T) {
	f := newDetectorFixture()
	f.tap(1000*ms, 20, 20)
	f.send(pointer.Press, 1050*ms, 20, 20)
	held := pointer.Primary.Mask() | pointer.Secondary.Mask()
	f.sendButton(pointer.Press, pointer.Secondary, held, 1060*ms, 20, 20)
	f.sendButton(pointer.Release, pointer.Secondary, pointer.Primary.Mask(), 1070*ms, 20, 20)
	f.send(pointer.Release, 1080*ms, 20, 20)
	f.tap(1100*ms, 20, 20)
	want := []click{{"leaf", 1}, {"leaf", 2}, {"leaf", 1}}
	if diff := cmp.Diff(want, f.clicks); diff != "" {
		t.Errorf("unexpected clicks (-want +got):\n%s", diff)
	}
}

func TestStandaloneOtherButtonKeepsMultiClick(t *testing.T) {
	f := newDetectorFixture()
	f.tap(1000*ms, 20, 20)
	f.sendButton(pointer.Press, pointer.Secondary, pointer.Secondary.Mask(), 1050*ms, 20, 20)
	f.sendButton(pointer.Release, pointer.Secondary, 0, 1060*ms, 20, 20)
	f.tap(1100*ms, 20, 20)
	want := []click{{"leaf", 1}, {"leaf", 2}}
	if diff := cmp.Diff(want, f.clicks); diff != "" {
		t.Errorf("unexpected clicks (-want +got):\n%s", diff)
	}
}

func TestCommonAncestorAttribution(t *testing.T) {
	f := newDetectorFixture()
	f.send(pointer.Press, 1000*ms, 20, 20)
	f.send(pointer.Move, 1100*ms, 220, 50)
	f.send(pointer.Release, 1200*ms, 300, 50)
	f.send(pointer.Press, 2000*ms, 20, 20)
	f.send(pointer.Release, 2100*ms, 80, 20)
	want := []click{{"root", 1}, {"container", 1}}
	if diff := cmp.Diff(want, f.clicks); diff != "" {
		t.Errorf("unexpected clicks (-want +got):\n%s", diff)
	}
}

func TestReleaseOutsideTarget(t *testing.T) {
	f := newDetectorFixture()
	leaf, _ := f.arena.Lookup("leaf")
	f.send(pointer.Press, 1000*ms, 20, 20)
	// With the pointer captured, the release is routed to the leaf even though it happens
	// elsewhere.
	f.router.Capture(1, leaf)
	f.send(pointer.Release, 1100*ms, 300, 50)
	if len(f.clicks) != 0 {
		t.Errorf("got clicks %v; want none", f.clicks)
	}
}

func TestCancellationResetsSlot(t *testing.T) {
	for _, kind := range []pointer.Kind{pointer.Cancel, pointer.Stationary, pointer.DragUpdate} {
		f := newDetectorFixture()
		f.tap(1000*ms, 20, 20)
		f.send(pointer.Press, 1100*ms, 20, 20)
		f.send(kind, 1150*ms, 20, 20)
		if got := f.det.ClickCount(1); got != 0 {
			t.Errorf("%v: got count %d; want 0", kind, got)
		}
		f.send(pointer.Release, 1200*ms, 20, 20)
		f.tap(1300*ms, 20, 20)
		want := []click{{"leaf", 1}, {"leaf", 1}}
		if diff := cmp.Diff(want, f.clicks); diff != "" {
			t.Errorf("%v: unexpected clicks (-want +got):\n%s", kind, diff)
		}
	}
}

func TestDetectorIgnoresEventsWithoutPointerIdentity(t *testing.T) {
	f := newDetectorFixture()
	for _, kind := range []pointer.Kind{pointer.Press, pointer.Release} {
		f.router.Route(pointer.FromMouse(pointer.MouseEvent{Kind: kind, Button: pointer.Primary, Position: f32.Pt(20, 20)}))
		f.router.Route(pointer.FromPointer(pointer.PointerEvent{Kind: kind, PointerID: 40, Button: pointer.Primary, Position: f32.Pt(20, 20)}))
	}
	// Releases over nothing are ignored as well.
	f.send(pointer.Press, 1000*ms, 20, 20)
	f.send(pointer.Release, 1000*ms, 500, 500)
	if len(f.clicks) != 0 {
		t.Errorf("got clicks %v; want none", f.clicks)
	}
}

func TestDetectorCountsMirroredMouse(t *testing.T) {
	f := newDetectorFixture()
	for _, at := range []time.Duration{1000 * ms, 1100 * ms} {
		for _, kind := range []pointer.Kind{pointer.Press, pointer.Release} {
			f.router.Route(pointer.FromPointer(pointer.PointerEvent{
				Kind:      kind,
				Source:    pointer.Mouse,
				PointerID: pointer.MousePointerID,
				Button:    pointer.Primary,
				Position:  f32.Pt(20, 20),
				Time:      at,
			}))
		}
	}
	want := []click{{"leaf", 1}, {"leaf", 2}}
	if diff := cmp.Diff(want, f.clicks); diff != "" {
		t.Errorf("unexpected clicks (-want +got):\n%s", diff)
	}
}

func TestDetectorIndependentOfGestures(t *testing.T) {
	f := newDetectorFixture()
	leaf, _ := f.arena.Lookup("leaf")
	var clicks int
	c := NewPointerClick(func() { clicks++ }, 0, 0, nil)
	c.Bind(f.router, leaf)
	f.tap(1000*ms, 20, 20)
	f.tap(1100*ms, 20, 20)
	if clicks != 2 {
		t.Errorf("got %d gesture clicks; want 2", clicks)
	}
	want := []click{{"leaf", 1}, {"leaf", 2}}
	if diff := cmp.Diff(want, f.clicks); diff != "" {
		t.Errorf("unexpected clicks (-want +got):\n%s", diff)
	}
	f.det.Reset(1)
	if got := f.det.ClickCount(1); got != 0 {
		t.Errorf("got count %d after reset; want 0", got)
	}
}

func TestDetectorSlotsAreIndependent(t *testing.T) {
	f := newDetectorFixture()
	press := func(id pointer.ID, kind pointer.Kind, at time.Duration, x float32) {
		f.router.Route(pointer.FromPointer(pointer.PointerEvent{
			Kind:      kind,
			Source:    pointer.Touch,
			PointerID: id,
			Button:    pointer.Primary,
			Position:  f32.Pt(x, 20),
			Time:      at,
		}))
	}
	press(1, pointer.Press, 1000*ms, 20)
	press(1, pointer.Release, 1000*ms, 20)
	// Another finger on another element, and its moves, don't disturb pointer 1.
	press(2, pointer.Press, 1050*ms, 70)
	press(2, pointer.Move, 1060*ms, 75)
	press(2, pointer.Release, 1070*ms, 75)
	press(1, pointer.Press, 1100*ms, 20)
	press(1, pointer.Release, 1100*ms, 20)
	want := []click{{"leaf", 1}, {"leaf2", 1}, {"leaf", 2}}
	if diff := cmp.Diff(want, f.clicks); diff != "" {
		t.Errorf("unexpected clicks (-want +got):\n%s", diff)
	}
}
