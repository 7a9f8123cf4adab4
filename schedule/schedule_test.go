package schedule

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

const ms = time.Millisecond

func TestManualDelayAndInterval(t *testing.T) {
	m := NewManual(0)
	var fired []time.Duration
	m.ScheduleRepeating(func() { fired = append(fired, m.Now()) }, 100*ms, 500*ms)

	m.Advance(499 * ms)
	if len(fired) != 0 {
		t.Fatalf("fired before the delay elapsed: %v", fired)
	}
	m.Advance(301 * ms)
	want := []time.Duration{500 * ms, 600 * ms, 700 * ms, 800 * ms}
	if diff := cmp.Diff(want, fired); diff != "" {
		t.Errorf("unexpected firings (-want +got):\n%s", diff)
	}
	if m.Now() != 800*ms {
		t.Errorf("clock at %v; want 800ms", m.Now())
	}
}

func TestManualPauseRearm(t *testing.T) {
	m := NewManual(1000 * ms)
	n := 0
	h := m.ScheduleRepeating(func() { n++ }, 10*ms, 0)
	m.Advance(25 * ms)
	if n != 3 {
		t.Errorf("got %d firings; want 3", n)
	}
	h.Pause()
	h.Pause()
	if !h.Paused() {
		t.Errorf("handle should be paused")
	}
	m.Advance(100 * ms)
	if n != 3 {
		t.Errorf("paused handle fired: %d", n)
	}
	h.Rearm(50 * ms)
	m.Advance(49 * ms)
	if n != 3 {
		t.Errorf("rearmed handle fired early: %d", n)
	}
	m.Advance(1 * ms)
	if n != 4 {
		t.Errorf("got %d firings; want 4", n)
	}
}

func TestManualZeroIntervalRunsOncePerFrame(t *testing.T) {
	m := NewManual(0)
	n := 0
	m.ScheduleRepeating(func() { n++ }, 0, 0)
	m.Advance(time.Second)
	m.Advance(time.Second)
	m.Advance(0)
	if n != 3 {
		t.Errorf("got %d firings; want 3", n)
	}
	if m.Now() != 2*time.Second {
		t.Errorf("clock at %v; want 2s", m.Now())
	}
}

func TestManualOrdering(t *testing.T) {
	m := NewManual(0)
	var order []string
	m.ScheduleRepeating(func() { order = append(order, "slow") }, 30*ms, 30*ms)
	m.ScheduleRepeating(func() { order = append(order, "fast") }, 20*ms, 20*ms)
	m.Advance(60 * ms)
	want := []string{"fast", "slow", "fast", "slow", "fast"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestTimer(t *testing.T) {
	defer goleak.VerifyNone(t)

	loop := make(chan func(), 16)
	s := &Timer{Post: func(fn func()) { loop <- fn }}
	n := 0
	h := s.ScheduleRepeating(func() { n++ }, 5*ms, 5*ms)

	deadline := time.After(5 * time.Second)
	for n < 3 {
		select {
		case fn := <-loop:
			fn()
		case <-deadline:
			t.Fatalf("timed out after %d firings", n)
		}
	}
	h.Pause()
	got := n

	// Drain firings that were already posted. They must be discarded.
	drain := time.After(50 * ms)
	for done := false; !done; {
		select {
		case fn := <-loop:
			fn()
		case <-drain:
			done = true
		}
	}
	if n != got {
		t.Errorf("paused timer fired %d more times", n-got)
	}
}

func TestTimerRearm(t *testing.T) {
	defer goleak.VerifyNone(t)

	loop := make(chan func(), 16)
	s := &Timer{Post: func(fn func()) { loop <- fn }}
	n := 0
	h := s.ScheduleRepeating(func() { n++ }, time.Hour, time.Hour)
	next := func() func() {
		t.Helper()
		select {
		case fn := <-loop:
			return fn
		case <-time.After(5 * time.Second):
			t.Fatalf("timer didn't fire")
			return nil
		}
	}

	// Rearming replaces the pending delay.
	h.Rearm(5 * ms)
	next()()
	if n != 1 {
		t.Fatalf("got %d firings; want 1", n)
	}

	// A firing posted before a Rearm is stale by the time the loop runs it.
	h.Rearm(5 * ms)
	stale := next()
	h.Rearm(time.Hour)
	stale()
	if n != 1 {
		t.Errorf("stale firing ran, got %d firings", n)
	}

	h.Pause()
	h.Rearm(5 * ms)
	if h.Paused() {
		t.Errorf("Rearm should resume a paused timer")
	}
	next()()
	if n != 2 {
		t.Errorf("got %d firings; want 2", n)
	}
	h.Pause()
}
