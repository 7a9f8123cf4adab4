package schedule

import (
	"time"
)

var _ Scheduler = (*Timer)(nil)
var _ Handle = (*timerTask)(nil)

// FrameInterval is used in place of a zero interval by Timer.
const FrameInterval = 16 * time.Millisecond

// Timer schedules callbacks with the runtime's timers. Timers fire on their own goroutines,
// so every firing is handed to Post, which must run the function on the event loop goroutine
// that owns the gesture state, for example by sending it over a channel that the loop
// drains.
//
// All methods of Timer and of its handles must be called from the event loop goroutine.
type Timer struct {
	Post func(fn func())
}

type timerTask struct {
	s        *Timer
	fn       func()
	interval time.Duration
	timer    *time.Timer
	paused   bool
	// generation is incremented whenever pending firings become stale.
	generation uint64
}

func (s *Timer) ScheduleRepeating(fn func(), interval, delay time.Duration) Handle {
	if interval <= 0 {
		interval = FrameInterval
	}
	t := &timerTask{s: s, fn: fn, interval: interval}
	t.arm(delay)
	return t
}

func (t *timerTask) arm(d time.Duration) {
	gen := t.generation
	t.timer = time.AfterFunc(d, func() {
		t.s.Post(func() {
			if gen != t.generation || t.paused {
				return
			}
			t.arm(t.interval)
			t.fn()
		})
	})
}

func (t *timerTask) Pause() {
	if t.paused {
		return
	}
	t.paused = true
	t.generation++
	t.timer.Stop()
}

func (t *timerTask) Rearm(delay time.Duration) {
	t.paused = false
	t.generation++
	t.timer.Stop()
	t.arm(delay)
}

func (t *timerTask) Paused() bool {
	return t.paused
}
