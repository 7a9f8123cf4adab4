package schedule

import (
	"time"

	"honnef.co/go/tap/debug"
	"honnef.co/go/tap/mem"
)

var _ Scheduler = (*Manual)(nil)
var _ Handle = (*manualTask)(nil)

// Manual is a scheduler driven by a virtual clock. Time only passes when Advance or AdvanceTo
// is called, which makes it suitable for tests and for replaying recorded input.
//
// Each call to Advance or AdvanceTo is a frame. Tasks with a zero interval run at most once
// per frame.
type Manual struct {
	now   time.Duration
	frame uint64
	tasks []*manualTask
	due   mem.DoubleBufferedSlice[*manualTask]
}

type manualTask struct {
	m        *Manual
	fn       func()
	interval time.Duration
	next     time.Duration
	paused   bool
	// ranFrame is the last frame the task ran in.
	ranFrame uint64
	seq      int
}

// NewManual returns a scheduler whose clock starts at now.
func NewManual(now time.Duration) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) ScheduleRepeating(fn func(), interval, delay time.Duration) Handle {
	debug.Assert(interval >= 0 && delay >= 0)
	t := &manualTask{
		m:        m,
		fn:       fn,
		interval: interval,
		next:     m.now + delay,
		seq:      len(m.tasks),
	}
	m.tasks = append(m.tasks, t)
	return t
}

func (m *Manual) Advance(d time.Duration) {
	m.AdvanceTo(m.now + d)
}

// AdvanceTo moves the clock forward to t, running every callback that falls due on the way in
// time order. Callbacks due at the same time run in the order they were scheduled. Moving
// the clock backwards is not possible; such calls only start a new frame.
func (m *Manual) AdvanceTo(t time.Duration) {
	m.frame++
	for {
		next := m.nextDue(t)
		if next == nil {
			break
		}
		// Zero-interval tasks may be due since an earlier frame.
		if next.next > m.now {
			m.now = next.next
		}
		next.ranFrame = m.frame
		if next.interval > 0 {
			next.next += next.interval
		} else {
			next.next = m.now
		}
		next.fn()
	}
	if t > m.now {
		m.now = t
	}
}

// nextDue returns the earliest task due no later than t, or nil.
func (m *Manual) nextDue(t time.Duration) *manualTask {
	m.due.Reset()
	for _, task := range m.tasks {
		if task.paused || task.next > t {
			continue
		}
		if task.interval == 0 && task.ranFrame == m.frame {
			continue
		}
		m.due.Push(task)
	}
	m.due.Swap()
	var best *manualTask
	for _, task := range m.due.Front {
		if best == nil || task.next < best.next || (task.next == best.next && task.seq < best.seq) {
			best = task
		}
	}
	return best
}

func (t *manualTask) Pause() {
	t.paused = true
}

func (t *manualTask) Rearm(delay time.Duration) {
	t.paused = false
	t.next = t.m.now + delay
}

func (t *manualTask) Paused() bool {
	return t.paused
}
