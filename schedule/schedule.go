// Package schedule provides recurring callbacks for time-driven gestures, such as the repeat
// ticks of a press-and-hold.
//
// Callbacks always run on the goroutine that owns the scheduler's event loop, never
// concurrently with input handling.
package schedule

import "time"

type Scheduler interface {
	// ScheduleRepeating arranges for fn to be called after delay, and every interval
	// thereafter, until the returned handle is paused.
	ScheduleRepeating(fn func(), interval, delay time.Duration) Handle
}

// Handle controls a scheduled callback. Pausing a paused handle is a no-op.
type Handle interface {
	Pause()
	// Rearm resumes the callback, which next runs after delay and then at its interval.
	Rearm(delay time.Duration)
	Paused() bool
}
