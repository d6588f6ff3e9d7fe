package port

import "time"

// Timer is a pending single-shot callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped it
	// before it ran.
	Stop() bool
}

// Clock is the time source used for gesture timers, transition settling and
// double-click detection. Hosts may wrap a real clock so callbacks are
// delivered on their UI loop; tests use a virtual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}
