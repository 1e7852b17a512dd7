package clock

import "time"

// Timer is a scheduled callback that can be canceled.
type Timer interface {
	// Stop prevents the callback from firing. It reports false if the
	// callback already fired or was already stopped.
	Stop() bool
}

// Clock is the time source used by the session service.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// New returns a Clock backed by the time package.
func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
