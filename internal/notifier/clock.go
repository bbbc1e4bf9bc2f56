package notifier

import "time"

// Clock is the sole time source for the notification pipeline. Quiet
// hours, record timestamps, and scheduling comparisons all go through
// it so tests can control time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock implementation.
func SystemClock() Clock { return systemClock{} }
