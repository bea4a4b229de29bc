package util

import "time"

// Clock abstracts wall-clock access so hosts and tests can control
// block timestamps.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
