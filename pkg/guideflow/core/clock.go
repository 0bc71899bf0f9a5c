package core

import "time"

// Clock abstracts time lookups so session expiry can be tested without
// sleeping.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock { return RealClock{} }

func (RealClock) Now() time.Time { return time.Now() }
