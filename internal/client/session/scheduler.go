package session

import "time"

// Scheduler arms a one-shot timer and returns a cancel handle. Making the
// handle an explicit value (instead of a closure-captured *time.Timer) keeps
// the at-most-one-pending-timer invariant checkable in tests, which inject
// a fake Scheduler.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

type realScheduler struct{}

// NewScheduler returns the production Scheduler backed by time.AfterFunc.
func NewScheduler() Scheduler {
	return realScheduler{}
}

func (realScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
