// Package persist reconciles the in-memory draft with the remote store and
// the local cache. A small state machine drives debounced autosave and
// manual saves; the local cache is written on every save attempt so no edit
// is lost when the remote call fails.
package persist

import (
	"sync"
	"time"
)

// Scheduler arms a single pending callback after a delay. Arming again
// cancels the pending callback and restarts the delay, which gives the
// classic debounce: only the last edit in a burst fires.
type Scheduler interface {
	// Arm schedules fire after delay, cancelling any pending callback.
	Arm(delay time.Duration, fire func())

	// Cancel drops the pending callback if one is armed.
	Cancel()
}

// Compile-time interface check.
var _ Scheduler = (*TimerScheduler)(nil)

// TimerScheduler implements Scheduler with time.AfterFunc.
type TimerScheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

// NewTimerScheduler returns an unarmed timer-backed scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

// Arm stops any pending timer and starts a new one.
func (s *TimerScheduler) Arm(delay time.Duration, fire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, fire)
}

// Cancel stops the pending timer if running.
func (s *TimerScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
