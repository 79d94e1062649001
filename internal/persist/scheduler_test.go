package persist

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerSchedulerFires(t *testing.T) {
	s := NewTimerScheduler()
	fired := make(chan struct{})
	s.Arm(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("callback never fired")
	}
}

func TestTimerSchedulerRearmReplacesPending(t *testing.T) {
	s := NewTimerScheduler()
	var first, second atomic.Bool
	fired := make(chan struct{})

	s.Arm(50*time.Millisecond, func() { first.Store(true) })
	s.Arm(5*time.Millisecond, func() {
		second.Store(true)
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("callback never fired")
	}
	time.Sleep(80 * time.Millisecond)
	assert.False(t, first.Load(), "replaced callback must not fire")
	assert.True(t, second.Load())
}

func TestTimerSchedulerCancel(t *testing.T) {
	s := NewTimerScheduler()
	var fired atomic.Bool
	s.Arm(10*time.Millisecond, func() { fired.Store(true) })
	s.Cancel()

	time.Sleep(50 * time.Millisecond)
	assert.False(t, fired.Load())

	// Cancel with nothing armed is a no-op.
	s.Cancel()
}
