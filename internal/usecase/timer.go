package usecase

import (
	"sync"
	"time"
)

// AutoSkipTimer is the externally owned per-question countdown. When it
// elapses it invokes the provided skip callback on the user's behalf; the
// state machine itself stays synchronous. Stop cancels a pending fire and
// is safe to call more than once.
type AutoSkipTimer struct {
	timer *time.Timer
	mu    sync.Mutex
	fired bool
}

func NewAutoSkipTimer(d time.Duration, skip func()) *AutoSkipTimer {
	t := &AutoSkipTimer{}
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		t.fired = true
		t.mu.Unlock()
		skip()
	})
	return t
}

// Stop cancels the countdown. It reports whether the timer was stopped
// before firing.
func (t *AutoSkipTimer) Stop() bool {
	return t.timer.Stop()
}

// Fired reports whether the countdown elapsed and the skip ran.
func (t *AutoSkipTimer) Fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}
