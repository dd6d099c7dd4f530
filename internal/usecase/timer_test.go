package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAutoSkipTimerFires(t *testing.T) {
	fired := make(chan struct{})
	timer := NewAutoSkipTimer(10*time.Millisecond, func() {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.True(t, timer.Fired())
}

func TestAutoSkipTimerStop(t *testing.T) {
	timer := NewAutoSkipTimer(time.Hour, func() {
		t.Error("skip must not run after Stop")
	})

	assert.True(t, timer.Stop())
	assert.False(t, timer.Fired())

	// Second stop is a no-op.
	assert.False(t, timer.Stop())
}
