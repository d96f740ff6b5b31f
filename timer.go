package main

import (
	"errors"
	"time"
)

var errTimerArmed = errors.New("phase timer already armed")

// taskRunner schedules fn to run exactly once after d, returning a
// best-effort stop function. The hub's runner delivers fn onto the
// hub goroutine; tests substitute a runner they fire by hand.
type taskRunner func(d time.Duration, fn func()) (stop func())

// roundTimer owns at most one pending callback for a single phase.
// Arming while a callback is still pending is an error; the caller
// must cancel first. Cancellation is idempotent, safe after firing,
// and guarantees a cancelled callback never runs even if the
// underlying timer already went off.
type roundTimer struct {
	runAfter taskRunner
	pending  *timerTask
}

type timerTask struct {
	stop      func()
	cancelled bool
	fired     bool
}

func newRoundTimer(run taskRunner) *roundTimer {
	return &roundTimer{runAfter: run}
}

func (t *roundTimer) armed() bool {
	return t.pending != nil && !t.pending.fired && !t.pending.cancelled
}

func (t *roundTimer) arm(d time.Duration, fn func()) error {
	if t.armed() {
		return errTimerArmed
	}

	task := &timerTask{}
	task.stop = t.runAfter(d, func() {
		// The underlying timer may race a cancellation; the flags are
		// only ever touched on the goroutine running the callbacks,
		// so this check settles the race.
		if task.cancelled || task.fired {
			return
		}
		task.fired = true
		fn()
	})
	t.pending = task

	return nil
}

func (t *roundTimer) cancel() {
	if t.pending == nil {
		return
	}

	t.pending.cancelled = true
	if t.pending.stop != nil {
		t.pending.stop()
	}
	t.pending = nil
}
