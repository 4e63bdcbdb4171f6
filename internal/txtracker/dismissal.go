package txtracker

import (
	"context"
	"time"
)

// afterFunc schedules f after d and returns a function that cancels it.
// It mirrors time.AfterFunc so tests can drive dismissals by hand.
type afterFunc func(d time.Duration, f func()) (stop func() bool)

func timeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// dismissal is the timer of an ephemeral slot (completed or warning).
// gen changes every time the slot is rescheduled or cancelled, so a timer
// that fires late can tell it was superseded.
type dismissal struct {
	gen  uint64
	stop func() bool
}

// scheduleLocked (re)arms d to run clear after the dismissal timeout.
// clear runs with t.mu held. Must hold t.mu.
func (t *tracker) scheduleLocked(d *dismissal, clear func(ctx context.Context)) {
	t.cancelLocked(d)

	gen := d.gen
	d.stop = t.afterFunc(t.dismissTimeout, func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		if t.closed || d.gen != gen {
			return
		}

		d.stop = nil
		clear(t.ctx)
	})
}

// cancelLocked stops the pending timer of d, if any. Must hold t.mu.
func (t *tracker) cancelLocked(d *dismissal) {
	if d.stop != nil {
		d.stop()
		d.stop = nil
	}
	d.gen++
}

// dismissCompletedLocked is the completed slot's timer body.
func (t *tracker) dismissCompletedLocked(ctx context.Context) {
	tx := t.completed
	t.completed = nil
	t.emitLocked(ctx, EventCompletionDismissed, tx)
}

// dismissWarningLocked is the warning's timer body.
func (t *tracker) dismissWarningLocked(ctx context.Context) {
	t.warning = ""
	t.emitLocked(ctx, EventWarningDismissed, nil)
}
