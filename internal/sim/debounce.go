package sim

import "time"

// Debouncer collapses bursts of triggers into one call made delay after the
// last trigger in the burst.
type Debouncer struct {
	clock Clock
	delay time.Duration
	timer Timer
}

func NewDebouncer(clock Clock, delay time.Duration) *Debouncer {
	return &Debouncer{clock: clock, delay: delay}
}

func (d *Debouncer) Trigger(fn func()) {
	d.Stop()
	if d.delay <= 0 || d.clock == nil {
		fn()
		return
	}
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.timer = nil
		fn()
	})
}

// Pending reports whether a call is waiting on the timer.
func (d *Debouncer) Pending() bool { return d.timer != nil }

func (d *Debouncer) Stop() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
