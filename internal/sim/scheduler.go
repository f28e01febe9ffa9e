package sim

import (
	"sort"
	"time"
)

// FrameQueue is a Scheduler driven by the host's display loop: every call to
// Flush runs the callbacks requested before it started. Callbacks requested
// during a flush wait for the next one.
type FrameQueue struct {
	next    FrameHandle
	pending map[FrameHandle]func()
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[FrameHandle]func())}
}

func (q *FrameQueue) RequestFrame(fn func()) FrameHandle {
	q.next++
	q.pending[q.next] = fn
	return q.next
}

func (q *FrameQueue) CancelFrame(h FrameHandle) {
	delete(q.pending, h)
}

// Len is the number of outstanding frame requests.
func (q *FrameQueue) Len() int { return len(q.pending) }

// Flush runs due callbacks in request order and returns how many ran.
func (q *FrameQueue) Flush() int {
	if len(q.pending) == 0 {
		return 0
	}
	handles := make([]FrameHandle, 0, len(q.pending))
	for h := range q.pending {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	ran := 0
	for _, h := range handles {
		fn, ok := q.pending[h]
		if !ok {
			continue
		}
		delete(q.pending, h)
		fn()
		ran++
	}
	return ran
}

// ManualClock is a Clock whose time only moves when Advance is called. Hosts
// advance it by the frame interval so timers fire on the frame goroutine.
type ManualClock struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	at    time.Duration
	seq   int
	fn    func()
	done  bool
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.clock.remove(t)
	return true
}

func NewManualClock() *ManualClock { return &ManualClock{} }

func (c *ManualClock) Now() time.Duration { return c.now }

func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.seq++
	t := &manualTimer{clock: c, at: c.now + d, seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Pending is the number of timers that have not fired or been stopped.
func (c *ManualClock) Pending() int { return len(c.timers) }

// Advance moves time forward by d, firing due timers in deadline order.
func (c *ManualClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		t := c.earliest()
		if t == nil || t.at > target {
			break
		}
		c.now = t.at
		t.done = true
		c.remove(t)
		t.fn()
	}
	c.now = target
}

func (c *ManualClock) earliest() *manualTimer {
	var best *manualTimer
	for _, t := range c.timers {
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (c *ManualClock) remove(t *manualTimer) {
	for i, o := range c.timers {
		if o == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}
