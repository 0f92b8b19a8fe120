package scheduler

// Proc is the token threaded through a spawned process's entry function.
// Only the process currently holding it may call its methods; the
// suspending ones (Timeout, Wait, WaitAny) hand control back to the driver
// loop until the process is resumed.
type Proc struct {
	sched *Scheduler
}

// Now returns the scheduler's current simulated time.
func (p *Proc) Now() float64 { return p.sched.now }

// Timeout suspends the calling process until dt simulated seconds have
// elapsed, then returns control to it. A negative dt is a misuse error.
func (p *Proc) Timeout(dt float64) error {
	if dt < 0 {
		return misuse("Timeout called with negative duration %v", dt)
	}
	at := p.sched.now + dt
	resume := make(chan struct{})
	p.sched.schedule(at, resume)
	p.sched.handoff <- struct{}{}
	<-resume
	return nil
}

// waiter is the shared wake-up record for one Wait/WaitAny registration; it
// may be attached to several channels at once (WaitAny), and scheduled is
// set the first time any of them fires so a batch of simultaneous posts
// produces exactly one wake-up.
type waiter struct {
	scheduled bool
	resume    chan struct{}
}

// Channel is the single-slot coalescing primitive described by the
// scheduler's fan-out contract: a post overwrites any unconsumed pending
// value, and every registered waiter wakes at most once per coalesced batch
// of posts. A channel may have more than one waiter registered at once: a
// block's separate cooperative sub-processes (e.g. a Mealy machine's
// next-state-logic and output-logic stages) each independently WaitAny on
// the same fan-out channels, and a single Post must wake all of them.
type Channel struct {
	sched   *Scheduler
	hasVal  bool
	val     any
	waiters []*waiter
}

// NewChannel creates a Channel bound to this scheduler's clock.
func (s *Scheduler) NewChannel() *Channel {
	return &Channel{sched: s}
}

// take drains any pending value, returning ok=false if none is pending.
func (ch *Channel) take() (any, bool) {
	if !ch.hasVal {
		return nil, false
	}
	v := ch.val
	ch.hasVal = false
	ch.val = nil
	return v, true
}

// register adds w to ch's waiter list and, if ch already has an unconsumed
// value (it was posted before this process subscribed), schedules w
// immediately rather than waiting for a future Post that may never come.
func (ch *Channel) register(w *waiter) {
	ch.waiters = append(ch.waiters, w)
	if ch.hasVal && !w.scheduled {
		w.scheduled = true
		ch.sched.schedule(ch.sched.now, w.resume)
	}
}

// deregister removes w from ch's waiter list once it has woken, so a
// channel shared by several long-lived sub-processes doesn't accumulate a
// stale waiter per iteration.
func (ch *Channel) deregister(w *waiter) {
	for i, x := range ch.waiters {
		if x == w {
			ch.waiters = append(ch.waiters[:i], ch.waiters[i+1:]...)
			return
		}
	}
}

// Post writes val into ch, overwriting any unconsumed pending value, and
// wakes every not-yet-scheduled waiter registered on ch at the current
// simulated time. Posting twice before a waiter runs coalesces into a
// single wake-up carrying only the latest value, matching the single-slot
// contract.
func (p *Proc) Post(ch *Channel, val any) {
	ch.val = val
	ch.hasVal = true
	for _, w := range ch.waiters {
		if !w.scheduled {
			w.scheduled = true
			ch.sched.schedule(ch.sched.now, w.resume)
		}
	}
}

// Wait suspends the calling process until ch is posted to (or returns
// immediately, on the next scheduler pass, if ch already has an unconsumed
// value), then returns the posted value.
func (p *Proc) Wait(ch *Channel) any {
	w := &waiter{resume: make(chan struct{})}
	ch.register(w)
	p.sched.handoff <- struct{}{}
	<-w.resume
	ch.deregister(w)
	v, _ := ch.take()
	return v
}

// WaitAny suspends the calling process until any one of chs is posted to,
// then drains (and discards) every pending value across all of chs so that
// a fresh batch of posts is required before the next WaitAny wakes again —
// this realizes "multiple input changes at the same instant coalesce into
// one re-evaluation" for blocks that fan in from more than one producer.
func (p *Proc) WaitAny(chs ...*Channel) {
	w := &waiter{resume: make(chan struct{})}
	for _, ch := range chs {
		ch.register(w)
	}
	p.sched.handoff <- struct{}{}
	<-w.resume
	for _, ch := range chs {
		ch.deregister(w)
		ch.take()
	}
}
