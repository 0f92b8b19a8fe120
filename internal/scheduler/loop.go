// Package scheduler implements the cooperative, single-threaded discrete
// event kernel described by the simulator's event scheduler component: a
// time-ordered priority queue of resumable processes, timeout/wait
// suspension, and a stable FIFO tie-break for events landing on the same
// simulated instant.
//
// Processes are ordinary goroutines, but a single-active-process token is
// passed explicitly between the driver loop (RunUntil) and whichever
// process it just resumed, so that - despite the concurrent goroutines -
// execution is observably single-threaded: exactly one process runs at a
// time, and it runs until its next Timeout/Wait/WaitAny call before any
// other process, or the driver itself, observes shared state again.
package scheduler

import (
	"container/heap"
)

// entry is one pending wake-up: a process becomes runnable at time At, and
// Seq breaks ties between entries scheduled for the same instant in the
// order they were registered.
type entry struct {
	at     float64
	seq    uint64
	resume chan struct{}
}

// entryHeap is a min-heap ordered by (at, seq), giving the scheduler's
// deterministic "stable minheap keyed on (time, monotonically-increasing
// tiebreak)" ordering policy.
type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Scheduler drives one netlist's worth of cooperative processes. It is not
// safe for concurrent use from multiple goroutines: only the process
// currently holding the token (see Proc) may call its methods, and the
// driver loop itself runs on the caller's goroutine inside RunUntil.
type Scheduler struct {
	heap    entryHeap
	seq     uint64
	now     float64
	until   float64
	started bool

	// handoff is the single rendezvous point: the currently active process
	// sends on it immediately before blocking on its own private resume
	// channel (or, for a finishing process, as its very last action). The
	// driver loop in RunUntil blocks receiving from it between resumes.
	handoff chan struct{}
}

// New creates an empty Scheduler. Processes may be Spawned either before or
// after the first RunUntil call; RunUntil itself may only be called once.
func New() *Scheduler {
	return &Scheduler{
		handoff: make(chan struct{}),
	}
}

// Now returns the scheduler's current simulated time. It is safe to call
// only from the process currently holding the token.
func (s *Scheduler) Now() float64 { return s.now }

func (s *Scheduler) nextSeq() uint64 {
	seq := s.seq
	s.seq++
	return seq
}

// schedule pushes a wake-up for resume at simulated time at.
func (s *Scheduler) schedule(at float64, resume chan struct{}) {
	heap.Push(&s.heap, entry{at: at, seq: s.nextSeq(), resume: resume})
}

// Spawn registers a new cooperative process. fn runs on its own goroutine
// but does not begin executing until the scheduler's driver loop hands it
// the token, which happens no earlier than the next RunUntil pass (per the
// spec's "spawn(process): ... it starts on the next scheduler pass").
func (s *Scheduler) Spawn(fn func(p *Proc)) {
	resume := make(chan struct{})
	p := &Proc{sched: s}
	s.schedule(s.now, resume)
	go func() {
		<-resume
		fn(p)
		// The process has run to completion without suspending again;
		// hand the token back so the driver can continue.
		s.handoff <- struct{}{}
	}()
}

// RunUntil processes events in non-decreasing time order, starting
// whichever process's turn has come up and waiting for it to yield (via
// Timeout/Wait/WaitAny) or finish before continuing. It stops when the
// queue is empty or the next pending event's time is >= until: the horizon
// is an exclusive upper bound, so an event scheduled for exactly t == until
// is left in the queue and does not run. Calling RunUntil twice on the same
// Scheduler is a misuse error.
func (s *Scheduler) RunUntil(until float64) error {
	if s.started {
		return misuse("RunUntil called twice on the same scheduler")
	}
	s.started = true
	s.until = until

	for s.heap.Len() > 0 {
		if s.heap[0].at >= until {
			break
		}
		next := heap.Pop(&s.heap).(entry)
		s.now = next.at
		next.resume <- struct{}{}
		<-s.handoff
	}
	return nil
}
