package digisim

import (
	"github.com/gathik-jindal/digisim/internal/bus"
	"github.com/gathik-jindal/digisim/internal/scheduler"
)

// Combinational recomputes its output from a pure function of its packed
// input value, after a fixed propagation delay, grounded on
// original_source/usableBlocks.py's Combinational block (`__runFunc`): it
// wakes whenever any input changes, applies func, timeouts for delay, then
// writes and posts the new output.
type Combinational struct {
	blockCore
	in    bus.InputPort
	out   *bus.Bus
	fn    func(uint64) uint64
	delay float64
}

// Input returns this block's packed input port.
func (b *Combinational) Input() *bus.InputPort { return &b.in }

// Output returns the bus this block drives.
func (b *Combinational) Output() *bus.Bus { return b.out }

// buildCombinational validates and constructs a Combinational bound to
// core. fn must be non-nil; delay must be non-negative.
func buildCombinational(core blockCore, outWidth int, fn func(uint64) uint64, delay float64) (*Combinational, error) {
	if fn == nil {
		return nil, wrapConfig(core.id, "func must not be nil")
	}
	if delay < 0 {
		return nil, wrapConfig(core.id, "delay must not be negative")
	}
	if outWidth < 1 || outWidth > 64 {
		return nil, wrapConfig(core.id, "width must be between 1 and 64 bits")
	}
	out := bus.New(core.sched, outWidth)
	core.rec.Record(core.id+" output", 0, out.Value())
	return &Combinational{
		blockCore: core,
		out:       out,
		fn:        fn,
		delay:     delay,
	}, nil
}

func (b *Combinational) spawn() {
	b.sched.Spawn(func(p *scheduler.Proc) {
		for {
			p.WaitAny(b.in.Channels()...)
			v := b.fn(b.in.Value())
			if b.delay > 0 {
				_ = p.Timeout(b.delay)
			}
			b.out.Write(p, v)
			b.rec.Record(b.id+" output", p.Now(), v)
		}
	})
}
