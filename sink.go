package digisim

import (
	"github.com/gathik-jindal/digisim/internal/bus"
	"github.com/gathik-jindal/digisim/internal/scheduler"
)

// Sink observes a packed input port without driving anything itself,
// grounded on original_source/usableBlocks.py's Output block (`__give`):
// whenever its input changes, it records the new packed value after a
// small settling delay.
type Sink struct {
	blockCore
	in    bus.InputPort
	delay float64
	last  uint64
}

// Input returns this block's packed input port.
func (b *Sink) Input() *bus.InputPort { return &b.in }

// Observe returns the last value this sink recorded.
func (b *Sink) Observe() uint64 { return b.last }

// buildSink constructs a Sink bound to core. delay must be non-negative.
func buildSink(core blockCore, delay float64) (*Sink, error) {
	if delay < 0 {
		return nil, wrapConfig(core.id, "delay must not be negative")
	}
	return &Sink{blockCore: core, delay: delay}, nil
}

func (b *Sink) spawn() {
	b.sched.Spawn(func(p *scheduler.Proc) {
		for {
			p.WaitAny(b.in.Channels()...)
			if b.delay > 0 {
				_ = p.Timeout(b.delay)
			}
			b.last = b.in.Value()
			b.rec.Record("Final Output from "+b.id, p.Now(), b.last)
		}
	})
}
