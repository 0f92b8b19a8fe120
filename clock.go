package digisim

import (
	"github.com/gathik-jindal/digisim/internal/bus"
	"github.com/gathik-jindal/digisim/internal/scheduler"
)

// Clock drives a single-bit output that alternates between 1 and 0,
// grounded on original_source/usableBlocks.py's Clock block (`_go`):
// it stays high for onTime out of every period seconds, toggling
// forever.
type Clock struct {
	blockCore
	out          *bus.Bus
	period       float64
	onTime       float64
	initialValue uint64
}

// Output returns the bus this clock drives.
func (b *Clock) Output() *bus.Bus { return b.out }

// buildClock validates and constructs a Clock bound to core. period must be
// positive and onTime strictly between 0 and period; initialValue must be 0
// or 1.
func buildClock(core blockCore, period, onTime float64, initialValue uint64) (*Clock, error) {
	if period <= 0 {
		return nil, wrapConfig(core.id, "period must be positive")
	}
	if onTime <= 0 || onTime >= period {
		return nil, wrapConfig(core.id, "onTime must be strictly between 0 and period")
	}
	if initialValue > 1 {
		return nil, wrapConfig(core.id, "initialValue must be 0 or 1")
	}
	out := bus.New(core.sched, 1)
	out.SetInitial(initialValue)
	core.rec.Record("Clock "+core.id, 0, initialValue)
	return &Clock{
		blockCore:    core,
		out:          out,
		period:       period,
		onTime:       onTime,
		initialValue: initialValue,
	}, nil
}

func (b *Clock) spawn() {
	b.sched.Spawn(func(p *scheduler.Proc) {
		for {
			v := b.out.Value()
			var dt float64
			if v == 1 {
				dt = b.onTime
			} else {
				dt = b.period - b.onTime
			}
			_ = p.Timeout(dt)
			next := 1 - v
			b.out.Write(p, next)
			b.rec.Record("Clock "+b.id, p.Now(), next)
		}
	})
}
