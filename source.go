package digisim

import (
	"sort"

	"github.com/gathik-jindal/digisim/internal/bus"
	"github.com/gathik-jindal/digisim/internal/scheduler"
)

// Change is one scheduled value change: at simulated time At, the driving
// block's output becomes Value.
type Change struct {
	At    float64
	Value uint64
}

// Source drives its output bus according to a fixed schedule of changes,
// grounded on original_source/usableBlocks.py's Input block (`_go`): it
// sleeps until each scheduled instant, writes the new value, and posts it
// to every fan-out consumer.
type Source struct {
	blockCore
	out      *bus.Bus
	schedule []Change
}

// Output returns the bus this source drives.
func (b *Source) Output() *bus.Bus { return b.out }

// buildSource validates and constructs a Source bound to core. width must
// be in [1, 64]; buildSource rejects a schedule entry whose value doesn't
// fit in it, and sorts a copy of schedule by time.
func buildSource(core blockCore, width int, schedule []Change) (*Source, error) {
	if width < 1 || width > 64 {
		return nil, wrapConfig(core.id, "width must be between 1 and 64 bits")
	}
	mask := ^uint64(0) >> uint(64-width)
	sorted := append([]Change(nil), schedule...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	for _, c := range sorted {
		if c.Value&^mask != 0 {
			return nil, wrapConfig(core.id, "scheduled value does not fit in the configured width")
		}
	}
	return &Source{
		blockCore: core,
		out:       bus.New(core.sched, width),
		schedule:  sorted,
	}, nil
}

func (b *Source) spawn() {
	b.sched.Spawn(func(p *scheduler.Proc) {
		b.rec.Record("Input to "+b.id, 0, b.out.Value())
		last := 0.0
		for _, c := range b.schedule {
			if dt := c.At - last; dt > 0 {
				_ = p.Timeout(dt)
			}
			last = c.At
			b.out.Write(p, c.Value)
			b.rec.Record("Input to "+b.id, p.Now(), c.Value)
		}
	})
}
