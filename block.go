package digisim

import (
	"github.com/gathik-jindal/digisim/internal/bus"
	"github.com/gathik-jindal/digisim/internal/scheduler"
	"github.com/gathik-jindal/digisim/internal/trace"
)

// blockCore is the state shared by every block variant: its identity, the
// scheduler it runs on, and the recorder its run loop writes samples into.
// Matches §9's guidance to favor small structs plus capability interfaces
// over a deep class hierarchy.
type blockCore struct {
	id    string
	sched *scheduler.Scheduler
	rec   *trace.Recorder
	plot  bool
}

// ID returns the block's netlist identifier.
func (b *blockCore) ID() string { return b.id }

// hasOutput is implemented by blocks that drive a bus other blocks connect
// to: Source, Clock, Combinational, Machine.
type hasOutput interface {
	Output() *bus.Bus
}

// hasInput is implemented by blocks that consume one or more producer
// buses through a packed input port: Combinational, Machine, Sink.
type hasInput interface {
	Input() *bus.InputPort
}

// hasClockPort is implemented by blocks with a dedicated clock binding
// distinct from their data input: Machine.
type hasClockPort interface {
	ClockPort() *bus.InputPort
}

// observer is implemented by blocks that only watch a signal rather than
// producing one, exposing the last value they recorded for host
// inspection: Sink.
type observer interface {
	Observe() uint64
}

// runner is implemented by every block variant: spawn starts its
// cooperative process on the scheduler. It is called exactly once, by
// Netlist.Run, after connectivity validation has passed.
type runner interface {
	spawn()
}
