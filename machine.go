package digisim

import (
	"github.com/gathik-jindal/digisim/internal/bus"
	"github.com/gathik-jindal/digisim/internal/scheduler"
)

// edge selects which clock transition a Machine's register latches on.
type edge int

const (
	risingEdge edge = iota
	fallingEdge
)

func (e edge) value() uint64 {
	if e == fallingEdge {
		return 0
	}
	return 1
}

// machineKind distinguishes a Moore machine's state-only output logic from
// a Mealy machine's state-and-input output logic.
type machineKind int

const (
	mooreMachine machineKind = iota
	mealyMachine
)

// Machine implements the Moore/Mealy state-machine block variant: three
// cooperating stages - next-state logic (nsl), a clock-edge-triggered
// register, and output logic (ol) - grounded on
// original_source/MooreMachine-AbhirathA-patch-1's blocks.py
// (`__runNSL`/`__runReg`/`__runOL`). A Moore machine's ol ignores the
// packed input value; a Mealy machine's ol re-evaluates on input changes
// too, not just on a state change.
type Machine struct {
	blockCore
	kind machineKind

	dataIn bus.InputPort
	clkIn  bus.InputPort
	out    *bus.Bus

	state, nextState uint64

	nsl func(state, input uint64) uint64
	ol  func(state, input uint64) uint64

	edge                             edge
	nslDelay, olDelay, registerDelay float64
}

// Input returns this machine's packed data input port.
func (b *Machine) Input() *bus.InputPort { return &b.dataIn }

// ClockPort returns this machine's dedicated clock input port.
func (b *Machine) ClockPort() *bus.InputPort { return &b.clkIn }

// Output returns the bus this machine drives.
func (b *Machine) Output() *bus.Bus { return b.out }

// buildMachine validates and constructs a Machine bound to core.
func buildMachine(core blockCore, kind machineKind, outWidth int, nsl, ol func(state, input uint64) uint64, opts machineOptions) (*Machine, error) {
	if nsl == nil {
		return nil, wrapConfig(core.id, "nsl must not be nil")
	}
	if ol == nil {
		return nil, wrapConfig(core.id, "ol must not be nil")
	}
	if outWidth < 1 || outWidth > 64 {
		return nil, wrapConfig(core.id, "width must be between 1 and 64 bits")
	}
	if opts.nslDelay < 0 || opts.olDelay < 0 || opts.registerDelay < 0 {
		return nil, wrapConfig(core.id, "delays must not be negative")
	}
	return &Machine{
		blockCore:     core,
		kind:          kind,
		out:           bus.New(core.sched, outWidth),
		nsl:           nsl,
		ol:            ol,
		edge:          opts.edge,
		nslDelay:      opts.nslDelay,
		olDelay:       opts.olDelay,
		registerDelay: opts.registerDelay,
	}, nil
}

func (b *Machine) spawn() {
	// stateChanged fans the register's commits in to the output-logic
	// stage, decoupling "state committed" from "output recomputed" exactly
	// as the original's separate __runReg/__runOL coroutines do.
	stateChanged := b.sched.NewChannel()

	b.sched.Spawn(func(p *scheduler.Proc) {
		for {
			p.WaitAny(b.dataIn.Channels()...)
			ns := b.nsl(b.state, b.dataIn.Value())
			if b.nslDelay > 0 {
				_ = p.Timeout(b.nslDelay)
			}
			b.nextState = ns
			b.rec.Record("NS of "+b.id, p.Now(), ns)
		}
	})

	b.sched.Spawn(func(p *scheduler.Proc) {
		clkCh := b.clkIn.Channels()[0]
		for {
			v := p.Wait(clkCh)
			if v.(uint64) != b.edge.value() {
				continue
			}
			if b.nextState == b.state {
				continue
			}
			if b.registerDelay > 0 {
				_ = p.Timeout(b.registerDelay)
			}
			b.state = b.nextState
			b.rec.Record("PS of "+b.id, p.Now(), b.state)
			p.Post(stateChanged, b.state)
		}
	})

	b.sched.Spawn(func(p *scheduler.Proc) {
		emit := func() {
			out := b.ol(b.state, b.dataIn.Value())
			if b.olDelay > 0 {
				_ = p.Timeout(b.olDelay)
			}
			b.out.Write(p, out)
			b.rec.Record("output of "+b.id, p.Now(), out)
		}

		// Initial OL pass at t=0, before any clock edge has occurred.
		emit()

		watch := []*scheduler.Channel{stateChanged}
		if b.kind == mealyMachine {
			watch = append(watch, b.dataIn.Channels()...)
		}
		for {
			p.WaitAny(watch...)
			emit()
		}
	})
}
