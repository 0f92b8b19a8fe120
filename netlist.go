package digisim

import (
	"fmt"
	"io"

	"github.com/gathik-jindal/digisim/internal/bus"
	"github.com/gathik-jindal/digisim/internal/scheduler"
	"github.com/gathik-jindal/digisim/internal/trace"
	"github.com/gathik-jindal/digisim/waveform"
)

// Netlist is the simulator's builder: it owns the scheduler and trace
// recorder, mints block identifiers, wires connections, validates
// connectivity and acyclicity before a run, and emits the post-run CSV
// dump and plot. Grounded on original_source/pydig.py's pydig class.
type Netlist struct {
	name      string
	sched     *scheduler.Scheduler
	rec       *trace.Recorder
	logger    *Logger
	outputDir string
	plotter   waveform.Plotter

	blocks        []runner
	ids           map[string]bool
	kindCounts    map[string]int
	producerOwner map[*bus.Bus]any
	ran           bool
}

// New creates an empty Netlist. name is used both as the CSV dump's base
// filename and as the identifier passed to the configured Plotter.
func New(name string, opts ...NetlistOption) *Netlist {
	resolved := resolveNetlistOptions(opts)
	return &Netlist{
		name:          name,
		sched:         scheduler.New(),
		rec:           trace.New(),
		logger:        resolved.logger,
		outputDir:     resolved.outputDir,
		plotter:       resolved.plotter,
		ids:           make(map[string]bool),
		kindCounts:    make(map[string]int),
		producerOwner: make(map[*bus.Bus]any),
	}
}

// resolveID assigns requested as this block's ID if it's non-empty and
// unused; otherwise it mints "<kind> <n>" for the smallest unused n. A
// non-empty but already-used requested ID is renamed, with a Warning-level
// diagnostic - the original's duplicate-ID-rename-with-print-warning
// policy (pydig.py's constructors), realized through the structured
// logger instead of a bare print.
func (n *Netlist) resolveID(kind, requested string) string {
	if requested == "" {
		return n.generateID(kind)
	}
	if n.ids[requested] {
		renamed := n.generateID(kind)
		n.logger.Warning().
			Str("requested", requested).
			Str("assigned", renamed).
			Log("duplicate block ID renamed")
		n.ids[renamed] = true
		return renamed
	}
	n.ids[requested] = true
	return requested
}

func (n *Netlist) generateID(kind string) string {
	for {
		n.kindCounts[kind]++
		candidate := fmt.Sprintf("%s %d", kind, n.kindCounts[kind])
		if !n.ids[candidate] {
			n.ids[candidate] = true
			return candidate
		}
	}
}

func (n *Netlist) newCore(kind, requested string) blockCore {
	return blockCore{id: n.resolveID(kind, requested), sched: n.sched, rec: n.rec}
}

// AddSource creates and registers a Source block.
func (n *Netlist) AddSource(id string, width int, schedule []Change) (*Source, error) {
	if n.ran {
		return nil, wrapNetlist(id, "cannot add a block after Run")
	}
	b, err := buildSource(n.newCore("Source", id), width, schedule)
	if err != nil {
		return nil, err
	}
	n.blocks = append(n.blocks, b)
	n.producerOwner[b.out] = b
	return b, nil
}

// AddSourceFromWaveform creates a Source whose schedule is decoded from r
// using loader, wrapping any decode failure as a FormatError.
func (n *Netlist) AddSourceFromWaveform(id string, width int, r io.Reader, loader waveform.Loader) (*Source, error) {
	changes, err := loader.Load(r)
	if err != nil {
		return nil, &FormatError{Reason: "loading waveform", Cause: err}
	}
	schedule := make([]Change, len(changes))
	for i, c := range changes {
		schedule[i] = Change{At: c.At, Value: c.Value}
	}
	return n.AddSource(id, width, schedule)
}

// AddClock creates and registers a Clock block.
func (n *Netlist) AddClock(id string, period, onTime float64, initialValue uint64) (*Clock, error) {
	if n.ran {
		return nil, wrapNetlist(id, "cannot add a block after Run")
	}
	b, err := buildClock(n.newCore("Clock", id), period, onTime, initialValue)
	if err != nil {
		return nil, err
	}
	n.blocks = append(n.blocks, b)
	n.producerOwner[b.out] = b
	return b, nil
}

// AddCombinational creates and registers a Combinational block.
func (n *Netlist) AddCombinational(id string, outWidth int, fn func(uint64) uint64, delay float64) (*Combinational, error) {
	if n.ran {
		return nil, wrapNetlist(id, "cannot add a block after Run")
	}
	b, err := buildCombinational(n.newCore("Combinational", id), outWidth, fn, delay)
	if err != nil {
		return nil, err
	}
	n.blocks = append(n.blocks, b)
	n.producerOwner[b.out] = b
	return b, nil
}

// AddMooreMachine creates and registers a Moore machine: its output logic
// ol depends only on present state.
func (n *Netlist) AddMooreMachine(id string, outWidth int, nsl func(state, input uint64) uint64, ol func(state uint64) uint64, opts ...MachineOption) (*Machine, error) {
	if n.ran {
		return nil, wrapNetlist(id, "cannot add a block after Run")
	}
	wrapped := func(state, _ uint64) uint64 { return ol(state) }
	b, err := buildMachine(n.newCore("MooreMachine", id), mooreMachine, outWidth, nsl, wrapped, resolveMachineOptions(opts))
	if err != nil {
		return nil, err
	}
	n.blocks = append(n.blocks, b)
	n.producerOwner[b.out] = b
	return b, nil
}

// AddMealyMachine creates and registers a Mealy machine: its output logic
// ol depends on both present state and the current packed input value.
func (n *Netlist) AddMealyMachine(id string, outWidth int, nsl, ol func(state, input uint64) uint64, opts ...MachineOption) (*Machine, error) {
	if n.ran {
		return nil, wrapNetlist(id, "cannot add a block after Run")
	}
	b, err := buildMachine(n.newCore("MealyMachine", id), mealyMachine, outWidth, nsl, ol, resolveMachineOptions(opts))
	if err != nil {
		return nil, err
	}
	n.blocks = append(n.blocks, b)
	n.producerOwner[b.out] = b
	return b, nil
}

// AddSink creates and registers a Sink block.
func (n *Netlist) AddSink(id string, delay float64) (*Sink, error) {
	if n.ran {
		return nil, wrapNetlist(id, "cannot add a block after Run")
	}
	b, err := buildSink(n.newCore("Sink", id), delay)
	if err != nil {
		return nil, err
	}
	n.blocks = append(n.blocks, b)
	return b, nil
}

// validateConnectivity implements is_connected(): every block with a data
// input must have at least one producer bound, and every machine must have
// its clock bound.
func (n *Netlist) validateConnectivity() error {
	for _, blk := range n.blocks {
		if hi, ok := blk.(hasInput); ok && !hi.Input().Connected() {
			return wrapNetlist(blockID(blk), "block has an unconnected input")
		}
		if hc, ok := blk.(hasClockPort); ok && !hc.ClockPort().Connected() {
			return wrapNetlist(blockID(blk), "machine has no clock connected")
		}
	}
	return nil
}

// Run validates the netlist (connectivity, then combinational acyclicity),
// spawns every block's cooperative process, drives the scheduler through
// [0, until), and finally emits the CSV dump and invokes the configured
// Plotter. Run may only be called once per Netlist.
func (n *Netlist) Run(until float64) error {
	if n.ran {
		return &SchedulerMisuse{Message: "Run called twice on the same netlist"}
	}
	if err := n.validateConnectivity(); err != nil {
		return err
	}
	if err := n.detectCombinationalCycle(); err != nil {
		return err
	}

	n.ran = true
	for _, blk := range n.blocks {
		blk.spawn()
	}
	if err := n.sched.RunUntil(until); err != nil {
		return &SchedulerMisuse{Message: err.Error(), Cause: err}
	}

	if err := n.DumpCSV(n.name); err != nil {
		return err
	}
	return n.plotter.Plot(n.rec.All(), n.name)
}
