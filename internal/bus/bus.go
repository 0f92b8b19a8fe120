// Package bus implements the simulator's bus/fan-out data model: a producer
// owns an integer value and an ordered list of consumer channels, and a
// consumer's input port packs together one or more producer slices using
// the extraction-and-concatenation formula from the bus model component.
package bus

import "github.com/gathik-jindal/digisim/internal/scheduler"

// Bus is a producer's output: a fixed-width value plus the ordered list of
// fan-out channels that get notified, in connection order, whenever the
// value changes.
type Bus struct {
	sched   *scheduler.Scheduler
	width   int
	value   uint64
	fanouts []*scheduler.Channel

	pendingLo, pendingHi int
}

// New creates a zero-valued Bus of the given width. width is assumed
// already validated (1..64) by the caller; bus does not itself enforce the
// bound since rejecting it is a construction-time ConfigError owned by the
// block constructors.
func New(sched *scheduler.Scheduler, width int) *Bus {
	return &Bus{sched: sched, width: width, pendingHi: width - 1}
}

// Width reports the bus's bit width.
func (b *Bus) Width() int { return b.width }

// Value returns the bus's current value.
func (b *Bus) Value() uint64 { return b.value }

// SetInitial sets the bus's starting value without notifying any fan-out,
// for use before a simulation run begins - matching blocks that set their
// initial output directly at construction time rather than through a
// propagating Write.
func (b *Bus) SetInitial(v uint64) {
	b.value = v & widthMask(b.width)
}

// Slice sets the output slice [lo, hi] (inclusive) that the next FanOut
// call will bind to, realizing the transient block.Output(lo, hi) DSL:
// after one FanOut consumes it, the pending slice resets to the full bus
// width.
func (b *Bus) Slice(lo, hi int) *Bus {
	b.pendingLo, b.pendingHi = lo, hi
	return b
}

func (b *Bus) takeSlice() (int, int) {
	lo, hi := b.pendingLo, b.pendingHi
	b.pendingLo, b.pendingHi = 0, b.width-1
	return lo, hi
}

// FanOut registers ch as a new consumer, in connection order, and returns
// the Binding describing the slice of this bus that consumer reads -
// whatever was last set via Slice, defaulting to the bus's full width.
func (b *Bus) FanOut(ch *scheduler.Channel) Binding {
	lo, hi := b.takeSlice()
	b.fanouts = append(b.fanouts, ch)
	return Binding{Producer: b, Lo: lo, Hi: hi}
}

// Write sets the bus's value (masked to its width) and posts it to every
// fan-out channel in connection order, coalescing with any prior unread
// post per the scheduler's single-slot channel contract.
func (b *Bus) Write(p *scheduler.Proc, v uint64) {
	b.value = v & widthMask(b.width)
	for _, ch := range b.fanouts {
		p.Post(ch, b.value)
	}
}

func widthMask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(width)) - 1
}

// Binding is one producer slice feeding an input port: bits [Lo, Hi]
// (inclusive) of Producer's value.
type Binding struct {
	Producer *Bus
	Lo, Hi   int
}

// Width reports the number of bits this binding contributes.
func (bd Binding) Width() int { return bd.Hi - bd.Lo + 1 }

func (bd Binding) extract() uint64 {
	w := bd.Width()
	return (bd.Producer.Value() >> uint(bd.Lo)) & widthMask(w)
}

// InputPort packs together zero or more producer bindings in connection
// order: Value() implements packed = sum_i(extract(v_i, l_i, h_i) <<
// sum_{j<i}(w_j)), the concatenation formula from the bus model.
type InputPort struct {
	bindings []Binding
	channels []*scheduler.Channel
}

// Connect binds a new producer slice (and its notification channel) as the
// next, most-significant segment of this port.
func (in *InputPort) Connect(b *Bus, ch *scheduler.Channel) {
	in.bindings = append(in.bindings, b.FanOut(ch))
	in.channels = append(in.channels, ch)
}

// Channels returns the fan-out channels feeding this port, in connection
// order, for use with Proc.WaitAny.
func (in *InputPort) Channels() []*scheduler.Channel { return in.channels }

// Connected reports whether at least one producer has been bound.
func (in *InputPort) Connected() bool { return len(in.bindings) > 0 }

// Producers returns the producer bus of every binding on this port, in
// connection order (a bus bound twice appears twice), for use by consumers
// that need to trace fan-in structure (e.g. combinational-cycle detection).
func (in *InputPort) Producers() []*Bus {
	out := make([]*Bus, len(in.bindings))
	for i, bd := range in.bindings {
		out[i] = bd.Producer
	}
	return out
}

// Width returns the total packed width: the sum of every binding's width.
func (in *InputPort) Width() int {
	total := 0
	for _, bd := range in.bindings {
		total += bd.Width()
	}
	return total
}

// Value packs every bound producer slice into a single integer, the
// earliest-connected binding occupying the least-significant bits.
func (in *InputPort) Value() uint64 {
	var packed uint64
	var shift uint
	for _, bd := range in.bindings {
		packed |= bd.extract() << shift
		shift += uint(bd.Width())
	}
	return packed
}
