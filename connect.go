package digisim

import "github.com/gathik-jindal/digisim/internal/bus"

// Connect wires producer as the next, most-significant segment of
// consumer's packed input port. A fresh fan-out notification channel is
// created for this binding, matching the original's one-channel-per-
// connection fan-out model (HasOutputConnections.addFanOut).
func (n *Netlist) Connect(producer *bus.Bus, consumer hasInput) {
	ch := n.sched.NewChannel()
	consumer.Input().Connect(producer, ch)
}

// ConnectClock wires producer as the clock driving a machine's dedicated
// clock port, enforcing invariant 5: exactly one clock binding per machine.
// Connecting a second clock to the same machine is a NetlistError.
func (n *Netlist) ConnectClock(producer *bus.Bus, consumer hasClockPort) error {
	if consumer.ClockPort().Connected() {
		return wrapNetlist(blockID(consumer), "a clock is already connected to this machine")
	}
	ch := n.sched.NewChannel()
	consumer.ClockPort().Connect(producer, ch)
	return nil
}

// identified is satisfied by every block via blockCore.ID, used to recover
// a block's identifier from a narrower capability interface for error
// messages.
type identified interface {
	ID() string
}

func blockID(v any) string {
	if x, ok := v.(identified); ok {
		return x.ID()
	}
	return ""
}
