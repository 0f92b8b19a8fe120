package digisim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMooreMachine_DFlipFlop exercises a one-bit D-flip-flop: next state
// always follows the current data input, and the register only commits on
// a rising clock edge.
func TestMooreMachine_DFlipFlop(t *testing.T) {
	n := New("t")

	data, err := n.AddSource("d", 1, []Change{{At: 0.2, Value: 1}})
	require.NoError(t, err)
	clk, err := n.AddClock("clk", 2, 1, 0)
	require.NoError(t, err)

	m, err := n.AddMooreMachine("dff", 1,
		func(state, input uint64) uint64 { return input },
		func(state uint64) uint64 { return state },
	)
	require.NoError(t, err)

	n.Connect(data.Output(), m)
	require.NoError(t, n.ConnectClock(clk.Output(), m))

	sink, err := n.AddSink("q", 0)
	require.NoError(t, err)
	n.Connect(m.Output(), sink)

	require.NoError(t, n.Run(3))

	ps := n.rec.Series("PS of dff")
	require.Len(t, ps, 1, "the register should commit exactly once: the rising edge at t=1")
	assert.Equal(t, 1.01, ps[0].Time)
	assert.Equal(t, uint64(1), ps[0].Value)

	out := n.rec.Series("output of dff")
	require.GreaterOrEqual(t, len(out), 2)
	assert.Equal(t, uint64(0), out[0].Value, "initial OL pass at t=0 reflects the reset state")
	assert.Equal(t, uint64(1), out[len(out)-1].Value)
}

func TestMealyMachine_OutputReactsToInputWithoutWaitingForClock(t *testing.T) {
	n := New("t")

	data, err := n.AddSource("d", 1, []Change{{At: 0.5, Value: 1}})
	require.NoError(t, err)
	clk, err := n.AddClock("clk", 10, 5, 0)
	require.NoError(t, err)

	m, err := n.AddMealyMachine("m", 1,
		func(state, input uint64) uint64 { return state },
		func(state, input uint64) uint64 { return input },
	)
	require.NoError(t, err)

	n.Connect(data.Output(), m)
	require.NoError(t, n.ConnectClock(clk.Output(), m))

	sink, err := n.AddSink("q", 0)
	require.NoError(t, err)
	n.Connect(m.Output(), sink)

	require.NoError(t, n.Run(1))

	out := n.rec.Series("output of m")
	require.GreaterOrEqual(t, len(out), 2)
	last := out[len(out)-1]
	assert.Equal(t, uint64(1), last.Value, "a Mealy output reacts to the input change directly, with no clock edge required")
}

// TestMealyMachine_NextStateLogicKeepsRunningAlongsideOutputLogic guards
// against the next-state-logic stage going permanently silent: a Mealy
// machine's output-logic stage watches the very same data-input channels as
// its next-state-logic stage, and every input change must wake both.
func TestMealyMachine_NextStateLogicKeepsRunningAlongsideOutputLogic(t *testing.T) {
	n := New("t")

	data, err := n.AddSource("d", 1, []Change{{At: 0.2, Value: 1}, {At: 0.6, Value: 0}})
	require.NoError(t, err)
	clk, err := n.AddClock("clk", 10, 5, 0)
	require.NoError(t, err)

	m, err := n.AddMealyMachine("m2", 1,
		func(state, input uint64) uint64 { return input },
		func(state, input uint64) uint64 { return input },
	)
	require.NoError(t, err)

	n.Connect(data.Output(), m)
	require.NoError(t, n.ConnectClock(clk.Output(), m))

	sink, err := n.AddSink("q", 0)
	require.NoError(t, err)
	n.Connect(m.Output(), sink)

	require.NoError(t, n.Run(1))

	ns := n.rec.Series("NS of m2")
	require.Len(t, ns, 2, "next-state logic must recompute for every input change, not just the first")
	assert.Equal(t, uint64(1), ns[0].Value)
	assert.Equal(t, uint64(0), ns[1].Value)
}

func TestMachine_ConnectingASecondClockIsRejected(t *testing.T) {
	n := New("t")
	clkA, err := n.AddClock("a", 2, 1, 0)
	require.NoError(t, err)
	clkB, err := n.AddClock("b", 2, 1, 0)
	require.NoError(t, err)
	data, err := n.AddSource("d", 1, nil)
	require.NoError(t, err)

	m, err := n.AddMooreMachine("m", 1,
		func(state, input uint64) uint64 { return input },
		func(state uint64) uint64 { return state },
	)
	require.NoError(t, err)
	n.Connect(data.Output(), m)

	require.NoError(t, n.ConnectClock(clkA.Output(), m))
	err = n.ConnectClock(clkB.Output(), m)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetlist)
}
