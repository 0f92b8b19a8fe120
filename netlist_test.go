package digisim

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetlist_DuplicateIDIsRenamedWithAWarning(t *testing.T) {
	var logs bytes.Buffer
	n := New("t", WithLogger(NewLogger(&logs)))

	first, err := n.AddSource("x", 1, nil)
	require.NoError(t, err)
	second, err := n.AddSource("x", 1, nil)
	require.NoError(t, err)

	assert.Equal(t, "x", first.ID())
	assert.NotEqual(t, "x", second.ID())
	assert.Contains(t, logs.String(), "duplicate block ID renamed")
	assert.Contains(t, logs.String(), second.ID())
}

func TestNetlist_GeneratesSequentialIDsPerKind(t *testing.T) {
	n := New("t")
	a, err := n.AddSource("", 1, nil)
	require.NoError(t, err)
	b, err := n.AddSource("", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "Source 1", a.ID())
	assert.Equal(t, "Source 2", b.ID())
}

func TestNetlist_RejectsUnconnectedInput(t *testing.T) {
	n := New("t")
	_, err := n.AddSink("y", 0)
	require.NoError(t, err)

	err = n.Run(10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetlist)
}

func TestNetlist_RejectsMachineWithoutClock(t *testing.T) {
	n := New("t")
	src, err := n.AddSource("d", 1, nil)
	require.NoError(t, err)
	m, err := n.AddMooreMachine("m", 1,
		func(state, input uint64) uint64 { return input },
		func(state uint64) uint64 { return state },
	)
	require.NoError(t, err)
	n.Connect(src.Output(), m)

	err = n.Run(10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetlist)
}

func TestNetlist_RejectsZeroDelayCombinationalSelfFeedback(t *testing.T) {
	n := New("t")
	src, err := n.AddSource("x", 1, nil)
	require.NoError(t, err)

	a, err := n.AddCombinational("a", 1, func(v uint64) uint64 { return v }, 0)
	require.NoError(t, err)
	b, err := n.AddCombinational("b", 1, func(v uint64) uint64 { return v }, 0)
	require.NoError(t, err)

	n.Connect(src.Output(), a)
	n.Connect(a.Output(), b)
	n.Connect(b.Output(), a) // closes the loop a -> b -> a

	sink, err := n.AddSink("y", 0)
	require.NoError(t, err)
	n.Connect(b.Output(), sink)

	err = n.Run(10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetlist)
	assert.Contains(t, err.Error(), "cycle")
}

// TestNetlist_DirectedDiamondIsNotAFalseCycle is the regression the three-
// color DFS choice exists for: A feeding both B and C, which both feed D, has
// no cycle even though a naive same-component check would flag one.
func TestNetlist_DirectedDiamondIsNotAFalseCycle(t *testing.T) {
	n := New("t")
	src, err := n.AddSource("a", 1, nil)
	require.NoError(t, err)

	b, err := n.AddCombinational("b", 1, func(v uint64) uint64 { return v }, 0)
	require.NoError(t, err)
	c, err := n.AddCombinational("c", 1, func(v uint64) uint64 { return v }, 0)
	require.NoError(t, err)
	d, err := n.AddCombinational("d", 2, func(v uint64) uint64 { return v }, 0)
	require.NoError(t, err)

	n.Connect(src.Output(), b)
	n.Connect(src.Output(), c)
	n.Connect(b.Output(), d)
	n.Connect(c.Output(), d)

	sink, err := n.AddSink("y", 0)
	require.NoError(t, err)
	n.Connect(d.Output(), sink)

	require.NoError(t, n.Run(1))
}

func TestNetlist_RunIsOneShot(t *testing.T) {
	n := New("t")
	_, err := n.AddSource("x", 1, nil)
	require.NoError(t, err)
	require.NoError(t, n.Run(1))

	err = n.Run(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScheduler)
}

func TestNetlist_RejectsAddingBlocksAfterRun(t *testing.T) {
	n := New("t")
	require.NoError(t, n.Run(1))

	_, err := n.AddSource("x", 1, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetlist)
}

func TestNetlist_ConnectingASecondClockReasonMentionsTheMachine(t *testing.T) {
	n := New("t")
	clkA, err := n.AddClock("clk a", 2, 1, 0)
	require.NoError(t, err)
	clkB, err := n.AddClock("clk b", 2, 1, 0)
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
	assert.True(t, strings.Contains(err.Error(), "m"))
}
