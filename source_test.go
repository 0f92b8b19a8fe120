package digisim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_RejectsWidthOutOfRange(t *testing.T) {
	n := New("t")
	_, err := n.AddSource("x", 0, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestSource_RejectsValueNotFittingWidth(t *testing.T) {
	n := New("t")
	_, err := n.AddSource("x", 2, []Change{{At: 0, Value: 8}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestSource_DrivesScheduleInOrderRegardlessOfInputOrder(t *testing.T) {
	n := New("t")
	src, err := n.AddSource("x", 4, []Change{
		{At: 2, Value: 1},
		{At: 1, Value: 3},
	})
	require.NoError(t, err)

	sink, err := n.AddSink("y", 0)
	require.NoError(t, err)
	n.Connect(src.Output(), sink)

	require.NoError(t, n.Run(3))

	samples := n.rec.Series("Input to x")
	require.Len(t, samples, 3) // initial + two scheduled changes
	assert.Equal(t, float64(0), samples[0].Time)
	assert.Equal(t, float64(1), samples[1].Time)
	assert.Equal(t, uint64(3), samples[1].Value)
	assert.Equal(t, float64(2), samples[2].Time)
	assert.Equal(t, uint64(1), samples[2].Value)
}
