package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder_LabelsPreserveFirstSeenOrder(t *testing.T) {
	r := New()
	r.Record("clk", 0, 0)
	r.Record("out", 0, 1)
	r.Record("clk", 1, 1)

	assert.Equal(t, []string{"clk", "out"}, r.Labels())
}

func TestRecorder_SeriesAccumulatesInRecordOrder(t *testing.T) {
	r := New()
	r.Record("out", 0, 0)
	r.Record("out", 1, 1)
	r.Record("out", 1, 1) // duplicate sample still appended; dedup is a consumer concern

	assert.Equal(t, []Sample{{0, 0}, {1, 1}, {1, 1}}, r.Series("out"))
}

func TestRecorder_UnknownLabelReturnsNil(t *testing.T) {
	r := New()
	assert.Nil(t, r.Series("missing"))
}
