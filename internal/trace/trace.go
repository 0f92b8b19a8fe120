// Package trace implements the simulator's trace recorder: an append-only,
// per-signal log of (time, value) samples taken whenever a block's tracked
// value changes, grounded on the original implementation's ScopeDump.add
// calls scattered through each block's run loop.
package trace

// Sample is one recorded (time, value) pair for a signal.
type Sample struct {
	Time  float64
	Value uint64
}

// Recorder accumulates samples for any number of labelled signals, keeping
// each label's samples in the order they were recorded and remembering the
// order labels were first seen so downstream consumers (CSV dump, a
// waveform.Plotter) can emit stable, deterministic column ordering.
type Recorder struct {
	order  []string
	series map[string][]Sample
}

// New creates an empty Recorder.
func New() *Recorder {
	return &Recorder{series: make(map[string][]Sample)}
}

// Record appends one sample to label's series. The first Record call for a
// previously-unseen label fixes that label's position in Labels().
func (r *Recorder) Record(label string, t float64, v uint64) {
	if _, ok := r.series[label]; !ok {
		r.order = append(r.order, label)
	}
	r.series[label] = append(r.series[label], Sample{Time: t, Value: v})
}

// Labels returns every recorded label, in first-seen order.
func (r *Recorder) Labels() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Series returns label's recorded samples in recording order, or nil if
// nothing was ever recorded for it.
func (r *Recorder) Series(label string) []Sample {
	return r.series[label]
}

// All returns every label's series as a map, keyed by label. Callers
// needing deterministic iteration should drive it from Labels() instead.
func (r *Recorder) All() map[string][]Sample {
	return r.series
}
