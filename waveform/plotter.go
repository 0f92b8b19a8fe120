package waveform

import "github.com/gathik-jindal/digisim/internal/trace"

// Plotter renders a completed run's recorded traces. Rendering itself is
// out of scope for the core simulator (spec §1/§6); this interface exists
// so a host program can plug in a real stepped-waveform renderer without
// the core needing to know about it.
type Plotter interface {
	Plot(traces map[string][]trace.Sample, name string) error
}

// NoOpPlotter is the default Plotter: it does nothing, but keeps the Plot
// seam real and always exercised, rather than conditionally skipped when no
// plotter is configured.
type NoOpPlotter struct{}

func (NoOpPlotter) Plot(map[string][]trace.Sample, string) error { return nil }
