package digisim

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/gathik-jindal/digisim/waveform"
)

// Logger is the structured logger type used throughout digisim, an alias
// for the logiface facade bound to stumpy's JSON event implementation.
type Logger = logiface.Logger[*stumpy.Event]

// netlistOptions holds every optional knob a Netlist can be constructed
// with; resolveNetlistOptions fills in the defaults (a no-op plotter, a
// discarding logger, CSV output under "output/").
type netlistOptions struct {
	logger    *Logger
	plotter   waveform.Plotter
	outputDir string
}

// NetlistOption configures optional Netlist behavior, following the
// teacher's functional-options pattern (options.go's LoopOption): an
// interface with an unexported method, implemented by a closure type, so
// new options can be added
// without breaking New's signature.
type NetlistOption interface {
	applyNetlist(*netlistOptions)
}

type netlistOptionFunc func(*netlistOptions)

func (f netlistOptionFunc) applyNetlist(o *netlistOptions) { f(o) }

// WithLogger sets the structured logger used for ID-collision warnings and
// construction-time diagnostics. The default discards everything.
func WithLogger(l *Logger) NetlistOption {
	return netlistOptionFunc(func(o *netlistOptions) { o.logger = l })
}

// WithPlotter sets the Plotter invoked after a run completes. The default
// is waveform.NoOpPlotter, since rendering waveforms is out of scope for
// the core.
func WithPlotter(p waveform.Plotter) NetlistOption {
	return netlistOptionFunc(func(o *netlistOptions) { o.plotter = p })
}

// WithOutputDir overrides the directory CSV dumps are written under
// (default "output").
func WithOutputDir(dir string) NetlistOption {
	return netlistOptionFunc(func(o *netlistOptions) { o.outputDir = dir })
}

func resolveNetlistOptions(opts []NetlistOption) netlistOptions {
	resolved := netlistOptions{
		plotter:   waveform.NoOpPlotter{},
		outputDir: "output",
	}
	for _, opt := range opts {
		if opt != nil {
			opt.applyNetlist(&resolved)
		}
	}
	if resolved.logger == nil {
		resolved.logger = newDiscardLogger()
	}
	return resolved
}

// MachineOption configures a Moore/Mealy machine's edge sensitivity and
// per-stage delays beyond their constructor defaults.
type MachineOption interface {
	applyMachine(*machineOptions)
}

type machineOptionFunc func(*machineOptions)

func (f machineOptionFunc) applyMachine(o *machineOptions) { f(o) }

type machineOptions struct {
	edge                             edge
	nslDelay, olDelay, registerDelay float64
}

// WithFallingEdge makes the machine's register latch on the falling edge of
// its clock input instead of the default rising edge (Open Question (b)).
func WithFallingEdge() MachineOption {
	return machineOptionFunc(func(o *machineOptions) { o.edge = fallingEdge })
}

// WithMachineDelays overrides the next-state, output, and register delays
// (defaults: 0.01 each, matching the original implementation's pydig
// constructor defaults).
func WithMachineDelays(nsl, ol, register float64) MachineOption {
	return machineOptionFunc(func(o *machineOptions) {
		o.nslDelay, o.olDelay, o.registerDelay = nsl, ol, register
	})
}

func resolveMachineOptions(opts []MachineOption) machineOptions {
	resolved := machineOptions{
		edge:          risingEdge,
		nslDelay:      0.01,
		olDelay:       0.01,
		registerDelay: 0.01,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.applyMachine(&resolved)
		}
	}
	return resolved
}
