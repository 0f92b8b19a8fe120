// Package digisim is a discrete-event simulator for synchronous
// digital-logic circuits. A host program builds a Netlist out of five
// block variants - Source, Clock, Combinational, Moore/Mealy Machine, and
// Sink - wires them together with Connect/ConnectClock, then calls Run to
// drive the simulation forward and emit a per-signal CSV trace.
//
// The simulator's cooperative scheduling kernel lives in internal/scheduler,
// its bus/fan-out packing model in internal/bus, and its trace recorder in
// internal/trace; the waveform sub-package provides pluggable external
// waveform loaders and a rendering seam.
package digisim
