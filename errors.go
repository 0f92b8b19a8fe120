// Package digisim provides a discrete-event simulator for synchronous
// digital-logic circuits built from typed blocks and multi-bit buses.
package digisim

import (
	"errors"
	"fmt"
)

// Sentinel errors usable with errors.Is, one per taxonomy kind from the
// error handling design. Concrete failures wrap one of these via Unwrap so
// callers can match on kind without a type assertion.
var (
	// ErrConfig marks illegal block parameters (clock duty cycle, negative
	// delay, a scheduled value or bus width out of range). An empty source
	// schedule is accepted, not rejected.
	ErrConfig = errors.New("digisim: config error")

	// ErrNetlist marks structural problems discovered before a run: a
	// missing clock binding, an unconnected consumer, a zero-delay
	// combinational cycle.
	ErrNetlist = errors.New("digisim: netlist error")

	// ErrFormat marks a rejected input waveform file.
	ErrFormat = errors.New("digisim: format error")

	// ErrScheduler marks a violation of the kernel's contract: an error
	// from the scheduler itself, or Netlist.Run called a second time on
	// the same netlist.
	ErrScheduler = errors.New("digisim: scheduler misuse")
)

// ConfigError reports illegal parameters supplied to a block constructor.
type ConfigError struct {
	BlockID string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.BlockID == "" {
		return fmt.Sprintf("config error: %s", e.Message)
	}
	return fmt.Sprintf("config error for block %q: %s", e.BlockID, e.Message)
}

// Unwrap lets errors.Is(err, ErrConfig) succeed, and chains any underlying cause.
func (e *ConfigError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrConfig, e.Cause}
	}
	return []error{ErrConfig}
}

// NetlistError reports a structural problem discovered before a run starts.
type NetlistError struct {
	BlockID string
	Reason  string
	Cause   error
}

func (e *NetlistError) Error() string {
	if e.BlockID == "" {
		return fmt.Sprintf("netlist error: %s", e.Reason)
	}
	return fmt.Sprintf("netlist error: block %q: %s", e.BlockID, e.Reason)
}

func (e *NetlistError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrNetlist, e.Cause}
	}
	return []error{ErrNetlist}
}

// FormatError reports a rejected input waveform file.
type FormatError struct {
	Line   int
	Reason string
	Cause  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("format error at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("format error: %s", e.Reason)
}

func (e *FormatError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrFormat, e.Cause}
	}
	return []error{ErrFormat}
}

// SchedulerMisuse reports an invariant violation inside the kernel.
type SchedulerMisuse struct {
	Message string
	Cause   error
}

func (e *SchedulerMisuse) Error() string {
	return fmt.Sprintf("scheduler misuse: %s", e.Message)
}

func (e *SchedulerMisuse) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrScheduler, e.Cause}
	}
	return []error{ErrScheduler}
}

// wrapConfig is a convenience constructor used throughout the block
// constructors, mirroring the teacher's WrapError helper but carrying a
// block identifier and a taxonomy kind instead of a bare message.
func wrapConfig(blockID, message string) error {
	return &ConfigError{BlockID: blockID, Message: message}
}

func wrapNetlist(blockID, reason string) error {
	return &NetlistError{BlockID: blockID, Reason: reason}
}
