package digisim

import (
	"io"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// NewLogger builds a digisim Logger writing newline-delimited JSON to w,
// using stumpy as the logiface backend - the same pairing the teacher's
// own go.mod lists as a direct dependency.
func NewLogger(w io.Writer) *Logger {
	return stumpy.L.New(
		stumpy.L.WithStumpy(),
		stumpy.L.WithWriter(w),
	)
}

// newDiscardLogger is the default logger wired into a Netlist when
// WithLogger is not supplied: a bare logiface.Logger with no writer
// configured is unwriteable, so every call is a cheap no-op, which is
// simpler than routing every diagnostic call site through a nil check.
func newDiscardLogger() *Logger {
	return logiface.New[*stumpy.Event]()
}
