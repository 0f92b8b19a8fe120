package scheduler

import "fmt"

// MisuseError reports a violation of the scheduler's contract: a negative
// timeout, or a second call to RunUntil on the same instance. Post performs
// no such check and never reports an error. It always indicates a bug in
// the calling code, never a property of the simulated circuit.
type MisuseError struct {
	Message string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("scheduler: %s", e.Message)
}

func misuse(format string, args ...any) error {
	return &MisuseError{Message: fmt.Sprintf(format, args...)}
}
