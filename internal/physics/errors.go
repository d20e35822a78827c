package physics

import (
	"errors"
	"fmt"
)

// Domain errors for the string update engine.
var (
	// ErrParam indicates a physical parameter outside its valid range.
	ErrParam = errors.New("physics: parameter out of valid bounds")

	// ErrUnstable indicates the update produced NaN or Inf values.
	ErrUnstable = errors.New("physics: string update unstable (field diverged)")

	// ErrHistory indicates the history is too shallow for the stencil.
	ErrHistory = errors.New("physics: update needs at least two committed rows")
)

// StepError wraps an engine failure with the step it occurred on.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6fs): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
