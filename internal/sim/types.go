package sim

import (
	"errors"
	"time"

	"github.com/san-kum/stringsim/internal/field"
)

// Domain errors for the simulation driver.
var (
	// ErrDriverDone indicates Run was called on a driver that already ran.
	ErrDriverDone = errors.New("sim: driver already ran")

	// ErrSteps indicates a non-positive step count.
	ErrSteps = errors.New("sim: step count must be positive")

	// ErrSeedDepth indicates a seed history too shallow for the scheme.
	ErrSeedDepth = errors.New("sim: seed history must hold at least two rows")
)

// Engine produces the field row for the next time step from the retained
// history. It must return exactly one row of the history's spatial width.
type Engine interface {
	Advance(h *field.History) ([]float64, error)
}

// Tracker reports the spatial cells occupied by particles at a given step.
// Any tracker mutation happens inside the engine's Advance for that step;
// the driver only reads.
type Tracker interface {
	PositionsAt(t int) []int
}

// Animator accumulates one frame per step and encodes the sequence into a
// single animation artifact during finalization.
type Animator interface {
	AddFrame(row []float64, positions []int, step int)
	Encode() (string, error)
}

// StreamWriter appends one formatted line per step to the run's output
// streams. Close flushes and releases the underlying files.
type StreamWriter interface {
	WriteStep(row []float64, positions []int) error
	Close() error
}

// Metric accumulates a per-run scalar from observed steps.
type Metric interface {
	Name() string
	Observe(row []float64, positions []int, step int)
	Value() float64
	Reset()
}

// RunOptions toggles the per-step side channels of a run.
type RunOptions struct {
	Log bool // report progress per step
}

// Summary describes a completed run.
type Summary struct {
	Steps         int
	Cells         int
	Wall          time.Duration
	Metrics       map[string]float64
	AnimationPath string
}
