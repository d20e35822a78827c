package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/stringsim/internal/field"
)

type driverState int

const (
	stateInitialized driverState = iota
	stateRunning
	stateFinalizing
	stateDone
)

// Driver orchestrates the time loop. It is the sole owner of the history
// buffer: no other component appends. Steps are strictly sequential; step
// t+1 never starts before step t's row is committed.
type Driver struct {
	hist    *field.History
	engine  Engine
	tracker Tracker
	steps   int

	animator Animator
	writer   StreamWriter
	metrics  []Metric

	state driverState
}

// NewDriver seeds a driver for a run of the given number of time steps. The
// history must already hold the two seed rows; steps 0 and 1 replay them
// without recomputation.
func NewDriver(h *field.History, engine Engine, tracker Tracker, steps int) (*Driver, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrSteps, steps)
	}
	if h.TimeExtent() < 2 {
		return nil, ErrSeedDepth
	}
	return &Driver{
		hist:    h,
		engine:  engine,
		tracker: tracker,
		steps:   steps,
	}, nil
}

// SetAnimator attaches the optional frame recorder. Must be called before Run.
func (d *Driver) SetAnimator(a Animator) { d.animator = a }

// SetWriter attaches the optional output streams. The driver takes ownership
// and closes them when the run finishes or aborts.
func (d *Driver) SetWriter(w StreamWriter) { d.writer = w }

// AddMetric registers a per-run metric observed at every step.
func (d *Driver) AddMetric(m Metric) { d.metrics = append(d.metrics, m) }

// History exposes the buffer for read-only collaborators.
func (d *Driver) History() *field.History { return d.hist }

// Run executes the whole simulation. A driver instance runs once; any
// further call fails with ErrDriverDone. On abort, lines already written to
// the output streams stay on disk and the files are closed.
func (d *Driver) Run(ctx context.Context, opts RunOptions) (*Summary, error) {
	if d.state != stateInitialized {
		return nil, ErrDriverDone
	}
	d.state = stateRunning
	defer func() { d.state = stateDone }()

	closed := false
	defer func() {
		if d.writer != nil && !closed {
			d.writer.Close()
		}
	}()

	for _, m := range d.metrics {
		m.Reset()
	}

	start := time.Now()
	for t := 0; t < d.steps; t++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("sim: run canceled at step %d: %w", t, ctx.Err())
		default:
		}

		// The two seed steps are already in the buffer.
		if t > 1 {
			row, err := d.engine.Advance(d.hist)
			if err != nil {
				return nil, fmt.Errorf("sim: advance: %w", err)
			}
			if err := d.hist.Append(row); err != nil {
				return nil, fmt.Errorf("sim: commit step %d: %w", t, err)
			}
		}

		row, err := d.hist.At(t)
		if err != nil {
			return nil, fmt.Errorf("sim: read step %d: %w", t, err)
		}
		positions := d.tracker.PositionsAt(t)

		for _, m := range d.metrics {
			m.Observe(row, positions, t)
		}
		if d.animator != nil {
			d.animator.AddFrame(row, positions, t)
		}
		if d.writer != nil {
			if err := d.writer.WriteStep(row, positions); err != nil {
				return nil, fmt.Errorf("sim: write step %d: %w", t, err)
			}
		}
		if opts.Log {
			logrus.Infof("%d/%d", t, d.steps)
		}
	}

	d.state = stateFinalizing

	summary := &Summary{
		Steps:   d.steps,
		Cells:   d.hist.SpatialExtent(),
		Metrics: make(map[string]float64, len(d.metrics)),
	}
	for _, m := range d.metrics {
		summary.Metrics[m.Name()] = m.Value()
	}

	if d.animator != nil {
		if opts.Log {
			logrus.Info("animation finalisation...")
		}
		path, err := d.animator.Encode()
		if err != nil {
			return nil, fmt.Errorf("sim: encode animation: %w", err)
		}
		summary.AnimationPath = path
	}
	if d.writer != nil {
		closed = true
		if err := d.writer.Close(); err != nil {
			return nil, fmt.Errorf("sim: close output streams: %w", err)
		}
	}

	summary.Wall = time.Since(start)
	return summary, nil
}
