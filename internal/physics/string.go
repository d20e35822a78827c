// Package physics advances the vibrating string one time step at a time.
//
// The update is the explicit second-order finite-difference scheme for the
// 1D wave equation, with point masses coupled at their cells and pluggable
// boundary conditions on each end.
package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/stringsim/internal/field"
	"github.com/san-kum/stringsim/internal/particles"
)

// StringModel computes the next field row from the two most recent rows. It
// owns the particle system: particle bookkeeping happens inside Advance, the
// driver only reads positions back through the tracker interface.
type StringModel struct {
	Cells   int
	Length  float64 // [m]
	Tension float64 // [N]
	Density float64 // [kg/m]
	Dt      float64 // [s]

	Left, Right Edge

	parts *particles.System

	dx float64
	c  float64
	r2 float64 // (c*dt/dx)^2
}

// ComputeCells returns the discretisation for a string of the given length,
// following dx/dt = c with c = sqrt(tension/density).
func ComputeCells(length, tension, density, dt float64) int {
	c := math.Sqrt(tension / density)
	return int(length / c / dt)
}

// NewStringModel validates the physical parameters and fixes the spatial
// discretisation for the run. A nil parts is treated as a particle-free
// string; nil edges default to mirrors.
func NewStringModel(length, tension, density, dt float64, left, right Edge, parts *particles.System) (*StringModel, error) {
	if length <= 0 || tension <= 0 || density <= 0 || dt <= 0 {
		return nil, fmt.Errorf("%w: length=%g tension=%g density=%g dt=%g", ErrParam, length, tension, density, dt)
	}
	cells := ComputeCells(length, tension, density, dt)
	if cells < 3 {
		return nil, fmt.Errorf("%w: dt=%g too coarse, yields %d cells", ErrParam, dt, cells)
	}
	if left == nil {
		left = MirrorEdge()
	}
	if right == nil {
		right = MirrorEdge()
	}
	if parts == nil {
		var err error
		parts, err = particles.NewSystem(cells, nil)
		if err != nil {
			return nil, err
		}
	}
	c := math.Sqrt(tension / density)
	dx := length / float64(cells)
	r := c * dt / dx
	return &StringModel{
		Cells:   cells,
		Length:  length,
		Tension: tension,
		Density: density,
		Dt:      dt,
		Left:    left,
		Right:   right,
		parts:   parts,
		dx:      dx,
		c:       c,
		r2:      r * r,
	}, nil
}

// Dx returns the spatial step fixed by the discretisation.
func (m *StringModel) Dx() float64 { return m.dx }

// Particles returns the particle system owned by the model.
func (m *StringModel) Particles() *particles.System { return m.parts }

// Advance produces the row for the next time step from the newest two rows
// in the history. The history itself is not mutated; the driver commits the
// returned row.
func (m *StringModel) Advance(h *field.History) ([]float64, error) {
	if h.TimeExtent() < 2 {
		return nil, ErrHistory
	}
	cur := h.CurrentTime()
	u := h.Last()
	uPrev, err := h.At(cur - 1)
	if err != nil {
		return nil, err
	}
	if len(u) != m.Cells {
		return nil, fmt.Errorf("%w: history width %d, model has %d cells", ErrParam, len(u), m.Cells)
	}

	step := cur + 1
	t := float64(step) * m.Dt
	next := make([]float64, m.Cells)
	dt2 := m.Dt * m.Dt

	for i := 1; i < m.Cells-1; i++ {
		lap := u[i-1] - 2*u[i] + u[i+1]
		if p, ok := m.parts.MassAt(i); ok && p.Mass > 0 {
			// Point mass on the string: tension pulls through the kink,
			// the internal oscillator adds a restoring force.
			a := m.Tension*lap/m.dx/p.Mass - p.Pulsation*p.Pulsation*u[i]
			next[i] = 2*u[i] - uPrev[i] + dt2*a
			continue
		}
		next[i] = 2*u[i] - uPrev[i] + m.r2*lap
	}

	next[0] = m.Left.boundary(m, next, u, 0, t)
	next[m.Cells-1] = m.Right.boundary(m, next, u, m.Cells-1, t)

	for _, v := range next {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &StepError{Step: step, Time: t, Wrapped: ErrUnstable}
		}
	}
	return next, nil
}
