// Package particles tracks the point masses attached to the string.
package particles

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCell indicates a particle placed outside the string.
var ErrCell = errors.New("particles: particle cell outside the string")

// Particle is a point mass attached to one spatial cell of the string. A
// non-zero Pulsation adds a harmonic restoring force on top of the string
// tension. Fixed particles stay on their cell for the whole run.
type Particle struct {
	Cell      int
	Mass      float64
	Pulsation float64
	Fixed     bool
}

// System owns the ordered particle list for one simulation run.
type System struct {
	cells int
	list  []Particle
}

// NewSystem validates the particles against the string discretisation.
func NewSystem(cells int, list []Particle) (*System, error) {
	for i, p := range list {
		if p.Cell < 0 || p.Cell >= cells {
			return nil, fmt.Errorf("%w: particle %d at cell %d, string has %d cells", ErrCell, i, p.Cell, cells)
		}
	}
	return &System{cells: cells, list: append([]Particle(nil), list...)}, nil
}

// Count returns the number of particles in the system.
func (s *System) Count() int { return len(s.list) }

// Particles returns the particle list in order.
func (s *System) Particles() []Particle { return s.list }

// PositionsAt returns the ordered cell indices occupied by particles at time
// step t. Fixed particles occupy the same cell at every step.
func (s *System) PositionsAt(t int) []int {
	pos := make([]int, len(s.list))
	for i, p := range s.list {
		pos[i] = p.Cell
	}
	return pos
}

// MassAt returns the particle attached to cell n, if any.
func (s *System) MassAt(n int) (Particle, bool) {
	for _, p := range s.list {
		if p.Cell == n {
			return p, true
		}
	}
	return Particle{}, false
}

// Describe renders a one-line summary used in run stream headers.
func (s *System) Describe() string {
	if len(s.list) == 0 {
		return "particles: none"
	}
	parts := make([]string, len(s.list))
	for i, p := range s.list {
		parts[i] = fmt.Sprintf("cell=%d m=%g w=%g fixed=%t", p.Cell, p.Mass, p.Pulsation, p.Fixed)
	}
	return "particles: " + strings.Join(parts, "; ")
}
