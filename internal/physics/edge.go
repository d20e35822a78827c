package physics

import "math"

// Edge is a boundary condition on one end of the string. Implementations are
// provided by this package; the factory in internal/config selects one per
// end by name.
type Edge interface {
	// boundary returns the next value for boundary cell i. The interior of
	// next is already filled when it is called.
	boundary(m *StringModel, next, u []float64, i int, t float64) float64
}

type mirrorEdge struct{}

// MirrorEdge pins the end of the string: full reflection.
func MirrorEdge() Edge { return mirrorEdge{} }

func (mirrorEdge) boundary(*StringModel, []float64, []float64, int, float64) float64 {
	return 0
}

type absorberEdge struct{}

// AbsorberEdge lets outgoing waves leave the string with no reflection,
// using the first-order one-way wave condition.
func AbsorberEdge() Edge { return absorberEdge{} }

func (absorberEdge) boundary(m *StringModel, next, u []float64, i int, _ float64) float64 {
	j := i + 1
	if i > 0 {
		j = i - 1
	}
	r := math.Sqrt(m.r2)
	return u[j] + (r-1)/(r+1)*(next[j]-u[i])
}

type sinEdge struct {
	amp, puls float64
	absorb    bool
}

// SinEdge drives the end with amp*sin(puls*t).
func SinEdge(amp, puls float64) Edge { return sinEdge{amp: amp, puls: puls} }

// SinAbsorberEdge drives the end with amp*sin(puls*t) while absorbing the
// wave travelling back into it.
func SinAbsorberEdge(amp, puls float64) Edge { return sinEdge{amp: amp, puls: puls, absorb: true} }

func (e sinEdge) boundary(m *StringModel, next, u []float64, i int, t float64) float64 {
	drive := e.amp * math.Sin(e.puls*t)
	if !e.absorb {
		return drive
	}
	return drive + absorberEdge{}.boundary(m, next, u, i, t)
}
