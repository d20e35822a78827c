package sim

// Energy averages the string's total energy over the observed steps. Kinetic
// energy comes from the finite-difference velocity between consecutive rows,
// potential energy from the spatial gradient under tension.
type Energy struct {
	name    string
	tension float64
	density float64
	dx      float64
	dt      float64

	prev    []float64
	samples int
	total   float64
}

func NewEnergy(tension, density, dx, dt float64) *Energy {
	return &Energy{
		name:    "mean_energy",
		tension: tension,
		density: density,
		dx:      dx,
		dt:      dt,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(row []float64, _ []int, _ int) {
	if e.prev == nil {
		e.prev = append([]float64(nil), row...)
		return
	}
	ke, pe := 0.0, 0.0
	for i := range row {
		v := (row[i] - e.prev[i]) / e.dt
		ke += 0.5 * e.density * e.dx * v * v
		if i > 0 {
			g := (row[i] - row[i-1]) / e.dx
			pe += 0.5 * e.tension * e.dx * g * g
		}
	}
	e.total += ke + pe
	e.samples++
	copy(e.prev, row)
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.prev = nil
	e.total = 0
	e.samples = 0
}
