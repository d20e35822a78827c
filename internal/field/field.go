package field

import "fmt"

// History is a ring-buffer view over the growing time series of field rows.
// Row 0 of the seed corresponds to absolute time 0.
type History struct {
	rows    [][]float64
	width   int
	memory  int
	bounded bool
	cur     int
	start   int  // index of the oldest row once the ring is saturated
	full    bool // eviction has begun; len(rows) is frozen
}

// New creates a bounded history seeded with the given rows. The seed must be
// a non-empty rectangular table; memory must be at least 3. The current time
// index starts at len(seed)-1.
func New(seed [][]float64, memory int) (*History, error) {
	if memory < 3 {
		return nil, fmt.Errorf("%w, got %d", ErrMemory, memory)
	}
	return newHistory(seed, memory, true)
}

// NewUnbounded creates a history that never evicts. Absolute time and storage
// index coincide for the whole run.
func NewUnbounded(seed [][]float64) (*History, error) {
	return newHistory(seed, 0, false)
}

func newHistory(seed [][]float64, memory int, bounded bool) (*History, error) {
	if len(seed) == 0 || len(seed[0]) == 0 {
		return nil, ErrSeed
	}
	width := len(seed[0])
	rows := make([][]float64, len(seed))
	for i, r := range seed {
		if len(r) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrSeed, i, len(r), width)
		}
		rows[i] = append([]float64(nil), r...)
	}
	return &History{
		rows:    rows,
		width:   width,
		memory:  memory,
		bounded: bounded,
		cur:     len(seed) - 1,
	}, nil
}

// Append commits the row for the next absolute time step. Once the time index
// exceeds the retention bound, exactly one oldest row is evicted per append,
// no matter how far past the bound the index is.
func (h *History) Append(row []float64) error {
	if len(row) != h.width {
		return fmt.Errorf("%w: got %d, want %d", ErrShape, len(row), h.width)
	}
	h.cur++
	r := append([]float64(nil), row...)
	if h.bounded && h.cur > h.memory {
		h.full = true
		h.rows[h.start] = r
		h.start = (h.start + 1) % len(h.rows)
		return nil
	}
	h.rows = append(h.rows, r)
	return nil
}

// At returns the field row for absolute time step t.
//
// Callers must keep t within [oldest retained, CurrentTime()]. A t below the
// retained window fails with ErrEvicted; anything past the current step fails
// with ErrRange.
func (h *History) At(t int) ([]float64, error) {
	idx := t
	if h.bounded && h.cur > h.memory {
		idx = t - h.cur + h.memory
	}
	if idx < 0 {
		if t >= 0 {
			return nil, fmt.Errorf("%w: time step %d", ErrEvicted, t)
		}
		return nil, fmt.Errorf("%w: time step %d", ErrRange, t)
	}
	if idx >= len(h.rows) {
		return nil, fmt.Errorf("%w: time step %d not yet computed", ErrRange, t)
	}
	return h.row(idx), nil
}

// Cell returns the values taken by spatial cell n across every retained row,
// oldest first. No retention translation is applied; the slice mirrors the
// storage window as it currently stands.
func (h *History) Cell(n int) ([]float64, error) {
	if n < 0 || n >= h.width {
		return nil, fmt.Errorf("%w: cell %d, width %d", ErrCell, n, h.width)
	}
	col := make([]float64, len(h.rows))
	for i := range col {
		col[i] = h.row(i)[n]
	}
	return col, nil
}

// Last returns the row for the current time step.
func (h *History) Last() []float64 {
	return h.row(len(h.rows) - 1)
}

// TimeExtent returns the number of rows currently retained.
func (h *History) TimeExtent() int { return len(h.rows) }

// SpatialExtent returns the fixed number of cells per row.
func (h *History) SpatialExtent() int { return h.width }

// CurrentTime returns the absolute time index of the newest row.
func (h *History) CurrentTime() int { return h.cur }

// row maps an oldest-first window index to the backing slice.
func (h *History) row(i int) []float64 {
	if h.full {
		return h.rows[(h.start+i)%len(h.rows)]
	}
	return h.rows[i]
}
