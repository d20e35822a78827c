// Package store persists simulation runs: two text streams per run (field
// history and particle history, one line per time step under a single
// header line), plus JSON metadata for listing and replay.
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	fieldFile     = "field.txt"
	particlesFile = "particles.txt"
	metadataFile  = "metadata.json"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Cells     int                `json:"cells"`
	Length    float64            `json:"length"`
	Tension   float64            `json:"tension"`
	Density   float64            `json:"density"`
	Memory    int                `json:"memory"`
	Particles int                `json:"particles"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	Animation string             `json:"animation,omitempty"`
}

// NewRunID derives a fresh run directory name from the preset and the clock.
func NewRunID(preset string) string {
	if preset == "" {
		preset = "string"
	}
	return fmt.Sprintf("%s_%d", preset, time.Now().Unix())
}

// RunDir returns the on-disk directory of a run.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// CreateRun opens the two output streams for a new run and writes one header
// line to each, identifying the run by timestamp and configuration summary.
func (s *Store) CreateRun(runID, summary string) (*RunWriter, error) {
	dir := s.RunDir(runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	header := fmt.Sprintf("STRING SIMULATION (%s): %s\n", time.Now().Format(time.RFC3339), summary)

	ff, err := os.Create(filepath.Join(dir, fieldFile))
	if err != nil {
		return nil, err
	}
	pf, err := os.Create(filepath.Join(dir, particlesFile))
	if err != nil {
		ff.Close()
		return nil, err
	}

	w := &RunWriter{
		field:    ff,
		parts:    pf,
		fieldBuf: bufio.NewWriter(ff),
		partsBuf: bufio.NewWriter(pf),
	}
	if _, err := w.fieldBuf.WriteString(header); err != nil {
		w.Close()
		return nil, err
	}
	if _, err := w.partsBuf.WriteString(header); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// WriteMetadata records the run description next to its streams.
func (s *Store) WriteMetadata(runID string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(s.RunDir(runID), metadataFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// List returns metadata for every stored run, skipping unreadable entries.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.RunDir(runID), metadataFile))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadField reads back the field stream of a run, one row per time step.
func (s *Store) LoadField(runID string) ([][]float64, error) {
	lines, err := s.readStream(runID, fieldFile)
	if err != nil {
		return nil, err
	}
	rows := make([][]float64, 0, len(lines))
	for _, line := range lines {
		row, err := ParseFloats(line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadPositions reads back the particle stream of a run.
func (s *Store) LoadPositions(runID string) ([][]int, error) {
	lines, err := s.readStream(runID, particlesFile)
	if err != nil {
		return nil, err
	}
	steps := make([][]int, 0, len(lines))
	for _, line := range lines {
		pos, err := ParseInts(line)
		if err != nil {
			return nil, err
		}
		steps = append(steps, pos)
	}
	return steps, nil
}

// readStream returns the data lines of a stream, header stripped.
func (s *Store) readStream(runID, name string) ([]string, error) {
	f, err := os.Open(filepath.Join(s.RunDir(runID), name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	first := true
	for sc.Scan() {
		if first {
			first = false
			continue
		}
		// A particle-free run writes blank position lines; keep them so
		// line i still corresponds to step i.
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// RunWriter appends one line per time step to the field and particle
// streams. It satisfies the driver's StreamWriter contract.
type RunWriter struct {
	field    *os.File
	parts    *os.File
	fieldBuf *bufio.Writer
	partsBuf *bufio.Writer
}

func (w *RunWriter) WriteStep(row []float64, positions []int) error {
	if _, err := w.fieldBuf.WriteString(FormatFloats(row) + "\n"); err != nil {
		return err
	}
	if _, err := w.partsBuf.WriteString(FormatInts(positions) + "\n"); err != nil {
		return err
	}
	// Steps already written must survive a later abort.
	if err := w.fieldBuf.Flush(); err != nil {
		return err
	}
	return w.partsBuf.Flush()
}

func (w *RunWriter) Close() error {
	var firstErr error
	for _, flush := range []func() error{w.fieldBuf.Flush, w.partsBuf.Flush, w.field.Close, w.parts.Close} {
		if err := flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
