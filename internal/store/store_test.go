package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRunWriter_StreamsRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID := "string_12345"
	w, err := st.CreateRun(runID, "dt=0.001 cells=3")
	if err != nil {
		t.Fatalf("create run failed: %v", err)
	}

	steps := [][]float64{
		{0, 0, 0},
		{0, 0, 0},
		{0.25, -1.5, 3e-7},
		{1, 2, 3},
		{-0.125, 0.5, 0},
	}
	for _, row := range steps {
		if err := w.WriteStep(row, []int{1}); err != nil {
			t.Fatalf("write step failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	rows, err := st.LoadField(runID)
	if err != nil {
		t.Fatalf("load field failed: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 field lines, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != 3 {
			t.Fatalf("step %d: expected 3 values, got %d", i, len(row))
		}
		for j, v := range row {
			if v != steps[i][j] {
				t.Errorf("step %d cell %d: expected %g, got %g", i, j, steps[i][j], v)
			}
		}
	}

	positions, err := st.LoadPositions(runID)
	if err != nil {
		t.Fatalf("load positions failed: %v", err)
	}
	if len(positions) != 5 {
		t.Fatalf("expected 5 position lines, got %d", len(positions))
	}
	for i, pos := range positions {
		if len(pos) != 1 || pos[0] != 1 {
			t.Errorf("step %d: expected [1], got %v", i, pos)
		}
	}
}

func TestRunWriter_EmptyPositionsKeepStepAlignment(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	w, err := st.CreateRun("free_1", "no particles")
	if err != nil {
		t.Fatalf("create run failed: %v", err)
	}
	for i := 0; i < 4; i++ {
		if err := w.WriteStep([]float64{float64(i)}, nil); err != nil {
			t.Fatalf("write step failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	positions, err := st.LoadPositions("free_1")
	if err != nil {
		t.Fatalf("load positions failed: %v", err)
	}
	if len(positions) != 4 {
		t.Fatalf("expected 4 position lines, got %d", len(positions))
	}
	for i, pos := range positions {
		if len(pos) != 0 {
			t.Errorf("step %d: expected no positions, got %v", i, pos)
		}
	}
}

func TestCreateRun_WritesHeaders(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	w, err := st.CreateRun("string_1", "cells=10")
	if err != nil {
		t.Fatalf("create run failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	for _, name := range []string{"field.txt", "particles.txt"} {
		data, err := os.ReadFile(filepath.Join(st.RunDir("string_1"), name))
		if err != nil {
			t.Fatalf("read %s failed: %v", name, err)
		}
		text := string(data)
		if !strings.HasPrefix(text, "STRING SIMULATION (") {
			t.Errorf("%s: missing header, got %q", name, text)
		}
		if !strings.Contains(text, "cells=10") {
			t.Errorf("%s: header lacks config summary", name)
		}
		if strings.Count(text, "\n") != 1 {
			t.Errorf("%s: expected header line only, got %q", name, text)
		}
	}
}

func TestMetadata_SaveLoadList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	w, err := st.CreateRun("center_77", "test")
	if err != nil {
		t.Fatalf("create run failed: %v", err)
	}
	w.Close()

	meta := RunMetadata{
		ID:        "center_77",
		Preset:    "center",
		Timestamp: time.Now(),
		Dt:        0.001,
		Steps:     100,
		Cells:     511,
		Memory:    5,
		Metrics:   map[string]float64{"mean_energy": 1.5},
	}
	if err := st.WriteMetadata("center_77", meta); err != nil {
		t.Fatalf("write metadata failed: %v", err)
	}

	got, err := st.Load("center_77")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Preset != "center" || got.Steps != 100 || got.Cells != 511 {
		t.Errorf("unexpected metadata: %+v", got)
	}
	if got.Metrics["mean_energy"] != 1.5 {
		t.Errorf("expected mean_energy 1.5, got %f", got.Metrics["mean_energy"])
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "center_77" {
		t.Errorf("expected the stored run, got %+v", runs)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	vals := []float64{0, -1.25, 3e-9, 12345.6789}
	parsed, err := ParseFloats(FormatFloats(vals))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for i := range vals {
		if parsed[i] != vals[i] {
			t.Errorf("value %d: expected %g, got %g", i, vals[i], parsed[i])
		}
	}

	ints, err := ParseInts(FormatInts([]int{0, 255, 42}))
	if err != nil {
		t.Fatalf("parse ints failed: %v", err)
	}
	if len(ints) != 3 || ints[1] != 255 {
		t.Errorf("unexpected ints: %v", ints)
	}

	if _, err := ParseFloats("1.0 nope 2.0"); err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestNewRunID(t *testing.T) {
	id := NewRunID("")
	if !strings.HasPrefix(id, "string_") {
		t.Errorf("unexpected id %q", id)
	}
	if !strings.HasPrefix(NewRunID("center"), "center_") {
		t.Errorf("unexpected id %q", NewRunID("center"))
	}
}
