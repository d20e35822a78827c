package particles

import (
	"testing"
)

func TestNewSystem_ValidatesCells(t *testing.T) {
	_, err := NewSystem(10, []Particle{{Cell: 10, Mass: 0.01}})
	if err == nil {
		t.Error("expected error for particle outside the string")
	}

	_, err = NewSystem(10, []Particle{{Cell: -1, Mass: 0.01}})
	if err == nil {
		t.Error("expected error for negative cell")
	}

	s, err := NewSystem(10, []Particle{{Cell: 5, Mass: 0.01, Fixed: true}})
	if err != nil {
		t.Fatalf("valid system failed: %v", err)
	}
	if s.Count() != 1 {
		t.Errorf("expected 1 particle, got %d", s.Count())
	}
}

func TestPositionsAt_FixedParticles(t *testing.T) {
	s, err := NewSystem(100, []Particle{
		{Cell: 10, Mass: 0.01, Fixed: true},
		{Cell: 50, Mass: 0.02, Fixed: true},
	})
	if err != nil {
		t.Fatalf("new system failed: %v", err)
	}

	for _, step := range []int{0, 1, 7, 1000} {
		pos := s.PositionsAt(step)
		if len(pos) != 2 || pos[0] != 10 || pos[1] != 50 {
			t.Errorf("step %d: expected [10 50], got %v", step, pos)
		}
	}
}

func TestMassAt(t *testing.T) {
	s, err := NewSystem(100, []Particle{{Cell: 50, Mass: 0.02}})
	if err != nil {
		t.Fatalf("new system failed: %v", err)
	}

	p, ok := s.MassAt(50)
	if !ok || p.Mass != 0.02 {
		t.Errorf("expected particle at cell 50, got %v %v", p, ok)
	}

	if _, ok := s.MassAt(51); ok {
		t.Error("expected no particle at cell 51")
	}
}

func TestDescribe(t *testing.T) {
	s, _ := NewSystem(10, nil)
	if s.Describe() != "particles: none" {
		t.Errorf("unexpected description: %s", s.Describe())
	}
}
