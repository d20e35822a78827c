package analysis

import (
	"math"
	"testing"
)

func TestFFT_PadsToPowerOfTwo(t *testing.T) {
	out := FFT(make([]float64, 100))
	if len(out) != 128 {
		t.Errorf("expected 128 bins, got %d", len(out))
	}

	out = FFT(make([]float64, 64))
	if len(out) != 64 {
		t.Errorf("expected 64 bins, got %d", len(out))
	}
}

func TestPowerSpectrum_PureTone(t *testing.T) {
	const (
		n    = 256
		dt   = 1.0 / 256
		freq = 16.0
	)
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}

	ps := PowerSpectrum(data)
	peak, peakIdx := 0.0, 0
	for i, v := range ps {
		if v > peak {
			peak = v
			peakIdx = i
		}
	}
	if peakIdx != 16 {
		t.Errorf("expected peak at bin 16, got %d", peakIdx)
	}
}

func TestDominantFrequency(t *testing.T) {
	const (
		n    = 512
		dt   = 0.001
		freq = 40.0
	)
	data := make([]float64, n)
	for i := range data {
		data[i] = 0.5 + math.Sin(2*math.Pi*freq*float64(i)*dt)
	}

	got := DominantFrequency(data, dt)
	if math.Abs(got-freq) > 2.0 {
		t.Errorf("expected ~%g Hz, got %g", freq, got)
	}
}
