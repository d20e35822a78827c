// Package analysis post-processes stored runs: spectral content of a single
// cell's time series.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform via radix-2 Cooley-Tukey.
// Inputs are zero-padded to the next power of two.
func FFT(data []float64) []complex128 {
	padded := pad(data)
	return fft(padded)
}

func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

func pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	if n == len(data) {
		return data
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum returns the magnitude of the positive-frequency half of the
// transform.
func PowerSpectrum(data []float64) []float64 {
	out := FFT(data)
	ps := make([]float64, len(out)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(out[i])
	}
	return ps
}

// DominantFrequency returns the frequency (in Hz, given the sample interval
// dt) of the strongest non-DC component.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}
	best, bestIdx := 0.0, 1
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best = ps[i]
			bestIdx = i
		}
	}
	n := 2 * len(ps)
	return float64(bestIdx) / (float64(n) * dt)
}
