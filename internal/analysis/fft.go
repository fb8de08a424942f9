// Package analysis post-processes recorded trajectories: power spectra
// and dominant-frequency extraction for oscillation studies.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum holds a one-sided power spectrum.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum computes the one-sided power spectrum of a uniformly
// sampled signal. The signal is zero-padded to the next power of two
// and the mean is removed so the DC bin does not swamp the rest.
func PowerSpectrum(signal []float64, sampleRate float64) Spectrum {
	n := len(signal)
	if n < 2 || sampleRate <= 0 {
		return Spectrum{}
	}

	mean := 0.0
	for _, v := range signal {
		mean += v
	}
	mean /= float64(n)

	padded := make([]float64, nextPow2(n))
	for i, v := range signal {
		padded[i] = v - mean
	}

	coeffs := fft.FFTReal(padded)
	half := len(padded)/2 + 1
	sp := Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	df := sampleRate / float64(len(padded))
	for k := 0; k < half; k++ {
		sp.Freqs[k] = float64(k) * df
		sp.Power[k] = cmplx.Abs(coeffs[k])
	}
	return sp
}

// DominantFrequency returns the frequency of the largest spectral peak
// above DC, in Hz. Returns 0 for flat or empty signals.
func DominantFrequency(signal []float64, sampleRate float64) float64 {
	sp := PowerSpectrum(signal, sampleRate)
	if len(sp.Power) < 2 {
		return 0
	}
	best := 1
	for k := 2; k < len(sp.Power); k++ {
		if sp.Power[k] > sp.Power[best] {
			best = k
		}
	}
	if sp.Power[best] < 1e-12 {
		return 0
	}
	return sp.Freqs[best]
}

// SettlingTime returns the first time after which the signal stays
// within tol of its final value, or -1 if it never settles.
func SettlingTime(signal, times []float64, tol float64) float64 {
	if len(signal) == 0 || len(signal) != len(times) {
		return -1
	}
	final := signal[len(signal)-1]
	for i := range signal {
		settled := true
		for j := i; j < len(signal); j++ {
			if math.Abs(signal[j]-final) > tol {
				settled = false
				break
			}
		}
		if settled {
			return times[i]
		}
	}
	return -1
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
