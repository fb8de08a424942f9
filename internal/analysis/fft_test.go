package analysis

import (
	"math"
	"testing"
)

func TestDominantFrequencySine(t *testing.T) {
	rate := 100.0
	f := 2.5
	n := 512
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * f * float64(i) / rate)
	}

	got := DominantFrequency(signal, rate)
	if math.Abs(got-f) > rate/float64(n) {
		t.Errorf("dominant frequency %.3f Hz, want %.3f Hz", got, f)
	}
}

func TestDominantFrequencyIgnoresOffset(t *testing.T) {
	rate := 50.0
	f := 1.0
	n := 256
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = 10.0 + math.Sin(2*math.Pi*f*float64(i)/rate)
	}

	got := DominantFrequency(signal, rate)
	if math.Abs(got-f) > rate/float64(n) {
		t.Errorf("dominant frequency %.3f Hz, want %.3f Hz despite DC offset", got, f)
	}
}

func TestDominantFrequencyFlat(t *testing.T) {
	signal := make([]float64, 64)
	if got := DominantFrequency(signal, 10); got != 0 {
		t.Errorf("flat signal gave %.3f Hz, want 0", got)
	}
}

func TestSettlingTime(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4}
	signal := []float64{5, 2, 1.05, 1.01, 1.0}

	got := SettlingTime(signal, times, 0.1)
	if got != 2 {
		t.Errorf("settling time %.1f, want 2", got)
	}
	if st := SettlingTime([]float64{0, 10, 0, 10, 0}, times, 0.1); st != 4 {
		t.Errorf("oscillating signal settled at %.1f, want 4 (last sample)", st)
	}
}
