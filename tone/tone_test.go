package tone

import (
	"math"
	"testing"
)

const testRate = 48000

// TestEmitSampleCount checks that Emit produces floor(duration*rate)
// samples, matching the Samples helper.
func TestEmitSampleCount(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		want     int
	}{
		{"30ms", 0.030, 1440},
		{"10ms sync", 0.010, 480},
		{"300ms leader", 0.300, 14400},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(testRate)
			out := g.Emit(nil, 1900, tt.duration)
			if len(out) != tt.want {
				t.Errorf("Emit() len = %d, want %d", len(out), tt.want)
			}
			if got := g.Samples(tt.duration); got != tt.want {
				t.Errorf("Samples() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestZeroCrossings checks the number of zero crossings of an emitted tone
// is within ±2 of 2*f*d, per §8.
func TestZeroCrossings(t *testing.T) {
	g := New(testRate)
	freq, dur := 1500.0, 0.5
	samples := g.Emit(nil, freq, dur)

	crossings := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] < 0) != (samples[i] < 0) {
			crossings++
		}
	}

	want := int(2 * freq * dur)
	if diff := crossings - want; diff < -2 || diff > 2 {
		t.Errorf("zero crossings = %d, want %d ± 2", crossings, want)
	}
}

// TestPhaseContinuity checks that consecutive tone emissions never jump in
// amplitude by more than the bound implied by the highest SSTV frequency.
func TestPhaseContinuity(t *testing.T) {
	g := New(testRate)
	const fMax = 2300.0
	bound := 2 * math.Sin(math.Pi*fMax/testRate)

	var samples []float64
	freqs := []float64{1900, 1200, 1300, 1100, 1500, 2300, 1200}
	for _, f := range freqs {
		samples = g.Emit(samples, f, 0.01)
	}

	for i := 1; i < len(samples); i++ {
		diff := math.Abs(samples[i] - samples[i-1])
		if diff > bound+1e-9 {
			t.Errorf("sample %d: |Δs| = %v exceeds bound %v", i, diff, bound)
		}
	}
}

// TestPhaseWraps checks the phase accumulator stays within [0, 2π).
func TestPhaseWraps(t *testing.T) {
	g := New(testRate)
	g.Emit(nil, 2300, 5.0)
	if g.Phase() < 0 || g.Phase() >= 2*math.Pi {
		t.Errorf("phase = %v, want value in [0, 2π)", g.Phase())
	}
}
