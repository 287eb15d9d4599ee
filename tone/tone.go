/*
NAME
  tone.go

DESCRIPTION
  tone.go implements the continuous-phase sinusoidal tone generator that is
  the only legal source of encoder PCM samples, avoiding spectral splatter
  at tone boundaries.

LICENSE
  See repository root.
*/

// Package tone provides a continuous-phase sinusoidal tone generator for
// building an FM tone train from a sequence of (frequency, duration) pairs.
package tone

import "math"

// Generator emits PCM samples for a sequence of tones, carrying the phase
// accumulator across calls so that consecutive tones join without a
// discontinuity. Construct one with New; its phase starts at 0. The zero
// value has no sample rate and emits no samples.
//
// A Generator is not safe for concurrent use; each encoder instance owns
// its own Generator (§5).
type Generator struct {
	rate  float64
	phase float64 // radians, kept in [0, 2π)
}

// New returns a Generator sampling at rate Hz.
func New(rate int) *Generator {
	return &Generator{rate: float64(rate)}
}

// Phase returns the generator's current phase in radians, in [0, 2π).
func (g *Generator) Phase() float64 { return g.phase }

// Emit appends floor(duration*rate) samples of sin(phase) to dst, advancing
// the phase by 2π*freqHz/rate per sample. It returns dst with the new
// samples appended. Emit is the only place phase is mutated; every other
// tone-producing call in the encoder must go through it so that phase stays
// continuous across tone boundaries (§4.1).
func (g *Generator) Emit(dst []float64, freqHz, durationS float64) []float64 {
	n := int(durationS * g.rate)
	step := 2 * math.Pi * freqHz / g.rate
	for i := 0; i < n; i++ {
		dst = append(dst, math.Sin(g.phase))
		g.phase += step
	}
	g.phase = math.Mod(g.phase, 2*math.Pi)
	if g.phase < 0 {
		g.phase += 2 * math.Pi
	}
	return dst
}

// Samples returns floor(duration*rate), the exact sample count Emit will
// append for the given duration — exposed so callers computing expected
// line offsets (encoder scheduling, sync tracking) agree with Emit exactly.
func (g *Generator) Samples(durationS float64) int {
	return int(durationS * g.rate)
}
