/*
NAME
  prefilter.go

DESCRIPTION
  prefilter.go implements the complex baseband mixer, Kaiser-windowed
  complex lowpass FIR, and FM phase-difference demodulator that together
  form the alternative decode-time front end for noisy or Doppler-drifting
  signals (§4.3). Convolution is delegated to internal/dsp, which is
  adapted from codec/pcm/filters.go's FFT-based fastConvolve.

LICENSE
  See repository root.
*/

// Package prefilter implements the complex lowpass + FM phase-difference
// front end (C3): an alternative to the goertzel package's sweep, better
// suited to drifting, noisy signals such as ISS SSTV passes.
package prefilter

import (
	"math"

	"github.com/kb9vjv/sstv/internal/dsp"
)

// Fixed parameters from §4.3: the SSTV band centre and total occupied
// bandwidth. These are not configurable per mode — all three supported
// modes share the same 1500–2300 Hz data band.
const (
	Fc = 1900.0 // band centre, Hz
	BW = 800.0  // total occupied bandwidth, Hz

	filterDuration = 2e-3 // complex lowpass FIR duration, seconds
	kaiserBeta     = 8.0
)

// cutoff is the complex lowpass's one-sided cutoff: half the total
// bandwidth, per §4.3.
const cutoff = BW / 2

// Taps returns the Kaiser-windowed sinc lowpass FIR coefficients for the
// given sample rate: an odd-length filter of duration filterDuration with
// cutoff = BW/2 and Kaiser β=8.0, normalised so DC gain is 1 (§4.3.2).
func Taps(rate float64) []float64 {
	n := int(math.Round(filterDuration * rate))
	if n%2 == 0 {
		n++
	}
	if n < 3 {
		n = 3
	}

	fcNorm := cutoff / rate
	center := float64(n-1) / 2

	win := dsp.KaiserWindow(n, kaiserBeta)
	h := make([]float64, n)
	var sum float64
	for i := 0; i < n; i++ {
		x := float64(i) - center
		h[i] = dsp.Sinc(2*fcNorm*x) * win[i]
		sum += h[i]
	}
	for i := range h {
		h[i] /= sum
	}
	return h
}

// Mix multiplies each real sample by exp(-j·2π·Fc·n/Fs), shifting the
// 1500–2300 Hz SSTV data band down around DC (§4.3.1).
func Mix(samples []float64, rate float64) []complex128 {
	out := make([]complex128, len(samples))
	w := 2 * math.Pi * Fc / rate
	for n, x := range samples {
		phase := w * float64(n)
		out[n] = complex(x, 0) * complex(math.Cos(-phase), math.Sin(-phase))
	}
	return out
}

// Lowpass applies the Kaiser-windowed complex FIR to baseband, returning a
// sequence the same length as baseband (real and imaginary parts are
// convolved independently with the real-valued taps, then trimmed to
// remove the filter's group delay) (§4.3.2).
func Lowpass(baseband []complex128, taps []float64) []complex128 {
	re := make([]float64, len(baseband))
	im := make([]float64, len(baseband))
	for i, c := range baseband {
		re[i] = real(c)
		im[i] = imag(c)
	}

	reOut := dsp.FastConvolve(re, taps)
	imOut := dsp.FastConvolve(im, taps)

	delay := (len(taps) - 1) / 2
	out := make([]complex128, len(baseband))
	for i := range out {
		out[i] = complex(reOut[i+delay], imOut[i+delay])
	}
	return out
}

// Demod recovers instantaneous frequency deviation from filtered baseband
// as the wrapped first difference of phase, scaled so [-1,+1] maps to
// Fc ± BW/2 (§4.3.3). The first sample has no prior phase and is reported
// as zero deviation.
func Demod(filtered []complex128, rate float64) []float64 {
	scale := rate / (math.Pi * BW)
	out := make([]float64, len(filtered))
	if len(filtered) == 0 {
		return out
	}
	prevPhase := math.Atan2(imag(filtered[0]), real(filtered[0]))
	for n := 1; n < len(filtered); n++ {
		phase := math.Atan2(imag(filtered[n]), real(filtered[n]))
		d := wrap(phase - prevPhase)
		prevPhase = phase
		y := scale * d
		if y > 1 {
			y = 1
		} else if y < -1 {
			y = -1
		}
		out[n] = y
	}
	return out
}

// wrap maps an angle in radians to (-π, π].
func wrap(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Demodulate is the full C3 pipeline (mix, lowpass, phase-difference
// demod) as a pure function of the input samples and rate, so callers may
// run it once over a whole transmission and then slice windows from the
// result (§5: "expose the estimator as a pure function").
func Demodulate(samples []float64, rate float64) []float64 {
	taps := Taps(rate)
	baseband := Mix(samples, rate)
	filtered := Lowpass(baseband, taps)
	return Demod(filtered, rate)
}

// FrequencyFromDemod converts a window of Demodulate's [-1,+1] output into
// an estimated frequency in Hz, satisfying the same
// estimate_frequency(samples, start, duration) → Hz contract as
// goertzel.Estimate (§9 tagged FrontEnd variant).
func FrequencyFromDemod(y []float64) float64 {
	if len(y) == 0 {
		return Fc
	}
	var sum float64
	for _, v := range y {
		sum += v
	}
	mean := sum / float64(len(y))
	return Fc + mean*BW/2
}
