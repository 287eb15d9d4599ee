/*
NAME
  dsp.go

DESCRIPTION
  dsp.go provides FFT-backed fast convolution and a Kaiser window, shared
  by the complex FIR prefilter (§4.3). Convolution is adapted from
  codec/pcm/filters.go's fastConvolve; the Kaiser window itself has no
  equivalent in github.com/mjibson/go-dsp/window (which offers FlatTop,
  Hann, Hamming, Blackman but not a β-parameterised Kaiser) so it is
  hand-rolled from the standard modified-Bessel-I₀ definition.

LICENSE
  See repository root.
*/

// Package dsp holds small FFT-backed numerical helpers shared by the SSTV
// codec's signal-processing packages.
package dsp

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// FastConvolve computes the linear convolution of x and h in O(n log n)
// using zero-padded FFTs, exactly as codec/pcm/filters.go's fastConvolve
// does for audio FIR filtering.
func FastConvolve(x, h []float64) []float64 {
	if len(x) == 0 || len(h) == 0 {
		return nil
	}

	convLen := len(x) + len(h) - 1
	padLen := nextPow2(convLen)

	xp := make([]float64, padLen)
	copy(xp, x)
	hp := make([]float64, padLen)
	copy(hp, h)

	xFFT, hFFT := fft.FFTReal(xp), fft.FFTReal(hp)
	yFFT := make([]complex128, padLen)
	for i := range xFFT {
		yFFT[i] = xFFT[i] * hFFT[i]
	}

	iy := fft.IFFT(yFFT)
	y := make([]float64, convLen)
	for i := range y {
		y[i] = real(iy[i])
	}
	return y
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// besselI0 evaluates the zeroth-order modified Bessel function of the
// first kind via its power series, used by the Kaiser window. The series
// converges quickly for the |x| ≤ ~10 range needed by β up to ~10.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	halfX := x / 2
	for k := 1; k < 50; k++ {
		term *= (halfX / float64(k)) * (halfX / float64(k))
		sum += term
		if term < sum*1e-17 {
			break
		}
	}
	return sum
}

// KaiserWindow returns an n-sample Kaiser window with shape parameter
// beta, normalised so the centre tap is 1.
func KaiserWindow(n int, beta float64) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	denom := besselI0(beta)
	m := float64(n - 1)
	for i := 0; i < n; i++ {
		r := 2*float64(i)/m - 1 // in [-1, 1]
		arg := beta * math.Sqrt(1-r*r)
		w[i] = besselI0(arg) / denom
	}
	return w
}

// Sinc returns sin(πx)/(πx), with Sinc(0) = 1.
func Sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
