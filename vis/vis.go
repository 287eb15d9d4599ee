/*
NAME
  vis.go

DESCRIPTION
  vis.go implements the VIS (Vertical Interval Signalling) framer (§4.6):
  encoding the 8-bit mode-identifying preamble on transmit, and a sliding
  frequency-sweep search for it on receive. The receive-side sliding
  search is grounded on the scan/threshold approach in
  madpsy-ka9q_ubersdr/audio_extensions/sstv/vis.go's VISDetector (a
  non-teacher pack repo's SSTV receiver), adapted from its FFT-bin peak
  search to the Goertzel sweep this codec's §4.2 specifies.

LICENSE
  See repository root.
*/

// Package vis encodes and detects the SSTV VIS preamble that identifies
// the transmission mode.
package vis

import (
	"math"

	"github.com/kb9vjv/sstv/goertzel"
	"github.com/kb9vjv/sstv/mode"
	"github.com/kb9vjv/sstv/tone"
)

// Timings from §4.6.
const (
	leaderTime = 300e-3
	breakTime  = 10e-3
	startTime  = 30e-3
	bitTime    = 30e-3
	stopTime   = 30e-3
)

// Emit appends the VIS preamble for d to dst using g for continuous-phase
// tone generation, per §4.6: leader, break, start, 7 data bits LSB-first,
// even parity, stop.
func Emit(g *tone.Generator, dst []float64, d mode.Descriptor) []float64 {
	dst = g.Emit(dst, mode.VISStart, leaderTime)
	dst = g.Emit(dst, mode.Sync, breakTime)
	dst = g.Emit(dst, mode.VISStart, startTime)

	code := d.VISCode
	for i := 0; i < 7; i++ {
		bit := (code >> uint(i)) & 1
		dst = g.Emit(dst, bitFreq(bit), bitTime)
	}
	dst = g.Emit(dst, bitFreq(mode.Parity(code)), bitTime)
	dst = g.Emit(dst, mode.Sync, stopTime)
	return dst
}

func bitFreq(bit byte) float64 {
	if bit == 1 {
		return mode.VISBit1
	}
	return mode.VISBit0
}

// Search parameters from §4.6.
const (
	searchWindow = 2.0    // seconds
	searchStride = 0.5e-3 // seconds
	leaderTol    = 75.0   // Hz
	bitThreshold = 1200.0 // Hz
)

// Detect scans the first ≈2 s of samples (rate Hz) at a ≈0.5 ms stride
// looking for a 1900 Hz window, then samples seven data bits one bit
// period later, thresholding at 1200 Hz (§4.6). It returns the matching
// mode.Descriptor and true on the first lookup-table match, or false if no
// match was found in the search window.
func Detect(samples []float64, rate int) (mode.Descriptor, bool) {
	fRate := float64(rate)
	stride := int(searchStride * fRate)
	if stride < 1 {
		stride = 1
	}
	bitSamples := int(bitTime * fRate)
	if bitSamples < 1 {
		return mode.Descriptor{}, false
	}

	limit := len(samples)
	if max := int(searchWindow * fRate); max < limit {
		limit = max
	}

	for pos := 0; pos+bitSamples <= limit; pos += stride {
		window := samples[pos : pos+bitSamples]
		f := goertzel.Estimate(window, fRate)
		if math.Abs(f-mode.VISStart) > leaderTol {
			continue
		}

		bitStart := pos + bitSamples
		if d, ok := tryDecodeBits(samples, bitStart, bitSamples, fRate); ok {
			return d, true
		}
	}
	return mode.Descriptor{}, false
}

func tryDecodeBits(samples []float64, start, bitSamples int, rate float64) (mode.Descriptor, bool) {
	var code byte
	for k := 0; k < 7; k++ {
		lo := start + k*bitSamples
		hi := lo + bitSamples
		if hi > len(samples) {
			return mode.Descriptor{}, false
		}
		f := goertzel.Estimate(samples[lo:hi], rate)
		if f < bitThreshold {
			code |= 1 << uint(k) // below 1200 Hz (1100 Hz nominal) -> '1'
		}
		// at/above 1200 Hz (1300 Hz nominal) -> '0', nothing to set
	}
	return mode.ByVIS(code)
}
