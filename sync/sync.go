/*
NAME
  sync.go

DESCRIPTION
  sync.go locates the sample offset of each scan line's 1200 Hz sync
  pulse, and maintains alignment across lines as the decoder advances
  (§4.8). The overall "slide, estimate, accept within tolerance" approach
  is grounded on madpsy-ka9q_ubersdr/audio_extensions/sstv/sync.go's sync
  search (a non-teacher pack repo's SSTV receiver); this codec implements
  the simpler per-line sliding search §4.8 specifies rather than that
  repo's Hough-transform slant correction, which addresses a different
  problem (whole-frame sample-rate drift) out of this spec's scope.

LICENSE
  See repository root.
*/

// Package sync locates SSTV sync pulses and tracks per-line alignment
// through a decode.
package sync

import (
	"math"

	"github.com/kb9vjv/sstv/goertzel"
)

// acceptTol is the frequency tolerance, in Hz, for accepting a candidate
// sync position (§4.8).
const acceptTol = 200.0

// syncFreq is the nominal sync-pulse frequency (mode.Sync, duplicated here
// to avoid an import cycle with the mode package's Descriptor-heavy API;
// both packages derive it from §3's frequency constants).
const syncFreq = 1200.0

// searchStride is the step used while sliding for a candidate sync
// position (§4.8: "≈0.2 ms steps").
const searchStride = 0.2e-3

// Estimator is the estimate_frequency(samples, rate) → Hz contract the
// Tracker calls for each candidate window. Goertzel below is the only
// implementation in this module; NewTracker uses it when given nil.
type Estimator func(samples []float64, rate float64) float64

// Goertzel is the default Estimator, backed by the Goertzel sweep (§4.2).
func Goertzel(samples []float64, rate float64) float64 { return goertzel.Estimate(samples, rate) }

// Tracker locates and maintains per-line sync alignment through a decode.
type Tracker struct {
	samples   []float64
	rate      float64
	syncPulse float64 // seconds
	lineTime  float64 // seconds
	estimate  Estimator
	cursor    int // current sample position
}

// NewTracker returns a Tracker over samples (rate Hz) for a mode whose
// sync pulse lasts syncPulse seconds and whose full line lasts lineTime
// seconds.
func NewTracker(samples []float64, rate float64, syncPulse, lineTime float64, estimate Estimator) *Tracker {
	if estimate == nil {
		estimate = Goertzel
	}
	return &Tracker{samples: samples, rate: rate, syncPulse: syncPulse, lineTime: lineTime, estimate: estimate}
}

// candidateOffsets are the initial search starting points (§4.8 step 1),
// covering typical VIS preamble lengths with tolerance.
var candidateOffsets = []float64{0.5, 0.61, 0.8, 0}

// AcquireFirst searches from the candidate offsets for the first sync
// pulse, sliding forward in searchStride steps, and sets the Tracker's
// cursor to the sample immediately after the pulse (§4.8 step 1). It
// returns false if no 1200 Hz pulse is found anywhere in the stream
// (sstverr.NoSync territory — the caller decides how to fail).
func (t *Tracker) AcquireFirst() bool {
	for _, off := range candidateOffsets {
		start := int(off * t.rate)
		if pos, ok := t.searchFrom(start, len(t.samples)); ok {
			t.cursor = pos + t.pulseSamples()
			return true
		}
	}
	// Last resort: search the whole stream from the start.
	if pos, ok := t.searchFrom(0, len(t.samples)); ok {
		t.cursor = pos + t.pulseSamples()
		return true
	}
	return false
}

// Cursor returns the current sample position.
func (t *Tracker) Cursor() int { return t.cursor }

// SetCursor overrides the current sample position (used after decoding a
// line's data segments, before re-acquiring the next sync).
func (t *Tracker) SetCursor(pos int) { t.cursor = pos }

// AcquireNext searches forward from the current cursor for the next sync
// pulse, within an upper bound of ~2x the expected line duration (§4.8
// step 2). On a miss it advances by half a line duration and retries in
// an expanded window; as a last resort it accepts the computed expected
// position so the decode never aborts mid-frame.
func (t *Tracker) AcquireNext() {
	lineSamples := int(t.lineTime * t.rate)
	upper := t.cursor + 2*lineSamples
	if pos, ok := t.searchFrom(t.cursor, upper); ok {
		t.cursor = pos + t.pulseSamples()
		return
	}

	// Miss: advance by half a line and retry in an expanded window.
	retryStart := t.cursor + lineSamples/2
	retryUpper := retryStart + 3*lineSamples
	if pos, ok := t.searchFrom(retryStart, retryUpper); ok {
		t.cursor = pos + t.pulseSamples()
		return
	}

	// Last resort: accept the expected position to avoid catastrophic
	// desync (§4.8 step 2).
	t.cursor += lineSamples
}

func (t *Tracker) pulseSamples() int { return int(t.syncPulse * t.rate) }

// searchFrom slides from start to end in searchStride steps, accepting
// the first position whose pulse window and three interior sub-windows
// all estimate within acceptTol Hz of 1200 Hz (§4.8 step 1).
func (t *Tracker) searchFrom(start, end int) (int, bool) {
	if start < 0 {
		start = 0
	}
	if end > len(t.samples) {
		end = len(t.samples)
	}
	stride := int(searchStride * t.rate)
	if stride < 1 {
		stride = 1
	}
	pulseSamples := t.pulseSamples()
	if pulseSamples < 3 {
		return 0, false
	}

	for pos := start; pos+pulseSamples <= end; pos += stride {
		window := t.samples[pos : pos+pulseSamples]
		var energy float64
		for _, v := range window {
			energy += v * v
		}
		if energy == 0 { // silence carries no pulse
			continue
		}
		if !withinTol(t.estimate(window, t.rate)) {
			continue
		}
		if !t.subWindowsAgree(window) {
			continue
		}
		return pos, true
	}
	return 0, false
}

// subWindowsAgree checks that three equal sub-windows within the pulse all
// independently estimate within acceptTol of 1200 Hz (§4.8 step 1).
func (t *Tracker) subWindowsAgree(window []float64) bool {
	n := len(window) / 3
	if n == 0 {
		return true
	}
	for i := 0; i < 3; i++ {
		sub := window[i*n : (i+1)*n]
		if !withinTol(t.estimate(sub, t.rate)) {
			return false
		}
	}
	return true
}

func withinTol(f float64) bool { return math.Abs(f-syncFreq) <= acceptTol }
