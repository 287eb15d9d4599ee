package sync

import (
	"testing"

	"github.com/kb9vjv/sstv/mode"
	"github.com/kb9vjv/sstv/tone"
)

const testRate = 48000

// buildLines returns n synthetic Robot36 lines (sync+porch+black Y+black
// chroma) concatenated, for exercising AcquireFirst/AcquireNext without
// going through the full encoder.
func buildLines(t *testing.T, n int) (samples []float64, d mode.Descriptor) {
	t.Helper()
	d, ok := mode.ByMode(0) // Robot36
	if !ok {
		t.Fatal("mode.ByMode(Robot36): not found")
	}
	g := tone.New(testRate)
	for i := 0; i < n; i++ {
		samples = g.Emit(samples, mode.Sync, d.SyncPulse)
		samples = g.Emit(samples, mode.Black, d.SyncPorch)
		samples = g.Emit(samples, mode.Black, d.YScanTime)
		samples = g.Emit(samples, mode.Black, d.ChromaSepTime)
		samples = g.Emit(samples, mode.Black, d.ChromaPorch)
		samples = g.Emit(samples, mode.Black, d.ChromaScanTime)
	}
	return samples, d
}

// TestAcquireFirstFindsLeadingSync checks AcquireFirst locates the sync
// pulse at the very start of the stream (one of the last-resort search
// starts is offset 0), landing the cursor just past it.
func TestAcquireFirstFindsLeadingSync(t *testing.T) {
	samples, d := buildLines(t, 1)
	tr := NewTracker(samples, testRate, d.SyncPulse, d.LineTime(), nil)
	if !tr.AcquireFirst() {
		t.Fatal("AcquireFirst(): want true")
	}
	pulseSamples := int(d.SyncPulse * testRate)
	if got := tr.Cursor(); got < pulseSamples-10 || got > pulseSamples+10 {
		t.Errorf("Cursor() = %d, want close to %d", got, pulseSamples)
	}
}

// TestAcquireNextAdvancesAcrossLines checks that after locating the first
// sync, repeated AcquireNext calls track each subsequent line's sync pulse.
func TestAcquireNextAdvancesAcrossLines(t *testing.T) {
	samples, d := buildLines(t, 4)
	tr := NewTracker(samples, testRate, d.SyncPulse, d.LineTime(), nil)
	if !tr.AcquireFirst() {
		t.Fatal("AcquireFirst(): want true")
	}

	lineSamples := int(d.LineTime() * testRate)
	pulseSamples := int(d.SyncPulse * testRate)
	for i := 1; i < 4; i++ {
		// Skip past this line's data back to just before the next sync,
		// mimicking the decoder advancing the cursor while reading pixels.
		tr.SetCursor(tr.Cursor() - pulseSamples + lineSamples)
		tr.AcquireNext()
		want := (i+1)*lineSamples - (lineSamples - pulseSamples)
		if got := tr.Cursor(); got < want-50 || got > want+50 {
			t.Errorf("line %d: Cursor() = %d, want near %d", i, got, want)
		}
	}
}

// TestAcquireFirstNoSyncFails checks AcquireFirst returns false over pure
// silence, the NoSync failure condition (§4.10/§7).
func TestAcquireFirstNoSyncFails(t *testing.T) {
	samples := make([]float64, 2*testRate)
	tr := NewTracker(samples, testRate, 9e-3, 150e-3, nil)
	if tr.AcquireFirst() {
		t.Error("AcquireFirst(silence): want false")
	}
}

// TestAcquireNextLastResortAdvances checks that when no sync pulse can be
// found ahead, AcquireNext still advances the cursor by one line duration
// rather than leaving it stuck, per §4.8 step 2's last-resort clause.
func TestAcquireNextLastResortAdvances(t *testing.T) {
	samples := make([]float64, 48000) // silence, no real sync pulses
	tr := NewTracker(samples, testRate, 9e-3, 150e-3, nil)
	tr.SetCursor(0)
	before := tr.Cursor()
	tr.AcquireNext()
	lineSamples := int(150e-3 * testRate)
	if got := tr.Cursor(); got != before+lineSamples {
		t.Errorf("Cursor() = %d, want %d", got, before+lineSamples)
	}
}
