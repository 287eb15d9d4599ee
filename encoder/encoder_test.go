package encoder

import (
	"testing"

	"github.com/kb9vjv/sstv/config"
	"github.com/kb9vjv/sstv/mode"
	"github.com/kb9vjv/sstv/raster"
	"github.com/kb9vjv/sstv/tone"
)

func solidRaster(t *testing.T, d mode.Descriptor, r, g, b uint8) *raster.Raster {
	t.Helper()
	ras := raster.New(d.Width, d.Lines)
	for y := 0; y < d.Lines; y++ {
		for x := 0; x < d.Width; x++ {
			ras.Set(x, y, r, g, b)
		}
	}
	return ras
}

// TestNewRejectsInvalidMode checks New hard-fails on an out-of-range mode,
// the §4.10 "invalid mode name on encode: hard fail" requirement.
func TestNewRejectsInvalidMode(t *testing.T) {
	_, err := New(config.Config{Mode: config.Mode(99)})
	if err == nil {
		t.Fatal("New(invalid mode): want error")
	}
}

// TestEncodeRejectsWrongRasterSize checks Encode refuses a raster whose
// dimensions don't match the configured mode's geometry (§4.7 step 1).
func TestEncodeRejectsWrongRasterSize(t *testing.T) {
	enc, err := New(config.Config{Mode: config.Robot36})
	if err != nil {
		t.Fatal(err)
	}
	_, err = enc.Encode(raster.New(10, 10))
	if err == nil {
		t.Fatal("Encode(wrong size): want error")
	}
}

// TestEncodeProducesNonEmptySamples checks Encode returns a non-trivial
// sample train of roughly the expected length for each mode.
func TestEncodeProducesNonEmptySamples(t *testing.T) {
	for _, m := range []config.Mode{config.Robot36, config.MartinM1, config.ScottieS1} {
		enc, err := New(config.Config{Mode: m})
		if err != nil {
			t.Fatal(err)
		}
		d := enc.Mode()
		ras := solidRaster(t, d, 128, 128, 128)

		samples, err := enc.Encode(ras)
		if err != nil {
			t.Fatalf("%s: Encode: %v", m, err)
		}

		// Every tone and every scan lasts a whole number of samples
		// (floor(d*Fs)), so the expected length sums the segments as
		// Emit counts them rather than the continuous nominal time.
		n := tone.New(config.DefaultSampleRate).Samples
		visSamples := n(0.3) + n(0.01) + n(0.03) + 7*n(0.03) + n(0.03) + n(0.03)
		var line int
		if d.Colour == mode.YUV {
			line = n(d.SyncPulse) + n(d.SyncPorch) + n(d.YScanTime) + n(d.ChromaSepTime) + n(d.ChromaPorch) + n(d.ChromaScanTime)
		} else {
			line = n(d.SyncPulse) + n(d.SyncPorch) + 3*n(d.ScanTime) + 2*n(d.SeparatorPulse)
		}
		want := visSamples + d.Lines*line
		if len(samples) < want-1000 || len(samples) > want+1000 {
			t.Errorf("%s: len(samples) = %d, want near %d", m, len(samples), want)
		}
		for i, s := range samples {
			if s < -1.0001 || s > 1.0001 {
				t.Fatalf("%s: sample %d out of [-1,1]: %v", m, i, s)
			}
		}
	}
}
