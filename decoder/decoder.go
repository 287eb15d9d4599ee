/*
NAME
  decoder.go

DESCRIPTION
  decoder.go implements the C9 decoder pipeline: VIS detection, per-line
  sync acquisition, per-pixel frequency estimation through either front
  end, colour reconstruction, and YUV reassembly (§4.9). Its warning
  accumulation is grounded on codec/h264/extractor.go's pattern of
  returning a best-effort result alongside a slice of non-fatal issues
  rather than aborting the whole decode.

LICENSE
  See repository root.
*/

// Package decoder implements the SSTV decoder pipeline (C9): recovering an
// image raster from a PCM sample stream.
package decoder

import (
	"math"

	"github.com/kb9vjv/sstv/colour"
	"github.com/kb9vjv/sstv/config"
	"github.com/kb9vjv/sstv/goertzel"
	"github.com/kb9vjv/sstv/mode"
	"github.com/kb9vjv/sstv/prefilter"
	"github.com/kb9vjv/sstv/raster"
	"github.com/kb9vjv/sstv/sstverr"
	syncpkg "github.com/kb9vjv/sstv/sync"
	"github.com/kb9vjv/sstv/vis"
)

// pixelWindowPixels widens the per-pixel Goertzel window beyond a single
// pixel dwell to give the sweep enough cycles for an unbiased estimate
// (§4.2: "typically 4-8 pixels' worth").
const pixelWindowPixels = 6

// chromaWindowFraction is the fraction of a chroma-pixel dwell the decode
// window spans, centred on the sample midpoint (§4.9 step c: "98% of the
// chroma-pixel dwell").
const chromaWindowFraction = 0.98

// Decoder recovers an image raster from an SSTV PCM sample stream. A
// Decoder owns its raster and chroma scratch buffers and is not safe for
// concurrent use (§5).
type Decoder struct {
	cfg      config.Config
	warnings []error
}

// New constructs a Decoder for cfg, resolving defaults and validating the
// configuration.
func New(cfg config.Config) (*Decoder, error) {
	cfg, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	return &Decoder{cfg: cfg}, nil
}

// Warnings returns the non-fatal issues (UnrecognisedVIS, TruncatedInput)
// accumulated during the most recent Decode call.
func (dec *Decoder) Warnings() []error { return dec.warnings }

// Decode recovers a raster from samples sampled at rate Hz. It returns a
// fatal error only for sstverr.NoSync; VIS-unrecognised and truncated-input
// conditions are recorded via Warnings and a best-effort raster is still
// returned (§4.10).
func (dec *Decoder) Decode(samples []float64, rate int) (*raster.Raster, error) {
	dec.warnings = nil
	fRate := float64(rate)

	d, err := dec.detectMode(samples, rate)
	if err != nil {
		return nil, err
	}

	r := raster.New(d.Width, d.Lines)
	chromaCb := make([]float64, d.Width*d.Lines)
	chromaCr := make([]float64, d.Width*d.Lines)
	for i := range chromaCb {
		chromaCb[i] = 128
		chromaCr[i] = 128
	}

	var demod []float64
	estimate := func(lo, hi int) float64 {
		if lo < 0 {
			lo = 0
		}
		if hi > len(samples) {
			hi = len(samples)
		}
		if hi <= lo {
			return mode.Black
		}
		if dec.cfg.FrontEnd() == config.FM {
			return prefilter.FrequencyFromDemod(demod[lo:hi])
		}
		return goertzel.Estimate(samples[lo:hi], fRate)
	}
	if dec.cfg.FrontEnd() == config.FM {
		demod = prefilter.Demodulate(samples, fRate)
	}

	tr := syncpkg.NewTracker(samples, fRate, d.SyncPulse, d.LineTime(), nil)
	if !tr.AcquireFirst() {
		return r, sstverr.New(sstverr.NoSync,
			"no 1200 Hz sync pulse found: input is likely not SSTV audio, or timing is too badly skewed to recover")
	}

	for y := 0; y < d.Lines; y++ {
		if tr.Cursor() >= len(samples) {
			dec.warnings = append(dec.warnings, sstverr.New(sstverr.TruncatedInput,
				"sample stream ended before all lines decoded"))
			break
		}

		pos := tr.Cursor() + int(d.SyncPorch*fRate)
		if d.Colour == mode.YUV {
			pos = dec.decodeYUVLine(r, chromaCb, chromaCr, d, y, pos, fRate, estimate)
		} else {
			pos = dec.decodeRGBLine(r, d, y, pos, fRate, estimate)
		}

		tr.SetCursor(pos)
		if y < d.Lines-1 {
			tr.AcquireNext()
		}
	}

	if d.Colour == mode.YUV {
		reassembleYUV(r, chromaCb, chromaCr, d)
	}
	return r, nil
}

// detectMode runs VIS detection unless the caller forced a mode, falling
// back to Robot 36 with an UnrecognisedVIS warning on no match (§4.6,
// §4.10).
func (dec *Decoder) detectMode(samples []float64, rate int) (mode.Descriptor, error) {
	if dec.cfg.Forced {
		d, ok := mode.ByMode(dec.cfg.Mode)
		if !ok {
			return mode.Descriptor{}, sstverr.New(sstverr.InvalidMode, "unknown forced mode")
		}
		return d, nil
	}

	if d, ok := vis.Detect(samples, rate); ok {
		return d, nil
	}
	dec.warnings = append(dec.warnings, sstverr.New(sstverr.UnrecognisedVIS,
		"VIS preamble not recognised; falling back to Robot 36"))
	d, _ := mode.ByMode(config.Robot36)
	return d, nil
}

// decodeRGBLine reads the G, B, R channel scans of one Martin/Scottie line
// starting at pos (just past sync+porch), writing into r, and returns the
// sample position just past the line (§4.9 step b).
func (dec *Decoder) decodeRGBLine(r *raster.Raster, d mode.Descriptor, y, pos int, rate float64, estimate func(lo, hi int) float64) int {
	dwellSamples := d.ScanTime / float64(d.Width) * rate
	windowSamples := int(dwellSamples * pixelWindowPixels)
	if windowSamples < 1 {
		windowSamples = 1
	}

	g := make([]uint8, d.Width)
	b := make([]uint8, d.Width)
	rr := make([]uint8, d.Width)
	channels := [3][]uint8{g, b, rr}
	for i, ch := range channels {
		for x := 0; x < d.Width; x++ {
			lo := pos + int(float64(x)*dwellSamples)
			f := estimate(lo, lo+windowSamples)
			ch[x] = freqToValue(f)
		}
		pos += int(d.ScanTime * rate)
		if i < len(channels)-1 {
			pos += int(d.SeparatorPulse * rate)
		}
	}
	for x := 0; x < d.Width; x++ {
		r.Set(x, y, rr[x], g[x], b[x])
	}
	return pos
}

// decodeYUVLine reads one Robot 36 line's Y scan and chroma scan starting
// at pos, writing Y into r's R channel (temporarily, per §4.9 step c) and
// the chroma sample into the scratch buffer determined by line parity. It
// returns the sample position just past the line.
func (dec *Decoder) decodeYUVLine(r *raster.Raster, cb, cr []float64, d mode.Descriptor, y, pos int, rate float64, estimate func(lo, hi int) float64) int {
	yDwell := d.YScanTime / float64(d.Width) * rate
	yWindow := int(yDwell * pixelWindowPixels)
	if yWindow < 1 {
		yWindow = 1
	}
	for x := 0; x < d.Width; x++ {
		lo := pos + int(float64(x)*yDwell)
		f := estimate(lo, lo+yWindow)
		yVal := valueFromLumaFreq(f)
		v := clampByte(yVal)
		r.Set(x, y, v, v, v) // temporary; reassembleYUV overwrites with RGB
	}
	pos += int(d.YScanTime * rate)
	pos += int(d.ChromaSepTime * rate)
	pos += int(d.ChromaPorch * rate)

	chromaWidth := d.Width / 2
	chromaDwell := d.ChromaScanTime / float64(chromaWidth) * rate
	window := int(chromaDwell * chromaWindowFraction)
	if window < 1 {
		window = 1
	}

	// Even lines carry Cb/U, odd lines carry Cr/V, matching the encoder's
	// alternation (encoder.encodeYUVLine); parity is ground truth here, the
	// separator frequency is informational only (§9 open question).
	even := y%2 == 0
	target := cr
	if even {
		target = cb
	}
	for cx := 0; cx < chromaWidth; cx++ {
		center := pos + int((float64(cx)+0.5)*chromaDwell)
		lo := center - window/2
		f := estimate(lo, lo+window)
		c := valueFromChromaFreq(f)
		x0, x1 := 2*cx, 2*cx+1
		target[y*d.Width+x0] = c
		if x1 < d.Width {
			target[y*d.Width+x1] = c
		}
	}
	pos += int(d.ChromaScanTime * rate)
	return pos
}

// reassembleYUV performs the §4.9 step 6 line-pair reassembly: within each
// (even, odd) line pair, both lines share the even line's Cb scratch and
// the odd line's Cr scratch (line-interleaved transmission, matching the
// encoder's even→Cb/odd→Cr alternation).
func reassembleYUV(r *raster.Raster, cb, cr []float64, d mode.Descriptor) {
	for y0 := 0; y0 < d.Lines; y0 += 2 {
		y1 := y0 + 1
		for x := 0; x < d.Width; x++ {
			cbVal := cb[y0*d.Width+x]
			crVal := cr[y0*d.Width+x] // default if there is no odd partner line
			if y1 < d.Lines {
				crVal = cr[y1*d.Width+x]
			}
			setRGBFromY(r, x, y0, crVal, cbVal)
			if y1 < d.Lines {
				setRGBFromY(r, x, y1, crVal, cbVal)
			}
		}
	}
}

func setRGBFromY(r *raster.Raster, x, y int, crVal, cbVal float64) {
	yVal, _, _, _ := r.At(x, y)
	red, green, blue := colour.ToRGB(float64(yVal), cbVal, crVal)
	r.Set(x, y, red, green, blue)
}

// freqToValue maps an estimated frequency to an RGB channel value in
// [0,255] (§4.9 step b inverse of the encoder's channelFreq).
func freqToValue(f float64) uint8 {
	v := 255 * (f - mode.Black) / (mode.White - mode.Black)
	return clampByte(v)
}

// valueFromLumaFreq maps an estimated frequency back to a BT.601
// video-range Y value in [16,235] (§4.9 step c, inverse of lumaFreq).
func valueFromLumaFreq(f float64) float64 {
	return 16 + (f-mode.Black)/(mode.White-mode.Black)*219
}

// valueFromChromaFreq maps an estimated frequency back to a BT.601
// video-range Cb/Cr value in [16,240], the inverse of the encoder's
// chromaFreq.
func valueFromChromaFreq(f float64) float64 {
	return 16 + (f-mode.Black)/(mode.White-mode.Black)*224
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
