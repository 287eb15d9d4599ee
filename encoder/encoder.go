/*
NAME
  encoder.go

DESCRIPTION
  encoder.go implements the C7 encoder pipeline: raster in, VIS-framed,
  line-structured PCM tone train out (§4.7). Structured as a single
  instance-owned phase accumulator feeding a deterministic per-line
  schedule, grounded on codec/rtmp/flv's frame-by-frame appender pattern
  (build a buffer incrementally via small emit calls rather than
  pre-sizing).

LICENSE
  See repository root.
*/

// Package encoder implements the SSTV encoder pipeline (C7): converting an
// image raster into a VIS-framed, continuous-phase PCM tone train.
package encoder

import (
	"github.com/kb9vjv/sstv/colour"
	"github.com/kb9vjv/sstv/config"
	"github.com/kb9vjv/sstv/mode"
	"github.com/kb9vjv/sstv/raster"
	"github.com/kb9vjv/sstv/sstverr"
	"github.com/kb9vjv/sstv/tone"
	"github.com/kb9vjv/sstv/vis"
)

// Encoder converts an image raster to an SSTV PCM tone train for one
// configured mode. An Encoder owns its phase accumulator and output
// buffer and is not safe for concurrent use (§5).
type Encoder struct {
	cfg config.Config
	d   mode.Descriptor
	gen *tone.Generator
}

// New constructs an Encoder for cfg, resolving defaults and validating the
// configuration. It returns sstverr.InvalidMode if cfg.Mode names no known
// mode (§4.10: "Invalid mode name on encode: hard fail").
func New(cfg config.Config) (*Encoder, error) {
	cfg, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	d, ok := mode.ByMode(cfg.Mode)
	if !ok {
		return nil, sstverr.New(sstverr.InvalidMode, "unknown mode: "+cfg.Mode.String())
	}
	return &Encoder{cfg: cfg, d: d, gen: tone.New(cfg.SampleRate)}, nil
}

// Mode returns the descriptor this Encoder is configured to emit.
func (e *Encoder) Mode() mode.Descriptor { return e.d }

// Encode emits the VIS preamble followed by every scan line of r, returning
// the full PCM sample train. r must already be sized (e.d.Width,
// e.d.Lines); resizing is the external image stage's job (§4.7 step 1).
func (e *Encoder) Encode(r *raster.Raster) ([]float64, error) {
	if r.Width != e.d.Width || r.Height != e.d.Lines {
		return nil, sstverr.New(sstverr.InvalidMode,
			"raster size does not match mode geometry")
	}

	var out []float64
	out = vis.Emit(e.gen, out, e.d)

	if e.d.Colour == mode.YUV {
		for y := 0; y < e.d.Lines; y++ {
			out = e.encodeYUVLine(out, r, y)
		}
	} else {
		for y := 0; y < e.d.Lines; y++ {
			out = e.encodeRGBLine(out, r, y)
		}
	}
	return out, nil
}

// encodeRGBLine emits one Martin/Scottie-style line: sync, porch, then
// G, B, R scans separated by separator_pulse (§4.7).
func (e *Encoder) encodeRGBLine(out []float64, r *raster.Raster, y int) []float64 {
	d := e.d
	out = e.gen.Emit(out, mode.Sync, d.SyncPulse)
	out = e.gen.Emit(out, mode.Black, d.SyncPorch)

	dwell := d.ScanTime / float64(d.Width)
	channels := [3]int{1, 2, 0} // G, B, R as index into (R,G,B)
	for i, ch := range channels {
		for x := 0; x < d.Width; x++ {
			rr, gg, bb, _ := r.At(x, y)
			var v uint8
			switch ch {
			case 0:
				v = rr
			case 1:
				v = gg
			case 2:
				v = bb
			}
			out = e.gen.Emit(out, channelFreq(v), e.pixelTime(x, dwell))
		}
		if i < len(channels)-1 {
			out = e.gen.Emit(out, mode.Sync, d.SeparatorPulse)
		}
	}
	return out
}

// encodeYUVLine emits one Robot 36 line: sync, porch, a full-width Y scan,
// a parity-alternating chroma separator, a chroma porch, then a
// half-resolution chroma scan (§4.7).
func (e *Encoder) encodeYUVLine(out []float64, r *raster.Raster, y int) []float64 {
	d := e.d
	out = e.gen.Emit(out, mode.Sync, d.SyncPulse)
	out = e.gen.Emit(out, mode.Black, d.SyncPorch)

	yDwell := d.YScanTime / float64(d.Width)
	ys := make([]float64, d.Width)
	cbs := make([]float64, d.Width)
	crs := make([]float64, d.Width)
	for x := 0; x < d.Width; x++ {
		rr, gg, bb, _ := r.At(x, y)
		c := colour.ToYCbCr(rr, gg, bb)
		ys[x], cbs[x], crs[x] = c.Y, c.Cb, c.Cr
		out = e.gen.Emit(out, lumaFreq(c.Y), e.pixelTime(x, yDwell))
	}

	// Separator frequency names the following chroma channel and
	// alternates with line parity (§4.7); the decoder ignores it and uses
	// parity directly (§9 open question), but the encoder still emits it
	// for interoperability with external decoders that do read it.
	even := y%2 == 0
	sepFreq := mode.White // Cr/V
	if even {
		sepFreq = mode.Black // Cb/U
	}
	out = e.gen.Emit(out, sepFreq, d.ChromaSepTime)
	out = e.gen.Emit(out, mode.Black, d.ChromaPorch)

	chromaWidth := d.Width / 2
	chromaDwell := d.ChromaScanTime / float64(chromaWidth)
	var chroma []float64
	if even {
		chroma = cbs
	} else {
		chroma = crs
	}
	for cx := 0; cx < chromaWidth; cx++ {
		x0 := 2 * cx
		x1 := x0 + 1
		if x1 >= d.Width {
			x1 = x0
		}
		avg := (chroma[x0] + chroma[x1]) / 2
		out = e.gen.Emit(out, chromaFreq(avg), e.pixelTime(cx, chromaDwell))
	}
	return out
}

// pixelTime returns how long pixel i of a scan with the given per-pixel
// dwell is held. Pixel boundaries fall on the whole sample at or below
// their nominal offset i*dwell, so a scan keeps its nominal length instead
// of losing the fractional sample of every pixel.
func (e *Encoder) pixelTime(i int, dwell float64) float64 {
	rate := float64(e.cfg.SampleRate)
	n := int(float64(i+1)*dwell*rate) - int(float64(i)*dwell*rate)
	return (float64(n) + 0.5) / rate // Emit floors this to exactly n samples
}

// channelFreq maps an RGB channel value in [0,255] to its SSTV tone
// frequency (§4.7): f = 1500 + (v/255)*800.
func channelFreq(v uint8) float64 {
	return mode.Black + (float64(v)/255)*(mode.White-mode.Black)
}

// lumaFreq maps a BT.601 video-range Y value in [16,235] to its SSTV tone
// frequency (§4.7): f = 1500 + ((Y-16)/219)*800.
func lumaFreq(y float64) float64 {
	return mode.Black + ((y-16)/219)*(mode.White-mode.Black)
}

// chromaFreq maps a BT.601 video-range Cb/Cr value in [16,240] to its SSTV
// tone frequency using the same linear mapping as luma, over the chroma
// range's span.
func chromaFreq(c float64) float64 {
	return mode.Black + ((c-16)/224)*(mode.White-mode.Black)
}
