/*
NAME
  raster.go

DESCRIPTION
  raster.go is the in-memory image raster the encoder consumes and the
  decoder produces: row-major 8-bit RGBA, alpha always opaque on output
  (§6). Image resizing and file I/O are explicitly out of scope (§1); this
  type is the boundary the external image stage fills in.

LICENSE
  See repository root.
*/

// Package raster defines the row-major 8-bit RGBA raster passed across
// the SSTV codec's image boundary.
package raster

// Raster is a row-major 8-bit RGBA image buffer of fixed Width x Height.
type Raster struct {
	Width, Height int
	Pix           []byte // len == Width*Height*4, row-major RGBA
}

// New returns an opaque black Raster of the given dimensions (alpha=255
// everywhere), the decoder's initial state before any line is decoded
// (§3, §4.9 step 3).
func New(width, height int) *Raster {
	r := &Raster{Width: width, Height: height, Pix: make([]byte, width*height*4)}
	for i := 3; i < len(r.Pix); i += 4 {
		r.Pix[i] = 255
	}
	return r
}

func (r *Raster) offset(x, y int) int { return (y*r.Width + x) * 4 }

// At returns the RGBA value at (x,y).
func (r *Raster) At(x, y int) (red, green, blue, alpha uint8) {
	i := r.offset(x, y)
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3]
}

// Set writes an RGB value at (x,y), always with alpha=255 (§3 invariant:
// "every output pixel has alpha=255").
func (r *Raster) Set(x, y int, red, green, blue uint8) {
	i := r.offset(x, y)
	r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3] = red, green, blue, 255
}

// MeanRGB returns the mean value of each channel across the whole raster,
// used by round-trip quality checks (§8).
func (r *Raster) MeanRGB() (rm, gm, bm float64) {
	n := r.Width * r.Height
	if n == 0 {
		return 0, 0, 0
	}
	var rs, gs, bs int
	for i := 0; i < len(r.Pix); i += 4 {
		rs += int(r.Pix[i])
		gs += int(r.Pix[i+1])
		bs += int(r.Pix[i+2])
	}
	return float64(rs) / float64(n), float64(gs) / float64(n), float64(bs) / float64(n)
}
