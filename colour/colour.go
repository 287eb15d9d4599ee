/*
NAME
  colour.go

DESCRIPTION
  colour.go converts between RGB and YCbCr using the ITU-R BT.601
  video-range coefficients (§4.5): Y in [16,235], Cb/Cr in [16,240]. The
  encoder and decoder must agree on this range — mixing it with a
  full-range 0-255 convention on either side produces a green cast on
  neutral greys.

LICENSE
  See repository root.
*/

// Package colour implements BT.601 video-range RGB/YCbCr conversion for
// the Robot 36 mode's chroma pipeline.
package colour

import "math"

// YCbCr holds a BT.601 video-range luma/chroma triple.
type YCbCr struct {
	Y, Cb, Cr float64
}

// ToYCbCr converts 8-bit RGB to BT.601 video-range YCbCr (§4.5 forward).
func ToYCbCr(r, g, b uint8) YCbCr {
	rf, gf, bf := float64(r), float64(g), float64(b)
	return YCbCr{
		Y:  16 + (65.738*rf+129.057*gf+25.064*bf)/256,
		Cb: 128 + (-37.945*rf-74.494*gf+112.439*bf)/256,
		Cr: 128 + (112.439*rf-94.154*gf-18.285*bf)/256,
	}
}

// ToRGB converts BT.601 video-range YCbCr back to 8-bit RGB, clamped to
// [0,255] (§4.5 inverse).
func ToRGB(y, cb, cr float64) (r, g, b uint8) {
	yT := 298.082 * (y - 16)
	rf := 0.003906 * (yT + 408.583*(cr-128))
	gf := 0.003906 * (yT - 100.291*(cb-128) - 208.120*(cr-128))
	bf := 0.003906 * (yT + 516.411*(cb-128))
	return clamp(rf), clamp(gf), clamp(bf)
}

func clamp(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
