package raster

import "testing"

// TestNewOpaqueBlack checks New produces opaque black: RGB=0, alpha=255
// everywhere (§3, §4.9 step 3).
func TestNewOpaqueBlack(t *testing.T) {
	r := New(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			rr, gg, bb, aa := r.At(x, y)
			if rr != 0 || gg != 0 || bb != 0 || aa != 255 {
				t.Fatalf("At(%d,%d) = %d,%d,%d,%d, want 0,0,0,255", x, y, rr, gg, bb, aa)
			}
		}
	}
}

// TestSetForcesOpaque checks Set always writes alpha=255 regardless of
// what the caller passed for the other channels.
func TestSetForcesOpaque(t *testing.T) {
	r := New(2, 2)
	r.Set(1, 1, 10, 20, 30)
	rr, gg, bb, aa := r.At(1, 1)
	if rr != 10 || gg != 20 || bb != 30 || aa != 255 {
		t.Errorf("At(1,1) = %d,%d,%d,%d, want 10,20,30,255", rr, gg, bb, aa)
	}
}

// TestMeanRGB checks the mean of a uniformly-set raster equals the set
// value.
func TestMeanRGB(t *testing.T) {
	r := New(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			r.Set(x, y, 100, 150, 200)
		}
	}
	rm, gm, bm := r.MeanRGB()
	if rm != 100 || gm != 150 || bm != 200 {
		t.Errorf("MeanRGB() = %v,%v,%v, want 100,150,200", rm, gm, bm)
	}
}
