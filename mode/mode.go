/*
NAME
  mode.go

DESCRIPTION
  mode.go is the static, read-only mode registry (§4.4): immutable
  descriptors for Robot 36, Martin M1, and Scottie S1, looked up by VIS
  code on receive and by name on transmit. Timing constants are grounded
  on madpsy-ka9q_ubersdr/audio_extensions/sstv/modes.go's ModeSpec table
  (a non-teacher pack repo implementing SSTV reception, itself ported from
  KiwiSDR's sstv_modespec.cpp), adapted to the sync-at-line-start,
  parity-irrelevant-to-chroma-type model this codec uses (§4.7, §9 open
  questions).

LICENSE
  See repository root.
*/

// Package mode is the static descriptor registry for the three SSTV modes
// this codec supports: Robot 36, Martin M1, Scottie S1.
package mode

import (
	"fmt"

	"github.com/kb9vjv/sstv/config"
)

// ColourFormat distinguishes the two scan-line colour encodings a mode may
// use (§3).
type ColourFormat int

const (
	RGB ColourFormat = iota
	YUV
)

func (c ColourFormat) String() string {
	if c == YUV {
		return "YUV"
	}
	return "RGB"
}

// Frequency constants shared by every mode (§3).
const (
	Sync     = 1200.0
	Black    = 1500.0
	White    = 2300.0
	VISStart = 1900.0
	VISStop  = 1200.0
	VISBit0  = 1300.0
	VISBit1  = 1100.0
)

// Descriptor is an immutable per-mode timing and geometry specification.
type Descriptor struct {
	Name    string
	Mode    config.Mode
	VISCode byte
	Width   int
	Lines   int
	Colour  ColourFormat

	// SyncPulse and SyncPorch bound every scan line (§4.7).
	SyncPulse float64
	SyncPorch float64

	// RGB-mode timings (Martin, Scottie): scan_time is per-channel; the
	// separator is emitted between channels. Channel order is always
	// G, B, R (§4.7).
	ScanTime       float64
	SeparatorPulse float64

	// Robot 36 (YUV) sub-timings (§3, §4.7): a full-width Y scan, a
	// separator whose frequency names the following chroma channel
	// (informational only, §9), a chroma porch, then a half-width chroma
	// scan.
	YScanTime      float64
	ChromaSepTime  float64
	ChromaPorch    float64
	ChromaScanTime float64
}

// LineTime returns the total duration of one scan line, summing sync,
// porch, and the mode's data segments.
func (d Descriptor) LineTime() float64 {
	if d.Colour == YUV {
		return d.SyncPulse + d.SyncPorch + d.YScanTime + d.ChromaSepTime + d.ChromaPorch + d.ChromaScanTime
	}
	return d.SyncPulse + d.SyncPorch + 3*d.ScanTime + 2*d.SeparatorPulse
}

var descriptors = []Descriptor{
	{
		Name:      "Robot 36",
		Mode:      config.Robot36,
		VISCode:   0x08,
		Width:     320,
		Lines:     240,
		Colour:    YUV,
		SyncPulse: 9e-3,
		SyncPorch: 3e-3,

		YScanTime:      88e-3,
		ChromaSepTime:  4.5e-3,
		ChromaPorch:    1.5e-3,
		ChromaScanTime: 44e-3,
	},
	{
		Name:      "Martin M1",
		Mode:      config.MartinM1,
		VISCode:   0x2C,
		Width:     320,
		Lines:     256,
		Colour:    RGB,
		SyncPulse: 4.862e-3,
		SyncPorch: 0.572e-3,

		ScanTime:       146.432e-3,
		SeparatorPulse: 0.572e-3,
	},
	{
		Name:      "Scottie S1",
		Mode:      config.ScottieS1,
		VISCode:   0x3C,
		Width:     320,
		Lines:     256,
		Colour:    RGB,
		SyncPulse: 9e-3,
		SyncPorch: 1.5e-3,

		ScanTime:       138.244e-3,
		SeparatorPulse: 1.5e-3,
	},
}

// ByVIS looks up a Descriptor by its 7-bit VIS code, the lookup direction
// used on receive (§4.4).
func ByVIS(code byte) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.VISCode == code {
			return d, true
		}
	}
	return Descriptor{}, false
}

// ByMode looks up a Descriptor by its symbolic Mode, the lookup direction
// used on transmit (§4.4).
func ByMode(m config.Mode) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Mode == m {
			return d, true
		}
	}
	return Descriptor{}, false
}

// ByName looks up a Descriptor by its human-readable name, case-sensitive.
func ByName(name string) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// All returns every supported mode's Descriptor, for tooling such as a
// CLI's -list-modes flag.
func All() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Parity computes the even-parity bit over the 7 data bits of a VIS code,
// the invariant checked in §3/§8: parity = XOR of bits 0..6.
func Parity(code byte) byte {
	var p byte
	for i := 0; i < 7; i++ {
		p ^= (code >> uint(i)) & 1
	}
	return p
}

// String implements fmt.Stringer for diagnostic output.
func (d Descriptor) String() string {
	return fmt.Sprintf("%s (VIS=0x%02X, %dx%d, %s)", d.Name, d.VISCode, d.Width, d.Lines, d.Colour)
}
