/*
NAME
  pcm.go

DESCRIPTION
  pcm.go converts between the codec's internal float64 sample
  representation (in [-1,+1], used by tone, goertzel, and prefilter) and
  mono 16-bit signed little-endian PCM, the wire format named in §6.
  Adapted from codec/pcm/pcm.go's Buffer/BufferFormat, narrowed to the
  single S16_LE mono format this codec's external interface requires.

LICENSE
  See repository root.
*/

// Package pcm converts between float64 audio samples and mono 16-bit PCM
// bytes.
package pcm

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Buffer is a decoded mono PCM stream: float64 samples in [-1,+1] at Rate
// Hz. The encoder produces one; the decoder consumes one (§6).
type Buffer struct {
	Rate    int
	Samples []float64
}

// FromBytes decodes little-endian signed 16-bit mono PCM bytes into a
// Buffer at the given sample rate.
func FromBytes(b []byte, rate int) (Buffer, error) {
	if len(b)%2 != 0 {
		return Buffer{}, errors.New("pcm: odd byte count, not a whole number of 16-bit samples")
	}
	samples := make([]float64, len(b)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(b[2*i : 2*i+2]))
		samples[i] = float64(v) / 32768.0
	}
	return Buffer{Rate: rate, Samples: samples}, nil
}

// Bytes encodes the Buffer's float64 samples (clamped to [-1,+1]) to
// little-endian signed 16-bit mono PCM bytes.
func (b Buffer) Bytes() []byte {
	out := make([]byte, len(b.Samples)*2)
	for i, s := range b.Samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(s * 32767)
		binary.LittleEndian.PutUint16(out[2*i:2*i+2], uint16(v))
	}
	return out
}
