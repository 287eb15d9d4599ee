/*
NAME
  wav.go

DESCRIPTION
  wav.go reads and writes the canonical 44-byte PCM WAV container named in
  §6: "RIFF" + chunk size + "WAVE" + "fmt " + 16-byte fmt chunk + "data" +
  data size + LE int16 samples. Write is adapted directly from
  codec/wav/wav.go's WAV.Write; Read is new, needed because the decoder
  must round-trip its own encoder's output (§8 idempotence) without an
  external WAV library.

LICENSE
  See repository root.
*/

// Package wav provides the canonical PCM WAV container codec the SSTV
// core emits on encode and can read on decode.
package wav

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// PCMFormat is the WAV standard's integer tag for linear PCM.
const PCMFormat = 1

var (
	errInvalidChannels = errors.New("invalid or no number of channels defined")
	errInvalidRate     = errors.New("invalid or no sample rate defined")
	errInvalidBitDepth = errors.New("invalid or no bit depth defined")
	errNotRIFF         = errors.New("not a RIFF/WAVE file")
	errNoFmtChunk      = errors.New("missing fmt chunk")
	errNoDataChunk     = errors.New("missing data chunk")
)

// Metadata describes the PCM format carried by a WAV container.
type Metadata struct {
	Channels   int
	SampleRate int
	BitDepth   int
}

// Write encodes p (raw little-endian sample bytes) as a canonical 44-byte-
// header PCM WAV file and returns the complete container.
func Write(md Metadata, p []byte) ([]byte, error) {
	if md.Channels == 0 {
		return nil, errInvalidChannels
	}
	if md.SampleRate == 0 {
		return nil, errInvalidRate
	}
	if md.BitDepth == 0 {
		return nil, errInvalidBitDepth
	}

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(p)+36))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], uint16(PCMFormat))
	binary.LittleEndian.PutUint16(header[22:24], uint16(md.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(md.SampleRate))
	byteRate := md.SampleRate * md.Channels * md.BitDepth / 8
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	blockAlign := md.Channels * md.BitDepth / 8
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(md.BitDepth))
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(p)))

	out := make([]byte, 0, len(header)+len(p))
	out = append(out, header...)
	out = append(out, p...)
	return out, nil
}

// Read parses a RIFF/WAVE PCM container, returning its format metadata and
// raw data-chunk bytes. It tolerates trailing or reordered chunks after
// "fmt " (only "data" is required), since the decoder's external audio
// stage may have handed off a container with extra metadata chunks (§6:
// "Decoding accepts any container the external audio stage can hand off").
func Read(b []byte) (Metadata, []byte, error) {
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return Metadata{}, nil, errNotRIFF
	}

	var md Metadata
	haveFmt := false
	pos := 12
	for pos+8 <= len(b) {
		id := string(b[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(b[pos+4 : pos+8]))
		body := pos + 8
		if body+size > len(b) {
			size = len(b) - body // tolerate a short final chunk
			if size < 0 {
				break
			}
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return Metadata{}, nil, errNoFmtChunk
			}
			md.Channels = int(binary.LittleEndian.Uint16(b[body+2 : body+4]))
			md.SampleRate = int(binary.LittleEndian.Uint32(b[body+4 : body+8]))
			md.BitDepth = int(binary.LittleEndian.Uint16(b[body+14 : body+16]))
			haveFmt = true
		case "data":
			if !haveFmt {
				return Metadata{}, nil, errNoFmtChunk
			}
			return md, b[body : body+size], nil
		}

		pos = body + size
		if size%2 == 1 {
			pos++ // chunks are word-aligned
		}
	}
	return Metadata{}, nil, errNoDataChunk
}
