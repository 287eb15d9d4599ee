package wav

import (
	"bytes"
	"testing"
)

func TestWriteHeader(t *testing.T) {
	tests := []struct {
		name    string
		md      Metadata
		input   []byte
		wantErr error
	}{
		{"header only", Metadata{Channels: 1, SampleRate: 48000, BitDepth: 16}, nil, nil},
		{"4 bytes", Metadata{Channels: 1, SampleRate: 48000, BitDepth: 16}, []byte{0, 0, 0, 0}, nil},
		{"no channels", Metadata{SampleRate: 48000, BitDepth: 16}, nil, errInvalidChannels},
		{"no rate", Metadata{Channels: 1, BitDepth: 16}, nil, errInvalidRate},
		{"no bit depth", Metadata{Channels: 1, SampleRate: 48000}, nil, errInvalidBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Write(tt.md, tt.input)
			if err != tt.wantErr {
				t.Fatalf("Write() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if len(got) != 44+len(tt.input) {
				t.Errorf("len(out) = %d, want %d", len(got), 44+len(tt.input))
			}
			if string(got[0:4]) != "RIFF" || string(got[8:12]) != "WAVE" {
				t.Errorf("missing RIFF/WAVE markers")
			}
		})
	}
}

// TestRoundTrip checks Read parses exactly what Write produced.
func TestRoundTrip(t *testing.T) {
	md := Metadata{Channels: 1, SampleRate: 48000, BitDepth: 16}
	data := []byte{1, 2, 3, 4, 5, 6}

	raw, err := Write(md, data)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	gotMD, gotData, err := Read(raw)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if gotMD != md {
		t.Errorf("metadata = %+v, want %+v", gotMD, md)
	}
	if !bytes.Equal(gotData, data) {
		t.Errorf("data = %v, want %v", gotData, data)
	}
}

// TestReadRejectsNonRIFF checks Read rejects a non-RIFF input.
func TestReadRejectsNonRIFF(t *testing.T) {
	if _, _, err := Read([]byte("not a wav file")); err != errNotRIFF {
		t.Errorf("err = %v, want %v", err, errNotRIFF)
	}
}

// TestReadToleratesExtraChunks checks Read skips an unrecognised chunk
// inserted between fmt and data.
func TestReadToleratesExtraChunks(t *testing.T) {
	md := Metadata{Channels: 1, SampleRate: 48000, BitDepth: 16}
	data := []byte{9, 9, 9, 9}
	raw, _ := Write(md, data)

	// Splice in a 4-byte "JUNK" chunk right after the fmt chunk (before
	// "data" at offset 36).
	var spliced []byte
	spliced = append(spliced, raw[:36]...)
	spliced = append(spliced, []byte("JUNK")...)
	spliced = append(spliced, 4, 0, 0, 0)
	spliced = append(spliced, []byte{0xAA, 0xBB, 0xCC, 0xDD}...)
	spliced = append(spliced, raw[36:]...)
	binaryPutUint32(spliced[4:8], uint32(len(spliced)-8))

	gotMD, gotData, err := Read(spliced)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if gotMD != md {
		t.Errorf("metadata = %+v, want %+v", gotMD, md)
	}
	if !bytes.Equal(gotData, data) {
		t.Errorf("data = %v, want %v", gotData, data)
	}
}

func binaryPutUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
