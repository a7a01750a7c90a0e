package media

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAVHeader(t *testing.T) {
	samples := []int16{100, -200, 300, -400}
	data, err := EncodeWAV(samples, 16000)
	if err != nil {
		t.Fatal(err)
	}

	if len(data) != wavHeaderSize+len(samples)*2 {
		t.Fatalf("EncodeWAV() produced %d bytes, want %d", len(data), wavHeaderSize+len(samples)*2)
	}

	var header WAVHeader
	if err = binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		t.Fatal(err)
	}
	if string(header.ChunkID[:]) != "RIFF" || string(header.Format[:]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if header.AudioFormat != 1 {
		t.Errorf("AudioFormat = %d, want 1 (PCM)", header.AudioFormat)
	}
	if header.NumChannels != 1 {
		t.Errorf("NumChannels = %d, want 1", header.NumChannels)
	}
	if header.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", header.SampleRate)
	}
	if header.ByteRate != 32000 {
		t.Errorf("ByteRate = %d, want 32000", header.ByteRate)
	}
	if header.BitsPerSample != 16 {
		t.Errorf("BitsPerSample = %d, want 16", header.BitsPerSample)
	}
	if header.Subchunk2Size != uint32(len(samples)*2) {
		t.Errorf("Subchunk2Size = %d, want %d", header.Subchunk2Size, len(samples)*2)
	}
}

func TestDecodeWAVRoundTrip(t *testing.T) {
	samples := []int16{0, 32767, -32768, 1234, -1234}
	data, err := EncodeWAV(samples, 16000)
	if err != nil {
		t.Fatal(err)
	}

	decoded, rate, err := DecodeWAV(data)
	if err != nil {
		t.Fatal(err)
	}
	if rate != 16000 {
		t.Errorf("rate = %d, want 16000", rate)
	}
	if len(decoded) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(decoded), len(samples))
	}
	for i := range samples {
		if decoded[i] != samples[i] {
			t.Errorf("sample %d = %d, want %d", i, decoded[i], samples[i])
		}
	}
}

func TestDecodeWAVRejectsInvalidInput(t *testing.T) {
	valid, err := EncodeWAV([]int16{1, 2, 3}, 16000)
	if err != nil {
		t.Fatal(err)
	}

	stereo := append([]byte{}, valid...)
	stereo[22] = 2 // NumChannels

	float32Format := append([]byte{}, valid...)
	float32Format[20] = 3 // AudioFormat

	badMagic := append([]byte{}, valid...)
	copy(badMagic[:4], "JUNK")

	tests := []struct {
		name string
		data []byte
	}{
		{"too short", valid[:20]},
		{"bad magic", badMagic},
		{"stereo", stereo},
		{"non-PCM format", float32Format},
	}

	for _, tt := range tests {
		if _, _, err := DecodeWAV(tt.data); err == nil {
			t.Errorf("DecodeWAV(%s) expected an error", tt.name)
		}
	}
}

func TestDecodeWAVClampsOversizedDataChunk(t *testing.T) {
	data, err := EncodeWAV([]int16{10, 20, 30}, 16000)
	if err != nil {
		t.Fatal(err)
	}
	// claim more samples than the payload carries
	binary.LittleEndian.PutUint32(data[40:], 1000)

	decoded, _, err := DecodeWAV(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 3 {
		t.Errorf("decoded %d samples, want the 3 actually present", len(decoded))
	}
}
