package sim

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWAV(t *testing.T) {
	resp := &Response{
		Samples:     []float64{0.5, -0.5, 1, 0},
		Channels:    2,
		SampleRate:  44100,
		SampleCount: 2,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWAV(&buf, resp))
	data := buf.Bytes()

	require.Len(t, data, 44+16)
	le := binary.LittleEndian
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, uint32(36+16), le.Uint32(data[4:8]))
	assert.Equal(t, "WAVE", string(data[8:12]))
	assert.Equal(t, "fmt ", string(data[12:16]))
	assert.Equal(t, uint16(3), le.Uint16(data[20:22]))
	assert.Equal(t, uint16(2), le.Uint16(data[22:24]))
	assert.Equal(t, uint32(44100), le.Uint32(data[24:28]))
	assert.Equal(t, uint32(44100*8), le.Uint32(data[28:32]))
	assert.Equal(t, uint16(8), le.Uint16(data[32:34]))
	assert.Equal(t, uint16(32), le.Uint16(data[34:36]))
	assert.Equal(t, "data", string(data[36:40]))
	assert.Equal(t, uint32(16), le.Uint32(data[40:44]))

	var got []float32
	for off := 44; off < len(data); off += 4 {
		got = append(got, math.Float32frombits(le.Uint32(data[off:])))
	}
	assert.Equal(t, []float32{0.5, -0.5, 1, 0}, got)
}

func TestWriteWAVRejectsMalformedResponse(t *testing.T) {
	var buf bytes.Buffer
	err := WriteWAV(&buf, &Response{Samples: []float64{1}, Channels: 2, SampleRate: 8000, SampleCount: 1})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestSaveWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room - receiver_1.wav")
	resp := &Response{Samples: []float64{1, 0, 0}, Channels: 1, SampleRate: 8000, SampleCount: 3}

	require.NoError(t, SaveWAV(path, resp))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, 44+12)
}

func TestSaveWAVBadPath(t *testing.T) {
	resp := &Response{Channels: 1, SampleRate: 8000}
	err := SaveWAV(filepath.Join(t.TempDir(), "missing", "out.wav"), resp)
	assert.Error(t, err)
}
