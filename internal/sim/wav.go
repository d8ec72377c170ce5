package sim

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// WAVE format tag for IEEE 754 float samples.
const waveFormatFloat = 3

// WriteWAV writes resp as a 32-bit float WAVE stream, one WAVE channel
// per response channel. Samples are narrowed to float32.
func WriteWAV(w io.Writer, resp *Response) error {
	if err := resp.Validate(); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	rate := math.Round(resp.SampleRate)
	if rate > math.MaxUint32 {
		return fmt.Errorf("write wav: sample rate %v out of range", resp.SampleRate)
	}

	const bytesPerSample = 4
	blockAlign := resp.Channels * bytesPerSample
	dataSize := len(resp.Samples) * bytesPerSample
	if uint64(dataSize)+36 > math.MaxUint32 {
		return fmt.Errorf("write wav: %d samples exceed the WAVE size limit", len(resp.Samples))
	}

	bw := bufio.NewWriter(w)
	header := []any{
		[4]byte{'R', 'I', 'F', 'F'},
		uint32(36 + dataSize),
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),
		uint16(waveFormatFloat),
		uint16(resp.Channels),
		uint32(rate),
		uint32(uint64(rate) * uint64(blockAlign)),
		uint16(blockAlign),
		uint16(bytesPerSample * 8),
		[4]byte{'d', 'a', 't', 'a'},
		uint32(dataSize),
	}
	for _, field := range header {
		if err := binary.Write(bw, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("write wav: header: %w", err)
		}
	}

	var buf [bytesPerSample]byte
	for _, s := range resp.Samples {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(s)))
		if _, err := bw.Write(buf[:]); err != nil {
			return fmt.Errorf("write wav: samples: %w", err)
		}
	}
	return bw.Flush()
}

// SaveWAV writes resp to a WAVE file at path.
func SaveWAV(path string, resp *Response) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save wav: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("save wav: %w", cerr)
		}
	}()
	return WriteWAV(f, resp)
}
