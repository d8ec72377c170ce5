package store

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/roach88/roomsim/internal/ir"
)

// marshalConfig converts a configuration to ordered JSON TEXT for storage.
// Byte leaves are stored as text.
func marshalConfig(cfg *ir.Nested) (string, error) {
	data, err := ir.MarshalValue(ir.DecodeText(cfg))
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(data), nil
}

// unmarshalConfig parses stored JSON TEXT, keeping field order.
func unmarshalConfig(data string) (*ir.Nested, error) {
	var cfg ir.Nested
	if err := cfg.UnmarshalJSON([]byte(data)); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// encodeSamples packs samples as little-endian float64.
func encodeSamples(samples []float64) []byte {
	buf := make([]byte, 8*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(s))
	}
	return buf
}

func decodeSamples(data []byte) ([]float64, error) {
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("decode samples: %d bytes is not a whole number of float64s", len(data))
	}
	out := make([]float64, len(data)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
	}
	return out, nil
}
