package sqlite

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// Vector payloads are a uint32 little-endian component count followed by
// the float32 components, also little-endian. The count doubles as a
// consistency check on decode.

// encodeVector serialises a vector for storage.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4+len(vec)*4)
	binary.LittleEndian.PutUint32(buf, uint32(len(vec)))
	for i, f := range vec {
		binary.LittleEndian.PutUint32(buf[4+i*4:], math.Float32bits(f))
	}
	return buf
}

// decodeVector deserialises a stored payload. Any structural
// inconsistency is reported as domain.ErrCorruptRecord.
func decodeVector(data []byte) ([]float32, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: payload too short (%d bytes)", domain.ErrCorruptRecord, len(data))
	}
	// Compare in uint64 so a huge header count cannot wrap n*4 past the check.
	n := binary.LittleEndian.Uint32(data)
	if uint64(len(data)-4) != uint64(n)*4 {
		return nil, fmt.Errorf("%w: header says %d components, payload has %d bytes",
			domain.ErrCorruptRecord, n, len(data)-4)
	}

	vec := make([]float32, n)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4+i*4:]))
	}
	return vec, nil
}
