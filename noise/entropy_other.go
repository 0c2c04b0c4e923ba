//go:build !linux

package noise

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"

	"github.com/c360/signaltriage/errors"
)

// readEntropy reads from the platform CSPRNG. Platforms without getrandom(2)
// have no non-blocking variant; crypto/rand does not block once the pool is
// seeded, so a failed read is reported as entropy shortfall and callers fall
// back to PRNG output.
func readEntropy() (float64, error) {
	var buf [4]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, errors.ErrEntropyUnavailable
	}
	return float64(binary.LittleEndian.Uint32(buf[:])) / float64(math.MaxUint32), nil
}
