//go:build linux

package noise

import (
	"encoding/binary"
	"math"

	"golang.org/x/sys/unix"

	"github.com/c360/signaltriage/errors"
)

// readEntropy performs a non-blocking getrandom(2) read. It returns
// ErrEntropyUnavailable when the kernel cannot satisfy the read without
// blocking; callers fall back to PRNG output.
func readEntropy() (float64, error) {
	var buf [4]byte
	n, err := unix.Getrandom(buf[:], unix.GRND_NONBLOCK)
	if err != nil || n != len(buf) {
		return 0, errors.ErrEntropyUnavailable
	}
	return float64(binary.LittleEndian.Uint32(buf[:])) / float64(math.MaxUint32), nil
}
