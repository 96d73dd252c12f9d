package ring

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Uint64 is an element of ℤ/2⁶⁴ℤ with wrapping arithmetic.
type Uint64 uint64

func (a Uint64) Add(b Uint64) Uint64 { return a + b }

func (a Uint64) Mul(b Uint64) Uint64 { return a * b }

func (a Uint64) IsZero() bool { return a == 0 }

func (a Uint64) Equal(b Uint64) bool { return a == b }

// SampleUint64 is a Sampler for Uint64.
func SampleUint64(rand io.Reader) (Uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return 0, errors.WithMessage(err, "ring: failed to sample uint64")
	}
	return Uint64(binary.BigEndian.Uint64(buf[:])), nil
}
