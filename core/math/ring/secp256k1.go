package ring

import (
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

// Secp256k1Scalar is an element of the scalar field of secp256k1.
type Secp256k1Scalar struct {
	s secp256k1.ModNScalar
}

func NewSecp256k1Scalar(x uint32) Secp256k1Scalar {
	var a Secp256k1Scalar
	a.s.SetInt(x)
	return a
}

// SampleSecp256k1Scalar is a Sampler for Secp256k1Scalar.
func SampleSecp256k1Scalar(rand io.Reader) (Secp256k1Scalar, error) {
	var buf [32]byte
	for i := 0; i < 255; i++ {
		if _, err := io.ReadFull(rand, buf[:]); err != nil {
			return Secp256k1Scalar{}, errors.WithMessage(err, "ring: failed to sample secp256k1 scalar")
		}
		var a Secp256k1Scalar
		if overflow := a.s.SetByteSlice(buf[:]); !overflow {
			return a, nil
		}
	}
	return Secp256k1Scalar{}, errors.New("ring: failed to sample secp256k1 scalar after 255 iterations")
}

func (a Secp256k1Scalar) Add(b Secp256k1Scalar) Secp256k1Scalar {
	var r Secp256k1Scalar
	r.s.Add2(&a.s, &b.s)
	return r
}

func (a Secp256k1Scalar) Mul(b Secp256k1Scalar) Secp256k1Scalar {
	var r Secp256k1Scalar
	r.s.Mul2(&a.s, &b.s)
	return r
}

func (a Secp256k1Scalar) IsZero() bool {
	return a.s.IsZero()
}

func (a Secp256k1Scalar) Equal(b Secp256k1Scalar) bool {
	return a.s.Equals(&b.s)
}

// Bytes returns the 32-byte big-endian encoding.
func (a Secp256k1Scalar) Bytes() [32]byte {
	return a.s.Bytes()
}
