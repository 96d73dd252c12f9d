package sample

import (
	cryptorand "crypto/rand"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/mpc-paillier/core/math/arith"
	"github.com/pkg/errors"
)

// maxIterations bounds rejection sampling. Each attempt succeeds with
// probability at least 1/2, so exhausting it means the reader is broken.
const maxIterations = 255

var ErrMaxIterations = errors.New("sample: failed to generate after 255 iterations")

func reader(rand io.Reader) io.Reader {
	if rand == nil {
		return cryptorand.Reader
	}
	return rand
}

// Bits returns a uniformly random natural number of at most `bits` bits.
func Bits(rand io.Reader, bits int) (*saferith.Nat, error) {
	if bits <= 0 {
		return new(saferith.Nat), nil
	}
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(reader(rand), buf); err != nil {
		return nil, errors.WithMessage(err, "sample: failed to read random bytes")
	}
	// clear the excess high bits of the big-endian buffer
	if excess := len(buf)*8 - bits; excess > 0 {
		buf[0] &= 0xff >> excess
	}
	return new(saferith.Nat).SetBytes(buf).Resize(bits), nil
}

// ModN samples an element of ℤₙ uniformly by rejection.
func ModN(rand io.Reader, n *saferith.Modulus) (*saferith.Nat, error) {
	bits := n.BitLen()
	for i := 0; i < maxIterations; i++ {
		out, err := Bits(rand, bits)
		if err != nil {
			return nil, err
		}
		if arith.LessThan(out, n) {
			return out, nil
		}
	}
	return nil, ErrMaxIterations
}

// UnitModN samples an element of ℤₙˣ uniformly.
func UnitModN(rand io.Reader, n *saferith.Modulus) (*saferith.Nat, error) {
	for i := 0; i < maxIterations; i++ {
		out, err := ModN(rand, n)
		if err != nil {
			return nil, err
		}
		if out.IsUnit(n) == 1 {
			return out, nil
		}
	}
	return nil, ErrMaxIterations
}
