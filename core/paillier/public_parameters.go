package paillier

import (
	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/mr-shifu/mpc-paillier/core/group"
	"github.com/mr-shifu/mpc-paillier/core/math/arith"
	"github.com/pkg/errors"
)

// PublicParameters describe the plaintext space ℤₙ and the ciphertext space ℤₙ₂ˣ.
type PublicParameters struct {
	n        *saferith.Modulus
	nSquared *arith.Modulus
}

// NewPublicParameters derives the public parameters from N.
//
// N must be odd and at least MinimumModulusBits long. That N is the product
// of two primes of equal size is assumed, not verified.
func NewPublicParameters(n *saferith.Nat) (*PublicParameters, error) {
	if n == nil || n.EqZero() == 1 {
		return nil, ErrInvalidPublicParameters
	}
	if n.Byte(0)&1 == 0 {
		return nil, errors.WithMessage(ErrInvalidPublicParameters, "N is even")
	}
	if n.TrueLen() < MinimumModulusBits {
		return nil, errors.WithMessage(ErrInvalidPublicParameters, "N is too small")
	}

	nMod := saferith.ModulusFromNat(n)
	return &PublicParameters{
		n:        nMod,
		nSquared: squareModulus(nMod),
	}, nil
}

// N returns the modulus N.
func (pp *PublicParameters) N() *saferith.Modulus {
	return pp.n
}

// NSquared returns N².
func (pp *PublicParameters) NSquared() *arith.Modulus {
	return pp.nSquared
}

// NewPlaintext returns x as an element of the plaintext space.
func (pp *PublicParameters) NewPlaintext(x *saferith.Nat) (group.Additive, error) {
	return group.NewAdditive(x, pp.n)
}

// NewCiphertext returns x as an element of the ciphertext space.
func (pp *PublicParameters) NewCiphertext(x *saferith.Nat) (group.Multiplicative, error) {
	return group.NewMultiplicative(x, pp.nSquared)
}

// Equal reports whether both parameters describe the same N.
func (pp *PublicParameters) Equal(other *PublicParameters) bool {
	if pp == nil || other == nil {
		return false
	}
	return pp == other || arith.SameModulus(pp.n, other.n)
}

func (pp *PublicParameters) isPlaintext(x group.Additive) bool {
	return arith.SameModulus(x.Modulus(), pp.n)
}

func (pp *PublicParameters) isCiphertext(c group.Multiplicative) bool {
	return c.Modulus().Equal(pp.nSquared)
}

type publicParametersSerialized struct {
	N []byte `cbor:"1,keyasint"`
}

func (pp *PublicParameters) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(publicParametersSerialized{N: pp.n.Bytes()})
}

func (pp *PublicParameters) UnmarshalBinary(data []byte) error {
	var s publicParametersSerialized
	if err := cbor.Unmarshal(data, &s); err != nil {
		return errors.WithMessage(err, "paillier: failed to decode public parameters")
	}
	restored, err := NewPublicParameters(new(saferith.Nat).SetBytes(s.N))
	if err != nil {
		return err
	}
	*pp = *restored
	return nil
}
