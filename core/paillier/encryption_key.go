package paillier

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/mpc-paillier/core/group"
	"github.com/mr-shifu/mpc-paillier/core/homomorphic"
	"github.com/mr-shifu/mpc-paillier/core/math/arith"
	"github.com/mr-shifu/mpc-paillier/core/math/sample"
	"github.com/pkg/errors"
)

var _ homomorphic.EncryptionKey[group.Additive, group.Multiplicative, *saferith.Nat, *PublicParameters] = (*EncryptionKey)(nil)

// EncryptionKey is a Paillier public key.
type EncryptionKey struct {
	pp *PublicParameters
}

// NewEncryptionKey binds an encryption key to the public parameters.
func NewEncryptionKey(pp *PublicParameters) (*EncryptionKey, error) {
	if pp == nil || pp.n == nil || pp.nSquared == nil {
		return nil, ErrInvalidPublicParameters
	}
	return &EncryptionKey{pp: pp}, nil
}

// PublicParameters returns the parameters the key was created with.
func (ek *EncryptionKey) PublicParameters() *PublicParameters {
	return ek.pp
}

// Encrypt samples r ∈ ℤₙˣ and returns r together with the encryption of plaintext.
func (ek *EncryptionKey) Encrypt(plaintext group.Additive, pp *PublicParameters, rand io.Reader) (*saferith.Nat, group.Multiplicative, error) {
	if err := ek.check(pp); err != nil {
		return nil, group.Multiplicative{}, err
	}
	r, err := sample.UnitModN(rand, pp.n)
	if err != nil {
		return nil, group.Multiplicative{}, errors.WithMessage(err, "paillier: failed to sample randomness")
	}
	c, err := ek.EncryptWithRandomness(plaintext, r, pp)
	if err != nil {
		return nil, group.Multiplicative{}, err
	}
	return r, c, nil
}

// EncryptWithRandomness returns (1 + m⋅N)⋅rᴺ (mod N²). r must be a unit of ℤₙ.
func (ek *EncryptionKey) EncryptWithRandomness(plaintext group.Additive, randomness *saferith.Nat, pp *PublicParameters) (group.Multiplicative, error) {
	if err := ek.check(pp); err != nil {
		return group.Multiplicative{}, err
	}
	if !pp.isPlaintext(plaintext) {
		return group.Multiplicative{}, group.ErrMismatchedModulus
	}
	if randomness == nil {
		return group.Multiplicative{}, ErrInvalidRandomness
	}
	if !arith.LessThan(randomness, pp.n) {
		return group.Multiplicative{}, ErrInvalidRandomness
	}
	c := encrypt(pp.n, pp.nSquared, plaintext.Value(), randomness)
	return pp.NewCiphertext(c)
}

// Add returns a⋅b (mod N²), an encryption of the sum of the plaintexts.
func (ek *EncryptionKey) Add(a, b group.Multiplicative, pp *PublicParameters) (group.Multiplicative, error) {
	if err := ek.check(pp, a, b); err != nil {
		return group.Multiplicative{}, err
	}
	return a.Add(b), nil
}

// ScalarMul returns cᵏ (mod N²), an encryption of k times the plaintext.
func (ek *EncryptionKey) ScalarMul(c group.Multiplicative, k *saferith.Nat, pp *PublicParameters) (group.Multiplicative, error) {
	if err := ek.check(pp, c); err != nil {
		return group.Multiplicative{}, err
	}
	return c.ScalarMul(k), nil
}

// Randomize multiplies c by rᴺ for a fresh r, returning r and the new ciphertext.
// The plaintext is unchanged.
func (ek *EncryptionKey) Randomize(c group.Multiplicative, pp *PublicParameters, rand io.Reader) (*saferith.Nat, group.Multiplicative, error) {
	if err := ek.check(pp, c); err != nil {
		return nil, group.Multiplicative{}, err
	}
	r, err := sample.UnitModN(rand, pp.n)
	if err != nil {
		return nil, group.Multiplicative{}, errors.WithMessage(err, "paillier: failed to sample randomness")
	}
	rN, err := pp.NewCiphertext(pp.nSquared.Exp(r, pp.n.Nat()))
	if err != nil {
		return nil, group.Multiplicative{}, err
	}
	return r, c.Add(rN), nil
}

// EvaluateLinearCombination returns a fresh encryption of Σ aᵢ⋅mᵢ given
// encryptions cᵢ of mᵢ.
func (ek *EncryptionKey) EvaluateLinearCombination(coefficients []*saferith.Nat, ciphertexts []group.Multiplicative, pp *PublicParameters, rand io.Reader) (*saferith.Nat, group.Multiplicative, error) {
	if len(coefficients) == 0 || len(coefficients) != len(ciphertexts) {
		return nil, group.Multiplicative{}, ErrInvalidLinearCombination
	}
	if err := ek.check(pp, ciphertexts...); err != nil {
		return nil, group.Multiplicative{}, err
	}

	acc := ciphertexts[0].ScalarMul(coefficients[0])
	for i := 1; i < len(ciphertexts); i++ {
		acc = acc.Add(ciphertexts[i].ScalarMul(coefficients[i]))
	}
	return ek.Randomize(acc, pp, rand)
}

func (ek *EncryptionKey) check(pp *PublicParameters, ciphertexts ...group.Multiplicative) error {
	if !ek.pp.Equal(pp) {
		return ErrMismatchedParameters
	}
	for _, c := range ciphertexts {
		if !pp.isCiphertext(c) {
			return group.ErrMismatchedModulus
		}
	}
	return nil
}
