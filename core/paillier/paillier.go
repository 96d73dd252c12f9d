// Package paillier implements the Paillier cryptosystem over a bi-prime
// modulus N, with plaintexts in ℤₙ and ciphertexts in ℤₙ₂ˣ.
//
// Encryption of m with randomness r is
//
//	c = (1 + m⋅N)⋅rᴺ (mod N²)
//
// and decryption with an exponent d such that d ≡ 0 (mod λ(N)) and d ≡ 1 (mod N) is
//
//	m = [(cᵈ (mod N²)) - 1] / N (mod N)
//
// Key generation (sampling p and q) is left to the caller.
package paillier

import (
	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/mpc-paillier/core/math/arith"
	"github.com/pkg/errors"
)

const (
	// BitsPaillier is the reference size of N.
	BitsPaillier = 2048
	// MinimumModulusBits is the smallest N accepted by NewPublicParameters.
	MinimumModulusBits = 1024
)

var (
	ErrInvalidPublicParameters  = errors.New("paillier: invalid public parameters")
	ErrMismatchedParameters     = errors.New("paillier: public parameters do not match the key")
	ErrInvalidDecryptionKey     = errors.New("paillier: invalid decryption key")
	ErrInvalidRandomness        = errors.New("paillier: randomness must be in [0, N)")
	ErrInvalidPrimes            = errors.New("paillier: invalid prime factors")
	ErrInvalidLinearCombination = errors.New("paillier: linear combination needs one coefficient per ciphertext")
)

// Encrypt returns c = (1 + plaintext⋅N)⋅randomnessᴺ (mod N²).
//
// plaintext and randomness must lie in [0, N); they are not checked.
func Encrypt(n *saferith.Modulus, plaintext, randomness *saferith.Nat) *saferith.Nat {
	return encrypt(n, squareModulus(n), plaintext, randomness)
}

// Decrypt returns [(ciphertextᵈ (mod N²)) - 1] / N (mod N).
//
// A zero exponent returns ErrInvalidDecryptionKey. Any other exponent yields a
// value in [0, N), which is the plaintext only when d is a valid key for N.
func Decrypt(n *saferith.Modulus, d, ciphertext *saferith.Nat) (*saferith.Nat, error) {
	if d == nil || d.EqZero() == 1 {
		return nil, ErrInvalidDecryptionKey
	}
	nSquared := squareModulus(n)
	return decode(n, nSquared.Modulus, nSquared.Exp(ciphertext, d)), nil
}

func encrypt(n *saferith.Modulus, nSquared *arith.Modulus, m, r *saferith.Nat) *saferith.Nat {
	nNat := n.Nat()
	// c = m⋅N + 1 (mod N²)
	c := new(saferith.Nat).ModMul(m, nNat, nSquared.Modulus)
	c.ModAdd(c, new(saferith.Nat).SetUint64(1), nSquared.Modulus)
	// c = (m⋅N + 1)⋅rᴺ (mod N²)
	rN := nSquared.Exp(r, nNat)
	return c.ModMul(c, rN, nSquared.Modulus)
}

// decode maps x = cᵈ (mod N²) to the plaintext.
func decode(n, nSquared *saferith.Modulus, x *saferith.Nat) *saferith.Nat {
	// x - 1 = (1 + N)^{m⋅d} - 1 = m⋅d⋅N (mod N²)
	x = new(saferith.Nat).ModSub(x, new(saferith.Nat).SetUint64(1), nSquared)
	// (x - 1) / N < N, so only the low |N| bits of the quotient are kept
	q := new(saferith.Nat).Div(x, n, n.BitLen())
	// m⋅d ≡ m (mod N)
	return q.Mod(q, n)
}

func squareModulus(n *saferith.Modulus) *arith.Modulus {
	nNat := n.Nat()
	return arith.ModulusFromN(saferith.ModulusFromNat(new(saferith.Nat).Mul(nNat, nNat, -1)))
}
