package paillier

import (
	"github.com/cronokirby/saferith"
)

// SecretKeyFromPrimes returns the decryption exponent d = φ⋅(φ⁻¹ mod N) for
// N = p⋅q, where φ = (p-1)(q-1).
//
// d ≡ 0 (mod φ) and d ≡ 1 (mod N). Primality of p and q is not tested.
func SecretKeyFromPrimes(p, q *saferith.Nat) (*saferith.Nat, error) {
	if p == nil || q == nil {
		return nil, ErrInvalidPrimes
	}
	p, q = p.Clone(), q.Clone()
	if p.Eq(q) == 1 {
		return nil, ErrInvalidPrimes
	}
	for _, x := range []*saferith.Nat{p, q} {
		if x.Byte(0)&1 == 0 || x.TrueLen() < 2 {
			return nil, ErrInvalidPrimes
		}
	}

	n := saferith.ModulusFromNat(new(saferith.Nat).Mul(p, q, -1))
	pMinus1 := new(saferith.Nat).Sub(p, new(saferith.Nat).SetUint64(1), p.TrueLen())
	qMinus1 := new(saferith.Nat).Sub(q, new(saferith.Nat).SetUint64(1), q.TrueLen())
	phi := new(saferith.Nat).Mul(pMinus1, qMinus1, -1)
	if phi.IsUnit(n) != 1 {
		return nil, ErrInvalidPrimes
	}

	phiInv := new(saferith.Nat).ModInverse(phi, n)
	return new(saferith.Nat).Mul(phi, phiInv, -1), nil
}
