package group

import (
	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/mpc-paillier/core/math/arith"
)

// Multiplicative is an element of (ℤₘˣ, ⋅). The group operation is written
// additively to match Additive: Add multiplies and ScalarMul exponentiates.
type Multiplicative struct {
	value   *saferith.Nat
	modulus *arith.Modulus
}

// NewMultiplicative returns x as an element of ℤₘˣ. It fails if x ∉ [0, m)
// or gcd(x, m) ≠ 1.
func NewMultiplicative(x *saferith.Nat, m *arith.Modulus) (Multiplicative, error) {
	if x == nil || m == nil || m.Modulus == nil {
		return Multiplicative{}, ErrNotInGroup
	}
	if !arith.LessThan(x, m.Modulus) {
		return Multiplicative{}, ErrNotInGroup
	}
	if x.IsUnit(m.Modulus) != 1 {
		return Multiplicative{}, ErrNotInGroup
	}
	return Multiplicative{value: new(saferith.Nat).Mod(x, m.Modulus), modulus: m}, nil
}

// Value returns a copy of the underlying natural number.
func (a Multiplicative) Value() *saferith.Nat {
	return a.value.Clone()
}

// Modulus returns m.
func (a Multiplicative) Modulus() *arith.Modulus {
	return a.modulus
}

// Add returns a⋅b (mod m).
func (a Multiplicative) Add(b Multiplicative) Multiplicative {
	return Multiplicative{value: new(saferith.Nat).ModMul(a.value, b.value, a.modulus.Modulus), modulus: a.modulus}
}

// Neg returns a⁻¹ (mod m).
func (a Multiplicative) Neg() Multiplicative {
	return Multiplicative{value: new(saferith.Nat).ModInverse(a.value, a.modulus.Modulus), modulus: a.modulus}
}

// ScalarMul returns aᵏ (mod m).
func (a Multiplicative) ScalarMul(k *saferith.Nat) Multiplicative {
	return Multiplicative{value: a.modulus.Exp(a.value, k), modulus: a.modulus}
}

// Equal reports whether a and b are the same element of the same group.
func (a Multiplicative) Equal(b Multiplicative) bool {
	if !a.modulus.Equal(b.modulus) {
		return false
	}
	return eqNat(a.value, b.value)
}
