package group

import (
	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/mpc-paillier/core/math/arith"
)

// Additive is an element of (ℤₘ, +).
type Additive struct {
	value   *saferith.Nat
	modulus *saferith.Modulus
}

// NewAdditive returns x as an element of ℤₘ. It fails if x ∉ [0, m).
func NewAdditive(x *saferith.Nat, m *saferith.Modulus) (Additive, error) {
	if x == nil || m == nil {
		return Additive{}, ErrNotInGroup
	}
	if !arith.LessThan(x, m) {
		return Additive{}, ErrNotInGroup
	}
	return Additive{value: new(saferith.Nat).Mod(x, m), modulus: m}, nil
}

// Value returns a copy of the underlying natural number.
func (a Additive) Value() *saferith.Nat {
	return a.value.Clone()
}

// Modulus returns the group order m.
func (a Additive) Modulus() *saferith.Modulus {
	return a.modulus
}

// Add returns a + b (mod m).
func (a Additive) Add(b Additive) Additive {
	return Additive{value: new(saferith.Nat).ModAdd(a.value, b.value, a.modulus), modulus: a.modulus}
}

// Neg returns -a (mod m).
func (a Additive) Neg() Additive {
	return Additive{value: new(saferith.Nat).ModNeg(a.value, a.modulus), modulus: a.modulus}
}

// ScalarMul returns k⋅a (mod m).
func (a Additive) ScalarMul(k *saferith.Nat) Additive {
	return Additive{value: new(saferith.Nat).ModMul(a.value, k, a.modulus), modulus: a.modulus}
}

// Equal reports whether a and b are the same element of the same group.
func (a Additive) Equal(b Additive) bool {
	if !arith.SameModulus(a.modulus, b.modulus) {
		return false
	}
	return eqNat(a.value, b.value)
}
