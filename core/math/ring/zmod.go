package ring

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/mpc-paillier/core/math/arith"
	"github.com/mr-shifu/mpc-paillier/core/math/sample"
	"github.com/pkg/errors"
)

var ErrNotInvertible = errors.New("ring: element is not invertible")

// ZMod is an element of ℤₘ for an arbitrary modulus m.
//
// Binary operations require both operands to share the modulus; mixing moduli
// is a programming error and panics.
type ZMod struct {
	value   *saferith.Nat
	modulus *saferith.Modulus
}

// NewZMod returns x (mod m).
func NewZMod(x *saferith.Nat, m *saferith.Modulus) ZMod {
	return ZMod{
		value:   new(saferith.Nat).Mod(x, m),
		modulus: m,
	}
}

// NewZModUint64 returns x (mod m).
func NewZModUint64(x uint64, m *saferith.Modulus) ZMod {
	return NewZMod(new(saferith.Nat).SetUint64(x), m)
}

// ZModSampler returns a Sampler of uniform elements of ℤₘ.
func ZModSampler(m *saferith.Modulus) Sampler[ZMod] {
	return func(rand io.Reader) (ZMod, error) {
		x, err := sample.ModN(rand, m)
		if err != nil {
			return ZMod{}, errors.WithMessage(err, "ring: failed to sample element")
		}
		return ZMod{value: x, modulus: m}, nil
	}
}

// Value returns a copy of the canonical representative in [0, m).
func (a ZMod) Value() *saferith.Nat {
	return a.value.Clone()
}

// Modulus returns m.
func (a ZMod) Modulus() *saferith.Modulus {
	return a.modulus
}

func (a ZMod) Add(b ZMod) ZMod {
	a.mustMatch(b)
	return ZMod{value: new(saferith.Nat).ModAdd(a.value, b.value, a.modulus), modulus: a.modulus}
}

func (a ZMod) Sub(b ZMod) ZMod {
	a.mustMatch(b)
	return ZMod{value: new(saferith.Nat).ModSub(a.value, b.value, a.modulus), modulus: a.modulus}
}

func (a ZMod) Mul(b ZMod) ZMod {
	a.mustMatch(b)
	return ZMod{value: new(saferith.Nat).ModMul(a.value, b.value, a.modulus), modulus: a.modulus}
}

func (a ZMod) Neg() ZMod {
	return ZMod{value: new(saferith.Nat).ModNeg(a.value, a.modulus), modulus: a.modulus}
}

// Inverse returns a⁻¹ (mod m). The modulus must be odd, and for a field, prime.
func (a ZMod) Inverse() (ZMod, error) {
	if a.value.IsUnit(a.modulus) != 1 {
		return ZMod{}, ErrNotInvertible
	}
	return ZMod{value: new(saferith.Nat).ModInverse(a.value, a.modulus), modulus: a.modulus}, nil
}

func (a ZMod) IsZero() bool {
	return a.value.EqZero() == 1
}

// Equal reports whether both elements have the same modulus and value.
func (a ZMod) Equal(b ZMod) bool {
	if !a.SameModulus(b) {
		return false
	}
	return a.value.Clone().Eq(b.value.Clone()) == 1
}

// SameModulus reports whether a and b live in the same ring.
func (a ZMod) SameModulus(b ZMod) bool {
	return arith.SameModulus(a.modulus, b.modulus)
}

func (a ZMod) String() string {
	return a.value.String()
}

func (a ZMod) mustMatch(b ZMod) {
	if !a.SameModulus(b) {
		panic("ring: mismatched moduli")
	}
}
