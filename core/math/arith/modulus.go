package arith

import (
	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

var ErrInvalidModulus = errors.New("arith: invalid modulus")

// Modulus wraps a saferith.Modulus and enables faster modular exponentiation when
// the factorization is known.
// When m = a⋅b with gcd(a, b) = 1, xᵉ (mod m) can be computed with only two
// exponentiations with a and b respectively.
//
// For a Paillier ciphertext space m = N² = p²⋅q², so the factors are p² and q².
type Modulus struct {
	// represents modulus m
	*saferith.Modulus
	// m = a⋅b
	a, b *saferith.Modulus
	// aInv = a⁻¹ (mod b)
	aNat, aInv *saferith.Nat
}

// ModulusFromN creates a simple wrapper around a given modulus n.
// The modulus is not copied.
func ModulusFromN(n *saferith.Modulus) *Modulus {
	return &Modulus{
		Modulus: n,
	}
}

// ModulusFromFactors creates the necessary cached values to accelerate
// exponentiation mod a⋅b. The factors must be coprime and b must be odd.
func ModulusFromFactors(a, b *saferith.Nat) *Modulus {
	mNat := new(saferith.Nat).Mul(a, b, -1)
	mMod := saferith.ModulusFromNat(mNat)
	aMod := saferith.ModulusFromNat(a)
	bMod := saferith.ModulusFromNat(b)
	aInvB := new(saferith.Nat).ModInverse(a, bMod)
	aNat := new(saferith.Nat).SetNat(a)
	return &Modulus{
		Modulus: mMod,
		a:       aMod,
		b:       bMod,
		aNat:    aNat,
		aInv:    aInvB,
	}
}

// Exp is equivalent to (saferith.Nat).Exp(x, e, m.Modulus).
// It returns xᵉ (mod m).
func (m *Modulus) Exp(x, e *saferith.Nat) *saferith.Nat {
	if m.HasFactorization() {
		var xa, xb saferith.Nat
		xa.Exp(x, e, m.a) // x₁ = xᵉ (mod a)
		xb.Exp(x, e, m.b) // x₂ = xᵉ (mod b)
		// r = x₁ + a ⋅ [a⁻¹ (mod b)] ⋅ [x₂ - x₁] (mod m)
		r := xb.ModSub(&xb, &xa, m.Modulus)
		r.ModMul(r, m.aInv, m.Modulus)
		r.ModMul(r, m.aNat, m.Modulus)
		r.ModAdd(r, &xa, m.Modulus)
		return r
	}
	return new(saferith.Nat).Exp(x, e, m.Modulus)
}

// HasFactorization reports whether Exp takes the CRT path.
func (m *Modulus) HasFactorization() bool {
	return m.a != nil && m.b != nil && m.aNat != nil && m.aInv != nil
}

// Equal compares the moduli only; cached factors are ignored.
func (m *Modulus) Equal(other *Modulus) bool {
	if m == nil || other == nil {
		return false
	}
	if m == other {
		return m.Modulus != nil
	}
	return SameModulus(m.Modulus, other.Modulus)
}

// SameModulus reports whether a and b hold the same value.
//
// saferith's Cmp masks the limbs of both operands in place, so the comparison
// runs on copies and a and b can be shared between goroutines.
func SameModulus(a, b *saferith.Modulus) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	return a.Nat().Eq(b.Nat()) == 1
}

// LessThan reports whether x < m without writing to x or m.
func LessThan(x *saferith.Nat, m *saferith.Modulus) bool {
	if x == nil || m == nil {
		return false
	}
	_, _, lt := x.Clone().Cmp(m.Nat())
	return lt == 1
}

type modulusSerialized struct {
	Modulus []byte `cbor:"1,keyasint"`
	A       []byte `cbor:"2,keyasint,omitempty"`
	B       []byte `cbor:"3,keyasint,omitempty"`
}

// MarshalBinary encodes the modulus and, when present, its factorization.
func (m *Modulus) MarshalBinary() ([]byte, error) {
	if m.Modulus == nil {
		return nil, ErrInvalidModulus
	}
	ms := modulusSerialized{Modulus: m.Modulus.Bytes()}
	if m.HasFactorization() {
		ms.A = m.a.Bytes()
		ms.B = m.b.Bytes()
	}
	return cbor.Marshal(ms)
}

// UnmarshalBinary restores a modulus encoded with MarshalBinary. The cached CRT
// values are recomputed from the factors.
func (m *Modulus) UnmarshalBinary(data []byte) error {
	var ms modulusSerialized
	if err := cbor.Unmarshal(data, &ms); err != nil {
		return errors.WithMessage(err, "arith: failed to decode modulus")
	}
	if len(ms.Modulus) == 0 {
		return ErrInvalidModulus
	}

	if len(ms.A) == 0 || len(ms.B) == 0 {
		*m = Modulus{Modulus: saferith.ModulusFromBytes(ms.Modulus)}
		return nil
	}

	a := new(saferith.Nat).SetBytes(ms.A)
	b := new(saferith.Nat).SetBytes(ms.B)
	restored := ModulusFromFactors(a, b)
	if _, eq, _ := restored.Modulus.Cmp(saferith.ModulusFromBytes(ms.Modulus)); eq != 1 {
		return errors.WithMessage(ErrInvalidModulus, "arith: factors do not match modulus")
	}
	*m = *restored
	return nil
}
