package arith

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModulus_ExpMatchesPlain(t *testing.T) {
	// m = 3²⋅5²
	a := new(saferith.Nat).SetUint64(9)
	b := new(saferith.Nat).SetUint64(25)
	crt := ModulusFromFactors(a, b)
	plain := ModulusFromN(saferith.ModulusFromUint64(225))

	assert.True(t, crt.HasFactorization())
	assert.False(t, plain.HasFactorization())
	assert.True(t, crt.Equal(plain))

	for x := uint64(1); x < 225; x += 7 {
		for _, e := range []uint64{0, 1, 2, 13, 60, 1 << 20} {
			xNat := new(saferith.Nat).SetUint64(x)
			eNat := new(saferith.Nat).SetUint64(e)
			want := plain.Exp(xNat, eNat)
			got := crt.Exp(xNat, eNat)
			assert.Equal(t, saferith.Choice(1), want.Eq(got), "x=%d e=%d", x, e)
		}
	}
}

func TestModulus_Serialization(t *testing.T) {
	a := new(saferith.Nat).SetUint64(49)
	b := new(saferith.Nat).SetUint64(121)
	m := ModulusFromFactors(a, b)

	data, err := m.MarshalBinary()
	require.NoError(t, err)

	restored := new(Modulus)
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.True(t, restored.HasFactorization())
	assert.True(t, restored.Equal(m))

	plain := ModulusFromN(saferith.ModulusFromUint64(101))
	data, err = plain.MarshalBinary()
	require.NoError(t, err)

	restored = new(Modulus)
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.False(t, restored.HasFactorization())
	assert.True(t, restored.Equal(plain))

	assert.Error(t, new(Modulus).UnmarshalBinary([]byte{0xff}))
}

func TestSameModulus(t *testing.T) {
	a := saferith.ModulusFromUint64(35)
	b := saferith.ModulusFromUint64(35)
	c := saferith.ModulusFromUint64(77)

	assert.True(t, SameModulus(a, a))
	assert.True(t, SameModulus(a, b))
	assert.False(t, SameModulus(a, c))
	assert.False(t, SameModulus(a, nil))

	assert.True(t, ModulusFromN(a).Equal(ModulusFromN(b)))
	assert.False(t, ModulusFromN(a).Equal(ModulusFromN(c)))
	assert.False(t, (&Modulus{}).Equal(&Modulus{}))
}

func TestLessThan(t *testing.T) {
	m := saferith.ModulusFromUint64(35)
	x := new(saferith.Nat).SetUint64(34)

	assert.True(t, LessThan(x, m))
	assert.False(t, LessThan(new(saferith.Nat).SetUint64(35), m))
	assert.False(t, LessThan(nil, m))
	// operands are left as they were
	assert.Equal(t, uint64(34), x.Uint64())
	assert.Equal(t, 6, m.BitLen())
}
