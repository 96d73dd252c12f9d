package polynomial

import (
	"crypto/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/mpc-paillier/core/math/ring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolynomial_Evaluate(t *testing.T) {
	// f(X) = 1 + 2⋅X + 3⋅X²
	f := FromCoefficients([]ring.Uint64{1, 2, 3})

	y, err := f.Evaluate(0)
	require.NoError(t, err)
	assert.Equal(t, ring.Uint64(1), y)

	y, err = f.Evaluate(5)
	require.NoError(t, err)
	assert.Equal(t, ring.Uint64(86), y)

	m := saferith.ModulusFromUint64(83)
	g := FromCoefficients([]ring.ZMod{
		ring.NewZModUint64(1, m),
		ring.NewZModUint64(2, m),
		ring.NewZModUint64(3, m),
	})
	z, err := g.Evaluate(ring.NewZModUint64(5, m))
	require.NoError(t, err)
	assert.True(t, z.Equal(ring.NewZModUint64(86%83, m)))
}

func TestPolynomial_EmptyRejected(t *testing.T) {
	_, err := FromCoefficients([]ring.Uint64{}).Evaluate(3)
	assert.ErrorIs(t, err, ErrEmptyPolynomial)

	_, err = FromCoefficients[ring.Uint64](nil).Evaluate(0)
	assert.ErrorIs(t, err, ErrEmptyPolynomial)

	m := saferith.ModulusFromUint64(83)
	_, err = FromCoefficients([]ring.ZMod{}).Evaluate(ring.NewZModUint64(1, m))
	assert.ErrorIs(t, err, ErrEmptyPolynomial)

	_, err = FromCoefficients([]ring.Secp256k1Scalar{}).Evaluate(ring.NewSecp256k1Scalar(7))
	assert.ErrorIs(t, err, ErrEmptyPolynomial)

	_, err = FromCoefficients([]ring.Uint64{}).FreeTerm()
	assert.ErrorIs(t, err, ErrEmptyPolynomial)

	// the zero polynomial is not empty
	y, err := FromCoefficients([]ring.Uint64{0}).Evaluate(9)
	require.NoError(t, err)
	assert.True(t, y.IsZero())
}

func TestPolynomial_DegreeLaxity(t *testing.T) {
	padded := FromCoefficients([]ring.Uint64{5, 0, 0})
	constant := FromCoefficients([]ring.Uint64{5})

	assert.Len(t, padded.Coefficients(), 3)
	assert.Len(t, constant.Coefficients(), 1)
	assert.Equal(t, 0, padded.Degree())
	assert.Equal(t, 0, constant.Degree())

	for _, x := range []ring.Uint64{0, 1, 2, 17, 1 << 40} {
		a, err := padded.Evaluate(x)
		require.NoError(t, err)
		b, err := constant.Evaluate(x)
		require.NoError(t, err)
		assert.Equal(t, b, a)
	}

	assert.Equal(t, 1, FromCoefficients([]ring.Uint64{0, 4, 0}).Degree())
	assert.Equal(t, 0, FromCoefficients([]ring.Uint64{0, 0}).Degree())
}

func TestPolynomial_Immutable(t *testing.T) {
	coefficients := []ring.Uint64{1, 2, 3}
	f := FromCoefficients(coefficients)
	coefficients[0] = 100

	c := f.Coefficients()
	c[1] = 100

	y, err := f.Evaluate(5)
	require.NoError(t, err)
	assert.Equal(t, ring.Uint64(86), y)
}

func TestPolynomial_Sample(t *testing.T) {
	for degree := uint16(0); degree < 10; degree++ {
		f, err := Sample(degree, ring.SampleUint64, rand.Reader)
		require.NoError(t, err)
		assert.Len(t, f.Coefficients(), int(degree)+1)
	}

	m := saferith.ModulusFromUint64(7919)
	f, err := Sample(4, ring.ZModSampler(m), rand.Reader)
	require.NoError(t, err)
	for _, c := range f.Coefficients() {
		assert.True(t, c.SameModulus(ring.NewZModUint64(0, m)))
	}
}

func TestPolynomial_SampleWithFreeTerm(t *testing.T) {
	for degree := uint16(0); degree < 10; degree++ {
		f, err := SampleWithFreeTerm(degree, ring.Uint64(42), ring.SampleUint64, rand.Reader)
		require.NoError(t, err)
		assert.Len(t, f.Coefficients(), int(degree)+1)

		free, err := f.FreeTerm()
		require.NoError(t, err)
		assert.Equal(t, ring.Uint64(42), free)

		y, err := f.Evaluate(0)
		require.NoError(t, err)
		assert.Equal(t, ring.Uint64(42), y)
	}

	secret := ring.NewSecp256k1Scalar(1234)
	g, err := SampleWithFreeTerm(3, secret, ring.SampleSecp256k1Scalar, rand.Reader)
	require.NoError(t, err)
	y, err := g.Evaluate(ring.NewSecp256k1Scalar(0))
	require.NoError(t, err)
	assert.True(t, y.Equal(secret))
}

func TestLagrange(t *testing.T) {
	p := saferith.ModulusFromUint64(7919)
	one := ring.NewZModUint64(1, p)

	domain := make([]ring.ZMod, 10)
	for i := range domain {
		domain[i] = ring.NewZModUint64(uint64(i+1), p)
	}

	for _, d := range [][]ring.ZMod{domain, domain[:9]} {
		coefficients, err := Lagrange(d)
		require.NoError(t, err)
		sum := ring.NewZModUint64(0, p)
		for _, c := range coefficients {
			sum = sum.Add(c)
		}
		assert.True(t, sum.Equal(one))
	}

	// interpolating f at the domain recovers f(0)
	secret := ring.NewZModUint64(4242, p)
	f, err := SampleWithFreeTerm(4, secret, ring.ZModSampler(p), rand.Reader)
	require.NoError(t, err)
	subset := domain[2:7]
	coefficients, err := Lagrange(subset)
	require.NoError(t, err)
	acc := ring.NewZModUint64(0, p)
	for i, x := range subset {
		y, err := f.Evaluate(x)
		require.NoError(t, err)
		acc = acc.Add(y.Mul(coefficients[i]))
	}
	assert.True(t, acc.Equal(secret))

	l, err := LagrangeSingle(subset, 2)
	require.NoError(t, err)
	assert.True(t, l.Equal(coefficients[2]))
	_, err = LagrangeSingle(subset, 5)
	assert.Error(t, err)

	_, err = Lagrange(nil)
	assert.ErrorIs(t, err, ErrEmptyDomain)

	_, err = Lagrange([]ring.ZMod{domain[0], domain[1], domain[0]})
	assert.ErrorIs(t, err, ErrDuplicatePoints)

	_, err = Lagrange([]ring.ZMod{domain[0], ring.NewZModUint64(2, saferith.ModulusFromUint64(101))})
	assert.ErrorIs(t, err, ErrMismatchedFields)
}
