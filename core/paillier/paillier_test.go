package paillier_test

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/mpc-paillier/core/group"
	"github.com/mr-shifu/mpc-paillier/core/homomorphic/homomorphictest"
	"github.com/mr-shifu/mpc-paillier/core/paillier"
	"github.com/mr-shifu/mpc-paillier/lib/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func nat(x uint64) *saferith.Nat {
	return new(saferith.Nat).SetUint64(x)
}

func setup(t *testing.T) (*test.PaillierVectors, *paillier.PublicParameters) {
	t.Helper()
	v := test.MustPaillierVectors()
	pp, err := paillier.NewPublicParameters(v.N)
	require.NoError(t, err)
	return v, pp
}

func TestEncrypt_KnownAnswer(t *testing.T) {
	v, _ := setup(t)

	c := paillier.Encrypt(saferith.ModulusFromNat(v.N), v.Plaintext, v.Randomness)
	assert.Equal(t, saferith.Choice(1), c.Eq(v.Ciphertext))
}

func TestDecrypt_KnownAnswer(t *testing.T) {
	v, _ := setup(t)

	m, err := paillier.Decrypt(saferith.ModulusFromNat(v.N), v.SecretKey, v.Ciphertext)
	require.NoError(t, err)
	assert.Equal(t, saferith.Choice(1), m.Eq(v.Plaintext))
}

func TestDecrypt_ZeroKey(t *testing.T) {
	v, _ := setup(t)

	_, err := paillier.Decrypt(saferith.ModulusFromNat(v.N), new(saferith.Nat), v.Ciphertext)
	assert.ErrorIs(t, err, paillier.ErrInvalidDecryptionKey)
	_, err = paillier.Decrypt(saferith.ModulusFromNat(v.N), nil, v.Ciphertext)
	assert.ErrorIs(t, err, paillier.ErrInvalidDecryptionKey)
}

func TestEncrypt_RandomnessIndependence(t *testing.T) {
	v, _ := setup(t)
	n := saferith.ModulusFromNat(v.N)

	c1 := paillier.Encrypt(n, nat(42), v.Randomness)
	c2 := paillier.Encrypt(n, nat(42), nat(7))
	assert.Equal(t, saferith.Choice(0), c1.Eq(c2))

	for _, c := range []*saferith.Nat{c1, c2} {
		m, err := paillier.Decrypt(n, v.SecretKey, c)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), m.Uint64())
	}
}

func TestEncrypt_Homomorphic(t *testing.T) {
	v, _ := setup(t)
	n := saferith.ModulusFromNat(v.N)
	nSquared := saferith.ModulusFromNat(v.NSquared)

	c1 := paillier.Encrypt(n, nat(1000), nat(3))
	c2 := paillier.Encrypt(n, nat(234), nat(5))
	sum := new(saferith.Nat).ModMul(c1, c2, nSquared)

	m, err := paillier.Decrypt(n, v.SecretKey, sum)
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), m.Uint64())
}

func TestNewPublicParameters(t *testing.T) {
	v, pp := setup(t)

	assert.Equal(t, saferith.Choice(1), pp.N().Nat().Eq(v.N))
	assert.Equal(t, saferith.Choice(1), pp.NSquared().Nat().Eq(v.NSquared))

	even := new(saferith.Nat).Add(v.N, nat(1), -1)
	for name, n := range map[string]*saferith.Nat{
		"nil":   nil,
		"zero":  new(saferith.Nat),
		"even":  even,
		"small": nat(3 * 5),
	} {
		_, err := paillier.NewPublicParameters(n)
		assert.ErrorIs(t, err, paillier.ErrInvalidPublicParameters, name)
	}

	data, err := pp.MarshalBinary()
	require.NoError(t, err)
	restored := new(paillier.PublicParameters)
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.True(t, restored.Equal(pp))
}

func TestSecretKeyFromPrimes(t *testing.T) {
	v, _ := setup(t)

	d, err := paillier.SecretKeyFromPrimes(v.P, v.Q)
	require.NoError(t, err)
	assert.Equal(t, saferith.Choice(1), d.Eq(v.SecretKey))

	_, err = paillier.SecretKeyFromPrimes(v.P, v.P)
	assert.ErrorIs(t, err, paillier.ErrInvalidPrimes)
	_, err = paillier.SecretKeyFromPrimes(v.P, nat(4))
	assert.ErrorIs(t, err, paillier.ErrInvalidPrimes)
	_, err = paillier.SecretKeyFromPrimes(nat(1), v.Q)
	assert.ErrorIs(t, err, paillier.ErrInvalidPrimes)
}

func TestDecryptionKey_KnownAnswer(t *testing.T) {
	v, pp := setup(t)

	plain, err := paillier.NewDecryptionKey(v.SecretKey, pp)
	require.NoError(t, err)
	crt, err := paillier.NewDecryptionKeyFromPrimes(v.P, v.Q, pp)
	require.NoError(t, err)
	assert.False(t, plain.HasFactorization())
	assert.True(t, crt.HasFactorization())

	c, err := pp.NewCiphertext(v.Ciphertext)
	require.NoError(t, err)
	expected, err := pp.NewPlaintext(v.Plaintext)
	require.NoError(t, err)

	for _, dk := range []*paillier.DecryptionKey{plain, crt} {
		m, err := dk.Decrypt(c, pp)
		require.NoError(t, err)
		assert.True(t, expected.Equal(m))
	}

	m42, err := pp.NewPlaintext(nat(42))
	require.NoError(t, err)
	c42, err := plain.EncryptionKey().EncryptWithRandomness(m42, v.Randomness, pp)
	require.NoError(t, err)
	got, err := crt.Decrypt(c42, pp)
	require.NoError(t, err)
	assert.True(t, m42.Equal(got))
}

func TestDecryptionKey_Zero(t *testing.T) {
	v, pp := setup(t)

	dk, err := paillier.NewDecryptionKey(new(saferith.Nat), pp)
	require.NoError(t, err)
	c, err := pp.NewCiphertext(v.Ciphertext)
	require.NoError(t, err)

	_, err = dk.Decrypt(c, pp)
	assert.ErrorIs(t, err, paillier.ErrInvalidDecryptionKey)

	_, err = paillier.NewDecryptionKey(nil, pp)
	assert.ErrorIs(t, err, paillier.ErrInvalidDecryptionKey)
}

func TestDecryptionKey_FromWrongPrimes(t *testing.T) {
	v, pp := setup(t)

	_, err := paillier.NewDecryptionKeyFromPrimes(v.P, nat(65537), pp)
	assert.ErrorIs(t, err, paillier.ErrInvalidPrimes)
}

func TestDecryptionKey_Conformance(t *testing.T) {
	v, pp := setup(t)
	dk, err := paillier.NewDecryptionKeyFromPrimes(v.P, v.Q, pp)
	require.NoError(t, err)

	var plaintexts []group.Additive
	for _, x := range []*saferith.Nat{nat(0), nat(1), v.Plaintext, new(saferith.Nat).Sub(v.N, nat(1), -1)} {
		m, err := pp.NewPlaintext(x)
		require.NoError(t, err)
		plaintexts = append(plaintexts, m)
	}
	homomorphictest.EncryptDecrypts[group.Additive, group.Multiplicative, *saferith.Nat, *paillier.PublicParameters, *paillier.EncryptionKey](
		t, dk, pp, plaintexts, nil)

	x, err := pp.NewPlaintext(nat(11))
	require.NoError(t, err)
	y, err := pp.NewPlaintext(nat(100))
	require.NoError(t, err)
	expected, err := pp.NewPlaintext(nat(3*11 + 4*100))
	require.NoError(t, err)
	homomorphictest.Evaluates[group.Additive, group.Multiplicative, *saferith.Nat, *paillier.PublicParameters, *paillier.EncryptionKey](
		t, dk, pp, x, y, nat(3), nat(4), expected, nil)
}

func TestEncryptionKey_Errors(t *testing.T) {
	v, pp := setup(t)
	ek, err := paillier.NewEncryptionKey(pp)
	require.NoError(t, err)

	m, err := pp.NewPlaintext(nat(5))
	require.NoError(t, err)
	_, err = ek.EncryptWithRandomness(m, v.N, pp)
	assert.ErrorIs(t, err, paillier.ErrInvalidRandomness)
	_, err = ek.EncryptWithRandomness(m, nil, pp)
	assert.ErrorIs(t, err, paillier.ErrInvalidRandomness)

	other, err := paillier.NewPublicParameters(new(saferith.Nat).Add(v.N, nat(2), -1))
	require.NoError(t, err)
	_, _, err = ek.Encrypt(m, other, nil)
	assert.ErrorIs(t, err, paillier.ErrMismatchedParameters)

	foreign, err := other.NewPlaintext(nat(5))
	require.NoError(t, err)
	_, err = ek.EncryptWithRandomness(foreign, v.Randomness, pp)
	assert.ErrorIs(t, err, group.ErrMismatchedModulus)

	_, err = paillier.NewEncryptionKey(nil)
	assert.ErrorIs(t, err, paillier.ErrInvalidPublicParameters)
}

func TestEncryptionKey_LinearCombination(t *testing.T) {
	v, pp := setup(t)
	dk, err := paillier.NewDecryptionKeyFromPrimes(v.P, v.Q, pp)
	require.NoError(t, err)
	ek := dk.EncryptionKey()

	var ciphertexts []group.Multiplicative
	for _, x := range []uint64{3, 5} {
		m, err := pp.NewPlaintext(nat(x))
		require.NoError(t, err)
		_, c, err := ek.Encrypt(m, pp, nil)
		require.NoError(t, err)
		ciphertexts = append(ciphertexts, c)
	}

	_, c, err := ek.EvaluateLinearCombination([]*saferith.Nat{nat(2), nat(7)}, ciphertexts, pp, nil)
	require.NoError(t, err)
	m, err := dk.Decrypt(c, pp)
	require.NoError(t, err)
	assert.Equal(t, uint64(41), m.Value().Uint64())

	_, _, err = ek.EvaluateLinearCombination([]*saferith.Nat{nat(2)}, ciphertexts, pp, nil)
	assert.ErrorIs(t, err, paillier.ErrInvalidLinearCombination)
	_, _, err = ek.EvaluateLinearCombination(nil, nil, pp, nil)
	assert.ErrorIs(t, err, paillier.ErrInvalidLinearCombination)
}

func TestEncryptionKey_Randomize(t *testing.T) {
	v, pp := setup(t)
	dk, err := paillier.NewDecryptionKeyFromPrimes(v.P, v.Q, pp)
	require.NoError(t, err)

	c, err := pp.NewCiphertext(v.Ciphertext)
	require.NoError(t, err)
	_, randomized, err := dk.EncryptionKey().Randomize(c, pp, nil)
	require.NoError(t, err)
	assert.False(t, c.Equal(randomized))

	m, err := dk.Decrypt(randomized, pp)
	require.NoError(t, err)
	assert.Equal(t, saferith.Choice(1), m.Value().Eq(v.Plaintext))
}

func TestDecryptionKey_Serialization(t *testing.T) {
	v, pp := setup(t)
	c, err := pp.NewCiphertext(v.Ciphertext)
	require.NoError(t, err)

	crt, err := paillier.NewDecryptionKeyFromPrimes(v.P, v.Q, pp)
	require.NoError(t, err)
	plain, err := paillier.NewDecryptionKey(v.SecretKey, pp)
	require.NoError(t, err)

	for _, dk := range []*paillier.DecryptionKey{crt, plain} {
		data, err := dk.MarshalBinary()
		require.NoError(t, err)

		restored := new(paillier.DecryptionKey)
		require.NoError(t, restored.UnmarshalBinary(data))
		assert.Equal(t, dk.HasFactorization(), restored.HasFactorization())
		assert.True(t, restored.PublicParameters().Equal(pp))

		m, err := restored.Decrypt(c, pp)
		require.NoError(t, err)
		assert.Equal(t, saferith.Choice(1), m.Value().Eq(v.Plaintext))
	}

	assert.Error(t, new(paillier.DecryptionKey).UnmarshalBinary([]byte{0x01}))
}

func TestDecryptionKey_Concurrent(t *testing.T) {
	v, pp := setup(t)
	crt, err := paillier.NewDecryptionKeyFromPrimes(v.P, v.Q, pp)
	require.NoError(t, err)
	plain, err := paillier.NewDecryptionKey(v.SecretKey, pp)
	require.NoError(t, err)
	c, err := pp.NewCiphertext(v.Ciphertext)
	require.NoError(t, err)

	var eg errgroup.Group
	for i := 0; i < 8; i++ {
		dk := crt
		if i%2 == 1 {
			dk = plain
		}
		eg.Go(func() error {
			m, err := dk.Decrypt(c, pp)
			if err != nil {
				return err
			}
			if m.Value().Eq(v.Plaintext.Clone()) != 1 {
				return paillier.ErrInvalidDecryptionKey
			}
			return nil
		})
	}
	assert.NoError(t, eg.Wait())
}

func TestEncryptionKey_ConcurrentSharedParameters(t *testing.T) {
	v, pp := setup(t)
	dk, err := paillier.NewDecryptionKeyFromPrimes(v.P, v.Q, pp)
	require.NoError(t, err)
	ek := dk.EncryptionKey()
	base, err := pp.NewCiphertext(v.Ciphertext)
	require.NoError(t, err)

	var eg errgroup.Group
	for i := 0; i < 8; i++ {
		x := uint64(i + 1)
		eg.Go(func() error {
			m, err := pp.NewPlaintext(nat(x))
			if err != nil {
				return err
			}
			_, c, err := ek.Encrypt(m, pp, nil)
			if err != nil {
				return err
			}
			sum, err := ek.Add(c, base, pp)
			if err != nil {
				return err
			}
			got, err := dk.Decrypt(sum, pp)
			if err != nil {
				return err
			}
			expected := m.Add(mustPlaintext(pp, v.Plaintext))
			if !got.Equal(expected) {
				return paillier.ErrInvalidDecryptionKey
			}
			if !pp.Equal(dk.PublicParameters()) {
				return paillier.ErrMismatchedParameters
			}
			return nil
		})
	}
	assert.NoError(t, eg.Wait())
}

func mustPlaintext(pp *paillier.PublicParameters, x *saferith.Nat) group.Additive {
	m, err := pp.NewPlaintext(x)
	if err != nil {
		panic(err)
	}
	return m
}
