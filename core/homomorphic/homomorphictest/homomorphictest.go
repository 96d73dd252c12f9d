// Package homomorphictest provides conformance checks that any additively
// homomorphic scheme implementing the homomorphic interfaces must pass.
package homomorphictest

import (
	"io"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/mpc-paillier/core/homomorphic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Plaintext is the constraint on plaintext elements the checks compare.
type Plaintext[P any] interface {
	Equal(P) bool
}

// EncryptDecrypts checks that every plaintext survives a round trip, and that
// two encryptions of the same plaintext under fresh randomness both decrypt.
func EncryptDecrypts[P Plaintext[P], C, R, PP any, EK homomorphic.EncryptionKey[P, C, R, PP]](
	t *testing.T,
	dk homomorphic.DecryptionKey[P, C, PP, EK],
	pp PP,
	plaintexts []P,
	rand io.Reader,
) {
	t.Helper()
	ek := dk.EncryptionKey()

	for _, plaintext := range plaintexts {
		_, c1, err := ek.Encrypt(plaintext, pp, rand)
		require.NoError(t, err)
		_, c2, err := ek.Encrypt(plaintext, pp, rand)
		require.NoError(t, err)

		p1, err := dk.Decrypt(c1, pp)
		require.NoError(t, err)
		p2, err := dk.Decrypt(c2, pp)
		require.NoError(t, err)

		assert.True(t, plaintext.Equal(p1), "decryption of the first ciphertext differs")
		assert.True(t, plaintext.Equal(p2), "decryption of the second ciphertext differs")
	}
}

// Evaluates checks that a⋅x + b⋅y, evaluated over ciphertexts of x and y,
// decrypts to expected.
func Evaluates[P Plaintext[P], C, R, PP any, EK homomorphic.EncryptionKey[P, C, R, PP]](
	t *testing.T,
	dk homomorphic.DecryptionKey[P, C, PP, EK],
	pp PP,
	x, y P,
	a, b *saferith.Nat,
	expected P,
	rand io.Reader,
) {
	t.Helper()
	ek := dk.EncryptionKey()

	_, cx, err := ek.Encrypt(x, pp, rand)
	require.NoError(t, err)
	_, cy, err := ek.Encrypt(y, pp, rand)
	require.NoError(t, err)

	ax, err := ek.ScalarMul(cx, a, pp)
	require.NoError(t, err)
	by, err := ek.ScalarMul(cy, b, pp)
	require.NoError(t, err)
	sum, err := ek.Add(ax, by, pp)
	require.NoError(t, err)

	got, err := dk.Decrypt(sum, pp)
	require.NoError(t, err)
	assert.True(t, expected.Equal(got), "decryption of the linear combination differs")
}
