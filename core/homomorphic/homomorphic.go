// Package homomorphic defines the capability of an additively homomorphic
// public-key encryption scheme, independent of the concrete cryptosystem.
//
// P is the plaintext space element, C the ciphertext space element, R the
// encryption randomness and PP the public parameters of the scheme.
package homomorphic

import (
	"io"

	"github.com/cronokirby/saferith"
)

// EncryptionKey encrypts plaintexts and evaluates linear functions over
// ciphertexts.
type EncryptionKey[P, C, R, PP any] interface {
	// Encrypt samples fresh randomness from rand and encrypts plaintext.
	Encrypt(plaintext P, pp PP, rand io.Reader) (R, C, error)
	// EncryptWithRandomness encrypts plaintext deterministically.
	EncryptWithRandomness(plaintext P, randomness R, pp PP) (C, error)
	// Add returns a ciphertext of the sum of the plaintexts of a and b.
	Add(a, b C, pp PP) (C, error)
	// ScalarMul returns a ciphertext of k times the plaintext of c.
	ScalarMul(c C, k *saferith.Nat, pp PP) (C, error)
}

// DecryptionKey holds a secret key together with its encryption key.
type DecryptionKey[P, C, PP, EK any] interface {
	// Decrypt recovers the plaintext of ciphertext. An error signals that no
	// plaintext could be recovered.
	Decrypt(ciphertext C, pp PP) (P, error)
	// EncryptionKey returns the encryption key paired with this key.
	EncryptionKey() EK
}
