package paillier

import (
	"github.com/cronokirby/saferith"
	pailliercore "github.com/mr-shifu/mpc-paillier/core/paillier"
	"github.com/mr-shifu/mpc-paillier/pkg/common/keyopts"
)

type PaillierKey interface {
	// Bytes returns the binary encoding of the key.
	Bytes() ([]byte, error)

	// SKI returns the subject key identifier derived from N.
	SKI() []byte

	// Private returns true if the key holds a decryption key.
	Private() bool

	// PublicKey returns the public part of the key.
	PublicKey() PaillierKey

	// PublicParameters returns N and N².
	PublicParameters() *pailliercore.PublicParameters

	// EncryptionKey returns the encryption key for N.
	EncryptionKey() *pailliercore.EncryptionKey

	// FromBytes restores a key encoded with Bytes.
	FromBytes(data []byte) error
}

type PaillierKeyManager interface {
	// ImportKey stores the key for modulus n. A nil secretKey imports a public key.
	ImportKey(secretKey, n *saferith.Nat, opts keyopts.Options) (PaillierKey, error)

	// ImportKeyFromPrimes stores the key for N = p⋅q with CRT decryption enabled.
	ImportKeyFromPrimes(p, q *saferith.Nat, opts keyopts.Options) (PaillierKey, error)

	// GetKey returns the key selected by opts.
	GetKey(opts keyopts.Options) (PaillierKey, error)

	// Encrypt encrypts plaintext ∈ [0, N) under fresh randomness.
	Encrypt(plaintext *saferith.Nat, opts keyopts.Options) (*saferith.Nat, error)

	// Decrypt decrypts ciphertext ∈ ℤₙ₂ˣ. The key must be private.
	Decrypt(ciphertext *saferith.Nat, opts keyopts.Options) (*saferith.Nat, error)

	// DecryptBatch decrypts ciphertexts concurrently, preserving their order.
	DecryptBatch(ciphertexts []*saferith.Nat, opts keyopts.Options) ([]*saferith.Nat, error)

	// DeleteKey removes the key selected by opts.
	DeleteKey(opts keyopts.Options) error

	// DeleteKeys removes every party's key under the KeyID in opts.
	DeleteKeys(opts keyopts.Options) error
}
