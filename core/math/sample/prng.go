package sample

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// KeyedPRNG is a deterministic stream of bytes derived from a key with the
// blake2b XOF. Two instances created with the same key produce the same stream,
// which makes dealing and encryption reproducible in tests and audits.
//
// A KeyedPRNG is only as secret as its key; it must not be keyed with public data
// when the output is used as secret randomness.
type KeyedPRNG struct {
	mu  sync.Mutex
	key []byte
	xof blake2b.XOF
}

// NewKeyedPRNG creates a KeyedPRNG. The key is at most 64 bytes.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, errors.WithMessage(err, "sample: failed to create keyed prng")
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &KeyedPRNG{key: k, xof: xof}, nil
}

// Key returns a copy of the key the stream was derived from.
func (prng *KeyedPRNG) Key() []byte {
	key := make([]byte, len(prng.key))
	copy(key, prng.key)
	return key
}

func (prng *KeyedPRNG) Read(p []byte) (int, error) {
	prng.mu.Lock()
	defer prng.mu.Unlock()
	return prng.xof.Read(p)
}

// Reset rewinds the stream to its first byte.
func (prng *KeyedPRNG) Reset() {
	prng.mu.Lock()
	defer prng.mu.Unlock()
	prng.xof.Reset()
}
