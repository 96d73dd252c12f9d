package test

import (
	_ "embed"
	"encoding/hex"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/paillier.yaml
var paillierVectors []byte

// PaillierVectors holds a known-answer Paillier test vector for a 2048-bit
// modulus N = P⋅Q: Ciphertext = (1 + Plaintext⋅N)⋅Randomnessᴺ (mod N²) and
// SecretKey decrypts it.
type PaillierVectors struct {
	N          *saferith.Nat
	NSquared   *saferith.Nat
	P          *saferith.Nat
	Q          *saferith.Nat
	Plaintext  *saferith.Nat
	Randomness *saferith.Nat
	Ciphertext *saferith.Nat
	SecretKey  *saferith.Nat
}

type paillierVectorsHex struct {
	N          string `yaml:"n"`
	NSquared   string `yaml:"n_squared"`
	P          string `yaml:"p"`
	Q          string `yaml:"q"`
	Plaintext  string `yaml:"plaintext"`
	Randomness string `yaml:"randomness"`
	Ciphertext string `yaml:"ciphertext"`
	SecretKey  string `yaml:"secret_key"`
}

// LoadPaillierVectors decodes the embedded test vectors.
func LoadPaillierVectors() (*PaillierVectors, error) {
	var raw paillierVectorsHex
	if err := yaml.Unmarshal(paillierVectors, &raw); err != nil {
		return nil, errors.WithMessage(err, "test: failed to decode paillier vectors")
	}

	v := new(PaillierVectors)
	fields := []struct {
		dst **saferith.Nat
		hex string
	}{
		{&v.N, raw.N},
		{&v.NSquared, raw.NSquared},
		{&v.P, raw.P},
		{&v.Q, raw.Q},
		{&v.Plaintext, raw.Plaintext},
		{&v.Randomness, raw.Randomness},
		{&v.Ciphertext, raw.Ciphertext},
		{&v.SecretKey, raw.SecretKey},
	}
	for _, f := range fields {
		if f.hex == "" {
			return nil, errors.New("test: missing paillier vector")
		}
		b, err := hex.DecodeString(f.hex)
		if err != nil {
			return nil, errors.WithMessage(err, "test: invalid paillier vector")
		}
		*f.dst = new(saferith.Nat).SetBytes(b)
	}
	return v, nil
}

// MustPaillierVectors is LoadPaillierVectors for tests; it panics on error.
func MustPaillierVectors() *PaillierVectors {
	v, err := LoadPaillierVectors()
	if err != nil {
		panic(err)
	}
	return v
}
