package paillier

import (
	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/mr-shifu/mpc-paillier/core/group"
	"github.com/mr-shifu/mpc-paillier/core/homomorphic"
	"github.com/mr-shifu/mpc-paillier/core/math/arith"
	"github.com/pkg/errors"
)

var _ homomorphic.DecryptionKey[group.Additive, group.Multiplicative, *PublicParameters, *EncryptionKey] = (*DecryptionKey)(nil)

// DecryptionKey holds the decryption exponent d for N, and optionally the
// factorization of N to speed up cᵈ (mod N²).
type DecryptionKey struct {
	encryptionKey *EncryptionKey
	secretKey     *saferith.Nat

	// set only when the key was built from p and q
	p, q     *saferith.Nat
	nSquared *arith.Modulus
}

// NewDecryptionKey wraps the exponent d. A zero exponent is accepted here and
// rejected by Decrypt.
func NewDecryptionKey(secretKey *saferith.Nat, pp *PublicParameters) (*DecryptionKey, error) {
	if secretKey == nil {
		return nil, ErrInvalidDecryptionKey
	}
	ek, err := NewEncryptionKey(pp)
	if err != nil {
		return nil, err
	}
	return &DecryptionKey{
		encryptionKey: ek,
		secretKey:     secretKey.Clone(),
		nSquared:      pp.nSquared,
	}, nil
}

// NewDecryptionKeyFromPrimes derives d from p and q and caches the CRT
// parameters for N² = p²⋅q².
func NewDecryptionKeyFromPrimes(p, q *saferith.Nat, pp *PublicParameters) (*DecryptionKey, error) {
	ek, err := NewEncryptionKey(pp)
	if err != nil {
		return nil, err
	}
	d, err := SecretKeyFromPrimes(p, q)
	if err != nil {
		return nil, err
	}
	p, q = p.Clone(), q.Clone()
	if !arith.SameModulus(saferith.ModulusFromNat(new(saferith.Nat).Mul(p, q, -1)), pp.n) {
		return nil, errors.WithMessage(ErrInvalidPrimes, "p⋅q ≠ N")
	}

	pSquared := new(saferith.Nat).Mul(p, p, -1)
	qSquared := new(saferith.Nat).Mul(q, q, -1)
	return &DecryptionKey{
		encryptionKey: ek,
		secretKey:     d,
		p:             p,
		q:             q,
		nSquared:      arith.ModulusFromFactors(pSquared, qSquared),
	}, nil
}

// EncryptionKey returns the public key matching this key.
func (dk *DecryptionKey) EncryptionKey() *EncryptionKey {
	return dk.encryptionKey
}

// PublicParameters returns the parameters the key was created with.
func (dk *DecryptionKey) PublicParameters() *PublicParameters {
	return dk.encryptionKey.pp
}

// HasFactorization reports whether decryption uses the CRT.
func (dk *DecryptionKey) HasFactorization() bool {
	return dk.nSquared.HasFactorization()
}

// Decrypt returns [(cᵈ (mod N²)) - 1] / N (mod N).
func (dk *DecryptionKey) Decrypt(ciphertext group.Multiplicative, pp *PublicParameters) (group.Additive, error) {
	if dk.secretKey.EqZero() == 1 {
		return group.Additive{}, ErrInvalidDecryptionKey
	}
	if err := dk.encryptionKey.check(pp, ciphertext); err != nil {
		return group.Additive{}, err
	}

	x := dk.nSquared.Exp(ciphertext.Value(), dk.secretKey)
	return pp.NewPlaintext(decode(pp.n, pp.nSquared.Modulus, x))
}

type decryptionKeySerialized struct {
	N         []byte `cbor:"1,keyasint"`
	SecretKey []byte `cbor:"2,keyasint"`
	P         []byte `cbor:"3,keyasint,omitempty"`
	Q         []byte `cbor:"4,keyasint,omitempty"`
}

func (dk *DecryptionKey) MarshalBinary() ([]byte, error) {
	s := decryptionKeySerialized{
		N:         dk.encryptionKey.pp.n.Bytes(),
		SecretKey: dk.secretKey.Bytes(),
	}
	if dk.p != nil && dk.q != nil {
		s.P = dk.p.Bytes()
		s.Q = dk.q.Bytes()
	}
	return cbor.Marshal(s)
}

func (dk *DecryptionKey) UnmarshalBinary(data []byte) error {
	var s decryptionKeySerialized
	if err := cbor.Unmarshal(data, &s); err != nil {
		return errors.WithMessage(err, "paillier: failed to decode decryption key")
	}
	pp, err := NewPublicParameters(new(saferith.Nat).SetBytes(s.N))
	if err != nil {
		return err
	}

	var restored *DecryptionKey
	if len(s.P) > 0 && len(s.Q) > 0 {
		restored, err = NewDecryptionKeyFromPrimes(new(saferith.Nat).SetBytes(s.P), new(saferith.Nat).SetBytes(s.Q), pp)
	} else {
		restored, err = NewDecryptionKey(new(saferith.Nat).SetBytes(s.SecretKey), pp)
	}
	if err != nil {
		return err
	}
	*dk = *restored
	return nil
}
