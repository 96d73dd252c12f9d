package paillier

import (
	"github.com/fxamacker/cbor/v2"
	pailliercore "github.com/mr-shifu/mpc-paillier/core/paillier"
	comm_paillier "github.com/mr-shifu/mpc-paillier/pkg/common/cryptosuite/paillier"
	"github.com/mr-shifu/mpc-paillier/pkg/hash"
	"github.com/pkg/errors"
)

var _ comm_paillier.PaillierKey = (*PaillierKeyImpl)(nil)

// PaillierKeyImpl holds the public parameters of a Paillier key and, for
// private keys, its decryption key.
type PaillierKeyImpl struct {
	pp *pailliercore.PublicParameters
	dk *pailliercore.DecryptionKey
}

func NewPaillierKey(pp *pailliercore.PublicParameters, dk *pailliercore.DecryptionKey) *PaillierKeyImpl {
	return &PaillierKeyImpl{pp: pp, dk: dk}
}

type paillierKeySerialized struct {
	PublicParameters []byte `cbor:"1,keyasint"`
	DecryptionKey    []byte `cbor:"2,keyasint,omitempty"`
}

// Bytes returns the CBOR encoding of the public parameters and, if present,
// the decryption key.
func (k *PaillierKeyImpl) Bytes() ([]byte, error) {
	if k.pp == nil {
		return nil, ErrInvalidKey
	}
	ppb, err := k.pp.MarshalBinary()
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to encode public parameters")
	}
	s := paillierKeySerialized{PublicParameters: ppb}

	if k.dk != nil {
		dkb, err := k.dk.MarshalBinary()
		if err != nil {
			return nil, errors.WithMessage(err, "paillier: failed to encode decryption key")
		}
		s.DecryptionKey = dkb
	}

	return cbor.Marshal(s)
}

// SKI returns the Subject Key Identifier of the key derived from N.
func (k *PaillierKeyImpl) SKI() []byte {
	if k.pp == nil {
		return nil
	}
	ski, err := hash.SKI(k.pp.N())
	if err != nil {
		return nil
	}
	return ski
}

// Private returns true if the key contains a decryption key.
func (k *PaillierKeyImpl) Private() bool {
	return k.dk != nil
}

// PublicKey returns the public key part of the key.
func (k *PaillierKeyImpl) PublicKey() comm_paillier.PaillierKey {
	return &PaillierKeyImpl{pp: k.pp}
}

func (k *PaillierKeyImpl) PublicParameters() *pailliercore.PublicParameters {
	return k.pp
}

func (k *PaillierKeyImpl) EncryptionKey() *pailliercore.EncryptionKey {
	if k.dk != nil {
		return k.dk.EncryptionKey()
	}
	ek, err := pailliercore.NewEncryptionKey(k.pp)
	if err != nil {
		return nil
	}
	return ek
}

func (k *PaillierKeyImpl) FromBytes(data []byte) error {
	var s paillierKeySerialized
	if err := cbor.Unmarshal(data, &s); err != nil {
		return errors.WithMessage(err, "paillier: failed to decode key")
	}

	pp := new(pailliercore.PublicParameters)
	if err := pp.UnmarshalBinary(s.PublicParameters); err != nil {
		return err
	}

	var dk *pailliercore.DecryptionKey
	if len(s.DecryptionKey) > 0 {
		dk = new(pailliercore.DecryptionKey)
		if err := dk.UnmarshalBinary(s.DecryptionKey); err != nil {
			return err
		}
		if !dk.PublicParameters().Equal(pp) {
			return errors.WithMessage(ErrInvalidKey, "decryption key does not match N")
		}
		// share one set of parameters between both halves
		pp = dk.PublicParameters()
	}

	k.pp = pp
	k.dk = dk
	return nil
}
