package keystore

import (
	"github.com/mr-shifu/mpc-paillier/pkg/common/keyopts"
	"github.com/mr-shifu/mpc-paillier/pkg/common/keystore"
	"github.com/mr-shifu/mpc-paillier/pkg/common/vault"
	"github.com/pkg/errors"
)

var _ keystore.Keystore = (*InMemoryKeystore)(nil)

// InMemoryKeystore stores key bytes in a vault by SKI and the SKI itself in a
// KeyOpts index by KeyID and PartyID.
type InMemoryKeystore struct {
	v  vault.Vault
	kr keyopts.KeyOpts
}

func NewInMemoryKeystore(v vault.Vault, kr keyopts.KeyOpts) *InMemoryKeystore {
	return &InMemoryKeystore{
		v:  v,
		kr: kr,
	}
}

func (ks *InMemoryKeystore) Import(ski string, key []byte, opts keyopts.Options) error {
	// store key to vault
	if err := ks.v.Import(ski, key); err != nil {
		return errors.WithMessage(err, "keystore: failed to import key to vault")
	}

	// import key metadata to key repository
	if err := ks.kr.Import(ski, opts); err != nil {
		_ = ks.v.Delete(ski)
		return errors.WithMessage(err, "keystore: failed to import key metadata")
	}

	return nil
}

func (ks *InMemoryKeystore) Get(opts keyopts.Options) ([]byte, error) {
	kd, err := ks.kr.Get(opts)
	if err != nil {
		return nil, err
	}

	return ks.v.Get(kd.SKI)
}

func (ks *InMemoryKeystore) Delete(opts keyopts.Options) error {
	kd, err := ks.kr.Get(opts)
	if err != nil {
		return err
	}

	if err := ks.v.Delete(kd.SKI); err != nil {
		return err
	}

	return ks.kr.Delete(opts)
}

// DeleteAll removes every party's key under the KeyID in opts.
func (ks *InMemoryKeystore) DeleteAll(opts keyopts.Options) error {
	keys, err := ks.kr.GetAll(opts)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := ks.v.Delete(key.SKI); err != nil {
			return err
		}
	}

	return ks.kr.DeleteAll(opts)
}

func (ks *InMemoryKeystore) KeyAccessor(ski string, opts keyopts.Options) keystore.KeyAccessor {
	return NewInMemoryKeyAccessor(ski, opts, ks)
}
