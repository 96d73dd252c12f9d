package keystore

import (
	"github.com/mr-shifu/mpc-paillier/pkg/common/keyopts"
	"github.com/mr-shifu/mpc-paillier/pkg/common/keystore"
	"github.com/pkg/errors"
)

var ErrSKIMismatch = errors.New("keystore: options select a different key")

var _ keystore.KeyAccessor = (*InMemoryKeyAccessor)(nil)

// InMemoryKeyAccessor addresses one key by its SKI. The options name the
// KeyID and PartyID the key is indexed under.
type InMemoryKeyAccessor struct {
	ski  string
	opts keyopts.Options
	ks   *InMemoryKeystore
}

func NewInMemoryKeyAccessor(ski string, opts keyopts.Options, ks *InMemoryKeystore) *InMemoryKeyAccessor {
	return &InMemoryKeyAccessor{ski: ski, opts: opts, ks: ks}
}

func (ka *InMemoryKeyAccessor) Import(key []byte) error {
	return ka.ks.Import(ka.ski, key, ka.opts)
}

// Get reads the key straight from the vault; the index is not consulted.
func (ka *InMemoryKeyAccessor) Get() ([]byte, error) {
	return ka.ks.v.Get(ka.ski)
}

// Delete removes the key only while the options still select this SKI, so a
// stale accessor cannot drop a key imported later under the same options.
func (ka *InMemoryKeyAccessor) Delete() error {
	kd, err := ka.ks.kr.Get(ka.opts)
	if err != nil {
		return err
	}
	if kd.SKI != ka.ski {
		return ErrSKIMismatch
	}
	return ka.ks.Delete(ka.opts)
}
