package paillier

import (
	"encoding/hex"
	"runtime"

	"github.com/cronokirby/saferith"
	"github.com/google/uuid"
	pailliercore "github.com/mr-shifu/mpc-paillier/core/paillier"
	comm_paillier "github.com/mr-shifu/mpc-paillier/pkg/common/cryptosuite/paillier"
	"github.com/mr-shifu/mpc-paillier/pkg/common/keyopts"
	"github.com/mr-shifu/mpc-paillier/pkg/common/keystore"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/op/go-logging.v1"
)

var (
	ErrInvalidKey = errors.New("paillier: invalid key")
	ErrPublicKey  = errors.New("paillier: key cannot decrypt")
)

var _ comm_paillier.PaillierKeyManager = (*PaillierKeyManagerImpl)(nil)

type PaillierKeyManagerImpl struct {
	keystore keystore.Keystore
	log      *logging.Logger
	workers  int
}

// NewPaillierKeyManager returns a key manager storing keys in store. A nil log
// uses the "paillier" logger of the default go-logging backend.
func NewPaillierKeyManager(store keystore.Keystore, log *logging.Logger) *PaillierKeyManagerImpl {
	if log == nil {
		log = logging.MustGetLogger("paillier")
	}
	return &PaillierKeyManagerImpl{
		keystore: store,
		log:      log,
		workers:  runtime.NumCPU(),
	}
}

// NewKeyID returns a fresh random KeyID.
func NewKeyID() string {
	return uuid.New().String()
}

func (mgr *PaillierKeyManagerImpl) ImportKey(secretKey, n *saferith.Nat, opts keyopts.Options) (comm_paillier.PaillierKey, error) {
	pp, err := pailliercore.NewPublicParameters(n)
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to import key")
	}

	var dk *pailliercore.DecryptionKey
	if secretKey != nil {
		dk, err = pailliercore.NewDecryptionKey(secretKey, pp)
		if err != nil {
			return nil, errors.WithMessage(err, "paillier: failed to import key")
		}
	}

	return mgr.importKey(NewPaillierKey(pp, dk), opts)
}

func (mgr *PaillierKeyManagerImpl) ImportKeyFromPrimes(p, q *saferith.Nat, opts keyopts.Options) (comm_paillier.PaillierKey, error) {
	if p == nil || q == nil {
		return nil, pailliercore.ErrInvalidPrimes
	}
	pp, err := pailliercore.NewPublicParameters(new(saferith.Nat).Mul(p, q, -1))
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to import key")
	}
	dk, err := pailliercore.NewDecryptionKeyFromPrimes(p, q, pp)
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to import key")
	}

	return mgr.importKey(NewPaillierKey(pp, dk), opts)
}

func (mgr *PaillierKeyManagerImpl) importKey(k *PaillierKeyImpl, opts keyopts.Options) (comm_paillier.PaillierKey, error) {
	kb, err := k.Bytes()
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to serialize key")
	}

	ski := hex.EncodeToString(k.SKI())
	if err := mgr.keystore.KeyAccessor(ski, opts).Import(kb); err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to import key to keystore")
	}

	mgr.log.Infof("imported key %s (private: %v)", ski, k.Private())
	return k, nil
}

// GetKey returns a Paillier key by its KeyID and PartyID.
func (mgr *PaillierKeyManagerImpl) GetKey(opts keyopts.Options) (comm_paillier.PaillierKey, error) {
	kb, err := mgr.keystore.Get(opts)
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to get key from keystore")
	}

	k := new(PaillierKeyImpl)
	if err := k.FromBytes(kb); err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to decode key")
	}

	return k, nil
}

func (mgr *PaillierKeyManagerImpl) Encrypt(plaintext *saferith.Nat, opts keyopts.Options) (*saferith.Nat, error) {
	k, err := mgr.GetKey(opts)
	if err != nil {
		return nil, err
	}
	pp := k.PublicParameters()

	m, err := pp.NewPlaintext(plaintext)
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: invalid plaintext")
	}
	_, c, err := k.EncryptionKey().Encrypt(m, pp, nil)
	if err != nil {
		return nil, err
	}

	return c.Value(), nil
}

func (mgr *PaillierKeyManagerImpl) Decrypt(ciphertext *saferith.Nat, opts keyopts.Options) (*saferith.Nat, error) {
	dk, err := mgr.decryptionKey(opts)
	if err != nil {
		return nil, err
	}
	return decrypt(dk, ciphertext)
}

func (mgr *PaillierKeyManagerImpl) DecryptBatch(ciphertexts []*saferith.Nat, opts keyopts.Options) ([]*saferith.Nat, error) {
	dk, err := mgr.decryptionKey(opts)
	if err != nil {
		return nil, err
	}

	plaintexts := make([]*saferith.Nat, len(ciphertexts))
	var eg errgroup.Group
	eg.SetLimit(mgr.workers)
	for i, c := range ciphertexts {
		i, c := i, c
		eg.Go(func() error {
			m, err := decrypt(dk, c)
			if err != nil {
				return errors.WithMessagef(err, "paillier: ciphertext %d", i)
			}
			plaintexts[i] = m
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		mgr.log.Warningf("batch decryption failed: %v", err)
		return nil, err
	}

	mgr.log.Debugf("decrypted %d ciphertexts", len(ciphertexts))
	return plaintexts, nil
}

func (mgr *PaillierKeyManagerImpl) DeleteKey(opts keyopts.Options) error {
	k, err := mgr.GetKey(opts)
	if err != nil {
		return err
	}

	ski := hex.EncodeToString(k.SKI())
	if err := mgr.keystore.KeyAccessor(ski, opts).Delete(); err != nil {
		return errors.WithMessage(err, "paillier: failed to delete key")
	}
	mgr.log.Infof("deleted key %s", ski)
	return nil
}

// DeleteKeys removes the keys of every party under the KeyID in opts.
func (mgr *PaillierKeyManagerImpl) DeleteKeys(opts keyopts.Options) error {
	if err := mgr.keystore.DeleteAll(opts); err != nil {
		return errors.WithMessage(err, "paillier: failed to delete keys")
	}
	mgr.log.Info("deleted all keys of the key ID")
	return nil
}

func (mgr *PaillierKeyManagerImpl) decryptionKey(opts keyopts.Options) (*pailliercore.DecryptionKey, error) {
	k, err := mgr.GetKey(opts)
	if err != nil {
		return nil, err
	}
	key, ok := k.(*PaillierKeyImpl)
	if !ok {
		return nil, ErrInvalidKey
	}
	if !key.Private() {
		return nil, ErrPublicKey
	}
	return key.dk, nil
}

func decrypt(dk *pailliercore.DecryptionKey, ciphertext *saferith.Nat) (*saferith.Nat, error) {
	pp := dk.PublicParameters()
	c, err := pp.NewCiphertext(ciphertext)
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: invalid ciphertext")
	}
	m, err := dk.Decrypt(c, pp)
	if err != nil {
		return nil, err
	}
	return m.Value(), nil
}
