package keyopts

import (
	"sync"

	"github.com/mr-shifu/mpc-paillier/pkg/common/keyopts"
	"github.com/pkg/errors"
)

var (
	ErrInvalidParamsPartyID = errors.New("keyopts: invalid partyID")
	ErrInvalidParamsKeyID   = errors.New("keyopts: invalid keyID")
	ErrInvalidSKI           = errors.New("keyopts: invalid SKI")
	ErrKeyNotFound          = errors.New("keyopts: key not found")
)

type Keys map[string]*keyopts.KeyData

var _ keyopts.KeyOpts = (*KeyOpts)(nil)

type KeyOpts struct {
	lock sync.RWMutex

	// keys maps a KeyID to a map of PartyID to key metadata.
	keys map[string]Keys
}

func NewInMemoryKeyOpts() *KeyOpts {
	return &KeyOpts{
		keys: make(map[string]Keys),
	}
}

func (kr *KeyOpts) Import(ski string, opts keyopts.Options) error {
	if ski == "" {
		return ErrInvalidSKI
	}
	kid, err := keyID(opts)
	if err != nil {
		return err
	}
	pid, err := partyID(opts)
	if err != nil {
		return err
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	if _, ok := kr.keys[kid]; !ok {
		kr.keys[kid] = make(Keys)
	}
	kr.keys[kid][pid] = &keyopts.KeyData{
		SKI:     ski,
		PartyID: pid,
	}

	return nil
}

func (kr *KeyOpts) Get(opts keyopts.Options) (*keyopts.KeyData, error) {
	kid, err := keyID(opts)
	if err != nil {
		return nil, err
	}
	pid, err := partyID(opts)
	if err != nil {
		return nil, err
	}

	kr.lock.RLock()
	defer kr.lock.RUnlock()

	k, ok := kr.keys[kid][pid]
	if !ok {
		return nil, ErrKeyNotFound
	}
	kd := *k
	return &kd, nil
}

func (kr *KeyOpts) GetAll(opts keyopts.Options) (map[string]*keyopts.KeyData, error) {
	kid, err := keyID(opts)
	if err != nil {
		return nil, err
	}

	kr.lock.RLock()
	defer kr.lock.RUnlock()

	ks, ok := kr.keys[kid]
	if !ok {
		return nil, ErrKeyNotFound
	}

	result := make(map[string]*keyopts.KeyData, len(ks))
	for pid, key := range ks {
		kd := *key
		result[pid] = &kd
	}
	return result, nil
}

func (kr *KeyOpts) Delete(opts keyopts.Options) error {
	kid, err := keyID(opts)
	if err != nil {
		return err
	}
	pid, err := partyID(opts)
	if err != nil {
		return err
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	ks, ok := kr.keys[kid]
	if !ok {
		return ErrKeyNotFound
	}
	delete(ks, pid)
	if len(ks) == 0 {
		delete(kr.keys, kid)
	}

	return nil
}

func (kr *KeyOpts) DeleteAll(opts keyopts.Options) error {
	kid, err := keyID(opts)
	if err != nil {
		return err
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	delete(kr.keys, kid)

	return nil
}

func keyID(opts keyopts.Options) (string, error) {
	if opts == nil {
		return "", ErrInvalidParamsKeyID
	}
	v, ok := opts.Get(OptKeyID)
	if !ok {
		return "", ErrInvalidParamsKeyID
	}
	kid, ok := v.(string)
	if !ok || kid == "" {
		return "", ErrInvalidParamsKeyID
	}
	return kid, nil
}

func partyID(opts keyopts.Options) (string, error) {
	v, ok := opts.Get(OptPartyID)
	if !ok {
		return "", ErrInvalidParamsPartyID
	}
	pid, ok := v.(string)
	if !ok || pid == "" {
		return "", ErrInvalidParamsPartyID
	}
	return pid, nil
}
