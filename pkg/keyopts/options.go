package keyopts

import (
	"github.com/mr-shifu/mpc-paillier/pkg/common/keyopts"
	"github.com/pkg/errors"
)

const (
	// OptKeyID selects the key.
	OptKeyID = "id"
	// OptPartyID selects the party owning the key.
	OptPartyID = "partyid"
)

var ErrInvalidOptions = errors.New("keyopts: invalid options")

type Options map[string]interface{}

var _ keyopts.Options = Options{}

func NewOptions() Options {
	return make(Options)
}

// Set stores key/value pairs. Keys must be strings.
func (opts Options) Set(kVs ...interface{}) (keyopts.Options, error) {
	if len(kVs)%2 != 0 {
		return nil, ErrInvalidOptions
	}

	for i := 0; i < len(kVs); i += 2 {
		key, ok := kVs[i].(string)
		if !ok {
			return nil, ErrInvalidOptions
		}
		opts[key] = kVs[i+1]
	}

	return opts, nil
}

func (opts Options) Get(key string) (interface{}, bool) {
	val, ok := opts[key]
	return val, ok
}

// KeyOptions returns options selecting the key of partyID under keyID.
func KeyOptions(keyID, partyID string) keyopts.Options {
	return Options{OptKeyID: keyID, OptPartyID: partyID}
}
