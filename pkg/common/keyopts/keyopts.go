package keyopts

// KeyData is the metadata kept for a key owned by a party.
type KeyData struct {
	PartyID string
	SKI     string
}

type Options interface {
	Set(kVs ...interface{}) (Options, error)
	Get(key string) (interface{}, bool)
}

// KeyOpts maps a KeyID and a PartyID to the SKI of the stored key.
type KeyOpts interface {
	// Import records ski under the KeyID and PartyID found in opts.
	Import(ski string, opts Options) error

	// Get returns the metadata of the key selected by opts.
	Get(opts Options) (*KeyData, error)

	// GetAll returns the metadata of every party's key under the KeyID in opts.
	GetAll(opts Options) (map[string]*KeyData, error)

	// DeleteAll deletes the metadata of every party's key under the KeyID in opts.
	DeleteAll(opts Options) error

	Delete(opts Options) error
}
