// Package config loads the TOML configuration of the paillier command.
package config

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/mpc-paillier/internal/log"
	"github.com/pkg/errors"
)

const (
	defaultLogLevel = "NOTICE"
	defaultPartyID  = "local"

	// Miller-Rabin rounds for FieldModulus.
	primalityRounds = 20
)

// Paillier is the key used by encrypt and decrypt.
type Paillier struct {
	// Modulus is N, hex encoded.
	Modulus string
	// SecretKey is the decryption exponent d, hex encoded. Leave empty for a
	// public key.
	SecretKey string
	// KeyID names the key in the keystore. Random when empty.
	KeyID string
	// PartyID names the owner of the key.
	PartyID string
}

// N returns the decoded modulus.
func (p *Paillier) N() (*saferith.Nat, error) {
	return ParseHex(p.Modulus)
}

// D returns the decoded decryption exponent, or nil for a public key.
func (p *Paillier) D() (*saferith.Nat, error) {
	if p.SecretKey == "" {
		return nil, nil
	}
	return ParseHex(p.SecretKey)
}

func (p *Paillier) validate() error {
	if p.Modulus == "" {
		return errors.New("config: Paillier: Modulus is not set")
	}
	if _, err := p.N(); err != nil {
		return errors.WithMessage(err, "config: Paillier: invalid Modulus")
	}
	if _, err := p.D(); err != nil {
		return errors.WithMessage(err, "config: Paillier: invalid SecretKey")
	}
	return nil
}

func (p *Paillier) applyDefaults() {
	if p.PartyID == "" {
		p.PartyID = defaultPartyID
	}
}

// Sharing parameterizes share and combine.
type Sharing struct {
	// Threshold is the degree of the dealing polynomial; Threshold+1 shares
	// recover the secret.
	Threshold uint16
	// Parties is the number of shares dealt, to parties 1..Parties.
	Parties uint16
	// FieldModulus is the prime p of the field ℤₚ, hex encoded.
	FieldModulus string
}

// Field returns the decoded field modulus.
func (s *Sharing) Field() (*saferith.Modulus, error) {
	p, err := ParseHex(s.FieldModulus)
	if err != nil {
		return nil, err
	}
	return saferith.ModulusFromNat(p), nil
}

func (s *Sharing) validate() error {
	if s.FieldModulus == "" {
		return errors.New("config: Sharing: FieldModulus is not set")
	}
	p, err := ParseHex(s.FieldModulus)
	if err != nil {
		return errors.WithMessage(err, "config: Sharing: invalid FieldModulus")
	}
	if !p.Big().ProbablyPrime(primalityRounds) {
		return errors.New("config: Sharing: FieldModulus must be a prime")
	}
	if s.Parties == 0 {
		return errors.New("config: Sharing: Parties is not set")
	}
	if s.Threshold >= s.Parties {
		return errors.Errorf("config: Sharing: Threshold %d must be smaller than Parties %d", s.Threshold, s.Parties)
	}
	return nil
}

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool
	// File specifies the log file, if omitted stdout will be used.
	File string
	// Level specifies the log level.
	Level string
}

func (l *Logging) validate() error {
	if _, err := log.ParseLevel(l.Level); err != nil {
		return errors.WithMessage(err, "config: Logging")
	}
	return nil
}

// Config is the top level paillier configuration.
type Config struct {
	Paillier *Paillier
	Sharing  *Sharing
	Logging  *Logging
}

// FixupAndValidate applies defaults to config entries and validates the
// supplied configuration. Sections left out of the file are not validated.
func (cfg *Config) FixupAndValidate() error {
	if cfg.Logging == nil {
		cfg.Logging = &Logging{}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if err := cfg.Logging.validate(); err != nil {
		return err
	}

	if cfg.Paillier != nil {
		cfg.Paillier.applyDefaults()
		if err := cfg.Paillier.validate(); err != nil {
			return err
		}
	}
	if cfg.Sharing != nil {
		if err := cfg.Sharing.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Load parses and validates the provided buffer b as a config file body and
// returns the Config.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, errors.Errorf("config: Undecoded keys in config file: %v", undecoded)
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads, parses and validates the provided file and returns the
// Config.
func LoadFile(f string) (*Config, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Load(b)
}

// ParseHex decodes a big-endian hex number. An optional 0x prefix and an odd
// number of digits are accepted.
func ParseHex(s string) (*saferith.Nat, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return nil, errors.New("config: empty hex number")
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return new(saferith.Nat).SetBytes(b), nil
}
