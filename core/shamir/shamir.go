// Package shamir splits secrets of a prime field ℤₚ into threshold shares and
// recombines them by Lagrange interpolation at 0.
package shamir

import (
	"io"
	"sort"

	"github.com/mr-shifu/mpc-paillier/core/math/polynomial"
	"github.com/mr-shifu/mpc-paillier/core/math/ring"
	"github.com/pkg/errors"
)

var (
	ErrInvalidThreshold = errors.New("shamir: threshold must be smaller than the number of parties")
	ErrInvalidID        = errors.New("shamir: party ID must be non-zero")
	ErrDuplicateID      = errors.New("shamir: duplicate party ID")
	ErrNoShares         = errors.New("shamir: no shares provided")
)

// ID identifies a party. It is the point at which the dealing polynomial is
// evaluated for that party, and must therefore never be 0.
type ID uint16

// Share is the evaluation f(ID) of the dealing polynomial.
type Share struct {
	ID    ID
	Value ring.ZMod
}

// Deal shares secret among ids such that any threshold+1 shares recover it and
// any threshold shares reveal nothing about it.
func Deal(secret ring.ZMod, threshold uint16, ids []ID, rand io.Reader) ([]Share, error) {
	if int(threshold) >= len(ids) {
		return nil, ErrInvalidThreshold
	}
	if err := validateIDs(ids); err != nil {
		return nil, err
	}

	m := secret.Modulus()
	f, err := polynomial.SampleWithFreeTerm(threshold, secret, ring.ZModSampler(m), rand)
	if err != nil {
		return nil, errors.WithMessage(err, "shamir: failed to sample dealing polynomial")
	}

	shares := make([]Share, len(ids))
	for i, id := range ids {
		x := ring.NewZModUint64(uint64(id), m)
		if x.IsZero() {
			return nil, ErrInvalidID
		}
		y, err := f.Evaluate(x)
		if err != nil {
			return nil, err
		}
		shares[i] = Share{ID: id, Value: y}
	}
	return shares, nil
}

// Combine interpolates the shares at 0. The caller must provide at least
// threshold+1 shares; fewer shares yield an unrelated value.
func Combine(shares []Share) (ring.ZMod, error) {
	if len(shares) == 0 {
		return ring.ZMod{}, ErrNoShares
	}

	ids := make([]ID, len(shares))
	for i, s := range shares {
		ids[i] = s.ID
	}
	if err := validateIDs(ids); err != nil {
		return ring.ZMod{}, err
	}

	m := shares[0].Value.Modulus()
	if m == nil {
		return ring.ZMod{}, polynomial.ErrMismatchedFields
	}
	domain := make([]ring.ZMod, len(shares))
	for i, s := range shares {
		domain[i] = ring.NewZModUint64(uint64(s.ID), m)
	}
	coefficients, err := polynomial.Lagrange(domain)
	if err != nil {
		return ring.ZMod{}, errors.WithMessage(err, "shamir: failed to compute lagrange coefficients")
	}

	secret := ring.NewZModUint64(0, m)
	for i, s := range shares {
		if !s.Value.SameModulus(secret) {
			return ring.ZMod{}, polynomial.ErrMismatchedFields
		}
		secret = secret.Add(s.Value.Mul(coefficients[i]))
	}
	return secret, nil
}

// IDs returns the sorted IDs of the given shares.
func IDs(shares []Share) []ID {
	ids := make([]ID, len(shares))
	for i, s := range shares {
		ids[i] = s.ID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func validateIDs(ids []ID) error {
	seen := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			return ErrInvalidID
		}
		if _, ok := seen[id]; ok {
			return ErrDuplicateID
		}
		seen[id] = struct{}{}
	}
	return nil
}
