// Package group provides the plaintext and ciphertext spaces of additively
// homomorphic schemes as abelian groups over natural numbers.
//
// Elements are immutable: every operation returns a new element. Binary
// operations assume both operands belong to the same group.
package group

import (
	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
)

var (
	ErrNotInGroup        = errors.New("group: value is not an element of the group")
	ErrMismatchedModulus = errors.New("group: elements belong to different groups")
)

// eqNat compares copies so that neither element's limbs are written.
func eqNat(x, y *saferith.Nat) bool {
	return x.Clone().Eq(y.Clone()) == 1
}
