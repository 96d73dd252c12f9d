package test

import "github.com/mr-shifu/mpc-paillier/core/shamir"

// PartyIDs returns the IDs 1, …, n.
func PartyIDs(n int) []shamir.ID {
	ids := make([]shamir.ID, n)
	for i := range ids {
		ids[i] = shamir.ID(i + 1)
	}
	return ids
}
