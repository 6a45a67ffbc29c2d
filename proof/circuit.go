// Package proof produces Groth16 proofs that a spend respected the
// quarterly release schedule, without revealing the grant amount.
package proof

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// ReleaseCircuit encodes the release arithmetic of the lockup ledger:
//
//	released  = floor(grant * epochs / 8)
//	unlocked  = total - (grant - released)
//	spend    <= unlocked
//
// Total, Spend and Epochs are public; the grant amount and the division
// witnesses stay private.
type ReleaseCircuit struct {
	Total  frontend.Variable `gnark:",public"`
	Spend  frontend.Variable `gnark:",public"`
	Epochs frontend.Variable `gnark:",public"`

	Grant    frontend.Variable
	Released frontend.Variable
	Rem      frontend.Variable
}

func (c *ReleaseCircuit) Define(api frontend.API) error {
	// Range checks keep the field arithmetic from wrapping.
	api.AssertIsLessOrEqual(c.Epochs, big.NewInt(8))
	api.AssertIsLessOrEqual(c.Grant, new(big.Int).Lsh(big.NewInt(1), 240))

	// Floor division as a constraint: grant*epochs == 8*released + rem, rem < 8.
	prod := api.Mul(c.Grant, c.Epochs)
	api.AssertIsEqual(prod, api.Add(api.Mul(c.Released, 8), c.Rem))
	api.AssertIsLessOrEqual(c.Rem, big.NewInt(7))
	api.AssertIsLessOrEqual(c.Released, c.Grant)

	// The locked remainder must fit inside the total balance, and the
	// spend inside what the schedule has released.
	locked := api.Sub(c.Grant, c.Released)
	api.AssertIsLessOrEqual(locked, c.Total)
	unlocked := api.Sub(c.Total, locked)
	api.AssertIsLessOrEqual(c.Spend, unlocked)

	return nil
}
