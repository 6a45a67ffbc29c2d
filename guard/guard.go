// Package guard authorizes movements of funds against the lockup
// schedule. It holds no state: Authorize is a pure decision over the
// balance views it is handed.
package guard

import (
	"errors"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-vestlock/lockup"
)

var (
	ErrInsufficientBalance = errors.New("guard: transfer amount exceeds total balance")
	ErrLockedFunds         = errors.New("guard: transfer amount exceeds unlocked balance")
)

// Balances exposes the two views Authorize compares a request against.
type Balances interface {
	// TotalBalance returns the account's full balance.
	TotalBalance(account lockup.Address) *uint256.Int
	// UnlockedBalance returns the spendable part of the balance at now.
	UnlockedBalance(account lockup.Address, now uint64) *uint256.Int
}

// Authorize gates a movement of amount out of sender at time now. The
// raw-balance check runs strictly before the lock check: a request that
// exceeds the total balance reports ErrInsufficientBalance even when it
// would also violate the lock. No state is touched on any path; the
// caller applies the balance mutation only on a nil return.
func Authorize(b Balances, sender lockup.Address, amount *uint256.Int, now uint64) error {
	if amount.Gt(b.TotalBalance(sender)) {
		return ErrInsufficientBalance
	}
	if amount.Gt(b.UnlockedBalance(sender, now)) {
		return ErrLockedFunds
	}
	return nil
}
