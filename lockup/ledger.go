// Package lockup tracks one-time lockup grants and computes the
// locked/unlocked split of an account's balance against the shared
// release schedule.
package lockup

import (
	"errors"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-vestlock/schedule"
)

// Address identifies an account in the surrounding ledger.
type Address string

var (
	ErrGrantExists   = errors.New("lockup: account already has a grant")
	ErrGrantTooLarge = errors.New("lockup: grant amount too large for release arithmetic")
)

// Grant is the immutable lockup record created for an account. The amount
// never changes once registered; only the reported unlocked share of it
// grows as epochs pass.
type Grant struct {
	Account Address
	Amount  *uint256.Int
}

// BalanceFunc reports an account's total balance. The surrounding ledger
// supplies it so the lockup ledger stays free of balance bookkeeping.
type BalanceFunc func(Address) *uint256.Int

// Ledger maps each account to at most one grant. All queries take the
// current time explicitly so they stay pure and idempotent.
type Ledger struct {
	clock   *schedule.Clock
	balance BalanceFunc
	grants  map[Address]*Grant
}

// NewLedger creates an empty lockup ledger bound to a schedule clock and
// a total-balance accessor.
func NewLedger(clock *schedule.Clock, balance BalanceFunc) *Ledger {
	return &Ledger{
		clock:   clock,
		balance: balance,
		grants:  make(map[Address]*Grant),
	}
}

// maxGrant bounds grant amounts so amount * TotalEpochs cannot overflow
// 256 bits: MaxUint256 / 8.
func maxGrant() *uint256.Int {
	return new(uint256.Int).Rsh(new(uint256.Int).SetAllOne(), 3)
}

// RegisterLockup creates the grant record for an account. A second
// registration for the same account always fails, whatever the amount,
// and leaves the existing grant untouched. Crediting the account's total
// balance is the caller's separate step; registration only freezes.
func (l *Ledger) RegisterLockup(account Address, amount *uint256.Int) error {
	if _, ok := l.grants[account]; ok {
		return ErrGrantExists
	}
	if amount == nil {
		amount = uint256.NewInt(0)
	}
	if amount.Gt(maxGrant()) {
		return ErrGrantTooLarge
	}
	l.grants[account] = &Grant{Account: account, Amount: amount.Clone()}
	return nil
}

// Grant returns the account's grant record, if any.
func (l *Ledger) Grant(account Address) (*Grant, bool) {
	g, ok := l.grants[account]
	return g, ok
}

// HasGrant reports whether the account has a grant.
func (l *Ledger) HasGrant(account Address) bool {
	_, ok := l.grants[account]
	return ok
}

// Grants returns all grant records, for snapshotting.
func (l *Ledger) Grants() []*Grant {
	out := make([]*Grant, 0, len(l.grants))
	for _, g := range l.grants {
		out = append(out, g)
	}
	return out
}

// UnlockedPortion returns the released share of a grant amount at now:
// amount * epochsPassed / 8 with floor division. The result is exactly
// k/8 of the amount at the k-th boundary and exactly the full amount at
// and beyond the final epoch.
func (l *Ledger) UnlockedPortion(amount *uint256.Int, now uint64) *uint256.Int {
	k := l.clock.EpochsPassed(now)
	if k == 0 {
		return uint256.NewInt(0)
	}
	if k >= schedule.TotalEpochs {
		return amount.Clone()
	}
	z := new(uint256.Int).Mul(amount, uint256.NewInt(k))
	return z.Div(z, uint256.NewInt(schedule.TotalEpochs))
}

// LockedBalance returns the still-frozen remainder of the account's grant
// at now, or 0 if the account has no grant. It is non-increasing in now
// and reaches exactly 0 at the final epoch.
func (l *Ledger) LockedBalance(account Address, now uint64) *uint256.Int {
	g, ok := l.grants[account]
	if !ok {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Sub(g.Amount, l.UnlockedPortion(g.Amount, now))
}

// UnlockedBalance returns the spendable part of the account's total
// balance at now: total minus the locked remainder. Funds received
// outside any grant are never subject to the lock, so the result can
// exceed the grant amount. If the locked remainder exceeds the current
// total (granted funds burned out from under the lock), the result
// clamps to 0 rather than underflowing.
func (l *Ledger) UnlockedBalance(account Address, now uint64) *uint256.Int {
	total := l.balance(account)
	locked := l.LockedBalance(account, now)
	if locked.Gt(total) {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Sub(total, locked)
}
