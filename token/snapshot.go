package token

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-vestlock/eventlog"
	"github.com/pflow-xyz/go-vestlock/lockup"
	"github.com/pflow-xyz/go-vestlock/schedule"
)

// Snapshot is a point-in-time copy of the ledger state with amounts
// rendered as decimal strings, suitable for persistence.
type Snapshot struct {
	LockStart   uint64
	TotalSupply string
	Balances    map[string]string
	Allowances  map[string]map[string]string
	Grants      map[string]string
}

// Snapshot copies the current ledger state.
func (l *Ledger) Snapshot() *Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := &Snapshot{
		LockStart:   l.schedule.LockStart(),
		TotalSupply: l.totalSupply.Dec(),
		Balances:    make(map[string]string, len(l.balances)),
		Allowances:  make(map[string]map[string]string, len(l.allowances)),
		Grants:      make(map[string]string),
	}
	for account, b := range l.balances {
		snap.Balances[string(account)] = b.Dec()
	}
	for owner, row := range l.allowances {
		m := make(map[string]string, len(row))
		for spender, a := range row {
			m[string(spender)] = a.Dec()
		}
		snap.Allowances[string(owner)] = m
	}
	for _, g := range l.lockups.Grants() {
		snap.Grants[string(g.Account)] = g.Amount.Dec()
	}
	return snap
}

// RestoreLedger rebuilds a ledger from a snapshot. The journal may be
// nil; replaying persisted events into it is the caller's choice.
func RestoreLedger(clock Clock, journal *eventlog.Journal, snap *Snapshot) (*Ledger, error) {
	l := NewLedger(clock, journal)
	l.schedule = schedule.Restore(snap.LockStart)
	l.lockups = lockup.NewLedger(l.schedule, l.balance)

	supply, err := uint256.FromDecimal(snap.TotalSupply)
	if err != nil {
		return nil, fmt.Errorf("token: restoring total supply: %w", err)
	}
	l.totalSupply = supply

	for account, dec := range snap.Balances {
		b, err := uint256.FromDecimal(dec)
		if err != nil {
			return nil, fmt.Errorf("token: restoring balance of %s: %w", account, err)
		}
		l.balances[Address(account)] = b
	}
	for owner, row := range snap.Allowances {
		m := make(map[Address]*uint256.Int, len(row))
		for spender, dec := range row {
			a, err := uint256.FromDecimal(dec)
			if err != nil {
				return nil, fmt.Errorf("token: restoring allowance %s/%s: %w", owner, spender, err)
			}
			m[Address(spender)] = a
		}
		l.allowances[Address(owner)] = m
	}
	for account, dec := range snap.Grants {
		amount, err := uint256.FromDecimal(dec)
		if err != nil {
			return nil, fmt.Errorf("token: restoring grant of %s: %w", account, err)
		}
		if err := l.lockups.RegisterLockup(Address(account), amount); err != nil {
			return nil, fmt.Errorf("token: restoring grant of %s: %w", account, err)
		}
	}
	return l, nil
}
