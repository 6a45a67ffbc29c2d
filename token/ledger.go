// Package token implements a fungible token ledger with a quarterly
// lockup overlay. Balances and allowances live here; the release
// schedule lives in the schedule and lockup packages, and every
// movement of funds passes through the guard package before it is
// applied.
package token

import (
	"errors"
	"sync"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-vestlock/eventlog"
	"github.com/pflow-xyz/go-vestlock/guard"
	"github.com/pflow-xyz/go-vestlock/lockup"
	"github.com/pflow-xyz/go-vestlock/schedule"
)

// Address identifies an account.
type Address = lockup.Address

var (
	ErrZeroAddress           = errors.New("token: zero address")
	ErrInsufficientAllowance = errors.New("token: transfer amount exceeds allowance")
	ErrSupplyOverflow        = errors.New("token: total supply overflow")
)

// Ledger is the mutable ledger state. A mutex serializes all entry
// points, so each operation is atomic relative to all others: the guard
// check and the balance mutation it authorizes run under one lock with
// one timestamp, leaving no check/use gap.
type Ledger struct {
	mu sync.Mutex

	clock    Clock
	schedule *schedule.Clock
	lockups  *lockup.Ledger
	journal  *eventlog.Journal

	balances    map[Address]*uint256.Int
	allowances  map[Address]map[Address]*uint256.Int
	totalSupply *uint256.Int
}

// NewLedger creates an empty ledger. The journal may be nil to disable
// event recording.
func NewLedger(clock Clock, journal *eventlog.Journal) *Ledger {
	l := &Ledger{
		clock:       clock,
		schedule:    schedule.NewClock(),
		journal:     journal,
		balances:    make(map[Address]*uint256.Int),
		allowances:  make(map[Address]map[Address]*uint256.Int),
		totalSupply: uint256.NewInt(0),
	}
	l.lockups = lockup.NewLedger(l.schedule, l.balance)
	return l
}

// balance returns the live balance value for an account without
// locking. Callers must hold l.mu; the returned value must not be
// mutated.
func (l *Ledger) balance(account Address) *uint256.Int {
	if b, ok := l.balances[account]; ok {
		return b
	}
	return uint256.NewInt(0)
}

// guardView adapts the ledger to guard.Balances without re-locking, for
// use inside operations that already hold l.mu.
type guardView struct {
	l *Ledger
}

func (v guardView) TotalBalance(account Address) *uint256.Int {
	return v.l.balance(account)
}

func (v guardView) UnlockedBalance(account Address, now uint64) *uint256.Int {
	return v.l.lockups.UnlockedBalance(account, now)
}

func (l *Ledger) record(kind eventlog.Kind, from, to Address, amount *uint256.Int, now uint64) {
	if l.journal == nil {
		return
	}
	dec := ""
	if amount != nil {
		dec = amount.Dec()
	}
	l.journal.Append(kind, string(from), string(to), dec, now)
}

// InitializeSchedule starts the release schedule at the current time.
// It can succeed at most once.
func (l *Ledger) InitializeSchedule() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if err := l.schedule.Initialize(now); err != nil {
		return err
	}
	l.record(eventlog.KindScheduleInitialized, "", "", nil, now)
	return nil
}

// RegisterLockup freezes amount of the account's balance under the
// shared schedule. One grant per account, forever; the caller is
// responsible for authorization and for crediting the account's balance
// in its own mint step.
func (l *Ledger) RegisterLockup(account Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if account == "" {
		return ErrZeroAddress
	}
	if err := l.lockups.RegisterLockup(account, amount); err != nil {
		return err
	}
	l.record(eventlog.KindLockupRegistered, "", account, amount, l.clock.Now())
	return nil
}

// Mint credits to with amount, growing the total supply.
func (l *Ledger) Mint(to Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if to == "" {
		return ErrZeroAddress
	}
	supply := new(uint256.Int)
	if _, overflow := supply.AddOverflow(l.totalSupply, amount); overflow {
		return ErrSupplyOverflow
	}
	l.totalSupply = supply
	l.credit(to, amount)
	l.record(eventlog.KindMint, "", to, amount, l.clock.Now())
	return nil
}

// Burn destroys amount of from's balance. Burning moves funds out of the
// account, so it passes through the same guard as a transfer.
func (l *Ledger) Burn(from Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if err := guard.Authorize(guardView{l}, from, amount, now); err != nil {
		return err
	}
	l.debit(from, amount)
	l.totalSupply = new(uint256.Int).Sub(l.totalSupply, amount)
	l.record(eventlog.KindBurn, from, "", amount, now)
	return nil
}

// Transfer moves amount from one account to another. The guard check and
// the balance update are one atomic operation.
func (l *Ledger) Transfer(from, to Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if to == "" {
		return ErrZeroAddress
	}
	now := l.clock.Now()
	if err := guard.Authorize(guardView{l}, from, amount, now); err != nil {
		return err
	}
	l.debit(from, amount)
	l.credit(to, amount)
	l.record(eventlog.KindTransfer, from, to, amount, now)
	return nil
}

// Approve sets spender's allowance over owner's funds.
func (l *Ledger) Approve(owner, spender Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if spender == "" {
		return ErrZeroAddress
	}
	row, ok := l.allowances[owner]
	if !ok {
		row = make(map[Address]*uint256.Int)
		l.allowances[owner] = row
	}
	row[spender] = amount.Clone()
	l.record(eventlog.KindApproval, owner, spender, amount, l.clock.Now())
	return nil
}

// TransferFrom moves amount from one account to another on the strength
// of an allowance held by spender. The guard runs first, so a request
// that exceeds the total balance reports that before any allowance
// shortfall; the allowance is decremented only after authorization.
func (l *Ledger) TransferFrom(spender, from, to Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if to == "" {
		return ErrZeroAddress
	}
	now := l.clock.Now()
	if err := guard.Authorize(guardView{l}, from, amount, now); err != nil {
		return err
	}
	allowed := l.allowance(from, spender)
	if amount.Gt(allowed) {
		return ErrInsufficientAllowance
	}
	l.allowances[from][spender] = new(uint256.Int).Sub(allowed, amount)
	l.debit(from, amount)
	l.credit(to, amount)
	l.record(eventlog.KindTransfer, from, to, amount, now)
	return nil
}

func (l *Ledger) credit(account Address, amount *uint256.Int) {
	l.balances[account] = new(uint256.Int).Add(l.balance(account), amount)
}

func (l *Ledger) debit(account Address, amount *uint256.Int) {
	l.balances[account] = new(uint256.Int).Sub(l.balance(account), amount)
}

func (l *Ledger) allowance(owner, spender Address) *uint256.Int {
	if row, ok := l.allowances[owner]; ok {
		if a, ok := row[spender]; ok {
			return a
		}
	}
	return uint256.NewInt(0)
}

// BalanceOf returns the account's total balance.
func (l *Ledger) BalanceOf(account Address) *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance(account).Clone()
}

// Allowance returns spender's remaining allowance over owner's funds.
func (l *Ledger) Allowance(owner, spender Address) *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allowance(owner, spender).Clone()
}

// TotalSupply returns the aggregate supply.
func (l *Ledger) TotalSupply() *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalSupply.Clone()
}

// LockedBalance returns the account's still-frozen grant remainder at
// the current time.
func (l *Ledger) LockedBalance(account Address) *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lockups.LockedBalance(account, l.clock.Now())
}

// UnlockedBalance returns the account's spendable balance at the
// current time.
func (l *Ledger) UnlockedBalance(account Address) *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lockups.UnlockedBalance(account, l.clock.Now())
}

// HasGrant reports whether the account has a lockup grant.
func (l *Ledger) HasGrant(account Address) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lockups.HasGrant(account)
}

// Grant returns the account's lockup grant record, if any.
func (l *Ledger) Grant(account Address) (*lockup.Grant, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lockups.Grant(account)
}

// Schedule introspection, evaluated at the current time.

func (l *Ledger) LockStart() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.schedule.LockStart()
}

func (l *Ledger) EpochsPassed() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.schedule.EpochsPassed(l.clock.Now())
}

func (l *Ledger) LastEpoch() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.schedule.LastEpoch(l.clock.Now())
}

func (l *Ledger) NextEpoch() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.schedule.NextEpoch(l.clock.Now())
}

func (l *Ledger) FinalEpoch() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.schedule.FinalEpoch()
}
