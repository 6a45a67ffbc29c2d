package token

import (
	"testing"

	"github.com/pflow-xyz/go-vestlock/eventlog"
	"github.com/pflow-xyz/go-vestlock/guard"
	"github.com/pflow-xyz/go-vestlock/schedule"
)

func TestSnapshotRoundTrip(t *testing.T) {
	l, clock := newTestLedger(t)
	if err := l.RegisterLockup("alice", amt(100)); err != nil {
		t.Fatalf("RegisterLockup: %v", err)
	}
	if err := l.Mint("alice", amt(150)); err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if err := l.Approve("alice", "broker", amt(30)); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	clock.Advance(2 * schedule.EpochLength)

	snap := l.Snapshot()
	restored, err := RestoreLedger(clock, eventlog.NewJournal(), snap)
	if err != nil {
		t.Fatalf("RestoreLedger: %v", err)
	}

	if got := restored.LockStart(); got != t0 {
		t.Errorf("restored LockStart = %d, want %d", got, t0)
	}
	if got := restored.TotalSupply().Uint64(); got != 150 {
		t.Errorf("restored supply = %d, want 150", got)
	}
	if got := restored.BalanceOf("alice").Uint64(); got != 150 {
		t.Errorf("restored balance = %d, want 150", got)
	}
	if got := restored.Allowance("alice", "broker").Uint64(); got != 30 {
		t.Errorf("restored allowance = %d, want 30", got)
	}

	// The restored grant stays bound to the restored schedule: 2 of 8
	// epochs passed, 25 of 100 released, plus 50 ordinary units.
	if got := restored.LockedBalance("alice").Uint64(); got != 75 {
		t.Errorf("restored locked = %d, want 75", got)
	}
	if got := restored.UnlockedBalance("alice").Uint64(); got != 75 {
		t.Errorf("restored unlocked = %d, want 75", got)
	}

	// Write-once constraints survive the round trip.
	if err := restored.InitializeSchedule(); err != schedule.ErrAlreadyInitialized {
		t.Errorf("InitializeSchedule after restore = %v, want ErrAlreadyInitialized", err)
	}
	if err := restored.Transfer("alice", "bob", amt(76)); err != guard.ErrLockedFunds {
		t.Errorf("Transfer(76) after restore = %v, want ErrLockedFunds", err)
	}
	if err := restored.Transfer("alice", "bob", amt(75)); err != nil {
		t.Errorf("Transfer(75) after restore: %v", err)
	}
}

func TestSnapshotEmptyLedger(t *testing.T) {
	clock := NewManualClock(t0)
	l := NewLedger(clock, nil)

	snap := l.Snapshot()
	if snap.LockStart != 0 {
		t.Errorf("empty snapshot LockStart = %d, want 0", snap.LockStart)
	}
	restored, err := RestoreLedger(clock, nil, snap)
	if err != nil {
		t.Fatalf("RestoreLedger: %v", err)
	}
	// An unstarted schedule restores unstarted and can still be started.
	if err := restored.InitializeSchedule(); err != nil {
		t.Errorf("InitializeSchedule on restored empty ledger: %v", err)
	}
}
