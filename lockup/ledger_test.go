package lockup

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-vestlock/schedule"
)

const t0 uint64 = 1_700_000_000

// fixture builds a lockup ledger with a started schedule and a mutable
// balance table behind the accessor.
func fixture(t *testing.T) (*Ledger, map[Address]*uint256.Int) {
	t.Helper()
	clock := schedule.NewClock()
	if err := clock.Initialize(t0); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	balances := make(map[Address]*uint256.Int)
	l := NewLedger(clock, func(a Address) *uint256.Int {
		if b, ok := balances[a]; ok {
			return b
		}
		return uint256.NewInt(0)
	})
	return l, balances
}

func TestRegisterLockupOnce(t *testing.T) {
	l, _ := fixture(t)

	if err := l.RegisterLockup("alice", uint256.NewInt(100)); err != nil {
		t.Fatalf("RegisterLockup: %v", err)
	}
	if !l.HasGrant("alice") {
		t.Fatal("grant should exist after registration")
	}

	// A second registration always fails, even with the same amount,
	// and leaves the first grant unchanged.
	for _, amount := range []uint64{100, 1, 0} {
		if err := l.RegisterLockup("alice", uint256.NewInt(amount)); err != ErrGrantExists {
			t.Errorf("second RegisterLockup(%d) = %v, want ErrGrantExists", amount, err)
		}
	}
	g, _ := l.Grant("alice")
	if g.Amount.Uint64() != 100 {
		t.Errorf("grant amount changed to %s, want 100", g.Amount.Dec())
	}
}

func TestRegisterLockupTooLarge(t *testing.T) {
	l, _ := fixture(t)

	huge := new(uint256.Int).SetAllOne() // MaxUint256 > MaxUint256/8
	if err := l.RegisterLockup("alice", huge); err != ErrGrantTooLarge {
		t.Fatalf("RegisterLockup(max) = %v, want ErrGrantTooLarge", err)
	}
	if l.HasGrant("alice") {
		t.Error("rejected registration must not create a grant")
	}

	// The bound itself is accepted.
	limit := new(uint256.Int).Rsh(new(uint256.Int).SetAllOne(), 3)
	if err := l.RegisterLockup("bob", limit); err != nil {
		t.Errorf("RegisterLockup(MaxUint256/8) = %v, want nil", err)
	}
}

func TestUnlockedPortionExactFractions(t *testing.T) {
	l, _ := fixture(t)
	amount := uint256.NewInt(800)

	for k := uint64(0); k <= 8; k++ {
		now := t0 + k*schedule.EpochLength
		got := l.UnlockedPortion(amount, now)
		want := 800 * k / 8
		if got.Uint64() != want {
			t.Errorf("UnlockedPortion(800) at epoch %d = %s, want %d", k, got.Dec(), want)
		}
	}
}

func TestUnlockedPortionFloors(t *testing.T) {
	l, _ := fixture(t)

	// 100 is not divisible by 8: each step floors, the final step is exact.
	wants := []uint64{0, 12, 25, 37, 50, 62, 75, 87, 100}
	for k, want := range wants {
		now := t0 + uint64(k)*schedule.EpochLength
		got := l.UnlockedPortion(uint256.NewInt(100), now)
		if got.Uint64() != want {
			t.Errorf("UnlockedPortion(100) at epoch %d = %s, want %d", k, got.Dec(), want)
		}
	}
}

func TestLockedBalanceDecay(t *testing.T) {
	l, balances := fixture(t)
	if err := l.RegisterLockup("alice", uint256.NewInt(100)); err != nil {
		t.Fatalf("RegisterLockup: %v", err)
	}
	balances["alice"] = uint256.NewInt(100)

	prev := l.LockedBalance("alice", t0)
	if prev.Uint64() != 100 {
		t.Fatalf("LockedBalance at start = %s, want 100", prev.Dec())
	}
	// Non-increasing across every boundary, exactly zero at the end.
	for k := uint64(1); k <= 8; k++ {
		now := t0 + k*schedule.EpochLength
		locked := l.LockedBalance("alice", now)
		if locked.Gt(prev) {
			t.Errorf("LockedBalance increased at epoch %d: %s > %s", k, locked.Dec(), prev.Dec())
		}
		prev = locked
	}
	if !prev.IsZero() {
		t.Errorf("LockedBalance at final epoch = %s, want 0", prev.Dec())
	}

	// Never re-locks, however far past the window.
	far := t0 + 2*schedule.Year + 100*schedule.Year
	if got := l.LockedBalance("alice", far); !got.IsZero() {
		t.Errorf("LockedBalance 100 years later = %s, want 0", got.Dec())
	}
}

func TestLockedBalanceWithoutGrant(t *testing.T) {
	l, balances := fixture(t)
	balances["carol"] = uint256.NewInt(500)

	if got := l.LockedBalance("carol", t0); !got.IsZero() {
		t.Errorf("LockedBalance without grant = %s, want 0", got.Dec())
	}
	if got := l.UnlockedBalance("carol", t0); got.Uint64() != 500 {
		t.Errorf("UnlockedBalance without grant = %s, want 500", got.Dec())
	}
}

func TestOrdinaryFundsSpendable(t *testing.T) {
	l, balances := fixture(t)
	if err := l.RegisterLockup("alice", uint256.NewInt(100)); err != nil {
		t.Fatalf("RegisterLockup: %v", err)
	}
	// Fully locked grant plus 10 ordinary units received on top.
	balances["alice"] = uint256.NewInt(110)

	if got := l.UnlockedBalance("alice", t0); got.Uint64() != 10 {
		t.Errorf("UnlockedBalance = %s, want 10 (ordinary funds are never locked)", got.Dec())
	}
}

func TestUnlockedBalanceClampsAtZero(t *testing.T) {
	l, balances := fixture(t)
	if err := l.RegisterLockup("alice", uint256.NewInt(100)); err != nil {
		t.Fatalf("RegisterLockup: %v", err)
	}
	// Total below the locked remainder must not underflow.
	balances["alice"] = uint256.NewInt(40)

	if got := l.UnlockedBalance("alice", t0); !got.IsZero() {
		t.Errorf("UnlockedBalance with total < locked = %s, want 0", got.Dec())
	}
}

func TestQuarterScenario(t *testing.T) {
	l, balances := fixture(t)
	if err := l.RegisterLockup("alice", uint256.NewInt(100)); err != nil {
		t.Fatalf("RegisterLockup: %v", err)
	}
	balances["alice"] = uint256.NewInt(100)

	oneQuarter := t0 + schedule.EpochLength // 91.25 days
	if got := l.UnlockedBalance("alice", oneQuarter); got.Uint64() != 12 {
		t.Errorf("UnlockedBalance after one quarter = %s, want 12", got.Dec())
	}
	if got := l.LockedBalance("alice", oneQuarter); got.Uint64() != 88 {
		t.Errorf("LockedBalance after one quarter = %s, want 88", got.Dec())
	}
}
