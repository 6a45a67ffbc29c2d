package guard

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-vestlock/lockup"
)

// stubBalances is a fixed pair of balance views.
type stubBalances struct {
	total    uint64
	unlocked uint64
}

func (s stubBalances) TotalBalance(lockup.Address) *uint256.Int {
	return uint256.NewInt(s.total)
}

func (s stubBalances) UnlockedBalance(lockup.Address, uint64) *uint256.Int {
	return uint256.NewInt(s.unlocked)
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		total    uint64
		unlocked uint64
		amount   uint64
		want     error
	}{
		{"within unlocked", 100, 40, 40, nil},
		{"zero amount", 100, 0, 0, nil},
		{"exceeds unlocked", 100, 40, 41, ErrLockedFunds},
		{"exceeds total", 100, 40, 101, ErrInsufficientBalance},
		{"exact total fully unlocked", 100, 100, 100, nil},
		{"fully locked", 100, 0, 1, ErrLockedFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := stubBalances{total: tt.total, unlocked: tt.unlocked}
			err := Authorize(b, "alice", uint256.NewInt(tt.amount), 0)
			if err != tt.want {
				t.Errorf("Authorize(%d) = %v, want %v", tt.amount, err, tt.want)
			}
		})
	}
}

// A request violating both conditions must report the balance error:
// the precedence is externally observable and fixed.
func TestAuthorizePrecedence(t *testing.T) {
	b := stubBalances{total: 50, unlocked: 10}
	err := Authorize(b, "alice", uint256.NewInt(1000), 0)
	if err != ErrInsufficientBalance {
		t.Fatalf("Authorize = %v, want ErrInsufficientBalance over ErrLockedFunds", err)
	}
}
