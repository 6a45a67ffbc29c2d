package token

import "time"

// Clock supplies the ledger's notion of current time as unix seconds.
// Every operation reads it exactly once, so repeated queries within one
// operation see a single consistent timestamp.
type Clock interface {
	Now() uint64
}

// WallClock reads the system clock.
type WallClock struct{}

func (WallClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// ManualClock is a hand-advanced clock for tests and deterministic
// replays. It never moves on its own.
type ManualClock struct {
	T uint64
}

func NewManualClock(t uint64) *ManualClock {
	return &ManualClock{T: t}
}

func (m *ManualClock) Now() uint64 {
	return m.T
}

// Advance moves the clock forward by d seconds.
func (m *ManualClock) Advance(d uint64) {
	m.T += d
}
