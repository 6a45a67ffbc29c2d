// Package schedule derives quarterly release epochs from a single start
// timestamp. The release window is fixed: eight epochs of a quarter year
// each, two years in total. All timestamps are unix seconds.
package schedule

import "errors"

const (
	// Year is 365 days in seconds.
	Year uint64 = 365 * 24 * 60 * 60

	// EpochLength is one quarter of a year (91.25 days).
	EpochLength = Year / 4

	// TotalEpochs is the number of epochs in the two-year window.
	TotalEpochs uint64 = 8
)

var (
	ErrAlreadyInitialized = errors.New("schedule: already initialized")
	ErrZeroStart          = errors.New("schedule: start timestamp must be nonzero")
)

// Clock anchors all epoch arithmetic to a start timestamp that is set
// exactly once. The zero value is an unstarted clock: every query on it
// reports zero epochs passed.
type Clock struct {
	lockStart uint64
}

// NewClock returns an unstarted clock.
func NewClock() *Clock {
	return &Clock{}
}

// Restore rebuilds a clock from a persisted start timestamp.
// A zero lockStart restores an unstarted clock.
func Restore(lockStart uint64) *Clock {
	return &Clock{lockStart: lockStart}
}

// Initialize sets the start timestamp. It can succeed at most once for
// the lifetime of the clock.
func (c *Clock) Initialize(now uint64) error {
	if c.lockStart != 0 {
		return ErrAlreadyInitialized
	}
	if now == 0 {
		return ErrZeroStart
	}
	c.lockStart = now
	return nil
}

// Started reports whether the schedule has been initialized.
func (c *Clock) Started() bool {
	return c.lockStart != 0
}

// LockStart returns the start timestamp, or 0 if not started.
func (c *Clock) LockStart() uint64 {
	return c.lockStart
}

// EpochsPassed returns how many full epochs have elapsed at now, clamped
// to [0, TotalEpochs]. An unstarted clock, or a now before the start
// (clock skew), reports 0.
func (c *Clock) EpochsPassed(now uint64) uint64 {
	if c.lockStart == 0 || now < c.lockStart {
		return 0
	}
	k := (now - c.lockStart) / EpochLength
	if k > TotalEpochs {
		return TotalEpochs
	}
	return k
}

// LastEpoch returns the boundary timestamp of the most recently passed
// epoch at now, or 0 if not started.
func (c *Clock) LastEpoch(now uint64) uint64 {
	if c.lockStart == 0 {
		return 0
	}
	return c.lockStart + c.EpochsPassed(now)*EpochLength
}

// NextEpoch returns the boundary timestamp of the upcoming epoch at now,
// clamped to FinalEpoch, or 0 if not started.
func (c *Clock) NextEpoch(now uint64) uint64 {
	if c.lockStart == 0 {
		return 0
	}
	next := c.LastEpoch(now) + EpochLength
	if final := c.FinalEpoch(); next > final {
		return final
	}
	return next
}

// FinalEpoch returns the timestamp at which the window closes
// (start + 2 years), or 0 if not started.
func (c *Clock) FinalEpoch() uint64 {
	if c.lockStart == 0 {
		return 0
	}
	return c.lockStart + 2*Year
}
