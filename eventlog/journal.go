// Package eventlog records ledger activity as an append-only journal and
// persists it as JSONL or CSV.
package eventlog

import (
	"sync"

	"github.com/google/uuid"
)

// Kind classifies a ledger event.
type Kind string

const (
	KindScheduleInitialized Kind = "schedule_initialized"
	KindLockupRegistered    Kind = "lockup_registered"
	KindMint                Kind = "mint"
	KindBurn                Kind = "burn"
	KindTransfer            Kind = "transfer"
	KindApproval            Kind = "approval"
)

// Event is one journal entry. Amount is the decimal rendering of the
// uint256 value so entries round-trip through JSON and CSV losslessly.
type Event struct {
	ID        string `json:"id"`
	Seq       uint64 `json:"seq"`
	Kind      Kind   `json:"kind"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Timestamp uint64 `json:"timestamp"`
}

// Journal is an in-memory append-only event log. Appends assign a fresh
// UUID and a monotonically increasing sequence number.
type Journal struct {
	mu     sync.Mutex
	events []Event
	seq    uint64
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Append records an event and returns the stored entry.
func (j *Journal) Append(kind Kind, from, to, amount string, ts uint64) Event {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.seq++
	ev := Event{
		ID:        uuid.New().String(),
		Seq:       j.seq,
		Kind:      kind,
		From:      from,
		To:        to,
		Amount:    amount,
		Timestamp: ts,
	}
	j.events = append(j.events, ev)
	return ev
}

// Replay loads previously persisted events, continuing the sequence from
// the highest restored Seq.
func (j *Journal) Replay(events []Event) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, ev := range events {
		j.events = append(j.events, ev)
		if ev.Seq > j.seq {
			j.seq = ev.Seq
		}
	}
}

// Len returns the number of recorded events.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.events)
}

// Events returns a copy of all recorded events in append order.
func (j *Journal) Events() []Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Event, len(j.events))
	copy(out, j.events)
	return out
}

// ByKind returns all events of the given kind, in append order.
func (j *Journal) ByKind(kind Kind) []Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []Event
	for _, ev := range j.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// ByAccount returns all events touching the given account as sender or
// recipient, in append order.
func (j *Journal) ByAccount(account string) []Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []Event
	for _, ev := range j.events {
		if ev.From == account || ev.To == account {
			out = append(out, ev)
		}
	}
	return out
}
