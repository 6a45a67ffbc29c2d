package main

import (
	"fmt"
	"os"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/pflow-xyz/go-vestlock/eventlog"
	"github.com/pflow-xyz/go-vestlock/storage"
	"github.com/pflow-xyz/go-vestlock/token"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// state bundles the open store, the replayed journal and the restored
// ledger for one command invocation.
type state struct {
	store   *storage.Store
	journal *eventlog.Journal
	ledger  *token.Ledger
}

func openState(dbPath string) (*state, error) {
	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, err
	}
	snap, err := store.LoadSnapshot()
	if err != nil {
		store.Close()
		return nil, err
	}
	events, err := store.Events()
	if err != nil {
		store.Close()
		return nil, err
	}
	journal := eventlog.NewJournal()
	journal.Replay(events)

	ledger, err := token.RestoreLedger(token.WallClock{}, journal, snap)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &state{store: store, journal: journal, ledger: ledger}, nil
}

// save writes the snapshot and any new journal entries, then closes the
// store.
func (s *state) save() error {
	if err := s.store.SaveSnapshot(s.ledger.Snapshot()); err != nil {
		s.store.Close()
		return err
	}
	if err := s.store.AppendEvents(s.journal.Events()); err != nil {
		s.store.Close()
		return err
	}
	return s.store.Close()
}

func (s *state) close() {
	s.store.Close()
}

func parseAmount(dec string) (*uint256.Int, error) {
	if dec == "" {
		return nil, fmt.Errorf("amount is required")
	}
	amount, err := uint256.FromDecimal(dec)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", dec, err)
	}
	return amount, nil
}
