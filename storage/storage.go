// Package storage persists ledger snapshots and the event journal in a
// SQLite database.
package storage

import (
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/pflow-xyz/go-vestlock/eventlog"
	"github.com/pflow-xyz/go-vestlock/token"
)

// Store wraps the SQLite database holding one ledger's state.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// migrate creates the schema if it does not exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS meta (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS balances (
		account TEXT PRIMARY KEY,
		amount TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS allowances (
		owner TEXT NOT NULL,
		spender TEXT NOT NULL,
		amount TEXT NOT NULL,
		PRIMARY KEY (owner, spender)
	);

	CREATE TABLE IF NOT EXISTS grants (
		account TEXT PRIMARY KEY,
		amount TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		kind TEXT NOT NULL,
		from_account TEXT,
		to_account TEXT,
		amount TEXT,
		ts INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot replaces the stored ledger state with snap, in one
// transaction.
func (s *Store) SaveSnapshot(snap *token.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"balances", "allowances", "grants"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO meta (k, v) VALUES ('lock_start', ?), ('total_supply', ?)",
		strconv.FormatUint(snap.LockStart, 10), snap.TotalSupply,
	); err != nil {
		return fmt.Errorf("saving meta: %w", err)
	}
	for account, amount := range snap.Balances {
		if _, err := tx.Exec("INSERT INTO balances (account, amount) VALUES (?, ?)", account, amount); err != nil {
			return fmt.Errorf("saving balance of %s: %w", account, err)
		}
	}
	for owner, row := range snap.Allowances {
		for spender, amount := range row {
			if _, err := tx.Exec(
				"INSERT INTO allowances (owner, spender, amount) VALUES (?, ?, ?)",
				owner, spender, amount,
			); err != nil {
				return fmt.Errorf("saving allowance %s/%s: %w", owner, spender, err)
			}
		}
	}
	for account, amount := range snap.Grants {
		if _, err := tx.Exec("INSERT INTO grants (account, amount) VALUES (?, ?)", account, amount); err != nil {
			return fmt.Errorf("saving grant of %s: %w", account, err)
		}
	}
	return tx.Commit()
}

// LoadSnapshot reads the stored ledger state. A fresh database loads as
// an empty snapshot.
func (s *Store) LoadSnapshot() (*token.Snapshot, error) {
	snap := &token.Snapshot{
		TotalSupply: "0",
		Balances:    make(map[string]string),
		Allowances:  make(map[string]map[string]string),
		Grants:      make(map[string]string),
	}

	rows, err := s.db.Query("SELECT k, v FROM meta")
	if err != nil {
		return nil, fmt.Errorf("loading meta: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning meta: %w", err)
		}
		switch k {
		case "lock_start":
			ls, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing lock_start: %w", err)
			}
			snap.LockStart = ls
		case "total_supply":
			snap.TotalSupply = v
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading meta: %w", err)
	}

	if err := s.loadPairs("SELECT account, amount FROM balances", snap.Balances); err != nil {
		return nil, err
	}
	if err := s.loadPairs("SELECT account, amount FROM grants", snap.Grants); err != nil {
		return nil, err
	}

	arows, err := s.db.Query("SELECT owner, spender, amount FROM allowances")
	if err != nil {
		return nil, fmt.Errorf("loading allowances: %w", err)
	}
	defer arows.Close()
	for arows.Next() {
		var owner, spender, amount string
		if err := arows.Scan(&owner, &spender, &amount); err != nil {
			return nil, fmt.Errorf("scanning allowance: %w", err)
		}
		row, ok := snap.Allowances[owner]
		if !ok {
			row = make(map[string]string)
			snap.Allowances[owner] = row
		}
		row[spender] = amount
	}
	if err := arows.Err(); err != nil {
		return nil, fmt.Errorf("loading allowances: %w", err)
	}

	return snap, nil
}

func (s *Store) loadPairs(query string, dst map[string]string) error {
	rows, err := s.db.Query(query)
	if err != nil {
		return fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return fmt.Errorf("scanning: %w", err)
		}
		dst[k] = v
	}
	return rows.Err()
}

// AppendEvents stores journal entries past the highest sequence already
// persisted.
func (s *Store) AppendEvents(events []eventlog.Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, ev := range events {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO events (seq, id, kind, from_account, to_account, amount, ts)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			ev.Seq, ev.ID, string(ev.Kind), ev.From, ev.To, ev.Amount, ev.Timestamp,
		); err != nil {
			return fmt.Errorf("saving event %d: %w", ev.Seq, err)
		}
	}
	return tx.Commit()
}

// Events returns all stored events in sequence order.
func (s *Store) Events() ([]eventlog.Event, error) {
	rows, err := s.db.Query(
		"SELECT seq, id, kind, from_account, to_account, amount, ts FROM events ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	defer rows.Close()

	var events []eventlog.Event
	for rows.Next() {
		var ev eventlog.Event
		var kind string
		if err := rows.Scan(&ev.Seq, &ev.ID, &kind, &ev.From, &ev.To, &ev.Amount, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		ev.Kind = eventlog.Kind(kind)
		events = append(events, ev)
	}
	return events, rows.Err()
}
