package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-vestlock/eventlog"
)

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	dbPath := fs.String("db", "vestlock.db", "Ledger database file")
	format := fs.String("format", "jsonl", "Output format: jsonl or csv")
	output := fs.String("output", "", "Output file (default stdout)")
	kind := fs.String("kind", "", "Filter by event kind (optional)")
	account := fs.String("account", "", "Filter by account (optional)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vestlock events [options]\n\nExport the event journal.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openState(*dbPath)
	if err != nil {
		return err
	}
	defer s.close()

	var evs []eventlog.Event
	switch {
	case *kind != "":
		evs = s.journal.ByKind(eventlog.Kind(*kind))
	case *account != "":
		evs = s.journal.ByAccount(*account)
	default:
		evs = s.journal.Events()
	}

	w := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "jsonl":
		return eventlog.WriteJSONL(w, evs)
	case "csv":
		return eventlog.WriteCSV(w, evs)
	default:
		return fmt.Errorf("unknown format %q (want jsonl or csv)", *format)
	}
}
