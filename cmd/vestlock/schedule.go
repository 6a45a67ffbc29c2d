package main

import (
	"flag"
	"fmt"
	"os"
)

func initSchedule(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dbPath := fs.String("db", "vestlock.db", "Ledger database file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vestlock init [options]\n\nStart the release schedule. Fails if already started.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openState(*dbPath)
	if err != nil {
		return err
	}
	if err := s.ledger.InitializeSchedule(); err != nil {
		s.close()
		return err
	}
	logger.Info().Uint64("lock_start", s.ledger.LockStart()).Msg("schedule started")
	return s.save()
}

func scheduleInfo(args []string) error {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)
	dbPath := fs.String("db", "vestlock.db", "Ledger database file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vestlock schedule [options]\n\nShow release schedule state.\n\nOptions:\n")
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

	if s.ledger.LockStart() == 0 {
		fmt.Println("schedule: not started")
		return nil
	}
	fmt.Printf("lock start:    %d\n", s.ledger.LockStart())
	fmt.Printf("epochs passed: %d\n", s.ledger.EpochsPassed())
	fmt.Printf("last epoch:    %d\n", s.ledger.LastEpoch())
	fmt.Printf("next epoch:    %d\n", s.ledger.NextEpoch())
	fmt.Printf("final epoch:   %d\n", s.ledger.FinalEpoch())
	return nil
}
