package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-vestlock/token"
)

func mint(args []string) error {
	fs := flag.NewFlagSet("mint", flag.ExitOnError)
	dbPath := fs.String("db", "vestlock.db", "Ledger database file")
	to := fs.String("to", "", "Recipient account (required)")
	amountFlag := fs.String("amount", "", "Amount in base units (required)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vestlock mint [options]\n\nCredit an account, growing total supply.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	amount, err := parseAmount(*amountFlag)
	if err != nil {
		return err
	}

	s, err := openState(*dbPath)
	if err != nil {
		return err
	}
	if err := s.ledger.Mint(token.Address(*to), amount); err != nil {
		s.close()
		return err
	}
	logger.Info().Str("to", *to).Str("amount", amount.Dec()).Msg("minted")
	return s.save()
}

func grant(args []string) error {
	fs := flag.NewFlagSet("grant", flag.ExitOnError)
	dbPath := fs.String("db", "vestlock.db", "Ledger database file")
	account := fs.String("account", "", "Grant recipient (required)")
	amountFlag := fs.String("amount", "", "Amount to freeze in base units (required)")
	mintToo := fs.Bool("mint", true, "Also mint the granted amount to the account")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: vestlock grant [options]

Register a one-time lockup grant. By default the granted amount is also
minted to the account; pass -mint=false to freeze existing funds.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	amount, err := parseAmount(*amountFlag)
	if err != nil {
		return err
	}

	s, err := openState(*dbPath)
	if err != nil {
		return err
	}
	addr := token.Address(*account)
	if err := s.ledger.RegisterLockup(addr, amount); err != nil {
		s.close()
		return err
	}
	if *mintToo {
		if err := s.ledger.Mint(addr, amount); err != nil {
			s.close()
			return err
		}
	}
	logger.Info().Str("account", *account).Str("amount", amount.Dec()).Bool("minted", *mintToo).Msg("lockup registered")
	return s.save()
}

func balance(args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	dbPath := fs.String("db", "vestlock.db", "Ledger database file")
	account := fs.String("account", "", "Account to inspect (required)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vestlock balance [options]\n\nShow total, locked and unlocked balances.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *account == "" {
		return fmt.Errorf("account is required")
	}

	s, err := openState(*dbPath)
	if err != nil {
		return err
	}
	defer s.close()

	addr := token.Address(*account)
	fmt.Printf("total:    %s\n", s.ledger.BalanceOf(addr).Dec())
	fmt.Printf("locked:   %s\n", s.ledger.LockedBalance(addr).Dec())
	fmt.Printf("unlocked: %s\n", s.ledger.UnlockedBalance(addr).Dec())
	return nil
}
