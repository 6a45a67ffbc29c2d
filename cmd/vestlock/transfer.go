package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-vestlock/token"
)

func transfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	dbPath := fs.String("db", "vestlock.db", "Ledger database file")
	from := fs.String("from", "", "Sender account (required)")
	to := fs.String("to", "", "Recipient account (required)")
	amountFlag := fs.String("amount", "", "Amount in base units (required)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vestlock transfer [options]\n\nMove funds between accounts, subject to the lockup guard.\n\nOptions:\n")
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
	if err := s.ledger.Transfer(token.Address(*from), token.Address(*to), amount); err != nil {
		s.close()
		return err
	}
	logger.Info().Str("from", *from).Str("to", *to).Str("amount", amount.Dec()).Msg("transferred")
	return s.save()
}

func approve(args []string) error {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	dbPath := fs.String("db", "vestlock.db", "Ledger database file")
	owner := fs.String("owner", "", "Funds owner (required)")
	spender := fs.String("spender", "", "Approved spender (required)")
	amountFlag := fs.String("amount", "", "Allowance in base units (required)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vestlock approve [options]\n\nSet a spender allowance over an owner's funds.\n\nOptions:\n")
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
	if err := s.ledger.Approve(token.Address(*owner), token.Address(*spender), amount); err != nil {
		s.close()
		return err
	}
	logger.Info().Str("owner", *owner).Str("spender", *spender).Str("amount", amount.Dec()).Msg("approved")
	return s.save()
}

func transferFrom(args []string) error {
	fs := flag.NewFlagSet("transferfrom", flag.ExitOnError)
	dbPath := fs.String("db", "vestlock.db", "Ledger database file")
	spender := fs.String("spender", "", "Spender using the allowance (required)")
	from := fs.String("from", "", "Funds owner (required)")
	to := fs.String("to", "", "Recipient account (required)")
	amountFlag := fs.String("amount", "", "Amount in base units (required)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vestlock transferfrom [options]\n\nMove funds using an allowance, subject to the lockup guard.\n\nOptions:\n")
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
	if err := s.ledger.TransferFrom(token.Address(*spender), token.Address(*from), token.Address(*to), amount); err != nil {
		s.close()
		return err
	}
	logger.Info().Str("spender", *spender).Str("from", *from).Str("to", *to).Str("amount", amount.Dec()).Msg("transferred")
	return s.save()
}
