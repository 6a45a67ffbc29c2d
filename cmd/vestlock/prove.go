package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-vestlock/proof"
	"github.com/pflow-xyz/go-vestlock/token"
)

func prove(args []string) error {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	dbPath := fs.String("db", "vestlock.db", "Ledger database file")
	account := fs.String("account", "", "Account with a lockup grant (required)")
	spendFlag := fs.String("spend", "", "Spend amount to prove admissible (required)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: vestlock prove [options]

Produce and verify a Groth16 proof that spending the given amount from
the account respects its lockup schedule. The grant amount stays private;
only the total balance, the spend and the epoch count are public.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	spend, err := parseAmount(*spendFlag)
	if err != nil {
		return err
	}

	s, err := openState(*dbPath)
	if err != nil {
		return err
	}
	defer s.close()

	addr := token.Address(*account)
	g, ok := s.ledger.Grant(addr)
	if !ok {
		return fmt.Errorf("account %s has no lockup grant", *account)
	}
	total := s.ledger.BalanceOf(addr)
	epochs := s.ledger.EpochsPassed()

	logger.Info().Msg("compiling release circuit")
	prover, err := proof.NewProver()
	if err != nil {
		return err
	}
	logger.Info().Int("constraints", prover.Constraints()).Msg("circuit compiled")

	prf, pub, err := prover.ProveSpend(total, spend, g.Amount, epochs)
	if err != nil {
		return err
	}
	if err := prover.Verify(prf, pub); err != nil {
		return err
	}
	logger.Info().
		Str("account", *account).
		Str("spend", spend.Dec()).
		Uint64("epochs", epochs).
		Msg("proof verified")
	return nil
}
