// vestlock is a command-line front end for the lockup token ledger.
// State lives in a SQLite file; every command loads it, applies one
// operation and writes it back.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	commands := map[string]func([]string) error{
		"init":         initSchedule,
		"mint":         mint,
		"grant":        grant,
		"transfer":     transfer,
		"approve":      approve,
		"transferfrom": transferFrom,
		"balance":      balance,
		"schedule":     scheduleInfo,
		"events":       events,
		"prove":        prove,
	}

	run, ok := commands[command]
	if !ok {
		if command != "help" && command != "-h" && command != "--help" {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		}
		printUsage()
		os.Exit(1)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `vestlock - fungible token ledger with quarterly lockup release

Usage: vestlock <command> [options]

Commands:
  init          Start the release schedule (one-time)
  mint          Credit an account, growing total supply
  grant         Register a one-time lockup grant for an account
  transfer      Move funds between accounts
  approve       Set a spender allowance
  transferfrom  Move funds using an allowance
  balance       Show total/locked/unlocked balances of an account
  schedule      Show release schedule state
  events        Export the event journal (jsonl or csv)
  prove         Produce a zk proof that a spend respects the lockup

Run 'vestlock <command> -h' for command options.
`)
}
