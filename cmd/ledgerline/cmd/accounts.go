package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ledgerline/ledgerline-go/pkg/book"
	"github.com/ledgerline/ledgerline-go/pkg/config"
)

// accountsCmd represents the accounts command.
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the chart of accounts of the configured ledger",
	Long: `List all accounts of the ledger configured via LEDGERLINE_LEDGER_ID.

Example:
  ledgerline accounts`,
	Run: runAccounts,
}

func runAccounts(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	err = cfg.Validate("api.url", "api.ledgerId")
	exitOnError(err, "invalid configuration")

	ctx := cmd.Context()
	b := book.FromClient(cfg.API.LedgerID, newClient(cfg))

	name, err := b.Name(ctx)
	exitOnError(err, "failed to load ledger")

	accounts, err := b.Accounts(ctx)
	exitOnError(err, "failed to load accounts")

	slog.Debug("Loaded accounts", "ledger", cfg.API.LedgerID, "count", len(accounts))

	fmt.Printf("\n=== %s: accounts ===\n", name)
	for _, a := range accounts {
		archived := ""
		if a.Archived() {
			archived = " (archived)"
		}
		fmt.Printf("%-24s %-10s %s%s\n", a.ID(), a.Type(), a.Name(), archived)
	}
	fmt.Println()
}

// groupsCmd represents the groups command.
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the account groups of the configured ledger",
	Run:   runGroups,
}

func runGroups(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	err = cfg.Validate("api.url", "api.ledgerId")
	exitOnError(err, "invalid configuration")

	ctx := cmd.Context()
	b := book.FromClient(cfg.API.LedgerID, newClient(cfg))

	name, err := b.Name(ctx)
	exitOnError(err, "failed to load ledger")

	groups, err := b.Groups(ctx)
	exitOnError(err, "failed to load groups")

	fmt.Printf("\n=== %s: groups ===\n", name)
	for _, g := range groups {
		hidden := ""
		if g.Hidden() {
			hidden = " (hidden)"
		}
		fmt.Printf("%-24s %s%s\n", g.ID(), g.Name(), hidden)
	}
	fmt.Println()
}
