// Package cmd provides CLI commands for the ledgerline tool.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerline/ledgerline-go/pkg/api"
	"github.com/ledgerline/ledgerline-go/pkg/config"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledgerline",
	Short: "Work with Ledgerline ledgers from the command line",
	Long: `ledgerline is a CLI for the Ledgerline bookkeeping service.

It supports:
- Listing the chart of accounts and account groups of a ledger
- Exporting posted transactions to Beancount files
- Preventing duplicate exports with SQLite history

Example:
  ledgerline accounts
  ledgerline export --from 2026-01-01 --to 2026-01-31`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// newClient builds an API client from configuration. OAuth client
// credentials switch on token auto-refresh; otherwise the static
// access token is used.
func newClient(cfg *config.Config) *api.Client {
	clientConfig := api.ClientConfig{
		APIURL:      cfg.API.URL,
		AccessToken: cfg.API.AccessToken,
	}
	if cfg.API.ClientID != "" && cfg.API.ClientSecret != "" {
		clientConfig.TokenManager = api.NewTokenManager(
			cfg.API.ClientID,
			cfg.API.ClientSecret,
			cfg.API.TokenURL,
			cfg.API.TokenPath,
		)
	}
	return api.NewClient(clientConfig)
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
