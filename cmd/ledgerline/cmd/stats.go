package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ledgerline/ledgerline-go/pkg/config"
	"github.com/ledgerline/ledgerline-go/pkg/history"
	"github.com/ledgerline/ledgerline-go/pkg/pathutil"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display export statistics",
	Long: `Display statistics about exported transactions.

Shows:
- Total number of exported transactions
- Number of ledgers exported from
- Last export timestamp

Example:
  ledgerline stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	err = cfg.Validate("export.root")
	exitOnError(err, "invalid configuration")

	resolver := pathutil.New(pathutil.Config{
		ExportRoot:   cfg.Export.Root,
		DatabasePath: cfg.Export.DBPath,
	})

	dbPath := resolver.DatabasePath()
	slog.Debug("Opening database", "path", dbPath)

	conn, err := history.Open(dbPath)
	exitOnError(err, "failed to open database")
	defer conn.Close()

	exportHistory := history.NewExportHistory(conn)

	stats, err := exportHistory.GetStats()
	exitOnError(err, "failed to get statistics")

	fmt.Println("\n=== Export Statistics ===")
	fmt.Printf("Total exported transactions: %d\n", stats.TotalExported)
	fmt.Printf("Ledgers:                     %d\n", stats.Ledgers)

	if stats.LastExport.Valid {
		fmt.Printf("Last export:                 %s\n", stats.LastExport.String)
	} else {
		fmt.Printf("Last export:                 (never)\n")
	}
	fmt.Println()
}
