package cmd

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ledgerline/ledgerline-go/pkg/book"
	"github.com/ledgerline/ledgerline-go/pkg/config"
	"github.com/ledgerline/ledgerline-go/pkg/export"
	"github.com/ledgerline/ledgerline-go/pkg/history"
	"github.com/ledgerline/ledgerline-go/pkg/pathutil"
)

var (
	dateFrom string
	dateTo   string
	dryRun   bool
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export posted ledger transactions to Beancount",
	Long: `Export posted transactions from a Ledgerline ledger to Beancount files.

This command:
1. Fetches posted transactions in the date range
2. Filters out already exported transactions
3. Converts them to Beancount format using the account mapping
4. Appends to monthly Beancount files
5. Records export history in SQLite

Example:
  ledgerline export --from 2026-01-01 --to 2026-01-31
  ledgerline export --from 2026-01-01 --to 2026-01-31 --dry-run`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&dateFrom, "from", "", "Start date (YYYY-MM-DD) (required)")
	exportCmd.Flags().StringVar(&dateTo, "to", "", "End date (YYYY-MM-DD) (required)")
	exportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Dry run mode (no file writes)")

	exportCmd.MarkFlagRequired("from")
	exportCmd.MarkFlagRequired("to")
}

func runExport(cmd *cobra.Command, args []string) {
	slog.Info("Starting export", "from", dateFrom, "to", dateTo, "dry_run", dryRun)

	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	err = cfg.Validate("api.url", "api.ledgerId", "export.root", "export.mappingPath")
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

	mapper, err := export.NewMapper(cfg.Export.MappingPath)
	exitOnError(err, "failed to load account mapping")
	converter := export.NewConverter(mapper, cfg.Export.Currency)
	repo := export.NewFileSystemRepository(resolver)

	ctx := cmd.Context()
	b := book.FromClient(cfg.API.LedgerID, newClient(cfg))

	query := fmt.Sprintf("posted:true after:%s before:%s", dateFrom, dateTo)
	slog.Info("Fetching transactions", "ledger", cfg.API.LedgerID, "query", query)

	transactions, err := b.Transactions(query).All(ctx)
	exitOnError(err, "failed to fetch transactions")
	slog.Info("Fetched transactions", "count", len(transactions))

	exported, err := exportHistory.ExportedIDs(cfg.API.LedgerID)
	exitOnError(err, "failed to get exported IDs")
	exportedSet := make(map[string]bool, len(exported))
	for _, id := range exported {
		exportedSet[id] = true
	}

	entriesByMonth := make(map[string][]export.Entry)
	skipped := 0
	for _, t := range transactions {
		if exportedSet[t.ID()] {
			skipped++
			continue
		}
		entry, err := buildEntry(cmd, b, t)
		exitOnError(err, "failed to resolve transaction")
		if len(entry.Date) < 7 {
			exitOnError(fmt.Errorf("transaction %s has no date", t.ID()), "failed to resolve transaction")
		}
		month := entry.Date[:7]
		entriesByMonth[month] = append(entriesByMonth[month], entry)
	}

	newCount := len(transactions) - skipped
	slog.Info("New transactions to export", "new", newCount, "skipped", skipped)

	if newCount == 0 {
		fmt.Println("No new transactions to export")
		return
	}

	if dryRun {
		fmt.Printf("[dry-run] Would export %d transactions across %d month(s)\n", newCount, len(entriesByMonth))
		return
	}

	months := make([]string, 0, len(entriesByMonth))
	for month := range entriesByMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	for _, month := range months {
		entries := entriesByMonth[month]
		converted := make([]export.Transaction, len(entries))
		for i, e := range entries {
			converted[i] = converter.Convert(e)
		}

		filePath, err := repo.AppendTransactions(month, converted)
		exitOnError(err, "failed to write month file")
		slog.Info("Wrote month file", "file", filePath, "transactions", len(entries))

		for _, e := range entries {
			err := exportHistory.RecordExport(history.Record{
				LedgerID:      cfg.API.LedgerID,
				TransactionID: e.ID,
				IssueDate:     e.Date,
				Amount:        e.Amount.String(),
				BeancountFile: filePath,
			})
			exitOnError(err, "failed to record export history")
		}
	}

	fmt.Printf("Exported %d transactions\n", newCount)
}

// buildEntry resolves a transaction's accounts through the Book cache
// into a converter entry.
func buildEntry(cmd *cobra.Command, b *book.Book, t *book.Transaction) (export.Entry, error) {
	ctx := cmd.Context()

	amount, err := t.Amount()
	if err != nil {
		return export.Entry{}, err
	}

	entry := export.Entry{
		ID:          t.ID(),
		Date:        t.DateString(),
		Description: t.Description(),
		Amount:      amount,
	}

	if credit, err := t.CreditAccount(ctx); err != nil {
		return export.Entry{}, err
	} else if credit != nil {
		entry.CreditAccount = credit.Name()
	}

	if debit, err := t.DebitAccount(ctx); err != nil {
		return export.Entry{}, err
	} else if debit != nil {
		entry.DebitAccount = debit.Name()
	}

	return entry, nil
}
