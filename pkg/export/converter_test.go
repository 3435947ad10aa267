package export

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func testConverter() *Converter {
	mapper := NewMapperFromConfig(MappingConfig{
		Accounts: []AccountMapping{
			{Ledger: "Checking", Beancount: "Assets:Bank:Checking"},
			{Ledger: "Office supplies", Beancount: "Expenses:Office:Supplies"},
		},
	})
	return NewConverter(mapper, "USD")
}

func TestConvert(t *testing.T) {
	c := testConverter()

	tx := c.Convert(Entry{
		ID:            "txn-42",
		Date:          "2026-01-15",
		Description:   "Printer paper",
		Amount:        decimal.NewFromFloat(34.99),
		CreditAccount: "Checking",
		DebitAccount:  "Office supplies",
	})

	if tx.Date != "2026-01-15" {
		t.Errorf("Date = %q", tx.Date)
	}
	if tx.Narration != "Printer paper" {
		t.Errorf("Narration = %q", tx.Narration)
	}
	if len(tx.Tags) != 1 || tx.Tags[0] != "lline-txn-42" {
		t.Errorf("Tags = %v", tx.Tags)
	}
	if len(tx.Postings) != 2 {
		t.Fatalf("got %d postings, want 2", len(tx.Postings))
	}

	debit := tx.Postings[0]
	if debit.Account != "Expenses:Office:Supplies" {
		t.Errorf("debit account = %q", debit.Account)
	}
	if !debit.Amount.Equal(decimal.NewFromFloat(34.99)) {
		t.Errorf("debit amount = %s", debit.Amount)
	}

	credit := tx.Postings[1]
	if credit.Account != "Assets:Bank:Checking" {
		t.Errorf("credit account = %q", credit.Account)
	}
	if !credit.Amount.Equal(decimal.NewFromFloat(-34.99)) {
		t.Errorf("credit amount = %s", credit.Amount)
	}

	// A double-entry transaction must balance to zero.
	if sum := debit.Amount.Add(credit.Amount); !sum.IsZero() {
		t.Errorf("postings sum to %s, want 0", sum)
	}
}

func TestConvertWithoutID(t *testing.T) {
	c := testConverter()

	tx := c.Convert(Entry{
		Date:          "2026-02-01",
		Description:   "Transfer",
		Amount:        decimal.NewFromInt(100),
		CreditAccount: "Checking",
		DebitAccount:  "Office supplies",
	})
	if len(tx.Tags) != 0 {
		t.Errorf("Tags = %v, want none", tx.Tags)
	}
}

func TestConvertUnmappedAccount(t *testing.T) {
	c := testConverter()

	tx := c.Convert(Entry{
		ID:            "txn-1",
		Date:          "2026-03-01",
		Description:   "Lunch",
		Amount:        decimal.NewFromInt(12),
		CreditAccount: "Checking",
		DebitAccount:  "Team lunch",
	})
	if got := tx.Postings[0].Account; got != "Expenses:Unmapped:TeamLunch" {
		t.Errorf("unmapped debit account = %q", got)
	}
}

func TestFormat(t *testing.T) {
	out := Format(Transaction{
		Date:      "2026-01-15",
		Narration: "Printer paper",
		Tags:      []string{"lline-txn-42"},
		Postings: []Posting{
			{Account: "Expenses:Office:Supplies", Amount: decimal.NewFromFloat(34.99), Currency: "USD"},
			{Account: "Assets:Bank:Checking", Amount: decimal.NewFromFloat(-34.99), Currency: "USD"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[0] != `2026-01-15 * "Printer paper" #lline-txn-42` {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Expenses:Office:Supplies") || !strings.Contains(lines[1], "34.99 USD") {
		t.Errorf("debit line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Assets:Bank:Checking") || !strings.Contains(lines[2], "-34.99 USD") {
		t.Errorf("credit line = %q", lines[2])
	}
}

func TestConverterDefaultCurrency(t *testing.T) {
	mapper := NewMapperFromConfig(MappingConfig{})
	c := NewConverter(mapper, "")

	tx := c.Convert(Entry{
		Date:          "2026-01-01",
		Description:   "x",
		Amount:        decimal.NewFromInt(1),
		CreditAccount: "a",
		DebitAccount:  "b",
	})
	if tx.Postings[0].Currency != "USD" {
		t.Errorf("default currency = %q", tx.Postings[0].Currency)
	}
}
