package book

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline-go/pkg/api"
)

const dateLayout = "2006-01-02"

// Transaction is a client-side view of one ledger transaction.
type Transaction struct {
	book    *Book
	payload api.TransactionPayload
}

// ID returns the transaction's stable identifier.
func (t *Transaction) ID() string {
	return t.payload.ID
}

// Description returns the transaction description.
func (t *Transaction) Description() string {
	return t.payload.Description
}

// Posted reports whether the transaction has been posted to the ledger
// (as opposed to sitting as a draft).
func (t *Transaction) Posted() bool {
	return t.payload.Posted
}

// Amount parses the transaction amount as a decimal value.
func (t *Transaction) Amount() (decimal.Decimal, error) {
	if t.payload.Amount == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(t.payload.Amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", t.payload.Amount, err)
	}
	return amount, nil
}

// Date parses the transaction date (YYYY-MM-DD).
func (t *Transaction) Date() (time.Time, error) {
	if t.payload.Date == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(dateLayout, t.payload.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", t.payload.Date, err)
	}
	return date, nil
}

// DateString returns the raw YYYY-MM-DD date string.
func (t *Transaction) DateString() string {
	return t.payload.Date
}

// CreditAccount resolves the credit (origin) account through the Book.
func (t *Transaction) CreditAccount(ctx context.Context) (*Account, error) {
	return t.book.Account(ctx, t.payload.CreditAccount)
}

// DebitAccount resolves the debit (destination) account through the Book.
func (t *Transaction) DebitAccount(ctx context.Context) (*Account, error) {
	return t.book.Account(ctx, t.payload.DebitAccount)
}

// Property returns a transaction property, or "" when unset.
func (t *Transaction) Property(key string) string {
	return t.payload.Properties[key]
}

// URLs returns the attachment URLs of the transaction.
func (t *Transaction) URLs() []string {
	urls := make([]string, len(t.payload.URLs))
	copy(urls, t.payload.URLs)
	return urls
}

// Book returns the owning ledger view.
func (t *Transaction) Book() *Book {
	return t.book
}

// NewTransaction holds the fields for creating a transaction.
type NewTransaction struct {
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	CreditAccount string // account ID or name
	DebitAccount  string // account ID or name
	Properties    map[string]string
	URLs          []string
}

func (nt NewTransaction) payload() api.TransactionPayload {
	p := api.TransactionPayload{
		Description:   nt.Description,
		Amount:        nt.Amount.String(),
		CreditAccount: nt.CreditAccount,
		DebitAccount:  nt.DebitAccount,
		Properties:    nt.Properties,
		URLs:          nt.URLs,
	}
	if !nt.Date.IsZero() {
		p.Date = nt.Date.Format(dateLayout)
	}
	return p
}
