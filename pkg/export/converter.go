package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Entry is the converter's view of one ledger transaction: ids and
// names already resolved, amount already parsed.
type Entry struct {
	ID            string
	Date          string // YYYY-MM-DD
	Description   string
	Amount        decimal.Decimal
	CreditAccount string // ledger account name (origin)
	DebitAccount  string // ledger account name (destination)
}

// Transaction represents a Beancount transaction.
type Transaction struct {
	Date      string
	Narration string
	Tags      []string
	Postings  []Posting
}

// Posting represents a posting in a Beancount transaction.
type Posting struct {
	Account  string
	Amount   decimal.Decimal
	Currency string
}

// Converter converts ledger entries to Beancount transactions.
type Converter struct {
	mapper   *Mapper
	currency string
}

// NewConverter creates a new Converter.
func NewConverter(mapper *Mapper, currency string) *Converter {
	if currency == "" {
		currency = "USD"
	}
	return &Converter{mapper: mapper, currency: currency}
}

// Convert turns a ledger entry into a balanced two-posting Beancount
// transaction: debit account positive, credit account negative.
func (c *Converter) Convert(entry Entry) Transaction {
	var tags []string
	if entry.ID != "" {
		tags = append(tags, "lline-"+entry.ID)
	}

	return Transaction{
		Date:      entry.Date,
		Narration: entry.Description,
		Tags:      tags,
		Postings: []Posting{
			{
				Account:  c.mapper.BeancountAccount(entry.DebitAccount),
				Amount:   entry.Amount,
				Currency: c.currency,
			},
			{
				Account:  c.mapper.BeancountAccount(entry.CreditAccount),
				Amount:   entry.Amount.Neg(),
				Currency: c.currency,
			},
		},
	}
}

// Format renders a Beancount transaction as text.
func Format(tx Transaction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s * %q", tx.Date, tx.Narration)
	for _, tag := range tx.Tags {
		fmt.Fprintf(&b, " #%s", tag)
	}
	b.WriteString("\n")

	for _, p := range tx.Postings {
		fmt.Fprintf(&b, "  %-50s %s %s\n", p.Account, p.Amount.String(), p.Currency)
	}
	return b.String()
}
