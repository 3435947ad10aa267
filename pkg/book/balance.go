package book

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Balance is one aggregate row of a balance query.
type Balance struct {
	AccountID  string
	GroupID    string
	Name       string
	Period     decimal.Decimal
	Cumulative decimal.Decimal
}

// Balances runs a balance query against the ledger. Results are
// computed server-side and never cached on the Book.
func (b *Book) Balances(ctx context.Context, query string) ([]Balance, error) {
	payload, err := b.svc.Balances.QueryBalances(ctx, b.id, query)
	if err != nil {
		return nil, err
	}

	rows := make([]Balance, len(payload.Rows))
	for i, r := range payload.Rows {
		period, err := decimal.NewFromString(r.PeriodBalance)
		if err != nil {
			return nil, fmt.Errorf("invalid period balance %q for %s: %w", r.PeriodBalance, r.Name, err)
		}
		cumulative, err := decimal.NewFromString(r.CumulativeBalance)
		if err != nil {
			return nil, fmt.Errorf("invalid cumulative balance %q for %s: %w", r.CumulativeBalance, r.Name, err)
		}
		rows[i] = Balance{
			AccountID:  r.AccountID,
			GroupID:    r.GroupID,
			Name:       r.Name,
			Period:     period,
			Cumulative: cumulative,
		}
	}
	return rows, nil
}
