package book

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline-go/pkg/api"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeIncoming  AccountType = "incoming"
	AccountTypeOutgoing  AccountType = "outgoing"
)

// Account is a client-side view of one account in a ledger. It keeps a
// back-reference to its Book for convenience delegation only; the Book
// does not manage the Account's lifecycle through it.
type Account struct {
	book    *Book
	payload api.AccountPayload
}

// ID returns the account's stable identifier.
func (a *Account) ID() string {
	return a.payload.ID
}

// Name returns the account's display name.
func (a *Account) Name() string {
	return a.payload.Name
}

// NormalizedName returns the normalized lookup form of the name.
func (a *Account) NormalizedName() NormalizedName {
	return Normalize(a.payload.Name)
}

// Type returns the account type.
func (a *Account) Type() AccountType {
	return AccountType(a.payload.Type)
}

// Archived reports whether the account is archived.
func (a *Account) Archived() bool {
	return a.payload.Archived
}

// Permanent reports whether the account is permanent (balance carries
// over across periods) rather than a period account.
func (a *Account) Permanent() bool {
	return a.payload.Permanent
}

// Property returns an account property, or "" when unset.
func (a *Account) Property(key string) string {
	return a.payload.Properties[key]
}

// GroupIDs returns the IDs of the groups this account belongs to.
func (a *Account) GroupIDs() []string {
	ids := make([]string, len(a.payload.Groups))
	copy(ids, a.payload.Groups)
	return ids
}

// Book returns the owning ledger view.
func (a *Account) Book() *Book {
	return a.book
}

// Balance queries the account's cumulative balance. This is a remote
// call on every use; balances are never cached on the Book.
func (a *Account) Balance(ctx context.Context) (decimal.Decimal, error) {
	rows, err := a.book.Balances(ctx, fmt.Sprintf("account:'%s'", a.payload.Name))
	if err != nil {
		return decimal.Zero, err
	}
	for _, row := range rows {
		if row.AccountID == a.payload.ID {
			return row.Cumulative, nil
		}
	}
	return decimal.Zero, nil
}

// NewAccount holds the fields for creating an account.
type NewAccount struct {
	Name       string
	Type       AccountType
	Groups     []string // group IDs or names
	Properties map[string]string
}

func (na NewAccount) payload() api.AccountPayload {
	return api.AccountPayload{
		Name:       na.Name,
		Type:       string(na.Type),
		Groups:     na.Groups,
		Properties: na.Properties,
	}
}
