// Package api provides the Ledgerline REST API client and payload types.
package api

// LedgerPayload represents a ledger resource as returned by the API.
// A single fetch bundles the ledger's scalar metadata together with its
// full chart of accounts and account groups.
type LedgerPayload struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	OwnerName        string            `json:"owner_name,omitempty"`
	Permission       string            `json:"permission,omitempty"` // owner, editor, poster, viewer, none
	CollectionID     string            `json:"collection_id,omitempty"`
	FractionDigits   int               `json:"fraction_digits"`
	DatePattern      string            `json:"date_pattern,omitempty"`      // e.g. "yyyy/MM/dd"
	DecimalSeparator string            `json:"decimal_separator,omitempty"` // "dot" or "comma"
	TimeZone         string            `json:"time_zone,omitempty"`         // IANA name
	TimeZoneOffset   int               `json:"time_zone_offset,omitempty"`  // minutes from UTC
	LastUpdateMs     int64             `json:"last_update_ms,omitempty"`
	Properties       map[string]string `json:"properties,omitempty"`
	Accounts         []AccountPayload  `json:"accounts,omitempty"`
	Groups           []GroupPayload    `json:"groups,omitempty"`
}

// AccountPayload represents an account in the chart of accounts.
type AccountPayload struct {
	ID         string            `json:"id,omitempty"`
	Name       string            `json:"name"`
	Type       string            `json:"type,omitempty"` // asset, liability, incoming, outgoing
	Archived   bool              `json:"archived,omitempty"`
	Permanent  bool              `json:"permanent,omitempty"`
	Groups     []string          `json:"groups,omitempty"` // group IDs or names
	Properties map[string]string `json:"properties,omitempty"`
}

// GroupPayload represents an account group.
type GroupPayload struct {
	ID         string            `json:"id,omitempty"`
	Name       string            `json:"name"`
	ParentID   string            `json:"parent_id,omitempty"`
	Hidden     bool              `json:"hidden,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// TransactionPayload represents a transaction posted to or read from a ledger.
type TransactionPayload struct {
	ID            string            `json:"id,omitempty"`
	Date          string            `json:"date,omitempty"` // YYYY-MM-DD
	Description   string            `json:"description,omitempty"`
	Amount        string            `json:"amount,omitempty"` // decimal string
	CreditAccount string            `json:"credit_account,omitempty"`
	DebitAccount  string            `json:"debit_account,omitempty"`
	Posted        bool              `json:"posted,omitempty"`
	Properties    map[string]string `json:"properties,omitempty"`
	URLs          []string          `json:"urls,omitempty"`
}

// TransactionList is one page of a transaction listing.
// Cursor is empty on the last page.
type TransactionList struct {
	Items  []TransactionPayload `json:"items"`
	Cursor string               `json:"cursor,omitempty"`
}

// BalanceRow is one aggregate row of a balance query result.
type BalanceRow struct {
	AccountID         string `json:"account_id,omitempty"`
	GroupID           string `json:"group_id,omitempty"`
	Name              string `json:"name"`
	PeriodBalance     string `json:"period_balance"`     // decimal string
	CumulativeBalance string `json:"cumulative_balance"` // decimal string
}

// BalancesPayload represents the response of a balance query.
type BalancesPayload struct {
	Query string       `json:"query,omitempty"`
	Rows  []BalanceRow `json:"rows"`
}

// ledgerResponse wraps a single ledger resource.
type ledgerResponse struct {
	Ledger LedgerPayload `json:"ledger"`
}

// accountsResponse wraps account batch responses.
type accountsResponse struct {
	Accounts []AccountPayload `json:"accounts"`
}

// groupsResponse wraps group batch responses.
type groupsResponse struct {
	Groups []GroupPayload `json:"groups"`
}

// transactionsResponse wraps transaction batch responses.
type transactionsResponse struct {
	Transactions []TransactionPayload `json:"transactions"`
}

// ErrorResponse represents an error body from the Ledgerline API.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
