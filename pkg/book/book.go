// Package book models a remote Ledgerline general ledger on the client
// side. A Book lazily fetches its metadata, chart of accounts and
// account groups, caches them in memory, and invalidates the cached
// tiers after mutations that could make them stale.
//
// A Book is not safe for concurrent use. It assumes a single logical
// owner of its in-memory state, matching the synchronous call model of
// the API.
package book

import (
	"context"

	"github.com/ledgerline/ledgerline-go/pkg/api"
)

// LedgerService fetches ledger resources.
type LedgerService interface {
	GetLedger(ctx context.Context, ledgerID string) (*api.LedgerPayload, error)
}

// AccountService creates accounts in a ledger.
type AccountService interface {
	CreateAccounts(ctx context.Context, ledgerID string, accounts []api.AccountPayload) ([]api.AccountPayload, error)
}

// GroupService creates account groups in a ledger.
type GroupService interface {
	CreateGroups(ctx context.Context, ledgerID string, groups []api.GroupPayload) ([]api.GroupPayload, error)
}

// TransactionService creates, records and lists transactions.
type TransactionService interface {
	CreateTransactions(ctx context.Context, ledgerID string, transactions []api.TransactionPayload) ([]api.TransactionPayload, error)
	RecordTransactions(ctx context.Context, ledgerID string, lines []string) ([]api.TransactionPayload, error)
	ListTransactions(ctx context.Context, ledgerID, query string, limit int, cursor string) (*api.TransactionList, error)
}

// BalanceService runs balance queries against a ledger.
type BalanceService interface {
	QueryBalances(ctx context.Context, ledgerID, query string) (*api.BalancesPayload, error)
}

// Services bundles the remote collaborators a Book delegates to.
// *api.Client satisfies every field.
type Services struct {
	Ledgers      LedgerService
	Accounts     AccountService
	Groups       GroupService
	Transactions TransactionService
	Balances     BalanceService
}

// cacheState tags a cache tier as unloaded or loaded. Tiers are loaded
// as a whole from one fetch and dropped as a whole on invalidation;
// there is no partially-loaded state.
type cacheState int

const (
	cacheUnloaded cacheState = iota
	cacheLoaded
)

// Book is a client-side view of one remote ledger.
//
// It holds two independent cache tiers: the scalar metadata snapshot
// and the collections tier (accounts, groups and their id / normalized
// name indices). Both tiers are filled from the same ledger fetch, so a
// miss on either triggers exactly one request.
type Book struct {
	id  string
	svc Services

	metaState cacheState
	meta      Metadata

	collState      cacheState
	accounts       []*Account
	groups         []*Group
	accountsByID   map[string]*Account
	accountsByName map[NormalizedName]*Account
	groupsByID     map[string]*Group
	groupsByName   map[NormalizedName]*Group
}

// New creates a Book for the ledger with the given ID. Nothing is
// fetched until the first access that needs remote state.
func New(ledgerID string, svc Services) *Book {
	return &Book{id: ledgerID, svc: svc}
}

// FromClient creates a Book whose collaborators are all backed by the
// given API client.
func FromClient(ledgerID string, client *api.Client) *Book {
	return New(ledgerID, Services{
		Ledgers:      client,
		Accounts:     client,
		Groups:       client,
		Transactions: client,
		Balances:     client,
	})
}

// ID returns the ledger ID. It never triggers a fetch.
func (b *Book) ID() string {
	return b.id
}

// load fetches the ledger resource and populates both cache tiers from
// the single response payload.
func (b *Book) load(ctx context.Context) error {
	payload, err := b.svc.Ledgers.GetLedger(ctx, b.id)
	if err != nil {
		return err
	}
	b.apply(payload)
	return nil
}

// apply rebuilds both tiers from a fresh payload. The collections tier
// and its indices are always rebuilt together; indices are never
// patched in place.
func (b *Book) apply(p *api.LedgerPayload) {
	b.meta = metadataFromPayload(p)
	b.metaState = cacheLoaded

	accounts := make([]*Account, 0, len(p.Accounts))
	accountsByID := make(map[string]*Account, len(p.Accounts))
	accountsByName := make(map[NormalizedName]*Account, len(p.Accounts))
	for _, ap := range p.Accounts {
		a := &Account{book: b, payload: ap}
		accounts = append(accounts, a)
		accountsByID[ap.ID] = a
		// Last write wins on normalized-name collisions.
		accountsByName[Normalize(ap.Name)] = a
	}

	groups := make([]*Group, 0, len(p.Groups))
	groupsByID := make(map[string]*Group, len(p.Groups))
	groupsByName := make(map[NormalizedName]*Group, len(p.Groups))
	for _, gp := range p.Groups {
		g := &Group{book: b, payload: gp}
		groups = append(groups, g)
		groupsByID[gp.ID] = g
		groupsByName[Normalize(gp.Name)] = g
	}

	b.accounts = accounts
	b.groups = groups
	b.accountsByID = accountsByID
	b.accountsByName = accountsByName
	b.groupsByID = groupsByID
	b.groupsByName = groupsByName
	b.collState = cacheLoaded
}

// ensureMetadata loads the ledger if the metadata tier is unset.
// Idempotent no-op when already loaded.
func (b *Book) ensureMetadata(ctx context.Context) error {
	if b.metaState == cacheLoaded {
		return nil
	}
	return b.load(ctx)
}

// ensureCollections loads the ledger if the collections tier or the
// account indices are unset. The index gate matters after transaction
// creation, which drops only the account index maps.
func (b *Book) ensureCollections(ctx context.Context) error {
	if b.collState == cacheLoaded && b.accountsByID != nil {
		return nil
	}
	return b.load(ctx)
}

// clearAll drops both cache tiers. The next read reloads lazily.
func (b *Book) clearAll() {
	b.metaState = cacheUnloaded
	b.meta = Metadata{}
	b.collState = cacheUnloaded
	b.accounts = nil
	b.groups = nil
	b.accountsByID = nil
	b.accountsByName = nil
	b.groupsByID = nil
	b.groupsByName = nil
}

// clearAccountIndexes drops only the account lookup maps. Transactions
// change account balances, not account or group existence, so the
// accounts slice, the groups and the metadata snapshot stay cached
// until a full reload. Account lookups re-fetch; Accounts does not.
func (b *Book) clearAccountIndexes() {
	b.accountsByID = nil
	b.accountsByName = nil
}

// ClearCached drops everything cached on this Book without fetching.
// The next read reloads from the service.
func (b *Book) ClearCached() {
	b.clearAll()
}

// Metadata returns the ledger's scalar metadata, fetching it on first use.
func (b *Book) Metadata(ctx context.Context) (Metadata, error) {
	if err := b.ensureMetadata(ctx); err != nil {
		return Metadata{}, err
	}
	return b.meta, nil
}

// Name returns the ledger name.
func (b *Book) Name(ctx context.Context) (string, error) {
	if err := b.ensureMetadata(ctx); err != nil {
		return "", err
	}
	return b.meta.Name, nil
}

// OwnerName returns the display name of the ledger owner.
func (b *Book) OwnerName(ctx context.Context) (string, error) {
	if err := b.ensureMetadata(ctx); err != nil {
		return "", err
	}
	return b.meta.OwnerName, nil
}

// Permission returns the caller's permission level on the ledger.
func (b *Book) Permission(ctx context.Context) (Permission, error) {
	if err := b.ensureMetadata(ctx); err != nil {
		return PermissionNone, err
	}
	return b.meta.Permission, nil
}

// FractionDigits returns the number of fraction digits amounts carry.
func (b *Book) FractionDigits(ctx context.Context) (int, error) {
	if err := b.ensureMetadata(ctx); err != nil {
		return 0, err
	}
	return b.meta.FractionDigits, nil
}

// DatePattern returns the ledger's date display pattern.
func (b *Book) DatePattern(ctx context.Context) (string, error) {
	if err := b.ensureMetadata(ctx); err != nil {
		return "", err
	}
	return b.meta.DatePattern, nil
}

// DecimalSeparator returns the ledger's decimal separator.
func (b *Book) DecimalSeparator(ctx context.Context) (DecimalSeparator, error) {
	if err := b.ensureMetadata(ctx); err != nil {
		return "", err
	}
	return b.meta.DecimalSeparator, nil
}

// TimeZone returns the ledger's IANA time zone name.
func (b *Book) TimeZone(ctx context.Context) (string, error) {
	if err := b.ensureMetadata(ctx); err != nil {
		return "", err
	}
	return b.meta.TimeZone, nil
}

// Property returns the first non-empty ledger property among keys.
func (b *Book) Property(ctx context.Context, keys ...string) (string, error) {
	if err := b.ensureMetadata(ctx); err != nil {
		return "", err
	}
	for _, k := range keys {
		if v := b.meta.Properties[k]; v != "" {
			return v, nil
		}
	}
	return "", nil
}

// Accounts returns the chart of accounts, fetching it on first use.
//
// After transaction creation the cached slice may be stale until the
// next full reload; lookups via Account re-fetch, this listing does not.
func (b *Book) Accounts(ctx context.Context) ([]*Account, error) {
	if b.collState == cacheLoaded {
		return b.accounts, nil
	}
	if err := b.load(ctx); err != nil {
		return nil, err
	}
	return b.accounts, nil
}

// Groups returns the ledger's account groups, fetching them on first use.
func (b *Book) Groups(ctx context.Context) ([]*Group, error) {
	if b.collState == cacheLoaded {
		return b.groups, nil
	}
	if err := b.load(ctx); err != nil {
		return nil, err
	}
	return b.groups, nil
}

// Account returns the account with the given ID or name. Lookup is by
// ID first, then by normalized name. An empty key returns nil without
// fetching; an unknown key is a normal miss and also returns nil, nil.
func (b *Book) Account(ctx context.Context, idOrName string) (*Account, error) {
	if idOrName == "" {
		return nil, nil
	}
	if err := b.ensureCollections(ctx); err != nil {
		return nil, err
	}
	if a, ok := b.accountsByID[idOrName]; ok {
		return a, nil
	}
	if a, ok := b.accountsByName[Normalize(idOrName)]; ok {
		return a, nil
	}
	return nil, nil
}

// Group returns the group with the given ID or name, with the same
// lookup and miss semantics as Account.
func (b *Book) Group(ctx context.Context, idOrName string) (*Group, error) {
	if idOrName == "" {
		return nil, nil
	}
	if err := b.ensureCollections(ctx); err != nil {
		return nil, err
	}
	if g, ok := b.groupsByID[idOrName]; ok {
		return g, nil
	}
	if g, ok := b.groupsByName[Normalize(idOrName)]; ok {
		return g, nil
	}
	return nil, nil
}

// CreateAccounts creates a batch of accounts in one request and returns
// the created entities bound to this Book. An empty input is a no-op
// that performs no remote call. On success both cache tiers are
// dropped; a failed call leaves the caches untouched.
func (b *Book) CreateAccounts(ctx context.Context, accounts []NewAccount) ([]*Account, error) {
	if len(accounts) == 0 {
		return []*Account{}, nil
	}

	payloads := make([]api.AccountPayload, len(accounts))
	for i, na := range accounts {
		payloads[i] = na.payload()
	}

	created, err := b.svc.Accounts.CreateAccounts(ctx, b.id, payloads)
	if err != nil {
		return nil, err
	}

	result := make([]*Account, len(created))
	for i, p := range created {
		result[i] = &Account{book: b, payload: p}
	}
	b.clearAll()
	return result, nil
}

// CreateAccount creates a single account. Like the batch form it drops
// both cache tiers on success.
func (b *Book) CreateAccount(ctx context.Context, account NewAccount) (*Account, error) {
	created, err := b.CreateAccounts(ctx, []NewAccount{account})
	if err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, nil
	}
	return created[0], nil
}

// CreateGroups creates a batch of account groups, with the same no-op,
// rebind and invalidation semantics as CreateAccounts.
func (b *Book) CreateGroups(ctx context.Context, groups []NewGroup) ([]*Group, error) {
	if len(groups) == 0 {
		return []*Group{}, nil
	}

	payloads := make([]api.GroupPayload, len(groups))
	for i, ng := range groups {
		payloads[i] = ng.payload()
	}

	created, err := b.svc.Groups.CreateGroups(ctx, b.id, payloads)
	if err != nil {
		return nil, err
	}

	result := make([]*Group, len(created))
	for i, p := range created {
		result[i] = &Group{book: b, payload: p}
	}
	b.clearAll()
	return result, nil
}

// CreateTransactions posts a batch of transactions in one request and
// returns the created entities bound to this Book. An empty input
// performs no remote call. On success only the account index maps are
// invalidated; see clearAccountIndexes.
func (b *Book) CreateTransactions(ctx context.Context, transactions []NewTransaction) ([]*Transaction, error) {
	if len(transactions) == 0 {
		return []*Transaction{}, nil
	}

	payloads := make([]api.TransactionPayload, len(transactions))
	for i, nt := range transactions {
		payloads[i] = nt.payload()
	}

	created, err := b.svc.Transactions.CreateTransactions(ctx, b.id, payloads)
	if err != nil {
		return nil, err
	}

	result := make([]*Transaction, len(created))
	for i, p := range created {
		result[i] = &Transaction{book: b, payload: p}
	}
	b.clearAccountIndexes()
	return result, nil
}

// Record posts free-text transaction lines for the service to parse
// into draft transactions. Invalidation matches CreateTransactions.
func (b *Book) Record(ctx context.Context, lines []string) ([]*Transaction, error) {
	if len(lines) == 0 {
		return []*Transaction{}, nil
	}

	created, err := b.svc.Transactions.RecordTransactions(ctx, b.id, lines)
	if err != nil {
		return nil, err
	}

	result := make([]*Transaction, len(created))
	for i, p := range created {
		result[i] = &Transaction{book: b, payload: p}
	}
	b.clearAccountIndexes()
	return result, nil
}
