package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ClientConfig represents the configuration for a Ledgerline API client.
type ClientConfig struct {
	APIURL      string
	AccessToken string
	Timeout     time.Duration // Default: 30 seconds

	// TokenManager, when set, is consulted before every request and
	// replaces AccessToken with a refreshed token as needed.
	TokenManager *TokenManager
}

// Client is a Ledgerline API client.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	accessToken  string
	tokenManager *TokenManager
}

// NewClient creates a new Ledgerline API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:      strings.TrimSuffix(config.APIURL, "/"),
		accessToken:  config.AccessToken,
		tokenManager: config.TokenManager,
	}
}

// SetAccessToken sets the access token for API requests.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// ensureValidToken refreshes the token if necessary and updates the client.
func (c *Client) ensureValidToken(ctx context.Context) error {
	if c.tokenManager == nil {
		return nil // Static token
	}

	token, err := c.tokenManager.ValidToken(ctx)
	if err != nil {
		return fmt.Errorf("token validation failed: %w", err)
	}
	c.accessToken = token.AccessToken
	return nil
}

// GetLedger fetches a ledger by ID. The response bundles the ledger's
// scalar metadata with its full account and group lists.
func (c *Client) GetLedger(ctx context.Context, ledgerID string) (*LedgerPayload, error) {
	endpoint := fmt.Sprintf("%s/v1/ledgers/%s", c.baseURL, url.PathEscape(ledgerID))

	var resp ledgerResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get ledger %s: %w", ledgerID, err)
	}
	return &resp.Ledger, nil
}

// CreateAccounts creates a batch of accounts in a ledger.
// The call is all-or-nothing; the created representations are returned.
func (c *Client) CreateAccounts(ctx context.Context, ledgerID string, accounts []AccountPayload) ([]AccountPayload, error) {
	endpoint := fmt.Sprintf("%s/v1/ledgers/%s/accounts", c.baseURL, url.PathEscape(ledgerID))

	req := accountsResponse{Accounts: accounts}
	var resp accountsResponse
	if err := c.do(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create accounts: %w", err)
	}
	return resp.Accounts, nil
}

// CreateGroups creates a batch of account groups in a ledger.
func (c *Client) CreateGroups(ctx context.Context, ledgerID string, groups []GroupPayload) ([]GroupPayload, error) {
	endpoint := fmt.Sprintf("%s/v1/ledgers/%s/groups", c.baseURL, url.PathEscape(ledgerID))

	req := groupsResponse{Groups: groups}
	var resp groupsResponse
	if err := c.do(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create groups: %w", err)
	}
	return resp.Groups, nil
}

// CreateTransactions creates a batch of transactions in a ledger.
func (c *Client) CreateTransactions(ctx context.Context, ledgerID string, transactions []TransactionPayload) ([]TransactionPayload, error) {
	endpoint := fmt.Sprintf("%s/v1/ledgers/%s/transactions", c.baseURL, url.PathEscape(ledgerID))

	req := transactionsResponse{Transactions: transactions}
	var resp transactionsResponse
	if err := c.do(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create transactions: %w", err)
	}
	return resp.Transactions, nil
}

// RecordTransactions posts free-text transaction lines to a ledger.
// The service parses each line into a draft transaction.
func (c *Client) RecordTransactions(ctx context.Context, ledgerID string, lines []string) ([]TransactionPayload, error) {
	endpoint := fmt.Sprintf("%s/v1/ledgers/%s/transactions/record", c.baseURL, url.PathEscape(ledgerID))

	req := struct {
		Lines []string `json:"lines"`
	}{Lines: lines}
	var resp transactionsResponse
	if err := c.do(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to record transactions: %w", err)
	}
	return resp.Transactions, nil
}

// ListTransactions fetches one page of transactions matching a query.
// An empty cursor starts from the first page; the returned cursor is
// empty once the listing is exhausted.
func (c *Client) ListTransactions(ctx context.Context, ledgerID, query string, limit int, cursor string) (*TransactionList, error) {
	endpoint := fmt.Sprintf("%s/v1/ledgers/%s/transactions", c.baseURL, url.PathEscape(ledgerID))

	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	if len(params) > 0 {
		endpoint = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	var resp TransactionList
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &resp, nil
}

// QueryBalances runs a balance query against a ledger.
func (c *Client) QueryBalances(ctx context.Context, ledgerID, query string) (*BalancesPayload, error) {
	endpoint := fmt.Sprintf("%s/v1/ledgers/%s/balances", c.baseURL, url.PathEscape(ledgerID))
	if query != "" {
		params := url.Values{}
		params.Set("query", query)
		endpoint = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	var resp BalancesPayload
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to query balances: %w", err)
	}
	return &resp, nil
}

// do performs an authenticated JSON request and decodes the response
// into out. A non-2xx status is parsed into an API error.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	if err := c.ensureValidToken(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.parseError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// parseError parses an error response from the Ledgerline API.
func (c *Client) parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ledgerline API error (status %d): failed to read error response", resp.StatusCode)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("ledgerline API error (status %d): %s", resp.StatusCode, string(body))
	}

	if errResp.ErrorDescription != "" {
		return fmt.Errorf("ledgerline API error: %s - %s", errResp.Error, errResp.ErrorDescription)
	}
	return fmt.Errorf("ledgerline API error: %s", errResp.Error)
}
