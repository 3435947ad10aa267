package api

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultTokenPath  = ".config/ledgerline/token.json"
	tokenExpiryBuffer = 5 * time.Minute // Refresh 5 minutes before expiry
)

// TokenManager handles OAuth2 token persistence and refresh.
type TokenManager struct {
	tokenPath string
	oauth     oauth2.Config
}

// NewTokenManager creates a new token manager. The token file defaults
// to ~/.config/ledgerline/token.json when tokenPath is empty.
func NewTokenManager(clientID, clientSecret, tokenURL, tokenPath string) *TokenManager {
	if tokenPath == "" {
		home, _ := os.UserHomeDir()
		tokenPath = filepath.Join(home, defaultTokenPath)
	}
	return &TokenManager{
		tokenPath: tokenPath,
		oauth: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL: tokenURL,
			},
		},
	}
}

// LoadToken loads the token from file.
func (m *TokenManager) LoadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(m.tokenPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &token, nil
}

// SaveToken saves the token to file.
func (m *TokenManager) SaveToken(token *oauth2.Token) error {
	dir := filepath.Dir(m.tokenPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(m.tokenPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// IsExpired reports whether the token is expired or will expire soon.
func (m *TokenManager) IsExpired(token *oauth2.Token) bool {
	if token.Expiry.IsZero() {
		return false // Tokens without expiry never refresh
	}
	return time.Now().Add(tokenExpiryBuffer).After(token.Expiry)
}

// ValidToken returns a valid access token, refreshing and persisting it
// through the OAuth2 endpoint when the stored one is about to expire.
func (m *TokenManager) ValidToken(ctx context.Context) (*oauth2.Token, error) {
	token, err := m.LoadToken()
	if err != nil {
		return nil, err
	}

	if !m.IsExpired(token) {
		return token, nil
	}

	fresh, err := m.oauth.TokenSource(ctx, token).Token()
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	if fresh.AccessToken != token.AccessToken {
		if err := m.SaveToken(fresh); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
		}
	}
	return fresh, nil
}
