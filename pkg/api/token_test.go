package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestTokenSaveLoadRoundTrip(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), "token.json")
	m := NewTokenManager("id", "secret", "https://auth.example.com/token", tokenPath)

	token := &oauth2.Token{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
	}

	if err := m.SaveToken(token); err != nil {
		t.Fatalf("SaveToken() returned error: %v", err)
	}

	loaded, err := m.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() returned error: %v", err)
	}
	if loaded.AccessToken != "access-1" || loaded.RefreshToken != "refresh-1" {
		t.Errorf("loaded token mismatch: %+v", loaded)
	}
}

func TestLoadTokenMissingFile(t *testing.T) {
	m := NewTokenManager("id", "secret", "https://auth.example.com/token", filepath.Join(t.TempDir(), "nope.json"))
	if _, err := m.LoadToken(); err == nil {
		t.Fatal("expected error for missing token file")
	}
}

func TestIsExpired(t *testing.T) {
	m := NewTokenManager("id", "secret", "https://auth.example.com/token", filepath.Join(t.TempDir(), "token.json"))

	tests := []struct {
		name     string
		expiry   time.Time
		expected bool
	}{
		{"fresh token", time.Now().Add(time.Hour), false},
		{"expired token", time.Now().Add(-time.Hour), true},
		{"expiring within buffer", time.Now().Add(time.Minute), true},
		{"no expiry", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := &oauth2.Token{AccessToken: "x", Expiry: tt.expiry}
			if got := m.IsExpired(token); got != tt.expected {
				t.Errorf("IsExpired() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestValidTokenReturnsFreshWithoutRefresh(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), "token.json")
	m := NewTokenManager("id", "secret", "https://auth.example.com/token", tokenPath)

	token := &oauth2.Token{AccessToken: "fresh", Expiry: time.Now().Add(time.Hour)}
	if err := m.SaveToken(token); err != nil {
		t.Fatalf("SaveToken() returned error: %v", err)
	}

	got, err := m.ValidToken(context.Background())
	if err != nil {
		t.Fatalf("ValidToken() returned error: %v", err)
	}
	if got.AccessToken != "fresh" {
		t.Errorf("ValidToken() = %q, expected fresh", got.AccessToken)
	}
}

func TestValidTokenRefreshesAndPersists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if r.PostForm.Get("grant_type") != "refresh_token" {
			t.Errorf("unexpected grant_type: %q", r.PostForm.Get("grant_type"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "refreshed",
			"refresh_token": "refresh-2",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	}))
	defer server.Close()

	tokenPath := filepath.Join(t.TempDir(), "token.json")
	m := NewTokenManager("id", "secret", server.URL, tokenPath)

	stale := &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(-time.Minute),
	}
	if err := m.SaveToken(stale); err != nil {
		t.Fatalf("SaveToken() returned error: %v", err)
	}

	got, err := m.ValidToken(context.Background())
	if err != nil {
		t.Fatalf("ValidToken() returned error: %v", err)
	}
	if got.AccessToken != "refreshed" {
		t.Errorf("ValidToken() = %q, expected refreshed", got.AccessToken)
	}

	// The refreshed token was written back to disk.
	persisted, err := m.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() returned error: %v", err)
	}
	if persisted.AccessToken != "refreshed" {
		t.Errorf("persisted token = %q, expected refreshed", persisted.AccessToken)
	}
}
