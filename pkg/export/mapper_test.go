package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewMapperFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mapping.yaml")
	content := `accounts:
  - ledger: "Office supplies"
    beancount: "Expenses:Office:Supplies"
  - ledger: "Checking"
    beancount: "Assets:Bank:Checking"
fallback_prefix: "Expenses:Misc"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	mapper, err := NewMapper(configPath)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}

	if got := mapper.BeancountAccount("Office supplies"); got != "Expenses:Office:Supplies" {
		t.Errorf("BeancountAccount(Office supplies) = %q", got)
	}
	if got := mapper.BeancountAccount("Checking"); got != "Assets:Bank:Checking" {
		t.Errorf("BeancountAccount(Checking) = %q", got)
	}
	if got := mapper.BeancountAccount("Travel"); got != "Expenses:Misc:Travel" {
		t.Errorf("fallback BeancountAccount(Travel) = %q", got)
	}
}

func TestNewMapperMissingFile(t *testing.T) {
	if _, err := NewMapper(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing mapping file")
	}
}

func TestNewMapperInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("accounts: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := NewMapper(configPath); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestHasMapping(t *testing.T) {
	mapper := NewMapperFromConfig(MappingConfig{
		Accounts: []AccountMapping{
			{Ledger: "Cash", Beancount: "Assets:Cash"},
		},
	})

	if !mapper.HasMapping("Cash") {
		t.Error("HasMapping(Cash) = false")
	}
	if mapper.HasMapping("Unknown account") {
		t.Error("HasMapping(Unknown account) = true")
	}
}

func TestFallbackDefaultPrefix(t *testing.T) {
	mapper := NewMapperFromConfig(MappingConfig{})

	if got := mapper.BeancountAccount("Coffee shop"); got != "Expenses:Unmapped:CoffeeShop" {
		t.Errorf("BeancountAccount(Coffee shop) = %q", got)
	}
}

func TestSanitizeAccountName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"office supplies", "OfficeSupplies"},
		{"Travel & Lodging", "TravelLodging"},
		{"2nd floor rent", "2ndFloorRent"},
		{"déjà vu", "DJVu"},
		{"---", "Unknown"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		if got := sanitizeAccountName(tt.name); got != tt.want {
			t.Errorf("sanitizeAccountName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
