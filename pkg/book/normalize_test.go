package book

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected NormalizedName
	}{
		{"lowercase passthrough", "bank account", "bank account"},
		{"case folding", "Bank Account", "bank account"},
		{"leading and trailing space", "  Bank Account  ", "bank account"},
		{"collapsed inner whitespace", "Bank \t  Account", "bank account"},
		{"diacritics stripped", "Caisse d'Épargne", "caisse d'epargne"},
		{"mixed", "  CRÉDIT   Agricole ", "credit agricole"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeCollidingNames(t *testing.T) {
	// Names that differ only in case or accents collide on purpose;
	// the index keeps the last one written.
	if Normalize("Épargne") != Normalize("epargne") {
		t.Error("expected accented and plain forms to normalize identically")
	}
	if Normalize("BANK") != Normalize("bank") {
		t.Error("expected case variants to normalize identically")
	}
}
