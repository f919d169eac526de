package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()

	if got := len(c.Expense()); got != 9 {
		t.Errorf("Expense() len = %d, want 9", got)
	}
	if got := len(c.Investment()); got != 7 {
		t.Errorf("Investment() len = %d, want 7", got)
	}

	tests := []struct {
		name  string
		label func(string) string
		value string
		want  string
	}{
		{"expense", c.ExpenseLabel, "housing", "Moradia"},
		{"investment", c.InvestmentLabel, "real_estate", "Imóveis"},
		{"transaction type", c.TransactionTypeLabel, "transfer", "Transferência"},
		{"unknown falls back to value", c.ExpenseLabel, "pets", "pets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.label(tt.value); got != tt.want {
				t.Errorf("label(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}

	if !c.HasExpense("food") || c.HasExpense("stocks") {
		t.Error("HasExpense() mismatch")
	}
	if !c.HasInvestment("stocks") || c.HasInvestment("food") {
		t.Error("HasInvestment() mismatch")
	}
}

func TestLoadOverridesSections(t *testing.T) {
	path := writeCatalog(t, `
expense:
  - value: rent
    label: Rent
  - value: pets
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := len(c.Expense()); got != 2 {
		t.Errorf("Expense() len = %d, want 2", got)
	}
	if got := c.ExpenseLabel("pets"); got != "pets" {
		t.Errorf("ExpenseLabel(pets) = %q, want value as label", got)
	}
	if c.HasExpense("housing") {
		t.Error("built-in expense categories should be replaced")
	}
	if !c.HasInvestment("crypto") {
		t.Error("missing investment section should keep built-in categories")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "expense: [\n"},
		{"duplicate", "investment:\n  - value: a\n  - value: a\n"},
		{"empty value", "expense:\n  - label: Nothing\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeCatalog(t, tt.content)); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	c, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if !c.HasExpense("housing") {
		t.Error("missing file should yield the built-in catalog")
	}

	if _, err := LoadOrDefault(writeCatalog(t, "expense: [\n")); err == nil {
		t.Error("LoadOrDefault() with invalid file error = nil, want error")
	}
}
