package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pigeonworks-llc/fintrack/internal/models"
)

func TestSanitizeAccountName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Checking", "Checking"},
		{"conta corrente", "ContaCorrente"},
		{"Poupança  (BB)", "PoupançaBB"},
		{"nu-bank 2", "NuBank2"},
		{"!!!", "Unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeAccountName(tt.name); got != tt.want {
				t.Errorf("sanitizeAccountName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestAssign(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "beancount-accounts.yaml")
	content := "accounts:\n  - name: Wallet\n    beancount: Assets:Cash:Wallet\nexpenses: Expenses:Living\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write mapping: %v", err)
	}

	m, err := LoadMapperOrDefault(path)
	if err != nil {
		t.Fatalf("LoadMapperOrDefault() error = %v", err)
	}
	if m.ExpenseAccount() != "Expenses:Living" || m.IncomeAccount() != DefaultIncomeAccount {
		t.Errorf("accounts = %s, %s", m.ExpenseAccount(), m.IncomeAccount())
	}
	if !m.HasMapping("Wallet") {
		t.Error("HasMapping(Wallet) = false")
	}

	names := m.Assign([]models.Account{
		{ID: "1", Name: "Wallet"},
		{ID: "aaaa-bbbb-cccc", Name: "Bank"},
		{ID: "dddd-eeee-ffff", Name: "bank"},
	})
	want := map[string]string{
		"1":              "Assets:Cash:Wallet",
		"aaaa-bbbb-cccc": "Assets:Bank",
		"dddd-eeee-ffff": "Assets:Bank-DDDDEEEE",
	}
	for id, name := range want {
		if names[id] != name {
			t.Errorf("Assign()[%s] = %q, want %q", id, names[id], name)
		}
	}
}

func TestLoadMapperErrors(t *testing.T) {
	m, err := LoadMapperOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil || m.EquityAccount() != DefaultEquityAccount {
		t.Errorf("LoadMapperOrDefault(missing) = %v, %v; want default mapper", m, err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("accounts:\n  - name: Wallet\n"), 0644); err != nil {
		t.Fatalf("Failed to write mapping: %v", err)
	}
	if _, err := NewMapper(path); err == nil {
		t.Error("NewMapper() with incomplete mapping error = nil, want error")
	}
}
