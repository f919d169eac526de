// Package converter provides conversion from fintrack records to Beancount format.
package converter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/pigeonworks-llc/fintrack/internal/models"
)

// Default Beancount accounts used when the mapping file leaves them out.
const (
	DefaultIncomeAccount  = "Income:Uncategorized"
	DefaultExpenseAccount = "Expenses:Uncategorized"
	DefaultEquityAccount  = "Equity:Opening-Balances"
	AssetsPrefix          = "Assets"
)

// AccountMapping maps a fintrack account name to a Beancount account name.
type AccountMapping struct {
	Name      string `yaml:"name"`
	Beancount string `yaml:"beancount"`
}

// AccountMappingConfig represents the complete account mapping configuration.
type AccountMappingConfig struct {
	Accounts        []AccountMapping `yaml:"accounts"`
	Income          string           `yaml:"income"`
	Expenses        string           `yaml:"expenses"`
	OpeningBalances string           `yaml:"opening_balances"`
}

// Mapper maps fintrack accounts to Beancount account names.
type Mapper struct {
	config     AccountMappingConfig
	nameToBean map[string]string
}

// NewMapper creates a new Mapper from a YAML configuration file.
func NewMapper(configPath string) (*Mapper, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config AccountMappingConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return newMapper(config)
}

// LoadMapperOrDefault reads the mapping file when it exists and falls back
// to DefaultMapper otherwise.
func LoadMapperOrDefault(configPath string) (*Mapper, error) {
	m, err := NewMapper(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultMapper(), nil
	}
	return m, err
}

// DefaultMapper derives every asset account from the fintrack account name.
func DefaultMapper() *Mapper {
	m, _ := newMapper(AccountMappingConfig{})
	return m
}

func newMapper(config AccountMappingConfig) (*Mapper, error) {
	if config.Income == "" {
		config.Income = DefaultIncomeAccount
	}
	if config.Expenses == "" {
		config.Expenses = DefaultExpenseAccount
	}
	if config.OpeningBalances == "" {
		config.OpeningBalances = DefaultEquityAccount
	}

	mapper := &Mapper{
		config:     config,
		nameToBean: make(map[string]string, len(config.Accounts)),
	}
	for _, mapping := range config.Accounts {
		if mapping.Name == "" || mapping.Beancount == "" {
			return nil, fmt.Errorf("account mapping needs both name and beancount: %+v", mapping)
		}
		mapper.nameToBean[mapping.Name] = mapping.Beancount
	}
	return mapper, nil
}

// IncomeAccount returns the account credited by income.
func (m *Mapper) IncomeAccount() string { return m.config.Income }

// ExpenseAccount returns the account debited by expenses.
func (m *Mapper) ExpenseAccount() string { return m.config.Expenses }

// EquityAccount returns the account opening balances are drawn from.
func (m *Mapper) EquityAccount() string { return m.config.OpeningBalances }

// HasMapping checks if a mapping exists for a fintrack account name.
func (m *Mapper) HasMapping(name string) bool {
	_, ok := m.nameToBean[name]
	return ok
}

// Assign returns the Beancount account for each account id. Mapped names
// are used as given; the rest become Assets:<Name>, with a short id suffix
// when two accounts would otherwise share a name.
func (m *Mapper) Assign(accounts []models.Account) map[string]string {
	result := make(map[string]string, len(accounts))
	used := make(map[string]bool, len(accounts))

	for _, acc := range accounts {
		name, ok := m.nameToBean[acc.Name]
		if !ok {
			name = AssetsPrefix + ":" + sanitizeAccountName(acc.Name)
		}
		if used[name] {
			name += "-" + shortID(acc.ID)
		}
		used[name] = true
		result[acc.ID] = name
	}
	return result
}

// UnknownAccount names an account that transactions reference but that no
// longer exists.
func UnknownAccount(id string) string {
	return AssetsPrefix + ":Deleted:X" + shortID(id)
}

// sanitizeAccountName turns free text into a Beancount account component:
// words are capitalized and joined, other characters dropped.
func sanitizeAccountName(name string) string {
	var sb strings.Builder
	for _, word := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		sb.WriteString(string(runes))
	}
	if sb.Len() == 0 {
		return "Unnamed"
	}
	return sb.String()
}

func shortID(id string) string {
	id = strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}
