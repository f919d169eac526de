// Package catalog provides the category lists offered for expenses and
// investments, with their display labels.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Category is a stored value and its display label.
type Category struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Config represents the catalog file.
type Config struct {
	Expense          []Category `yaml:"expense"`
	Investment       []Category `yaml:"investment"`
	TransactionTypes []Category `yaml:"transaction_types"`
}

// Catalog looks up category labels.
type Catalog struct {
	config      Config
	expense     map[string]string
	investment  map[string]string
	transaction map[string]string
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid built-in categories: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file. Sections missing from the file keep
// the built-in categories.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return parse(data)
}

// LoadOrDefault reads the catalog at path, or returns the built-in catalog
// when the file does not exist.
func LoadOrDefault(path string) (*Catalog, error) {
	c, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

func parse(data []byte) (*Catalog, error) {
	var base Config
	if err := yaml.Unmarshal(defaultYAML, &base); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(config.Expense) == 0 {
		config.Expense = base.Expense
	}
	if len(config.Investment) == 0 {
		config.Investment = base.Investment
	}
	if len(config.TransactionTypes) == 0 {
		config.TransactionTypes = base.TransactionTypes
	}

	c := &Catalog{config: config}
	var err error
	if c.expense, err = index("expense", config.Expense); err != nil {
		return nil, err
	}
	if c.investment, err = index("investment", config.Investment); err != nil {
		return nil, err
	}
	if c.transaction, err = index("transaction_types", config.TransactionTypes); err != nil {
		return nil, err
	}
	return c, nil
}

func index(section string, categories []Category) (map[string]string, error) {
	m := make(map[string]string, len(categories))
	for _, cat := range categories {
		if cat.Value == "" {
			return nil, fmt.Errorf("category in %s has no value", section)
		}
		if _, dup := m[cat.Value]; dup {
			return nil, fmt.Errorf("duplicate category %q in %s", cat.Value, section)
		}
		label := cat.Label
		if label == "" {
			label = cat.Value
		}
		m[cat.Value] = label
	}
	return m, nil
}

// Expense returns the expense categories in file order.
func (c *Catalog) Expense() []Category {
	return append([]Category(nil), c.config.Expense...)
}

// Investment returns the investment categories in file order.
func (c *Catalog) Investment() []Category {
	return append([]Category(nil), c.config.Investment...)
}

// TransactionTypes returns the transaction type labels.
func (c *Catalog) TransactionTypes() []Category {
	return append([]Category(nil), c.config.TransactionTypes...)
}

// ExpenseLabel returns the label of an expense category, or the value itself
// when it is not in the catalog.
func (c *Catalog) ExpenseLabel(value string) string {
	return labelOr(c.expense, value)
}

// InvestmentLabel returns the label of an investment category.
func (c *Catalog) InvestmentLabel(value string) string {
	return labelOr(c.investment, value)
}

// TransactionTypeLabel returns the label of a transaction type.
func (c *Catalog) TransactionTypeLabel(value string) string {
	return labelOr(c.transaction, value)
}

// HasExpense reports whether value is a known expense category.
func (c *Catalog) HasExpense(value string) bool {
	_, ok := c.expense[value]
	return ok
}

// HasInvestment reports whether value is a known investment category.
func (c *Catalog) HasInvestment(value string) bool {
	_, ok := c.investment[value]
	return ok
}

func labelOr(m map[string]string, value string) string {
	if label, ok := m[value]; ok {
		return label
	}
	return value
}
