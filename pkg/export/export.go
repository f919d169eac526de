// Package export writes a YAML snapshot of a whole book.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/pigeonworks-llc/fintrack/internal/ledger"
	"github.com/pigeonworks-llc/fintrack/pkg/catalog"
	"github.com/pigeonworks-llc/fintrack/pkg/pathutil"
)

// Document is the exported book. Amounts are fixed two-decimal strings.
type Document struct {
	ExportedAt   string        `yaml:"exported_at"`
	Currency     string        `yaml:"currency"`
	Summary      Summary       `yaml:"summary"`
	Accounts     []Account     `yaml:"accounts"`
	Transactions []Transaction `yaml:"transactions"`
	Expenses     []Bill        `yaml:"expenses"`
	Taxes        []Bill        `yaml:"taxes"`
	Investments  []Investment  `yaml:"investments"`
}

// Summary mirrors ledger.Summary.
type Summary struct {
	TotalBalance     string `yaml:"total_balance"`
	TotalExpenses    string `yaml:"total_expenses"`
	PendingExpenses  int    `yaml:"pending_expenses"`
	TotalInvestments string `yaml:"total_investments"`
	TotalPendingTax  string `yaml:"total_pending_tax"`
	Available        string `yaml:"available"`
}

// Account is an exported account.
type Account struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Balance string `yaml:"balance"`
	Main    bool   `yaml:"main,omitempty"`
}

// Transaction is an exported transaction.
type Transaction struct {
	ID          string `yaml:"id"`
	Date        string `yaml:"date"`
	Type        string `yaml:"type"`
	TypeLabel   string `yaml:"type_label"`
	Description string `yaml:"description"`
	Amount      string `yaml:"amount"`
	Account     string `yaml:"account"`
	ToAccount   string `yaml:"to_account,omitempty"`
	Notes       string `yaml:"notes,omitempty"`
}

// Bill is an exported expense or tax.
type Bill struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Amount        string `yaml:"amount"`
	DueDate       string `yaml:"due_date"`
	Category      string `yaml:"category,omitempty"`
	CategoryLabel string `yaml:"category_label,omitempty"`
	Paid          bool   `yaml:"paid"`
	PaidDate      string `yaml:"paid_date,omitempty"`
	Notes         string `yaml:"notes,omitempty"`
}

// Investment is an exported investment.
type Investment struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Amount        string `yaml:"amount"`
	Date          string `yaml:"date"`
	Category      string `yaml:"category"`
	CategoryLabel string `yaml:"category_label"`
	Notes         string `yaml:"notes,omitempty"`
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Build collects the book into a Document. Account references are resolved to
// account names where the account still exists.
func Build(b *ledger.Book, cat *catalog.Catalog, currency string) Document {
	s := b.Summary()
	doc := Document{
		ExportedAt: b.Now().UTC().Format("2006-01-02T15:04:05Z"),
		Currency:   currency,
		Summary: Summary{
			TotalBalance:     amount(s.TotalBalance),
			TotalExpenses:    amount(s.TotalExpenses),
			PendingExpenses:  s.PendingExpenses,
			TotalInvestments: amount(s.TotalInvestments),
			TotalPendingTax:  amount(s.TotalPendingTax),
			Available:        amount(s.Available),
		},
		Accounts:     []Account{},
		Transactions: []Transaction{},
		Expenses:     []Bill{},
		Taxes:        []Bill{},
		Investments:  []Investment{},
	}

	names := make(map[string]string)
	for _, a := range b.Accounts.List() {
		names[a.ID] = a.Name
		doc.Accounts = append(doc.Accounts, Account{
			ID:      a.ID,
			Name:    a.Name,
			Balance: amount(a.Balance),
			Main:    a.IsMain,
		})
	}
	accountName := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}

	for _, tx := range b.Transactions.List() {
		out := Transaction{
			ID:          tx.ID,
			Date:        tx.Date,
			Type:        string(tx.Type),
			TypeLabel:   cat.TransactionTypeLabel(string(tx.Type)),
			Description: tx.Description,
			Amount:      amount(tx.Amount),
			Account:     accountName(tx.AccountID),
			Notes:       tx.Notes,
		}
		if tx.ToAccountID != "" {
			out.ToAccount = accountName(tx.ToAccountID)
		}
		doc.Transactions = append(doc.Transactions, out)
	}

	for _, e := range b.Expenses.List() {
		doc.Expenses = append(doc.Expenses, Bill{
			ID:            e.ID,
			Name:          e.Description,
			Amount:        amount(e.Amount),
			DueDate:       e.DueDate,
			Category:      e.Category,
			CategoryLabel: cat.ExpenseLabel(e.Category),
			Paid:          e.Paid,
			PaidDate:      e.PaidDate,
		})
	}

	for _, t := range b.Taxes.List() {
		doc.Taxes = append(doc.Taxes, Bill{
			ID:       t.ID,
			Name:     t.Name,
			Amount:   amount(t.Amount),
			DueDate:  t.DueDate,
			Paid:     t.Paid,
			PaidDate: t.PaidDate,
			Notes:    t.Notes,
		})
	}

	for _, inv := range b.Investments.List() {
		doc.Investments = append(doc.Investments, Investment{
			ID:            inv.ID,
			Name:          inv.Name,
			Amount:        amount(inv.Amount),
			Date:          inv.Date,
			Category:      inv.Category,
			CategoryLabel: cat.InvestmentLabel(inv.Category),
			Notes:         inv.Notes,
		})
	}

	return doc
}

// Write encodes the document as YAML.
func Write(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return enc.Close()
}

// WriteFile writes the export of the book's current date under the data
// root and returns the file path. An existing export for the same day is
// replaced.
func WriteFile(paths *pathutil.PathResolver, doc Document) (string, error) {
	filePath, err := paths.GetExportPath(doc.ExportedAt[:len("2006-01-02")])
	if err != nil {
		return "", fmt.Errorf("failed to get export path: %w", err)
	}
	if err := paths.EnsureParentDir(filePath); err != nil {
		return "", err
	}

	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := Write(f, doc); err != nil {
		return "", err
	}
	return filePath, nil
}
