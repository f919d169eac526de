// Package beancount provides repository pattern for Beancount file operations.
package beancount

import "github.com/shopspring/decimal"

// Transaction represents a Beancount transaction.
type Transaction struct {
	Date      string            // YYYY-MM-DD
	Narration string            // Transaction description
	Tags      []string          // Tags (e.g., ["transfer"])
	Metadata  map[string]string // Metadata key-value pairs
	Postings  []Posting         // Transaction postings
}

// Posting represents a posting in a Beancount transaction.
type Posting struct {
	Account  string          // Account name (e.g., "Assets:Checking")
	Amount   decimal.Decimal // Amount (positive for debit, negative for credit)
	Currency string          // Currency code (e.g., "BRL")
	Comment  string          // Posting comment (optional)
}

// Open represents an open directive.
type Open struct {
	Date       string
	Account    string
	Currencies []string
}

// YearMonth returns the YYYY-MM month a transaction is filed under.
func (t Transaction) YearMonth() string {
	if len(t.Date) < len("2006-01") {
		return ""
	}
	return t.Date[:len("2006-01")]
}
