package models

import "github.com/shopspring/decimal"

// TransactionType tells which way a transaction moves money.
type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

// Transaction moves money into, out of, or between accounts. Amount is always
// positive; the direction comes from Type.
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        string          `json:"date"` // YYYY-MM-DD
	AccountID   string          `json:"account_id"`
	ToAccountID string          `json:"to_account_id,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// IsTransfer reports whether the transaction moves money between accounts.
func (t Transaction) IsTransfer() bool { return t.Type == TransactionTransfer }

// Validate checks a complete transaction record.
func (t Transaction) Validate() error {
	var v validator
	v.required("description", t.Description)
	v.positive("amount", t.Amount)
	if !t.Type.Valid() {
		v.add("type", "must be one of income, expense, transfer")
	}
	v.date("date", t.Date)
	v.required("account_id", t.AccountID)
	if t.IsTransfer() {
		switch {
		case t.ToAccountID == "":
			v.add("to_account_id", "is required for transfers")
		case t.ToAccountID == t.AccountID:
			v.add("to_account_id", "must differ from account_id")
		}
	}
	return v.err()
}

// CreateTransactionRequest represents the data needed to record a transaction.
type CreateTransactionRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        string          `json:"date"`
	AccountID   string          `json:"account_id"`
	ToAccountID string          `json:"to_account_id,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// Transaction builds the record for id. A destination is only kept for
// transfers.
func (r *CreateTransactionRequest) Transaction(id string) Transaction {
	t := Transaction{
		ID:          id,
		Description: r.Description,
		Amount:      r.Amount,
		Type:        r.Type,
		Date:        r.Date,
		AccountID:   r.AccountID,
		ToAccountID: r.ToAccountID,
		Notes:       r.Notes,
	}
	if !t.IsTransfer() {
		t.ToAccountID = ""
	}
	return t
}

// UpdateTransactionRequest is a partial transaction update.
type UpdateTransactionRequest struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *TransactionType `json:"type,omitempty"`
	Date        *string          `json:"date,omitempty"`
	AccountID   *string          `json:"account_id,omitempty"`
	ToAccountID *string          `json:"to_account_id,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// Apply returns a copy of t with the patch merged in. Fields missing from the
// patch keep their old values; t itself is not modified.
func (r *UpdateTransactionRequest) Apply(t Transaction) Transaction {
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.Amount != nil {
		t.Amount = *r.Amount
	}
	if r.Type != nil {
		t.Type = *r.Type
	}
	if r.Date != nil {
		t.Date = *r.Date
	}
	if r.AccountID != nil {
		t.AccountID = *r.AccountID
	}
	if r.ToAccountID != nil {
		t.ToAccountID = *r.ToAccountID
	}
	if r.Notes != nil {
		t.Notes = *r.Notes
	}
	if !t.IsTransfer() {
		t.ToAccountID = ""
	}
	return t
}
