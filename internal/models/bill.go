package models

import "github.com/shopspring/decimal"

// Expense is a bill with a due date. PaidDate is only set while Paid is true.
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date"` // YYYY-MM-DD
	Category    string          `json:"category"`
	Paid        bool            `json:"paid"`
	PaidDate    string          `json:"paid_date,omitempty"`
}

// Validate checks a complete expense record.
func (e Expense) Validate() error {
	var v validator
	v.required("description", e.Description)
	v.positive("amount", e.Amount)
	v.date("due_date", e.DueDate)
	v.required("category", e.Category)
	return v.err()
}

// CreateExpenseRequest represents the data needed to register an expense.
type CreateExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date"`
	Category    string          `json:"category"`
	Paid        bool            `json:"paid"`
}

// UpdateExpenseRequest is a partial expense update. PaidDate follows Paid and
// cannot be patched directly.
type UpdateExpenseRequest struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	DueDate     *string          `json:"due_date,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Paid        *bool            `json:"paid,omitempty"`
}

// Apply returns a copy of e with the patch merged in, except for the paid
// state which the caller stamps.
func (r *UpdateExpenseRequest) Apply(e Expense) Expense {
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.Amount != nil {
		e.Amount = *r.Amount
	}
	if r.DueDate != nil {
		e.DueDate = *r.DueDate
	}
	if r.Category != nil {
		e.Category = *r.Category
	}
	return e
}

// Tax is a tax obligation with a due date. PaidDate is only set while Paid
// is true.
type Tax struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  string          `json:"due_date"` // YYYY-MM-DD
	Notes    string          `json:"notes,omitempty"`
	Paid     bool            `json:"paid"`
	PaidDate string          `json:"paid_date,omitempty"`
}

// Validate checks a complete tax record.
func (t Tax) Validate() error {
	var v validator
	v.required("name", t.Name)
	v.positive("amount", t.Amount)
	v.date("due_date", t.DueDate)
	return v.err()
}

// CreateTaxRequest represents the data needed to register a tax.
type CreateTaxRequest struct {
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"due_date"`
	Notes   string          `json:"notes,omitempty"`
	Paid    bool            `json:"paid"`
}

// UpdateTaxRequest is a partial tax update.
type UpdateTaxRequest struct {
	Name    *string          `json:"name,omitempty"`
	Amount  *decimal.Decimal `json:"amount,omitempty"`
	DueDate *string          `json:"due_date,omitempty"`
	Notes   *string          `json:"notes,omitempty"`
	Paid    *bool            `json:"paid,omitempty"`
}

// Apply returns a copy of t with the patch merged in, except for the paid
// state which the caller stamps.
func (r *UpdateTaxRequest) Apply(t Tax) Tax {
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Amount != nil {
		t.Amount = *r.Amount
	}
	if r.DueDate != nil {
		t.DueDate = *r.DueDate
	}
	if r.Notes != nil {
		t.Notes = *r.Notes
	}
	return t
}
