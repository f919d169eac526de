package models

import "github.com/shopspring/decimal"

// Investment records money put into an asset class.
type Investment struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"` // YYYY-MM-DD
	Category string          `json:"category"`
	Notes    string          `json:"notes,omitempty"`
}

// Validate checks a complete investment record.
func (i Investment) Validate() error {
	var v validator
	v.required("name", i.Name)
	v.positive("amount", i.Amount)
	v.date("date", i.Date)
	v.required("category", i.Category)
	return v.err()
}

// CreateInvestmentRequest represents the data needed to record an investment.
type CreateInvestmentRequest struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
	Category string          `json:"category"`
	Notes    string          `json:"notes,omitempty"`
}

// UpdateInvestmentRequest is a partial investment update.
type UpdateInvestmentRequest struct {
	Name     *string          `json:"name,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Date     *string          `json:"date,omitempty"`
	Category *string          `json:"category,omitempty"`
	Notes    *string          `json:"notes,omitempty"`
}

// Apply returns a copy of i with the patch merged in.
func (r *UpdateInvestmentRequest) Apply(i Investment) Investment {
	if r.Name != nil {
		i.Name = *r.Name
	}
	if r.Amount != nil {
		i.Amount = *r.Amount
	}
	if r.Date != nil {
		i.Date = *r.Date
	}
	if r.Category != nil {
		i.Category = *r.Category
	}
	if r.Notes != nil {
		i.Notes = *r.Notes
	}
	return i
}
