package models

import "github.com/shopspring/decimal"

// Account is a place money is kept. Exactly one account is the main account
// whenever any account exists.
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	IsMain  bool            `json:"is_main"`
}

// CreateAccountRequest represents the data needed to open an account.
// Balance is the opening balance.
type CreateAccountRequest struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	IsMain  bool            `json:"is_main"`
}

// Validate checks the request fields.
func (r *CreateAccountRequest) Validate() error {
	var v validator
	v.required("name", r.Name)
	return v.err()
}

// UpdateAccountRequest is a partial account update. The balance is not
// patchable; it only moves through balance deltas.
type UpdateAccountRequest struct {
	Name   *string `json:"name,omitempty"`
	IsMain *bool   `json:"is_main,omitempty"`
}

// Validate checks the fields present in the patch.
func (r *UpdateAccountRequest) Validate() error {
	var v validator
	if r.Name != nil {
		v.required("name", *r.Name)
	}
	return v.err()
}
