package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/fintrack/internal/ledger"
	"github.com/pigeonworks-llc/fintrack/internal/models"
)

// AccountsHandler handles account-related API endpoints.
type AccountsHandler struct {
	accounts *ledger.AccountLedger
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(accounts *ledger.AccountLedger) *AccountsHandler {
	return &AccountsHandler{accounts: accounts}
}

// AccountsListResponse represents the response for GET /api/v1/accounts.
type AccountsListResponse struct {
	Accounts     []models.Account `json:"accounts"`
	TotalBalance decimal.Decimal  `json:"total_balance"`
}

// List handles GET /api/v1/accounts.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AccountsListResponse{
		Accounts:     h.accounts.List(),
		TotalBalance: h.accounts.TotalBalance(),
	})
}

// Get handles GET /api/v1/accounts/{id}.
func (h *AccountsHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accounts.Get(urlID(r))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Account not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"account": account})
}

// Create handles POST /api/v1/accounts.
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.accounts.AddAccount(req)
	if err != nil {
		writeMutationError(w, err, "Failed to create account")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"account": account})
}

// Update handles PATCH /api/v1/accounts/{id}.
func (h *AccountsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if _, ok := h.accounts.Get(id); !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Account not found")
		return
	}

	var req models.UpdateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.accounts.UpdateAccount(id, req); err != nil {
		writeMutationError(w, err, "Failed to update account")
		return
	}

	account, _ := h.accounts.Get(id)
	writeJSON(w, http.StatusOK, map[string]any{"account": account})
}

// Delete handles DELETE /api/v1/accounts/{id}. Transactions referencing the
// account are kept.
func (h *AccountsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if _, ok := h.accounts.Get(id); !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Account not found")
		return
	}

	h.accounts.DeleteAccount(id)
	w.WriteHeader(http.StatusNoContent)
}
