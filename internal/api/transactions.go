package api

import (
	"errors"
	"net/http"
	"slices"

	"github.com/pigeonworks-llc/fintrack/internal/ledger"
	"github.com/pigeonworks-llc/fintrack/internal/models"
)

// TransactionsHandler handles transaction-related API endpoints.
type TransactionsHandler struct {
	engine *ledger.TransactionEngine
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(engine *ledger.TransactionEngine) *TransactionsHandler {
	return &TransactionsHandler{engine: engine}
}

// TransactionsListResponse represents the response for GET /api/v1/transactions.
type TransactionsListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

// List handles GET /api/v1/transactions.
// Optional filters: account_id, type, start_date, end_date. Filters combine.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	txType := models.TransactionType(q.Get("type"))
	if txType != "" && !txType.Valid() {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "type must be one of income, expense, transfer")
		return
	}

	txs, err := h.engine.ByDateRange(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "start_date and end_date must be YYYY-MM-DD")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list transactions")
		return
	}

	accountID := q.Get("account_id")
	txs = slices.DeleteFunc(txs, func(tx models.Transaction) bool {
		if txType != "" && tx.Type != txType {
			return true
		}
		if accountID != "" && tx.AccountID != accountID && tx.ToAccountID != accountID {
			return true
		}
		return false
	})

	writeJSON(w, http.StatusOK, TransactionsListResponse{Transactions: txs})
}

// Get handles GET /api/v1/transactions/{id}.
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	tx, ok := h.engine.Get(urlID(r))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Transaction not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transaction": tx})
}

// Create handles POST /api/v1/transactions.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tx, err := h.engine.AddTransaction(req)
	if err != nil {
		writeMutationError(w, err, "Failed to create transaction")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"transaction": tx})
}

// Update handles PATCH /api/v1/transactions/{id}.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if _, ok := h.engine.Get(id); !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Transaction not found")
		return
	}

	var req models.UpdateTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.engine.UpdateTransaction(id, req); err != nil {
		writeMutationError(w, err, "Failed to update transaction")
		return
	}

	tx, _ := h.engine.Get(id)
	writeJSON(w, http.StatusOK, map[string]any{"transaction": tx})
}

// Delete handles DELETE /api/v1/transactions/{id}.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if _, ok := h.engine.Get(id); !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Transaction not found")
		return
	}

	h.engine.DeleteTransaction(id)
	w.WriteHeader(http.StatusNoContent)
}
