package api

import (
	"net/http"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/fintrack/internal/ledger"
	"github.com/pigeonworks-llc/fintrack/internal/models"
)

// InvestmentsHandler handles investment-related API endpoints.
type InvestmentsHandler struct {
	investments *ledger.Investments
}

// NewInvestmentsHandler creates a new InvestmentsHandler.
func NewInvestmentsHandler(investments *ledger.Investments) *InvestmentsHandler {
	return &InvestmentsHandler{investments: investments}
}

// InvestmentsListResponse represents the response for GET /api/v1/investments.
type InvestmentsListResponse struct {
	Investments []models.Investment        `json:"investments"`
	Total       decimal.Decimal            `json:"total"`
	ByCategory  map[string]decimal.Decimal `json:"by_category"`
}

// List handles GET /api/v1/investments with an optional category filter.
func (h *InvestmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	investments := h.investments.List()
	if category := r.URL.Query().Get("category"); category != "" {
		investments = slices.DeleteFunc(investments, func(inv models.Investment) bool {
			return inv.Category != category
		})
	}

	writeJSON(w, http.StatusOK, InvestmentsListResponse{
		Investments: investments,
		Total:       h.investments.Total(),
		ByCategory:  h.investments.ByCategory(),
	})
}

// Get handles GET /api/v1/investments/{id}.
func (h *InvestmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.investments.Get(urlID(r))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Investment not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"investment": inv})
}

// Create handles POST /api/v1/investments.
func (h *InvestmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInvestmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	inv, err := h.investments.AddInvestment(req)
	if err != nil {
		writeMutationError(w, err, "Failed to create investment")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"investment": inv})
}

// Update handles PATCH /api/v1/investments/{id}.
func (h *InvestmentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if _, ok := h.investments.Get(id); !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Investment not found")
		return
	}

	var req models.UpdateInvestmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.investments.UpdateInvestment(id, req); err != nil {
		writeMutationError(w, err, "Failed to update investment")
		return
	}

	inv, _ := h.investments.Get(id)
	writeJSON(w, http.StatusOK, map[string]any{"investment": inv})
}

// Delete handles DELETE /api/v1/investments/{id}.
func (h *InvestmentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if _, ok := h.investments.Get(id); !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Investment not found")
		return
	}

	h.investments.DeleteInvestment(id)
	w.WriteHeader(http.StatusNoContent)
}
