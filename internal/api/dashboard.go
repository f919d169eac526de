package api

import (
	"net/http"

	"github.com/pigeonworks-llc/fintrack/internal/format"
	"github.com/pigeonworks-llc/fintrack/internal/ledger"
	"github.com/pigeonworks-llc/fintrack/pkg/catalog"
)

// DashboardHandler serves the summary, alerts and category endpoints.
type DashboardHandler struct {
	book    *ledger.Book
	catalog *catalog.Catalog
	money   *format.Formatter
	windows Windows
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(book *ledger.Book, cat *catalog.Catalog, money *format.Formatter, windows Windows) *DashboardHandler {
	return &DashboardHandler{book: book, catalog: cat, money: money, windows: windows}
}

// SummaryResponse represents the response for GET /api/v1/summary.
type SummaryResponse struct {
	ledger.Summary
	Currency string            `json:"currency"`
	Display  map[string]string `json:"display"`
}

// Summary handles GET /api/v1/summary.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s := h.book.Summary()
	writeJSON(w, http.StatusOK, SummaryResponse{
		Summary:  s,
		Currency: h.money.Code(),
		Display: map[string]string{
			"total_balance":     h.money.Money(s.TotalBalance),
			"total_expenses":    h.money.Money(s.TotalExpenses),
			"total_investments": h.money.Money(s.TotalInvestments),
			"total_pending_tax": h.money.Money(s.TotalPendingTax),
			"available":         h.money.Money(s.Available),
		},
	})
}

// AlertsResponse represents the response for GET /api/v1/alerts.
type AlertsResponse struct {
	Alerts []ledger.Alert `json:"alerts"`
}

// Alerts handles GET /api/v1/alerts. The days parameter overrides the
// upcoming-taxes window.
func (h *DashboardHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	days, ok := parseDays(r, h.windows.UpcomingDays)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "days must be a non-negative integer")
		return
	}

	alerts := h.book.Alerts(days)
	if alerts == nil {
		alerts = []ledger.Alert{}
	}
	writeJSON(w, http.StatusOK, AlertsResponse{Alerts: alerts})
}

// CategoriesResponse represents the response for GET /api/v1/categories.
type CategoriesResponse struct {
	Expense          []catalog.Category `json:"expense"`
	Investment       []catalog.Category `json:"investment"`
	TransactionTypes []catalog.Category `json:"transaction_types"`
}

// Categories handles GET /api/v1/categories.
func (h *DashboardHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CategoriesResponse{
		Expense:          h.catalog.Expense(),
		Investment:       h.catalog.Investment(),
		TransactionTypes: h.catalog.TransactionTypes(),
	})
}
