package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/fintrack/internal/ledger"
	"github.com/pigeonworks-llc/fintrack/internal/models"
)

// Due describes when an unpaid bill falls due. It is omitted for paid bills.
type Due struct {
	DaysUntil int              `json:"days_until"`
	Status    ledger.DueStatus `json:"status"`
}

func dueOf(date string, paid bool, now time.Time, dueSoon int) *Due {
	if paid {
		return nil
	}
	days, err := ledger.DaysUntil(date, now)
	if err != nil {
		return nil
	}
	return &Due{DaysUntil: days, Status: ledger.Classify(days, dueSoon)}
}

// parseDays reads the optional days query parameter.
func parseDays(r *http.Request, fallback int) (int, bool) {
	s := r.URL.Query().Get("days")
	if s == "" {
		return fallback, true
	}
	days, err := strconv.Atoi(s)
	if err != nil || days < 0 {
		return 0, false
	}
	return days, true
}

// ExpenseView is an expense with its due status.
type ExpenseView struct {
	models.Expense
	Due *Due `json:"due,omitempty"`
}

// ExpensesListResponse represents the response for GET /api/v1/expenses.
type ExpensesListResponse struct {
	Expenses     []ExpenseView   `json:"expenses"`
	Total        decimal.Decimal `json:"total"`
	TotalPending decimal.Decimal `json:"total_pending"`
}

// ExpensesHandler handles expense-related API endpoints.
type ExpensesHandler struct {
	expenses *ledger.Expenses
	now      ledger.Clock
	windows  Windows
}

// NewExpensesHandler creates a new ExpensesHandler.
func NewExpensesHandler(expenses *ledger.Expenses, now ledger.Clock, windows Windows) *ExpensesHandler {
	return &ExpensesHandler{expenses: expenses, now: now, windows: windows}
}

func (h *ExpensesHandler) view(e models.Expense) ExpenseView {
	return ExpenseView{Expense: e, Due: dueOf(e.DueDate, e.Paid, h.now(), h.windows.DueSoonDays)}
}

// List handles GET /api/v1/expenses.
// Optional status filter: pending, paid, upcoming (within days, default
// due-soon window) or overdue.
func (h *ExpensesHandler) List(w http.ResponseWriter, r *http.Request) {
	var expenses []models.Expense
	switch status := r.URL.Query().Get("status"); status {
	case "":
		expenses = h.expenses.List()
	case "pending":
		expenses = h.expenses.Pending()
	case "paid":
		expenses = h.expenses.Paid()
	case "overdue":
		expenses = h.expenses.Overdue()
	case "upcoming":
		days, ok := parseDays(r, h.windows.DueSoonDays)
		if !ok {
			writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "days must be a non-negative integer")
			return
		}
		expenses = h.expenses.Upcoming(days)
	default:
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid status: "+status)
		return
	}

	views := make([]ExpenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, h.view(e))
	}
	writeJSON(w, http.StatusOK, ExpensesListResponse{
		Expenses:     views,
		Total:        h.expenses.Total(),
		TotalPending: h.expenses.TotalPending(),
	})
}

// Get handles GET /api/v1/expenses/{id}.
func (h *ExpensesHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, ok := h.expenses.Get(urlID(r))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Expense not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"expense": h.view(e)})
}

// Create handles POST /api/v1/expenses.
func (h *ExpensesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	e, err := h.expenses.AddExpense(req)
	if err != nil {
		writeMutationError(w, err, "Failed to create expense")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"expense": h.view(e)})
}

// Update handles PATCH /api/v1/expenses/{id}.
func (h *ExpensesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if _, ok := h.expenses.Get(id); !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Expense not found")
		return
	}

	var req models.UpdateExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.expenses.UpdateExpense(id, req); err != nil {
		writeMutationError(w, err, "Failed to update expense")
		return
	}

	e, _ := h.expenses.Get(id)
	writeJSON(w, http.StatusOK, map[string]any{"expense": h.view(e)})
}

// Pay handles POST /api/v1/expenses/{id}/pay and /unpay.
func (h *ExpensesHandler) Pay(paid bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlID(r)
		if _, ok := h.expenses.Get(id); !ok {
			writeJSONError(w, http.StatusNotFound, "not_found", "Expense not found")
			return
		}

		h.expenses.TogglePaid(id, paid)
		e, _ := h.expenses.Get(id)
		writeJSON(w, http.StatusOK, map[string]any{"expense": h.view(e)})
	}
}

// Delete handles DELETE /api/v1/expenses/{id}.
func (h *ExpensesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if _, ok := h.expenses.Get(id); !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Expense not found")
		return
	}

	h.expenses.DeleteExpense(id)
	w.WriteHeader(http.StatusNoContent)
}

// TaxView is a tax with its due status.
type TaxView struct {
	models.Tax
	Due *Due `json:"due,omitempty"`
}

// TaxesListResponse represents the response for GET /api/v1/taxes.
type TaxesListResponse struct {
	Taxes        []TaxView       `json:"taxes"`
	Total        decimal.Decimal `json:"total"`
	TotalPending decimal.Decimal `json:"total_pending"`
}

// TaxesHandler handles tax-related API endpoints.
type TaxesHandler struct {
	taxes   *ledger.Taxes
	now     ledger.Clock
	windows Windows
}

// NewTaxesHandler creates a new TaxesHandler.
func NewTaxesHandler(taxes *ledger.Taxes, now ledger.Clock, windows Windows) *TaxesHandler {
	return &TaxesHandler{taxes: taxes, now: now, windows: windows}
}

func (h *TaxesHandler) view(t models.Tax) TaxView {
	return TaxView{Tax: t, Due: dueOf(t.DueDate, t.Paid, h.now(), h.windows.DueSoonDays)}
}

// List handles GET /api/v1/taxes.
// Optional status filter: pending, paid, upcoming (within days, default
// upcoming window) or overdue.
func (h *TaxesHandler) List(w http.ResponseWriter, r *http.Request) {
	var taxes []models.Tax
	switch status := r.URL.Query().Get("status"); status {
	case "":
		taxes = h.taxes.List()
	case "pending":
		taxes = h.taxes.Pending()
	case "paid":
		taxes = h.taxes.Paid()
	case "overdue":
		taxes = h.taxes.Overdue()
	case "upcoming":
		days, ok := parseDays(r, h.windows.UpcomingDays)
		if !ok {
			writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "days must be a non-negative integer")
			return
		}
		taxes = h.taxes.Upcoming(days)
	default:
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid status: "+status)
		return
	}

	views := make([]TaxView, 0, len(taxes))
	for _, t := range taxes {
		views = append(views, h.view(t))
	}
	writeJSON(w, http.StatusOK, TaxesListResponse{
		Taxes:        views,
		Total:        h.taxes.Total(),
		TotalPending: h.taxes.TotalPending(),
	})
}

// Get handles GET /api/v1/taxes/{id}.
func (h *TaxesHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, ok := h.taxes.Get(urlID(r))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Tax not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tax": h.view(t)})
}

// Create handles POST /api/v1/taxes.
func (h *TaxesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTaxRequest
	if !decodeBody(w, r, &req) {
		return
	}

	t, err := h.taxes.AddTax(req)
	if err != nil {
		writeMutationError(w, err, "Failed to create tax")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"tax": h.view(t)})
}

// Update handles PATCH /api/v1/taxes/{id}.
func (h *TaxesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if _, ok := h.taxes.Get(id); !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Tax not found")
		return
	}

	var req models.UpdateTaxRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.taxes.UpdateTax(id, req); err != nil {
		writeMutationError(w, err, "Failed to update tax")
		return
	}

	t, _ := h.taxes.Get(id)
	writeJSON(w, http.StatusOK, map[string]any{"tax": h.view(t)})
}

// Pay handles POST /api/v1/taxes/{id}/pay and /unpay.
func (h *TaxesHandler) Pay(paid bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlID(r)
		if _, ok := h.taxes.Get(id); !ok {
			writeJSONError(w, http.StatusNotFound, "not_found", "Tax not found")
			return
		}

		h.taxes.TogglePaid(id, paid)
		t, _ := h.taxes.Get(id)
		writeJSON(w, http.StatusOK, map[string]any{"tax": h.view(t)})
	}
}

// Delete handles DELETE /api/v1/taxes/{id}.
func (h *TaxesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if _, ok := h.taxes.Get(id); !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Tax not found")
		return
	}

	h.taxes.DeleteTax(id)
	w.WriteHeader(http.StatusNoContent)
}
