package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/fintrack/internal/format"
	"github.com/pigeonworks-llc/fintrack/internal/ledger"
	"github.com/pigeonworks-llc/fintrack/internal/models"
	"github.com/pigeonworks-llc/fintrack/internal/store"
)

type testClient struct {
	t      *testing.T
	server *httptest.Server
	book   *ledger.Book
}

func setupTestServer(t *testing.T) *testClient {
	t.Helper()

	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	book, err := ledger.Open(context.Background(), store.NewMemory(),
		ledger.WithClock(func() time.Time { return now }),
		ledger.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		t.Fatalf("Failed to open book: %v", err)
	}
	t.Cleanup(func() { _ = book.Close() })

	usd, err := format.New("USD")
	if err != nil {
		t.Fatalf("Failed to create formatter: %v", err)
	}

	server := httptest.NewServer(NewRouter(book, Options{Formatter: usd}))
	t.Cleanup(server.Close)

	return &testClient{t: t, server: server, book: book}
}

// do sends a request and decodes the JSON response into out when out is not nil.
func (c *testClient) do(method, path string, body any, out any) int {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reader)
	if err != nil {
		c.t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("Failed to decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func (c *testClient) createAccount(name, balance string) models.Account {
	c.t.Helper()
	var resp struct {
		Account models.Account `json:"account"`
	}
	status := c.do(http.MethodPost, "/api/v1/accounts", map[string]any{"name": name, "balance": balance}, &resp)
	if status != http.StatusCreated {
		c.t.Fatalf("create account status = %d", status)
	}
	return resp.Account
}

func (c *testClient) balance(id string) decimal.Decimal {
	c.t.Helper()
	var resp struct {
		Account models.Account `json:"account"`
	}
	if status := c.do(http.MethodGet, "/api/v1/accounts/"+id, nil, &resp); status != http.StatusOK {
		c.t.Fatalf("get account status = %d", status)
	}
	return resp.Account.Balance
}

func TestHealth(t *testing.T) {
	c := setupTestServer(t)

	resp, err := http.Get(c.server.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestAccountsAPI(t *testing.T) {
	c := setupTestServer(t)

	x := c.createAccount("Checking", "100")
	y := c.createAccount("Savings", "50.25")
	if !x.IsMain || y.IsMain {
		t.Errorf("main flags = %v/%v, want true/false", x.IsMain, y.IsMain)
	}

	var list AccountsListResponse
	if status := c.do(http.MethodGet, "/api/v1/accounts", nil, &list); status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	if len(list.Accounts) != 2 || !list.TotalBalance.Equal(decimal.RequireFromString("150.25")) {
		t.Errorf("list = %+v", list)
	}

	var updated struct {
		Account models.Account `json:"account"`
	}
	status := c.do(http.MethodPatch, "/api/v1/accounts/"+y.ID, map[string]any{"is_main": true}, &updated)
	if status != http.StatusOK || !updated.Account.IsMain {
		t.Errorf("promote status = %d, account = %+v", status, updated.Account)
	}

	var errResp ErrorResponse
	if status := c.do(http.MethodPost, "/api/v1/accounts", map[string]any{"name": ""}, &errResp); status != http.StatusBadRequest {
		t.Errorf("create invalid status = %d, want 400", status)
	}
	if len(errResp.Fields) != 1 || errResp.Fields[0].Field != "name" {
		t.Errorf("error fields = %+v", errResp.Fields)
	}

	if status := c.do(http.MethodDelete, "/api/v1/accounts/"+y.ID, nil, nil); status != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", status)
	}
	main, ok := c.book.Accounts.MainAccount()
	if !ok || main.ID != x.ID {
		t.Errorf("main after delete = %+v", main)
	}
}

func TestNotFound(t *testing.T) {
	c := setupTestServer(t)

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/v1/accounts/missing", nil},
		{http.MethodPatch, "/api/v1/accounts/missing", map[string]any{"name": "x"}},
		{http.MethodDelete, "/api/v1/transactions/missing", nil},
		{http.MethodPatch, "/api/v1/transactions/missing", map[string]any{"amount": "1"}},
		{http.MethodPost, "/api/v1/expenses/missing/pay", nil},
		{http.MethodDelete, "/api/v1/taxes/missing", nil},
		{http.MethodGet, "/api/v1/investments/missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var errResp ErrorResponse
			if status := c.do(tt.method, tt.path, tt.body, &errResp); status != http.StatusNotFound {
				t.Errorf("status = %d, want 404", status)
			}
			if errResp.Error != "not_found" {
				t.Errorf("error = %q, want not_found", errResp.Error)
			}
		})
	}
}

func TestTransactionsAPI(t *testing.T) {
	c := setupTestServer(t)
	x := c.createAccount("X", "150")
	y := c.createAccount("Y", "50")

	var created struct {
		Transaction models.Transaction `json:"transaction"`
	}
	status := c.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"description":   "Move",
		"amount":        "50",
		"type":          "transfer",
		"date":          "2024-03-10",
		"account_id":    x.ID,
		"to_account_id": y.ID,
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}

	status = c.do(http.MethodPatch, "/api/v1/transactions/"+created.Transaction.ID, map[string]any{"amount": "80"}, nil)
	if status != http.StatusOK {
		t.Fatalf("update status = %d", status)
	}
	if got := c.balance(x.ID); !got.Equal(decimal.NewFromInt(70)) {
		t.Errorf("X = %s, want 70", got)
	}
	if got := c.balance(y.ID); !got.Equal(decimal.NewFromInt(130)) {
		t.Errorf("Y = %s, want 130", got)
	}

	var errResp ErrorResponse
	status = c.do(http.MethodPatch, "/api/v1/transactions/"+created.Transaction.ID, map[string]any{"to_account_id": x.ID}, &errResp)
	if status != http.StatusBadRequest {
		t.Errorf("self-transfer update status = %d, want 400", status)
	}
	if got := c.balance(x.ID); !got.Equal(decimal.NewFromInt(70)) {
		t.Errorf("X after rejected update = %s, want 70", got)
	}

	c.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"description": "Salary", "amount": "10", "type": "income", "date": "2024-02-01", "account_id": y.ID,
	}, nil)

	filters := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"?type=income", 1},
		{"?account_id=" + x.ID, 1},
		{"?account_id=" + y.ID, 2},
		{"?start_date=2024-03-01", 1},
		{"?end_date=2024-02-28&type=income", 1},
	}
	for _, f := range filters {
		var list TransactionsListResponse
		if status := c.do(http.MethodGet, "/api/v1/transactions"+f.query, nil, &list); status != http.StatusOK {
			t.Fatalf("list%s status = %d", f.query, status)
		}
		if len(list.Transactions) != f.want {
			t.Errorf("list%s len = %d, want %d", f.query, len(list.Transactions), f.want)
		}
	}

	if status := c.do(http.MethodGet, "/api/v1/transactions?type=refund", nil, nil); status != http.StatusBadRequest {
		t.Errorf("bad type filter status = %d, want 400", status)
	}
	if status := c.do(http.MethodGet, "/api/v1/transactions?start_date=March", nil, nil); status != http.StatusBadRequest {
		t.Errorf("bad date filter status = %d, want 400", status)
	}

	if status := c.do(http.MethodDelete, "/api/v1/transactions/"+created.Transaction.ID, nil, nil); status != http.StatusNoContent {
		t.Fatalf("delete status = %d", status)
	}
	if got := c.balance(x.ID); !got.Equal(decimal.NewFromInt(150)) {
		t.Errorf("X after delete = %s, want 150", got)
	}
}

func TestExpensesAPI(t *testing.T) {
	c := setupTestServer(t)

	var created struct {
		Expense ExpenseView `json:"expense"`
	}
	status := c.do(http.MethodPost, "/api/v1/expenses", map[string]any{
		"description": "Power", "amount": "120.50", "due_date": "2024-03-15", "category": "utilities",
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	if created.Expense.Due == nil || created.Expense.Due.DaysUntil != 0 || created.Expense.Due.Status != ledger.DueSoon {
		t.Errorf("due = %+v, want due soon today", created.Expense.Due)
	}

	c.do(http.MethodPost, "/api/v1/expenses", map[string]any{
		"description": "Gym", "amount": "90", "due_date": "2024-03-01", "category": "personal",
	}, nil)

	var list ExpensesListResponse
	c.do(http.MethodGet, "/api/v1/expenses?status=overdue", nil, &list)
	if len(list.Expenses) != 1 || list.Expenses[0].Due.Status != ledger.DueOverdue {
		t.Errorf("overdue = %+v", list.Expenses)
	}

	var paid struct {
		Expense ExpenseView `json:"expense"`
	}
	if status := c.do(http.MethodPost, "/api/v1/expenses/"+created.Expense.ID+"/pay", nil, &paid); status != http.StatusOK {
		t.Fatalf("pay status = %d", status)
	}
	if !paid.Expense.Paid || paid.Expense.PaidDate != "2024-03-15" || paid.Expense.Due != nil {
		t.Errorf("paid expense = %+v", paid.Expense)
	}

	c.do(http.MethodGet, "/api/v1/expenses?status=pending", nil, &list)
	if len(list.Expenses) != 1 || !list.TotalPending.Equal(decimal.NewFromInt(90)) {
		t.Errorf("pending = %+v, total pending %s", list.Expenses, list.TotalPending)
	}

	if status := c.do(http.MethodGet, "/api/v1/expenses?status=late", nil, nil); status != http.StatusBadRequest {
		t.Errorf("bad status filter = %d, want 400", status)
	}
	if status := c.do(http.MethodGet, "/api/v1/expenses?status=upcoming&days=-1", nil, nil); status != http.StatusBadRequest {
		t.Errorf("negative days = %d, want 400", status)
	}
}

func TestTaxesAPI(t *testing.T) {
	c := setupTestServer(t)

	var created struct {
		Tax TaxView `json:"tax"`
	}
	status := c.do(http.MethodPost, "/api/v1/taxes", map[string]any{
		"name": "IPVA", "amount": "800", "due_date": "2024-04-10",
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}

	var list TaxesListResponse
	c.do(http.MethodGet, "/api/v1/taxes?status=upcoming", nil, &list)
	if len(list.Taxes) != 1 {
		t.Errorf("upcoming within 30 days = %d, want 1", len(list.Taxes))
	}
	c.do(http.MethodGet, "/api/v1/taxes?status=upcoming&days=10", nil, &list)
	if len(list.Taxes) != 0 {
		t.Errorf("upcoming within 10 days = %d, want 0", len(list.Taxes))
	}

	var updated struct {
		Tax TaxView `json:"tax"`
	}
	c.do(http.MethodPatch, "/api/v1/taxes/"+created.Tax.ID, map[string]any{"paid": true}, &updated)
	if !updated.Tax.Paid || updated.Tax.PaidDate != "2024-03-15" {
		t.Errorf("updated tax = %+v", updated.Tax)
	}
	var unpaid struct {
		Tax TaxView `json:"tax"`
	}
	c.do(http.MethodPost, "/api/v1/taxes/"+created.Tax.ID+"/unpay", nil, &unpaid)
	if unpaid.Tax.Paid || unpaid.Tax.PaidDate != "" {
		t.Errorf("unpaid tax = %+v", unpaid.Tax)
	}
}

func TestInvestmentsAPI(t *testing.T) {
	c := setupTestServer(t)

	for _, inv := range []map[string]any{
		{"name": "Treasury", "amount": "1000", "date": "2024-01-10", "category": "bonds"},
		{"name": "ETF", "amount": "300", "date": "2024-02-10", "category": "etf"},
	} {
		if status := c.do(http.MethodPost, "/api/v1/investments", inv, nil); status != http.StatusCreated {
			t.Fatalf("create status = %d", status)
		}
	}

	var list InvestmentsListResponse
	c.do(http.MethodGet, "/api/v1/investments?category=etf", nil, &list)
	if len(list.Investments) != 1 || !list.Total.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("list = %+v", list)
	}
	if !list.ByCategory["bonds"].Equal(decimal.NewFromInt(1000)) {
		t.Errorf("by category = %v", list.ByCategory)
	}

	if status := c.do(http.MethodPost, "/api/v1/investments", map[string]any{"name": "x", "amount": "-1"}, nil); status != http.StatusBadRequest {
		t.Errorf("invalid create status = %d, want 400", status)
	}
}

func TestDashboardAPI(t *testing.T) {
	c := setupTestServer(t)
	c.createAccount("Checking", "1000")
	c.do(http.MethodPost, "/api/v1/expenses", map[string]any{
		"description": "Rent", "amount": "400", "due_date": "2024-03-10", "category": "housing",
	}, nil)

	var summary SummaryResponse
	if status := c.do(http.MethodGet, "/api/v1/summary", nil, &summary); status != http.StatusOK {
		t.Fatalf("summary status = %d", status)
	}
	if !summary.Available.Equal(decimal.NewFromInt(600)) || summary.Currency != "USD" {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Display["available"] != "$600.00" {
		t.Errorf("display available = %q, want $600.00", summary.Display["available"])
	}

	var alerts AlertsResponse
	c.do(http.MethodGet, "/api/v1/alerts", nil, &alerts)
	if len(alerts.Alerts) != 2 {
		t.Errorf("alerts = %+v, want pending and overdue expenses", alerts.Alerts)
	}

	var cats CategoriesResponse
	c.do(http.MethodGet, "/api/v1/categories", nil, &cats)
	if len(cats.Expense) != 9 || len(cats.Investment) != 7 {
		t.Errorf("categories = %d/%d", len(cats.Expense), len(cats.Investment))
	}
}

func TestMalformedBody(t *testing.T) {
	c := setupTestServer(t)

	req, err := http.NewRequest(http.MethodPost, c.server.URL+"/api/v1/accounts", bytes.NewReader([]byte("{")))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
