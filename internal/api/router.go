// Package api exposes a Book over HTTP as JSON.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pigeonworks-llc/fintrack/internal/format"
	"github.com/pigeonworks-llc/fintrack/internal/ledger"
	"github.com/pigeonworks-llc/fintrack/pkg/catalog"
)

// Windows holds the due-date thresholds used by list filters and alerts.
type Windows struct {
	DueSoonDays  int
	UpcomingDays int
}

// DefaultWindows returns the default thresholds.
func DefaultWindows() Windows {
	return Windows{DueSoonDays: ledger.DefaultDueSoonDays, UpcomingDays: ledger.DefaultUpcomingDays}
}

// Options configures NewRouter.
type Options struct {
	Catalog   *catalog.Catalog
	Formatter *format.Formatter
	Windows   Windows
	// RequestLogging enables chi's request logger.
	RequestLogging bool
}

// NewRouter builds the HTTP handler for a book.
func NewRouter(book *ledger.Book, opts Options) http.Handler {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Formatter == nil {
		opts.Formatter, _ = format.New("BRL")
	}
	if opts.Windows == (Windows{}) {
		opts.Windows = DefaultWindows()
	}

	accountsHandler := NewAccountsHandler(book.Accounts)
	transactionsHandler := NewTransactionsHandler(book.Transactions)
	expensesHandler := NewExpensesHandler(book.Expenses, book.Now, opts.Windows)
	taxesHandler := NewTaxesHandler(book.Taxes, book.Now, opts.Windows)
	investmentsHandler := NewInvestmentsHandler(book.Investments)
	dashboardHandler := NewDashboardHandler(book, opts.Catalog, opts.Formatter, opts.Windows)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if opts.RequestLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accountsHandler.List)
			r.Post("/", accountsHandler.Create)
			r.Get("/{id}", accountsHandler.Get)
			r.Patch("/{id}", accountsHandler.Update)
			r.Delete("/{id}", accountsHandler.Delete)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", transactionsHandler.List)
			r.Post("/", transactionsHandler.Create)
			r.Get("/{id}", transactionsHandler.Get)
			r.Patch("/{id}", transactionsHandler.Update)
			r.Delete("/{id}", transactionsHandler.Delete)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", expensesHandler.List)
			r.Post("/", expensesHandler.Create)
			r.Get("/{id}", expensesHandler.Get)
			r.Patch("/{id}", expensesHandler.Update)
			r.Delete("/{id}", expensesHandler.Delete)
			r.Post("/{id}/pay", expensesHandler.Pay(true))
			r.Post("/{id}/unpay", expensesHandler.Pay(false))
		})

		r.Route("/taxes", func(r chi.Router) {
			r.Get("/", taxesHandler.List)
			r.Post("/", taxesHandler.Create)
			r.Get("/{id}", taxesHandler.Get)
			r.Patch("/{id}", taxesHandler.Update)
			r.Delete("/{id}", taxesHandler.Delete)
			r.Post("/{id}/pay", taxesHandler.Pay(true))
			r.Post("/{id}/unpay", taxesHandler.Pay(false))
		})

		r.Route("/investments", func(r chi.Router) {
			r.Get("/", investmentsHandler.List)
			r.Post("/", investmentsHandler.Create)
			r.Get("/{id}", investmentsHandler.Get)
			r.Patch("/{id}", investmentsHandler.Update)
			r.Delete("/{id}", investmentsHandler.Delete)
		})

		r.Get("/summary", dashboardHandler.Summary)
		r.Get("/alerts", dashboardHandler.Alerts)
		r.Get("/categories", dashboardHandler.Categories)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
