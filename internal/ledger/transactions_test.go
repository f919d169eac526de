package ledger

import (
	"errors"
	"testing"

	"github.com/pigeonworks-llc/fintrack/internal/models"
	"github.com/pigeonworks-llc/fintrack/internal/store"
)

// twoAccounts sets up X=100 and Y=50.
func twoAccounts(t *testing.T) (*AccountLedger, *TransactionEngine, *recorder, models.Account, models.Account) {
	t.Helper()
	rec := newRecorder()
	l := NewAccountLedger(rec, discard)
	x := mustAddAccount(t, l, "X", "100", true)
	y := mustAddAccount(t, l, "Y", "50", false)
	return l, NewTransactionEngine(l, rec, discard), rec, x, y
}

func mustAddTx(t *testing.T, e *TransactionEngine, req models.CreateTransactionRequest) models.Transaction {
	t.Helper()
	if req.Description == "" {
		req.Description = "test"
	}
	if req.Date == "" {
		req.Date = "2024-03-01"
	}
	tx, err := e.AddTransaction(req)
	if err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	return tx
}

func TestEffectOf(t *testing.T) {
	tests := []struct {
		name string
		tx   models.Transaction
		want []Delta
	}{
		{
			name: "income",
			tx:   models.Transaction{Type: models.TransactionIncome, Amount: dec("10"), AccountID: "a"},
			want: []Delta{{AccountID: "a", Amount: dec("10")}},
		},
		{
			name: "expense",
			tx:   models.Transaction{Type: models.TransactionExpense, Amount: dec("10"), AccountID: "a"},
			want: []Delta{{AccountID: "a", Amount: dec("-10")}},
		},
		{
			name: "transfer",
			tx:   models.Transaction{Type: models.TransactionTransfer, Amount: dec("10"), AccountID: "a", ToAccountID: "b"},
			want: []Delta{{AccountID: "a", Amount: dec("-10")}, {AccountID: "b", Amount: dec("10")}},
		},
		{
			name: "transfer without destination",
			tx:   models.Transaction{Type: models.TransactionTransfer, Amount: dec("10"), AccountID: "a"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectOf(tt.tx)
			if len(got) != len(tt.want) {
				t.Fatalf("EffectOf() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].AccountID != tt.want[i].AccountID || !got[i].Amount.Equal(tt.want[i].Amount) {
					t.Errorf("EffectOf()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAddIncome(t *testing.T) {
	rec := newRecorder()
	l := NewAccountLedger(rec, discard)
	a := mustAddAccount(t, l, "Checking", "100", false)
	e := NewTransactionEngine(l, rec, discard)

	mustAddTx(t, e, models.CreateTransactionRequest{Type: models.TransactionIncome, Amount: dec("50"), AccountID: a.ID})

	assertBalance(t, l, a.ID, "150")
	if got := len(e.List()); got != 1 {
		t.Errorf("List() len = %d, want 1", got)
	}
	if rec.count(store.CollectionTransactions) != 1 {
		t.Error("transaction collection was not persisted")
	}
}

func TestAddTransfer(t *testing.T) {
	l, e, _, x, y := twoAccounts(t)

	mustAddTx(t, e, models.CreateTransactionRequest{
		Type: models.TransactionTransfer, Amount: dec("30"), AccountID: x.ID, ToAccountID: y.ID,
	})
	assertBalance(t, l, x.ID, "70")
	assertBalance(t, l, y.ID, "80")
}

func TestDeleteTransferRestoresBalances(t *testing.T) {
	l, e, _, x, y := twoAccounts(t)

	tx := mustAddTx(t, e, models.CreateTransactionRequest{
		Type: models.TransactionTransfer, Amount: dec("30"), AccountID: x.ID, ToAccountID: y.ID,
	})
	e.DeleteTransaction(tx.ID)

	assertBalance(t, l, x.ID, "100")
	assertBalance(t, l, y.ID, "50")
	if _, ok := e.Get(tx.ID); ok {
		t.Error("deleted transaction still present")
	}
}

func TestUpdateTransferAmount(t *testing.T) {
	l, e, _, x, y := twoAccounts(t)

	tx := mustAddTx(t, e, models.CreateTransactionRequest{
		Type: models.TransactionTransfer, Amount: dec("30"), AccountID: x.ID, ToAccountID: y.ID,
	})
	if err := e.UpdateTransaction(tx.ID, models.UpdateTransactionRequest{Amount: decPtr("20")}); err != nil {
		t.Fatalf("UpdateTransaction() error = %v", err)
	}

	assertBalance(t, l, x.ID, "80")
	assertBalance(t, l, y.ID, "70")
}

func TestAddThenDeleteRestoresBalances(t *testing.T) {
	types := []models.TransactionType{
		models.TransactionIncome,
		models.TransactionExpense,
		models.TransactionTransfer,
	}

	for _, typ := range types {
		t.Run(string(typ), func(t *testing.T) {
			l, e, _, x, y := twoAccounts(t)

			req := models.CreateTransactionRequest{Type: typ, Amount: dec("12.34"), AccountID: x.ID}
			if typ == models.TransactionTransfer {
				req.ToAccountID = y.ID
			}
			tx := mustAddTx(t, e, req)
			e.DeleteTransaction(tx.ID)

			assertBalance(t, l, x.ID, "100")
			assertBalance(t, l, y.ID, "50")
		})
	}
}

func TestUpdateWithSameDataLeavesBalances(t *testing.T) {
	l, e, _, x, y := twoAccounts(t)

	tx := mustAddTx(t, e, models.CreateTransactionRequest{
		Type: models.TransactionTransfer, Amount: dec("30"), AccountID: x.ID, ToAccountID: y.ID,
	})
	req := models.UpdateTransactionRequest{
		Description: ptr(tx.Description),
		Amount:      decPtr("30"),
		Type:        ptr(tx.Type),
		Date:        ptr(tx.Date),
		AccountID:   ptr(tx.AccountID),
		ToAccountID: ptr(tx.ToAccountID),
	}
	if err := e.UpdateTransaction(tx.ID, req); err != nil {
		t.Fatalf("UpdateTransaction() error = %v", err)
	}

	assertBalance(t, l, x.ID, "70")
	assertBalance(t, l, y.ID, "80")
}

func TestUpdateChangesType(t *testing.T) {
	l, e, _, x, y := twoAccounts(t)

	tx := mustAddTx(t, e, models.CreateTransactionRequest{Type: models.TransactionIncome, Amount: dec("20"), AccountID: x.ID})
	assertBalance(t, l, x.ID, "120")

	err := e.UpdateTransaction(tx.ID, models.UpdateTransactionRequest{
		Type:        ptr(models.TransactionTransfer),
		ToAccountID: ptr(y.ID),
	})
	if err != nil {
		t.Fatalf("UpdateTransaction() error = %v", err)
	}

	// Income reversed (-20), transfer applied (-20 / +20).
	assertBalance(t, l, x.ID, "80")
	assertBalance(t, l, y.ID, "70")

	err = e.UpdateTransaction(tx.ID, models.UpdateTransactionRequest{Type: ptr(models.TransactionExpense)})
	if err != nil {
		t.Fatalf("UpdateTransaction() error = %v", err)
	}
	assertBalance(t, l, x.ID, "80")
	assertBalance(t, l, y.ID, "50")

	got, _ := e.Get(tx.ID)
	if got.ToAccountID != "" {
		t.Errorf("ToAccountID = %q, want cleared for expense", got.ToAccountID)
	}
}

func TestUpdateMovesAccount(t *testing.T) {
	l, e, _, x, y := twoAccounts(t)

	tx := mustAddTx(t, e, models.CreateTransactionRequest{Type: models.TransactionExpense, Amount: dec("10"), AccountID: x.ID})
	if err := e.UpdateTransaction(tx.ID, models.UpdateTransactionRequest{AccountID: ptr(y.ID)}); err != nil {
		t.Fatalf("UpdateTransaction() error = %v", err)
	}

	assertBalance(t, l, x.ID, "100")
	assertBalance(t, l, y.ID, "40")
}

func TestInvalidUpdateChangesNothing(t *testing.T) {
	l, e, rec, x, y := twoAccounts(t)

	tx := mustAddTx(t, e, models.CreateTransactionRequest{
		Type: models.TransactionTransfer, Amount: dec("30"), AccountID: x.ID, ToAccountID: y.ID,
	})
	saves := rec.count(store.CollectionAccounts)

	tests := []struct {
		name  string
		req   models.UpdateTransactionRequest
		field string
	}{
		{"zero amount", models.UpdateTransactionRequest{Amount: decPtr("0")}, "amount"},
		{"negative amount", models.UpdateTransactionRequest{Amount: decPtr("-5")}, "amount"},
		{"bad date", models.UpdateTransactionRequest{Date: ptr("2024-13-01")}, "date"},
		{"self transfer", models.UpdateTransactionRequest{ToAccountID: ptr(x.ID)}, "to_account_id"},
		{"unknown type", models.UpdateTransactionRequest{Type: ptr(models.TransactionType("refund"))}, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.UpdateTransaction(tx.ID, tt.req)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("UpdateTransaction() error = %v, want *ValidationError", err)
			}
			if !verr.Has(tt.field) {
				t.Errorf("error %v does not mention %s", verr, tt.field)
			}
		})
	}

	assertBalance(t, l, x.ID, "70")
	assertBalance(t, l, y.ID, "80")
	if rec.count(store.CollectionAccounts) != saves {
		t.Error("rejected updates persisted accounts")
	}
	got, _ := e.Get(tx.ID)
	if !got.Amount.Equal(dec("30")) {
		t.Errorf("stored amount = %s, want 30", got.Amount)
	}
}

func TestAddRejectsInvalidTransaction(t *testing.T) {
	l, e, _, x, _ := twoAccounts(t)

	_, err := e.AddTransaction(models.CreateTransactionRequest{
		Description: "no destination",
		Amount:      dec("10"),
		Type:        models.TransactionTransfer,
		Date:        "2024-03-01",
		AccountID:   x.ID,
	})
	if err == nil {
		t.Fatal("AddTransaction() error = nil, want error")
	}
	assertBalance(t, l, x.ID, "100")
	if len(e.List()) != 0 {
		t.Error("rejected transaction was stored")
	}
}

func TestUnknownTransactionIsNoop(t *testing.T) {
	l, e, _, x, _ := twoAccounts(t)

	if err := e.UpdateTransaction("missing", models.UpdateTransactionRequest{Amount: decPtr("1")}); err != nil {
		t.Errorf("UpdateTransaction(missing) error = %v", err)
	}
	e.DeleteTransaction("missing")
	assertBalance(t, l, x.ID, "100")
}

func TestTransactionQueries(t *testing.T) {
	_, e, _, x, y := twoAccounts(t)

	mustAddTx(t, e, models.CreateTransactionRequest{Type: models.TransactionIncome, Amount: dec("1"), AccountID: x.ID, Date: "2024-01-10"})
	mustAddTx(t, e, models.CreateTransactionRequest{Type: models.TransactionExpense, Amount: dec("1"), AccountID: y.ID, Date: "2024-02-10"})
	mustAddTx(t, e, models.CreateTransactionRequest{Type: models.TransactionTransfer, Amount: dec("1"), AccountID: x.ID, ToAccountID: y.ID, Date: "2024-03-10"})

	if got := len(e.ByAccount(x.ID)); got != 2 {
		t.Errorf("ByAccount(X) len = %d, want 2", got)
	}
	if got := len(e.ByAccount(y.ID)); got != 2 {
		t.Errorf("ByAccount(Y) len = %d, want 2", got)
	}
	if got := len(e.ByType(models.TransactionExpense)); got != 1 {
		t.Errorf("ByType(expense) len = %d, want 1", got)
	}

	ranges := []struct {
		start, end string
		want       int
	}{
		{"2024-01-01", "2024-12-31", 3},
		{"2024-02-10", "2024-02-10", 1},
		{"", "2024-02-01", 1},
		{"2024-02-01", "", 2},
		{"", "", 3},
	}
	for _, r := range ranges {
		got, err := e.ByDateRange(r.start, r.end)
		if err != nil {
			t.Fatalf("ByDateRange(%q, %q) error = %v", r.start, r.end, err)
		}
		if len(got) != r.want {
			t.Errorf("ByDateRange(%q, %q) len = %d, want %d", r.start, r.end, len(got), r.want)
		}
	}

	if _, err := e.ByDateRange("2024/01/01", ""); err == nil {
		t.Error("ByDateRange() with malformed bound error = nil, want error")
	}
}
