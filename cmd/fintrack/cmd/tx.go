package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/fintrack/internal/app"
	"github.com/pigeonworks-llc/fintrack/internal/format"
	"github.com/pigeonworks-llc/fintrack/internal/models"
)

type txFlagValues struct {
	description string
	amount      string
	txType      string
	date        string
	account     string
	toAccount   string
	notes       string
}

// create builds a request; an empty date means today.
func (f txFlagValues) create(today string) (models.CreateTransactionRequest, error) {
	amount, err := parseAmount("amount", f.amount)
	if err != nil {
		return models.CreateTransactionRequest{}, err
	}
	date := f.date
	if date == "" {
		date = today
	}
	return models.CreateTransactionRequest{
		Description: f.description,
		Amount:      amount,
		Type:        models.TransactionType(f.txType),
		Date:        date,
		AccountID:   f.account,
		ToAccountID: f.toAccount,
		Notes:       f.notes,
	}, nil
}

func (f txFlagValues) patch(changed changedFunc) (models.UpdateTransactionRequest, error) {
	amount, err := optAmount(changed, "amount", f.amount)
	if err != nil {
		return models.UpdateTransactionRequest{}, err
	}
	req := models.UpdateTransactionRequest{
		Description: optString(changed, "description", f.description),
		Amount:      amount,
		Date:        optString(changed, "date", f.date),
		AccountID:   optString(changed, "account", f.account),
		ToAccountID: optString(changed, "to-account", f.toAccount),
		Notes:       optString(changed, "notes", f.notes),
	}
	if changed("type") {
		t := models.TransactionType(f.txType)
		req.Type = &t
	}
	return req, nil
}

type txFilterValues struct {
	account string
	txType  string
	from    string
	to      string
}

// apply narrows the transaction list. All set filters must match.
func (f txFilterValues) apply(a *app.App) ([]models.Transaction, error) {
	var txs []models.Transaction
	if f.from != "" || f.to != "" {
		ranged, err := a.Book.Transactions.ByDateRange(f.from, f.to)
		if err != nil {
			return nil, err
		}
		txs = ranged
	} else {
		txs = a.Book.Transactions.List()
	}

	out := txs[:0:0]
	for _, tx := range txs {
		if f.account != "" && tx.AccountID != f.account && tx.ToAccountID != f.account {
			continue
		}
		if f.txType != "" && string(tx.Type) != f.txType {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

var (
	txFlags  txFlagValues
	txFilter txFilterValues
)

var txCmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transaction", "transactions"},
	Short:   "Record transactions",
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction and update account balances",
	Long: `Record an income, expense or transfer. Income adds the amount to
the account, an expense subtracts it, and a transfer moves it to
--to-account.

Example:
  fintrack tx add --type income --amount 3200 --account <id> --description Salary
  fintrack tx add --type transfer --amount 500 --account <id> --to-account <id> --description Savings`,
	Args: cobra.NoArgs,
	Run:  runTxAdd,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	Args:  cobra.NoArgs,
	Run:   runTxList,
}

var txUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a transaction and re-apply its effect on balances",
	Args:  cobra.ExactArgs(1),
	Run:   runTxUpdate,
}

var txDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction and reverse its effect on balances",
	Args:  cobra.ExactArgs(1),
	Run:   runTxDelete,
}

func init() {
	for _, c := range []*cobra.Command{txAddCmd, txUpdateCmd} {
		c.Flags().StringVar(&txFlags.description, "description", "", "Description")
		c.Flags().StringVar(&txFlags.amount, "amount", "", "Amount, always positive")
		c.Flags().StringVar(&txFlags.txType, "type", "", "income, expense or transfer")
		c.Flags().StringVar(&txFlags.date, "date", "", "Date (YYYY-MM-DD), default today")
		c.Flags().StringVar(&txFlags.account, "account", "", "Account ID")
		c.Flags().StringVar(&txFlags.toAccount, "to-account", "", "Destination account ID for transfers")
		c.Flags().StringVar(&txFlags.notes, "notes", "", "Notes")
	}
	txAddCmd.MarkFlagRequired("amount")
	txAddCmd.MarkFlagRequired("type")
	txAddCmd.MarkFlagRequired("account")

	txListCmd.Flags().StringVar(&txFilter.account, "account", "", "Only transactions touching this account")
	txListCmd.Flags().StringVar(&txFilter.txType, "type", "", "Only transactions of this type")
	txListCmd.Flags().StringVar(&txFilter.from, "from", "", "Start date (YYYY-MM-DD)")
	txListCmd.Flags().StringVar(&txFilter.to, "to", "", "End date (YYYY-MM-DD)")

	txCmd.AddCommand(txAddCmd, txListCmd, txUpdateCmd, txDeleteCmd)
}

func runTxAdd(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	req, err := txFlags.create(a.Book.Now().Format(models.DateLayout))
	abortOnError(a, err, "invalid transaction")

	tx, err := a.Book.Transactions.AddTransaction(req)
	abortOnError(a, err, "failed to add transaction")

	slog.Info("Transaction added", "id", tx.ID, "type", tx.Type, "amount", tx.Amount)
	fmt.Println(tx.ID)
}

func runTxList(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	txs, err := txFilter.apply(a)
	abortOnError(a, err, "invalid filter")

	names := make(map[string]string)
	for _, acc := range a.Book.Accounts.List() {
		names[acc.ID] = acc.Name
	}
	accountName := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tAMOUNT\tACCOUNT\tDESCRIPTION")
	for _, tx := range txs {
		amount := tx.Amount
		if tx.Type == models.TransactionExpense {
			amount = amount.Neg()
		}
		account := accountName(tx.AccountID)
		if tx.IsTransfer() {
			account += " -> " + accountName(tx.ToAccountID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, format.Date(tx.Date), a.Catalog.TransactionTypeLabel(string(tx.Type)),
			a.Money.Signed(amount), account, tx.Description)
	}
	w.Flush()
}

func runTxUpdate(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	id := args[0]
	_, ok := a.Book.Transactions.Get(id)
	mustFind(a, ok, "transaction", id)

	req, err := txFlags.patch(changedOn(cmd))
	abortOnError(a, err, "invalid transaction")

	err = a.Book.Transactions.UpdateTransaction(id, req)
	abortOnError(a, err, "failed to update transaction")
	slog.Info("Transaction updated", "id", id)
}

func runTxDelete(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	id := args[0]
	_, ok := a.Book.Transactions.Get(id)
	mustFind(a, ok, "transaction", id)

	a.Book.Transactions.DeleteTransaction(id)
	slog.Info("Transaction deleted", "id", id)
}
