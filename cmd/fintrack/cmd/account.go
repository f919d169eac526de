package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/fintrack/internal/models"
)

type accountFlagValues struct {
	name    string
	balance string
	main    bool
}

func (f accountFlagValues) create() (models.CreateAccountRequest, error) {
	req := models.CreateAccountRequest{Name: f.name, IsMain: f.main}
	if f.balance != "" {
		balance, err := parseAmount("balance", f.balance)
		if err != nil {
			return req, err
		}
		req.Balance = balance
	}
	return req, nil
}

func (f accountFlagValues) patch(changed changedFunc) models.UpdateAccountRequest {
	return models.UpdateAccountRequest{
		Name:   optString(changed, "name", f.name),
		IsMain: optBool(changed, "main", f.main),
	}
}

var accountFlags accountFlagValues

var accountCmd = &cobra.Command{
	Use:     "account",
	Aliases: []string{"accounts"},
	Short:   "Manage accounts",
}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Open an account",
	Long: `Open an account with an opening balance. The first account, or
one added with --main, becomes the main account.

Example:
  fintrack account add --name Checking --balance 1500 --main`,
	Args: cobra.NoArgs,
	Run:  runAccountAdd,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts and the total balance",
	Args:  cobra.NoArgs,
	Run:   runAccountList,
}

var accountUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename an account or make it the main account",
	Args:  cobra.ExactArgs(1),
	Run:   runAccountUpdate,
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an account",
	Long: `Delete an account. Transactions that reference it are kept. When
the main account is deleted the first remaining account becomes main.`,
	Args: cobra.ExactArgs(1),
	Run:  runAccountDelete,
}

func init() {
	accountAddCmd.Flags().StringVar(&accountFlags.name, "name", "", "Account name (required)")
	accountAddCmd.Flags().StringVar(&accountFlags.balance, "balance", "0", "Opening balance")
	accountAddCmd.Flags().BoolVar(&accountFlags.main, "main", false, "Make this the main account")
	accountAddCmd.MarkFlagRequired("name")

	accountUpdateCmd.Flags().StringVar(&accountFlags.name, "name", "", "New account name")
	accountUpdateCmd.Flags().BoolVar(&accountFlags.main, "main", false, "Make this the main account")

	accountCmd.AddCommand(accountAddCmd, accountListCmd, accountUpdateCmd, accountDeleteCmd)
}

func runAccountAdd(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	req, err := accountFlags.create()
	abortOnError(a, err, "invalid account")

	acc, err := a.Book.Accounts.AddAccount(req)
	abortOnError(a, err, "failed to add account")

	slog.Info("Account added", "id", acc.ID, "main", acc.IsMain)
	fmt.Println(acc.ID)
}

func runAccountList(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tBALANCE\tMAIN")
	for _, acc := range a.Book.Accounts.List() {
		mark := ""
		if acc.IsMain {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", acc.ID, acc.Name, a.Money.Money(acc.Balance), mark)
	}
	fmt.Fprintf(w, "\tTotal\t%s\t\n", a.Money.Money(a.Book.Accounts.TotalBalance()))
	w.Flush()
}

func runAccountUpdate(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	id := args[0]
	_, ok := a.Book.Accounts.Get(id)
	mustFind(a, ok, "account", id)

	err := a.Book.Accounts.UpdateAccount(id, accountFlags.patch(changedOn(cmd)))
	abortOnError(a, err, "failed to update account")
	slog.Info("Account updated", "id", id)
}

func runAccountDelete(cmd *cobra.Command, args []string) {
	a := openApp(context.Background())
	defer closeApp(a)

	id := args[0]
	_, ok := a.Book.Accounts.Get(id)
	mustFind(a, ok, "account", id)

	a.Book.Accounts.DeleteAccount(id)
	slog.Info("Account deleted", "id", id)
}
