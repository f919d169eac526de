package converter

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/fintrack/internal/ledger"
	"github.com/pigeonworks-llc/fintrack/internal/models"
	"github.com/pigeonworks-llc/fintrack/pkg/beancount"
)

// Journal is a book rendered as Beancount entries.
type Journal struct {
	Opens    []beancount.Open
	Openings []beancount.Transaction
	// Months holds transactions keyed by YYYY-MM, in date order.
	Months map[string][]beancount.Transaction
}

// MonthKeys returns the months of the journal in order.
func (j Journal) MonthKeys() []string {
	return slices.Sorted(maps.Keys(j.Months))
}

// Converter converts fintrack transactions to Beancount format.
type Converter struct {
	mapper   *Mapper
	currency string
}

// NewConverter creates a new Converter.
func NewConverter(mapper *Mapper, currency string) *Converter {
	if mapper == nil {
		mapper = DefaultMapper()
	}
	if currency == "" {
		currency = "BRL"
	}
	return &Converter{
		mapper:   mapper,
		currency: currency,
	}
}

// Convert renders accounts and transactions as a journal. Every account is
// opened on the first transaction date, or on today when there are none.
// An account's opening balance is its current balance minus the effect of
// its transactions.
func (c *Converter) Convert(accounts []models.Account, txs []models.Transaction, today string) Journal {
	names := c.mapper.Assign(accounts)
	nameOf := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		name := UnknownAccount(id)
		names[id] = name
		return name
	}

	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b models.Transaction) int {
		return strings.Compare(a.Date, b.Date)
	})

	openDate := today
	if len(sorted) > 0 && sorted[0].Date < openDate {
		openDate = sorted[0].Date
	}

	effect := make(map[string]decimal.Decimal)
	journal := Journal{Months: make(map[string][]beancount.Transaction)}
	for _, tx := range sorted {
		deltas := ledger.EffectOf(tx)
		if len(deltas) == 0 {
			continue
		}
		for _, d := range deltas {
			effect[d.AccountID] = effect[d.AccountID].Add(d.Amount)
		}
		bt := c.ConvertTransaction(tx, deltas, nameOf)
		journal.Months[bt.YearMonth()] = append(journal.Months[bt.YearMonth()], bt)
	}

	for _, acc := range accounts {
		opening := acc.Balance.Sub(effect[acc.ID])
		if opening.IsZero() {
			continue
		}
		journal.Openings = append(journal.Openings, beancount.Transaction{
			Date:      openDate,
			Narration: "Opening balance",
			Postings: []beancount.Posting{
				{Account: names[acc.ID], Amount: opening, Currency: c.currency},
				{Account: c.mapper.EquityAccount(), Amount: opening.Neg(), Currency: c.currency},
			},
		})
	}

	opened := []string{c.mapper.EquityAccount(), c.mapper.IncomeAccount(), c.mapper.ExpenseAccount()}
	for _, name := range names {
		opened = append(opened, name)
	}
	slices.Sort(opened)
	for _, name := range slices.Compact(opened) {
		journal.Opens = append(journal.Opens, beancount.Open{
			Date:       openDate,
			Account:    name,
			Currencies: []string{c.currency},
		})
	}

	return journal
}

// ConvertTransaction converts a transaction given its balance deltas. Income
// and expenses are balanced against the mapper's income and expense
// accounts; transfers balance on their own.
func (c *Converter) ConvertTransaction(tx models.Transaction, deltas []ledger.Delta, nameOf func(id string) string) beancount.Transaction {
	var postings []beancount.Posting
	for _, d := range deltas {
		postings = append(postings, beancount.Posting{
			Account:  nameOf(d.AccountID),
			Amount:   d.Amount,
			Currency: c.currency,
		})
	}

	var tags []string
	switch tx.Type {
	case models.TransactionIncome:
		postings = append(postings, beancount.Posting{
			Account:  c.mapper.IncomeAccount(),
			Amount:   tx.Amount.Neg(),
			Currency: c.currency,
		})
	case models.TransactionExpense:
		postings = append(postings, beancount.Posting{
			Account:  c.mapper.ExpenseAccount(),
			Amount:   tx.Amount,
			Currency: c.currency,
		})
	case models.TransactionTransfer:
		tags = []string{"transfer"}
	}

	metadata := map[string]string{"fintrack-id": tx.ID}
	if tx.Notes != "" {
		metadata["notes"] = tx.Notes
	}

	return beancount.Transaction{
		Date:      tx.Date,
		Narration: tx.Description,
		Tags:      tags,
		Metadata:  metadata,
		Postings:  postings,
	}
}

// FormatTransaction formats a Beancount transaction as a string.
func (c *Converter) FormatTransaction(txn beancount.Transaction) string {
	var sb strings.Builder

	// Transaction header
	sb.WriteString(txn.Date)
	sb.WriteString(" *")
	sb.WriteString(fmt.Sprintf(" %s", quote(txn.Narration)))
	if len(txn.Tags) > 0 {
		sb.WriteString(" #")
		sb.WriteString(strings.Join(txn.Tags, " #"))
	}
	sb.WriteString("\n")

	for _, key := range slices.Sorted(maps.Keys(txn.Metadata)) {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", key, quote(txn.Metadata[key])))
	}

	// Postings
	for _, posting := range txn.Postings {
		sb.WriteString("  ")
		sb.WriteString(posting.Account)

		// Right-align amount (typical Beancount style)
		amount := formatAmount(posting.Amount)
		spaces := max(2, 60-len(posting.Account)-len(amount))
		sb.WriteString(strings.Repeat(" ", spaces))
		sb.WriteString(fmt.Sprintf("%s %s", amount, posting.Currency))

		if posting.Comment != "" {
			sb.WriteString(fmt.Sprintf(" ; %s", posting.Comment))
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatOpen formats an open directive.
func (c *Converter) FormatOpen(open beancount.Open) string {
	line := fmt.Sprintf("%s open %s", open.Date, open.Account)
	if len(open.Currencies) > 0 {
		line += " " + strings.Join(open.Currencies, ",")
	}
	return line
}

// WriteResult reports what WriteJournal wrote.
type WriteResult struct {
	Months       []string
	Pruned       []string
	Transactions int
}

// WriteJournal writes the accounts file, one file per month and the main
// file, and removes month files that no longer have transactions.
func (c *Converter) WriteJournal(repo beancount.Repository, j Journal) (WriteResult, error) {
	var result WriteResult

	var header []string
	if len(j.Opens) > 0 {
		opens := make([]string, 0, len(j.Opens))
		for _, open := range j.Opens {
			opens = append(opens, c.FormatOpen(open))
		}
		header = append(header, strings.Join(opens, "\n"))
	}
	for _, txn := range j.Openings {
		header = append(header, c.FormatTransaction(txn))
	}
	if err := repo.WriteAccountsFile(header); err != nil {
		return result, fmt.Errorf("failed to write accounts file: %w", err)
	}

	result.Months = j.MonthKeys()
	for _, ym := range result.Months {
		entries := make([]string, 0, len(j.Months[ym]))
		for _, txn := range j.Months[ym] {
			entries = append(entries, c.FormatTransaction(txn))
		}
		if err := repo.WriteMonthFile(ym, entries); err != nil {
			return result, fmt.Errorf("failed to write month %s: %w", ym, err)
		}
		result.Transactions += len(entries)
	}

	pruned, err := repo.PruneMonths(result.Months)
	result.Pruned = pruned
	if err != nil {
		return result, fmt.Errorf("failed to prune month files: %w", err)
	}

	if err := repo.WriteMainFile(result.Months); err != nil {
		return result, fmt.Errorf("failed to write main file: %w", err)
	}
	return result, nil
}

// Helper functions

func formatAmount(d decimal.Decimal) string {
	places := int32(2)
	if exp := -d.Exponent(); exp > places {
		places = exp
	}
	return d.StringFixed(places)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
