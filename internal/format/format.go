// Package format renders amounts and dates for display.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/fintrack/internal/models"
)

// Formatter renders amounts in one currency.
type Formatter struct {
	currency money.Currency
}

// New returns a Formatter for an ISO 4217 currency code.
func New(code string) (*Formatter, error) {
	code = strings.ToUpper(code)
	cur := money.GetCurrency(code)
	if cur == nil {
		return nil, fmt.Errorf("unknown currency: %s", code)
	}
	return &Formatter{currency: *cur}, nil
}

// Code returns the currency code.
func (f *Formatter) Code() string {
	return f.currency.Code
}

// Money formats an amount with the currency's symbol and separators, rounded
// to the currency's minor unit.
func (f *Formatter) Money(amount decimal.Decimal) string {
	minor := amount.Shift(int32(f.currency.Fraction)).Round(0)
	return f.currency.Formatter().Format(minor.IntPart())
}

// Signed formats an amount with an explicit sign. Zero renders as "-".
func (f *Formatter) Signed(amount decimal.Decimal) string {
	switch {
	case amount.IsZero():
		return "-"
	case amount.IsPositive():
		return "+" + f.Money(amount)
	default:
		return f.Money(amount)
	}
}

// Date renders a YYYY-MM-DD date as DD/MM/YYYY. Other input is returned
// unchanged.
func Date(date string) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

// Percent renders a ratio as a percentage with two decimals.
func Percent(ratio decimal.Decimal) string {
	return ratio.Shift(2).StringFixed(2) + "%"
}

// Due describes a days-until value.
func Due(days int) string {
	switch {
	case days < -1:
		return fmt.Sprintf("overdue by %d days", -days)
	case days == -1:
		return "overdue by 1 day"
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("due in %d days", days)
	}
}
