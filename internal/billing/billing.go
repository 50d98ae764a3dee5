// AngelaMos | 2026
// billing.go

// Package billing holds the time and money arithmetic shared by time
// entries, invoices and the dashboard. Everything here is pure.
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultIncrement is the tenth-of-an-hour billing unit.
const DefaultIncrement = 6

var sixty = decimal.NewFromInt(60)

// RoundToIncrement rounds minutes up to the next multiple of increment.
// Zero or negative input rounds to zero.
func RoundToIncrement(minutes, increment int) int {
	if minutes <= 0 {
		return 0
	}
	if increment <= 0 {
		increment = DefaultIncrement
	}

	remainder := minutes % increment
	if remainder == 0 {
		return minutes
	}
	return minutes + increment - remainder
}

func MinutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty).Round(2)
}

// CalculateBillableAmount prices minutes at an hourly rate, rounded to
// cents. The division happens last so the result stays monotonic in both
// arguments.
func CalculateBillableAmount(minutes int, hourlyRate decimal.Decimal) decimal.Decimal {
	if minutes <= 0 || hourlyRate.IsNegative() {
		return decimal.Zero
	}
	return hourlyRate.Mul(decimal.NewFromInt(int64(minutes))).Div(sixty).Round(2)
}

// NetMinutes is the wall-clock time between start and end minus the paused
// seconds, rounded to the nearest minute and never negative.
func NetMinutes(start, end time.Time, pausedSeconds int) int {
	elapsed := end.Sub(start) - time.Duration(pausedSeconds)*time.Second
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed.Round(time.Minute) / time.Minute)
}

// PausedSecondsSince returns the whole seconds elapsed since pausedAt.
func PausedSecondsSince(pausedAt, now time.Time) int {
	d := now.Sub(pausedAt)
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

func TaxAmount(subtotal, taxRate decimal.Decimal) decimal.Decimal {
	if taxRate.IsZero() {
		return decimal.Zero
	}
	return subtotal.Mul(taxRate).Round(2)
}

// Totals is the invoice money summary, fixed at creation time.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

func ComputeTotals(lineAmounts []decimal.Decimal, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, amount := range lineAmounts {
		subtotal = subtotal.Add(amount)
	}
	tax := TaxAmount(subtotal, taxRate)

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}
}

// Sequence prefixes for generated document numbers.
const (
	InvoicePrefix = "INV"
	CasePrefix    = "CASE"
)

// FormatSequence renders numbers like INV-2026-0042. Sequences wider than
// four digits are printed in full.
func FormatSequence(prefix string, year, n int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, n)
}

// SequencePattern is the LIKE pattern matching every number issued for a
// prefix in a year.
func SequencePattern(prefix string, year int) string {
	return fmt.Sprintf("%s-%d-%%", prefix, year)
}
