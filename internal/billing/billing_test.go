// AngelaMos | 2026
// billing_test.go

package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundToIncrement(t *testing.T) {
	tests := []struct {
		name      string
		minutes   int
		increment int
		want      int
	}{
		{"zero stays zero", 0, 6, 0},
		{"negative is zero", -5, 6, 0},
		{"one minute rounds up", 1, 6, 6},
		{"exact multiple", 12, 6, 12},
		{"just over", 13, 6, 18},
		{"quarter hour", 16, 15, 30},
		{"default increment", 7, 0, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundToIncrement(tt.minutes, tt.increment))
		})
	}
}

func TestRoundToIncrementProperties(t *testing.T) {
	for _, n := range []int{1, 5, 6, 10, 15, 30, 60} {
		for d := 1; d <= 600; d++ {
			got := RoundToIncrement(d, n)
			assert.GreaterOrEqual(t, got, d, "d=%d n=%d", d, n)
			assert.Zero(t, got%n, "d=%d n=%d", d, n)
			assert.Less(t, got-d, n, "d=%d n=%d", d, n)
		}
	}
}

func TestMinutesToHours(t *testing.T) {
	assert.Equal(t, "1.5", MinutesToHours(90).String())
	assert.Equal(t, "0.1", MinutesToHours(6).String())
	assert.Equal(t, "0.33", MinutesToHours(20).String())
	assert.True(t, MinutesToHours(0).IsZero())
}

func TestCalculateBillableAmount(t *testing.T) {
	rate := decimal.RequireFromString("250")

	assert.Equal(t, "25", CalculateBillableAmount(6, rate).String())
	assert.Equal(t, "375", CalculateBillableAmount(90, rate).String())
	assert.Equal(t, "83.33", CalculateBillableAmount(20, rate).String())
	assert.True(t, CalculateBillableAmount(0, rate).IsZero())
}

func TestCalculateBillableAmountIsMonotonic(t *testing.T) {
	rates := []string{"0", "0.01", "99.99", "150", "250", "333.33", "1200"}

	for i, r := range rates {
		rate := decimal.RequireFromString(r)
		prev := decimal.Zero
		for minutes := 0; minutes <= 480; minutes++ {
			amount := CalculateBillableAmount(minutes, rate)
			assert.True(t, amount.GreaterThanOrEqual(prev),
				"minutes=%d rate=%s", minutes, r)
			prev = amount

			if i > 0 {
				lower := CalculateBillableAmount(minutes, decimal.RequireFromString(rates[i-1]))
				assert.True(t, amount.GreaterThanOrEqual(lower),
					"minutes=%d rate=%s", minutes, r)
			}
		}
	}
}

func TestNetMinutes(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 60, NetMinutes(start, start.Add(time.Hour), 0))
	assert.Equal(t, 45, NetMinutes(start, start.Add(time.Hour), 15*60))
	assert.Equal(t, 1, NetMinutes(start, start.Add(89*time.Second), 0))
	assert.Equal(t, 2, NetMinutes(start, start.Add(90*time.Second), 0))
	assert.Equal(t, 0, NetMinutes(start, start.Add(29*time.Second), 0))
	assert.Equal(t, 0, NetMinutes(start, start.Add(time.Minute), 600))
	assert.Equal(t, 0, NetMinutes(start, start.Add(-time.Hour), 0))
}

func TestComputeTotals(t *testing.T) {
	lines := []decimal.Decimal{
		decimal.RequireFromString("125.00"),
		decimal.RequireFromString("83.33"),
	}

	totals := ComputeTotals(lines, decimal.RequireFromString("0.0825"))
	assert.Equal(t, "208.33", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "17.19", totals.TaxAmount.StringFixed(2))
	assert.Equal(t, "225.52", totals.Total.StringFixed(2))

	untaxed := ComputeTotals(lines, decimal.Zero)
	assert.True(t, untaxed.Total.Equal(untaxed.Subtotal))
}

func TestFormatSequence(t *testing.T) {
	assert.Equal(t, "INV-2026-0001", FormatSequence(InvoicePrefix, 2026, 1))
	assert.Equal(t, "CASE-2026-0420", FormatSequence(CasePrefix, 2026, 420))
	assert.Equal(t, "INV-2026-12345", FormatSequence(InvoicePrefix, 2026, 12345))
	assert.Equal(t, "INV-2026-%", SequencePattern(InvoicePrefix, 2026))
}
