package domain

import "github.com/shopspring/decimal"

// FormatAmount renders cents-precision values with two decimals and keeps any
// finer precision as-is, so stored amounts round-trip exactly.
func FormatAmount(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}
