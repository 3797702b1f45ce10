package utils

import "github.com/shopspring/decimal"

// Round2 rounds to 2 decimal places, the precision of every money column.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
