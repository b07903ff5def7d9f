// Package money holds the decimal helpers shared by the balance engine and the API boundary.
//
// All arithmetic is done on shopspring/decimal values. Rounding to two fraction digits
// happens only when a value leaves the engine (a settlement or a total), never in between.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a string cannot be parsed as a monetary amount.
var ErrInvalidAmount = errors.New("invalid amount")

// Threshold is the rounding-noise limit: balances at or below it count as settled.
var Threshold = decimal.New(1, -2)

// Zero is the zero amount.
var Zero = decimal.Zero

// Round2 rounds to two fraction digits, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders d as a fixed two-decimal string, e.g. "42.00" or "-3.10".
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// IsNoise reports whether |d| is within the settlement threshold.
func IsNoise(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(Threshold)
}

// Parse converts a user supplied amount to a decimal.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted. Negative values and
// thousands separators are rejected. No rounding is applied.
//
// Examples:
//
//	Parse("12.34") -> 12.34, nil
//	Parse("12,5")  -> 12.5, nil
//	Parse("-1")    -> 0, ErrInvalidAmount
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Count(s, ".") > 1 {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParsePositive is Parse that additionally rejects zero.
func ParsePositive(s string) (decimal.Decimal, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Sum adds up the given amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
