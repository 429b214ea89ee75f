package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizePrice turns a currency string such as "$1,234.50" into its canonical
// numeric form ("1234.5"). Leading dollar signs and thousands separators are
// dropped. ok is false when the remainder is not a number; callers keep the raw
// value in that case so later filters reject it.
func NormalizePrice(raw string) (string, bool) {
	d, ok := parseCurrency(raw)
	if !ok {
		return raw, false
	}
	return d.String(), true
}

// ParseAmount parses a normalized numeric string
func ParseAmount(s string) (float64, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

func parseCurrency(raw string) (decimal.Decimal, bool) {
	s := strings.TrimLeft(strings.TrimSpace(raw), "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
