// Package priceparser normalizes user-typed price strings of ambiguous
// locale formatting ("1.234,56", "1,234.56", "1234.56") into an exact
// two-decimal amount.
package priceparser

import (
	"strings"

	"github.com/shopspring/decimal"
)

const fractionDigits = 2

// Parse converts a free-form price string into a decimal rounded to two
// fractional digits (half away from zero). The last '.' or ',' in the
// input is taken as the decimal separator; every other occurrence is a
// grouping mark and is dropped. A number with a single separator and
// three trailing digits is therefore read as a decimal, not thousands:
// "1.234" parses as 1.23 after rounding. That ambiguity is accepted.
func Parse(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, false
	}
	s = strings.ReplaceAll(s, " ", "")

	if !strings.ContainsAny(s, ".,") {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d.Round(fractionDigits), true
	}

	if d, err := decimal.NewFromString(normalizeLastSeparator(s)); err == nil {
		return d.Round(fractionDigits), true
	}

	// Recovery for malformed separator mixes: treat every comma as a
	// decimal point and let the decimal parser sort it out.
	if d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ".")); err == nil {
		return d.Round(fractionDigits), true
	}

	// Last resort: Italian formatting, '.' groups thousands and ','
	// marks decimals.
	italian := strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	if d, err := decimal.NewFromString(italian); err == nil {
		return d.Round(fractionDigits), true
	}

	return decimal.Decimal{}, false
}

// normalizeLastSeparator rewrites s so that the last '.' or ',' becomes
// the decimal point and all earlier/later separators disappear.
func normalizeLastSeparator(s string) string {
	last := strings.LastIndexAny(s, ".,")

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' || c == ',' {
			if i == last {
				b.WriteByte('.')
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
