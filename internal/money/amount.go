// Package money parses, rounds and formats currency amounts.
//
// Amounts are shopspring decimals throughout. Parsing tolerates the separator
// conventions seen on receipts ("1,234.56", "1.234,56", "3,99"), and formatting
// follows the number conventions of a BCP 47 locale.
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoAmount is returned when the input has no digits at all.
	ErrNoAmount = errors.New("no digits in amount")
	// ErrInvalidAmount is returned when the input holds more than a signed,
	// optionally currency-tagged number.
	ErrInvalidAmount = errors.New("invalid amount")
)

// currencyToken matches a currency symbol or ISO code printed next to an amount.
var currencyToken = func() string {
	tokens := []string{"CA$", "A$"}
	tokens = append(tokens, Symbols...)
	tokens = append(tokens, Codes...)
	for i, t := range tokens {
		tokens[i] = regexp.QuoteMeta(t)
	}
	return strings.Join(tokens, "|")
}()

var reAmount = regexp.MustCompile(`(?i)^([-+]?)\s*(?:` + currencyToken + `)?\s*([-+]?)\s*([\d.,\s]*?)\s*(?:` + currencyToken + `)?$`)

// ParseAmount normalizes a printed price into a decimal.
//
// The input may carry one currency symbol or code and a single leading sign
// ("-$2.00" and "$-2.00" are both -2). Anything else besides digits, spaces,
// '.' and ',' makes the amount invalid. The last separator is the decimal
// point when 1 or 2 digits follow it; every other separator is a grouping
// separator. So "1,234.56" and "1.234,56" both parse as 1234.56, while
// "1,234" parses as 1234.
func ParseAmount(s string) (decimal.Decimal, error) {
	m := reAmount.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		if !strings.ContainsFunc(s, unicode.IsDigit) {
			return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, ErrNoAmount)
		}
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, ErrInvalidAmount)
	}
	if m[1] != "" && m[2] != "" {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, ErrInvalidAmount)
	}
	negative := m[1] == "-" || m[2] == "-"

	body := strings.Join(strings.Fields(m[3]), "")
	if !strings.ContainsFunc(body, unicode.IsDigit) {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, ErrNoAmount)
	}

	cleaned := strings.TrimRight(body, ".,")
	intPart, frac := cleaned, ""
	if i := strings.LastIndexAny(cleaned, ".,"); i >= 0 {
		if tail := cleaned[i+1:]; len(tail) >= 1 && len(tail) <= 2 {
			intPart, frac = cleaned[:i], tail
		}
	}
	intPart = strings.NewReplacer(".", "", ",", "").Replace(intPart)
	if intPart == "" {
		intPart = "0"
	}

	num := intPart
	if frac != "" {
		num += "." + frac
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, ErrInvalidAmount)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// Round rounds d to the given number of minor-unit digits, half away from zero.
func Round(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// WithinTolerance reports whether a and b differ by at most tolerance
// relative to the larger magnitude. Two zeros are always within tolerance.
func WithinTolerance(a, b decimal.Decimal, tolerance float64) bool {
	larger := decimal.Max(a.Abs(), b.Abs())
	if larger.IsZero() {
		return true
	}
	limit := larger.Mul(decimal.NewFromFloat(tolerance))
	return a.Sub(b).Abs().LessThanOrEqual(limit)
}
