package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is used when no currency code is configured.
const DefaultCurrency = "USD"

// Currency describes how amounts in one ISO 4217 currency are shown.
type Currency struct {
	Code        string
	Symbol      string
	MinorDigits int32
}

var currencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", MinorDigits: 2},
	"CAD": {Code: "CAD", Symbol: "CA$", MinorDigits: 2},
	"AUD": {Code: "AUD", Symbol: "A$", MinorDigits: 2},
	"EUR": {Code: "EUR", Symbol: "€", MinorDigits: 2},
	"GBP": {Code: "GBP", Symbol: "£", MinorDigits: 2},
	"INR": {Code: "INR", Symbol: "₹", MinorDigits: 2},
	"CHF": {Code: "CHF", Symbol: "CHF ", MinorDigits: 2},
	"JPY": {Code: "JPY", Symbol: "¥", MinorDigits: 0},
	"KRW": {Code: "KRW", Symbol: "₩", MinorDigits: 0},
}

// Symbols lists the currency symbols recognized in receipt text.
var Symbols = []string{"$", "€", "£", "¥", "₹", "₩"}

// Codes lists the ISO codes recognized in receipt text.
var Codes = []string{"USD", "CAD", "AUD", "EUR", "GBP", "INR", "CHF", "JPY", "KRW"}

// Lookup returns display metadata for an ISO code. Unknown codes are shown
// with the code itself as prefix and two minor digits.
func Lookup(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	if c, ok := currencies[code]; ok {
		return c
	}
	return Currency{Code: code, Symbol: code + " ", MinorDigits: 2}
}

// MinorDigits returns the number of minor-unit digits for an ISO code.
func MinorDigits(code string) int32 {
	return Lookup(code).MinorDigits
}

// Format renders amount in the given currency using the digit grouping and
// decimal mark of tag. The currency symbol is always a prefix. Digits come
// from the decimal itself, so amounts of any size print exactly.
func Format(amount decimal.Decimal, code string, tag language.Tag) string {
	c := Lookup(code)
	rounded := amount.Round(c.MinorDigits)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	group, point := separators(tag)
	intDigits, frac, _ := strings.Cut(rounded.StringFixed(c.MinorDigits), ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(c.Symbol)
	for i, r := range intDigits {
		if i > 0 && (len(intDigits)-i)%3 == 0 {
			b.WriteString(group)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(point)
		b.WriteString(frac)
	}
	return b.String()
}

// separators asks x/text how tag prints 1234.5 and reads the grouping and
// decimal separators back out of the result. Locales that do not print ASCII
// digits fall back to "," and ".".
func separators(tag language.Tag) (group, point string) {
	sample := message.NewPrinter(tag).Sprint(number.Decimal(1234.5, number.Scale(1)))
	one, two := strings.Index(sample, "1"), strings.Index(sample, "2")
	four, five := strings.Index(sample, "4"), strings.Index(sample, "5")
	if one < 0 || two < one || four < two || five < four {
		return ",", "."
	}
	return sample[one+1 : two], sample[four+1 : five]
}
