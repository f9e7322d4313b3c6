package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mmynk/splitscan/internal/models"
	"github.com/mmynk/splitscan/internal/money"
)

// Confidence levels assigned by the matchers.
const (
	ConfidenceSymbol = 1.0
	ConfidenceBare   = 0.7
)

// Match is the structured result of a single matcher.
type Match struct {
	Name       string
	Price      string
	Quantity   int
	Confidence float64
}

// Matcher tries to read one priced item from a trimmed line.
type Matcher func(line string) (Match, bool)

const (
	symbolClass = `[$€£¥₹₩]`
	codeAlt     = `USD|CAD|AUD|EUR|GBP|INR|CHF|JPY|KRW`
	// grouped digits first so "1,234.56" is not read as "234.56"
	priceNum = `\d{1,3}(?:[.,]\d{3})+(?:[.,]\d{1,2})?|\d+(?:[.,]\d{1,2})?`
	priceDec = `\d{1,3}(?:[.,]\d{3})+[.,]\d{1,2}|\d+[.,]\d{1,2}`
	taxFlag  = `(?:\s+[A-Z])?`
)

var (
	reSymbolPrefix = regexp.MustCompile(`^(.+?)[\s:]*(-)?(?:` + symbolClass + `\s?|(?:` + codeAlt + `)\s+)(` + priceNum + `)` + taxFlag + `$`)
	reSymbolSuffix = regexp.MustCompile(`^(.+?)[\s:]+(-)?(` + priceNum + `)\s?(?:` + symbolClass + `|(?:` + codeAlt + `))` + taxFlag + `$`)
	reBarePrice    = regexp.MustCompile(`^(.+?)(?:\s+|:\s*)(-)?(` + priceDec + `)` + taxFlag + `$`)
	reQuantity     = regexp.MustCompile(`^(\d{1,3})\s*[xX×]\s+(.+)$`)

	reSpaces      = regexp.MustCompile(`\s+`)
	reTrailingTag = regexp.MustCompile(`(?i)(?:(?:^|\s+)(?:` + codeAlt + `)|\s*` + symbolClass + `)+$`)
)

// Matchers is the ordered list tried by Classify. The first match wins.
var Matchers = []Matcher{
	MatchQuantity,
	MatchSymbolPrefix,
	MatchSymbolSuffix,
	MatchBarePrice,
}

// MatchSymbolPrefix reads "name $3.99" and "name USD 12.00".
func MatchSymbolPrefix(line string) (Match, bool) {
	return priced(reSymbolPrefix, line, ConfidenceSymbol)
}

// MatchSymbolSuffix reads "name 3,99 €" and "name 12.00 USD".
func MatchSymbolSuffix(line string) (Match, bool) {
	return priced(reSymbolSuffix, line, ConfidenceSymbol)
}

// MatchBarePrice reads "name 3.99" where the price carries no currency marker.
// A decimal part is required so that counts and codes are not read as prices.
func MatchBarePrice(line string) (Match, bool) {
	return priced(reBarePrice, line, ConfidenceBare)
}

// MatchQuantity reads "2x Apple $1.25". The price is kept as printed and the
// quantity is recorded separately.
func MatchQuantity(line string) (Match, bool) {
	m := reQuantity.FindStringSubmatch(line)
	if m == nil {
		return Match{}, false
	}
	qty, err := strconv.Atoi(m[1])
	if err != nil || qty < 1 {
		return Match{}, false
	}
	rest := strings.TrimSpace(m[2])
	for _, matcher := range []Matcher{MatchSymbolPrefix, MatchSymbolSuffix, MatchBarePrice} {
		if match, ok := matcher(rest); ok {
			match.Quantity = qty
			return match, true
		}
	}
	return Match{}, false
}

func priced(re *regexp.Regexp, line string, confidence float64) (Match, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return Match{}, false
	}
	// a minus sign against the amount marks a discount or refund
	if m[2] != "" {
		return Match{}, false
	}
	name := cleanName(m[1])
	if name == "" {
		return Match{}, false
	}
	return Match{Name: name, Price: m[3], Quantity: 1, Confidence: confidence}, true
}

func cleanName(name string) string {
	name = reSpaces.ReplaceAllString(strings.TrimSpace(name), " ")
	for {
		trimmed := reTrailingTag.ReplaceAllString(name, "")
		trimmed = strings.TrimRight(trimmed, " .,;:-_@#*=")
		trimmed = strings.TrimLeft(trimmed, " @#*-")
		if trimmed == name {
			break
		}
		name = trimmed
	}
	if !strings.ContainsFunc(name, unicode.IsLetter) {
		return ""
	}
	return name
}

// Classify turns one line into a LineItem using the first matching pattern.
// It does not apply the noise filter; see ParseLine.
func Classify(line string) (models.LineItem, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return models.LineItem{}, false
	}
	for _, matcher := range Matchers {
		match, ok := matcher(line)
		if !ok {
			continue
		}
		price, err := money.ParseAmount(match.Price)
		if err != nil {
			return models.LineItem{}, false
		}
		return models.LineItem{
			Name:       match.Name,
			UnitPrice:  price,
			Quantity:   match.Quantity,
			Confidence: match.Confidence,
		}, true
	}
	return models.LineItem{}, false
}

// ParseLine filters and then classifies a line. The returned Reason is
// ReasonItem exactly when ok is true.
func ParseLine(line string) (models.LineItem, Reason) {
	if reason := Filter(line); reason != ReasonItem {
		return models.LineItem{}, reason
	}
	item, ok := Classify(line)
	if !ok {
		return models.LineItem{}, ReasonUnparsed
	}
	return item, ReasonItem
}
