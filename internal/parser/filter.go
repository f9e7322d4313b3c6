package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// Reason explains why a line did or did not become a LineItem.
type Reason int

const (
	// ReasonItem means the line passed the filter and was classified.
	ReasonItem Reason = iota
	// ReasonStopToken means the line names a total, tax, change or similar.
	ReasonStopToken
	// ReasonNoDigits means the line is header-like text with no digits.
	ReasonNoDigits
	// ReasonAddress means the line looks like a street or city/zip line.
	ReasonAddress
	// ReasonPhone means the line looks like a phone number.
	ReasonPhone
	// ReasonDateTime means the line carries a date or a clock time.
	ReasonDateTime
	// ReasonUnparsed means the line passed the filter but no matcher priced it.
	ReasonUnparsed
)

func (r Reason) String() string {
	switch r {
	case ReasonItem:
		return "item"
	case ReasonStopToken:
		return "stop_token"
	case ReasonNoDigits:
		return "no_digits"
	case ReasonAddress:
		return "address"
	case ReasonPhone:
		return "phone"
	case ReasonDateTime:
		return "date_time"
	case ReasonUnparsed:
		return "unparsed"
	default:
		return "unknown"
	}
}

var (
	reStopToken = regexp.MustCompile(`(?i)\b(sub\s*-?\s*total|total|tax|change|balance|thank\s+you)\b`)
	rePhone     = regexp.MustCompile(`(?i)^(?:tel|phone|ph|fax)?[\s.:#]*\+?1?[\s.-]?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}$`)
	reStreet    = regexp.MustCompile(`(?i)^\d+\s+[\p{L}\d.' ]*?\b(st|street|ave|avenue|rd|road|blvd|boulevard|dr|drive|ln|lane|way|ct|court|pl|place|hwy|highway|pkwy|parkway|sq|square)\b\.?(?:[\s,]|$)`)
	reCityZip   = regexp.MustCompile(`(?i)^[\p{L} .'-]+,\s*[a-z]{2}\s+\d{5}(?:-\d{4})?$`)
	reDate      = regexp.MustCompile(`\b\d{1,4}[/.-]\d{1,2}[/.-]\d{2,4}\b`)
	reClock     = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}(?::\d{2})?\s*(?:am|pm)?\b`)

	// rePriceTail matches a line that ends in a currency-tagged or decimal
	// price, which a pure address or phone line never does.
	rePriceTail = regexp.MustCompile(`(?:(?:` + symbolClass + `\s?|(?:` + codeAlt + `)\s+)-?(?:` + priceNum + `)|\s-?(?:` + priceDec + `)|(?:` + priceNum + `)\s?(?:` + symbolClass + `|` + codeAlt + `))` + taxFlag + `$`)
)

// Filter is the fast-reject stage that runs before classification.
// It returns ReasonItem when the line may be a priced item, or the reason it
// must never become one.
func Filter(line string) Reason {
	line = strings.TrimSpace(line)
	priced := rePriceTail.MatchString(line)
	switch {
	case reStopToken.MatchString(line):
		return ReasonStopToken
	case !strings.ContainsFunc(line, unicode.IsDigit):
		return ReasonNoDigits
	case !priced && rePhone.MatchString(line):
		return ReasonPhone
	case !priced && (reStreet.MatchString(line) || reCityZip.MatchString(line)):
		return ReasonAddress
	case reDate.MatchString(line), reClock.MatchString(line):
		return ReasonDateTime
	}
	return ReasonItem
}

// IsNoise reports whether the filter rejects line.
func IsNoise(line string) bool {
	return Filter(line) != ReasonItem
}
