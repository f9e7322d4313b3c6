// Package parser extracts line items from unstructured receipt text.
//
// Each line goes through the noise filter first and then through an ordered
// list of matchers; the first matcher that prices the line wins. The
// free-text entry points finish by suppressing near-duplicate items.
package parser

import (
	"iter"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitscan/internal/dedupe"
	"github.com/mmynk/splitscan/internal/models"
	"github.com/mmynk/splitscan/internal/money"
)

var (
	reTotalLine  = regexp.MustCompile(`(?i)\b(grand\s+total|amount\s+due|balance\s+due|total\s+due|total)\b`)
	reSubtotal   = regexp.MustCompile(`(?i)\bsub\s*-?\s*total\b`)
	reTrailPrice = regexp.MustCompile(`(?:` + symbolClass + `\s?)?(` + priceNum + `)\s*(?:` + symbolClass + `)?$`)
)

// Lines yields the normalized, trimmed, non-empty lines of text.
func Lines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range strings.SplitSeq(Normalize(text), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

// Candidates lazily yields every line of text that survives the noise filter
// and is priced by a matcher, in line order. Duplicates are not removed.
func Candidates(text string) iter.Seq[models.LineItem] {
	return func(yield func(models.LineItem) bool) {
		for line := range Lines(text) {
			item, reason := ParseLine(line)
			if reason != ReasonItem {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

// ParseText returns the deduplicated line items found in text.
// Empty or item-free text yields an empty slice.
func ParseText(text string) []models.LineItem {
	return dedupe.Collapse(slices.Collect(Candidates(text)))
}

// ParseReceipt runs the free-text pipeline and returns a full record with
// the declared total and vendor name when the text carries them.
func ParseReceipt(text string) models.ReceiptRecord {
	record := models.ReceiptRecord{
		SourceKind: models.SourceOCR,
		Items:      ParseText(text),
	}
	if record.Items == nil {
		record.Items = []models.LineItem{}
	}
	record.DeclaredTotal = DeclaredTotal(text)
	record.VendorName = VendorName(text)
	return record
}

// DeclaredTotal returns the amount on the first total line of text
// ("Total", "Grand Total", "Amount Due"), ignoring subtotal lines.
func DeclaredTotal(text string) *decimal.Decimal {
	for line := range Lines(text) {
		if !reTotalLine.MatchString(line) || reSubtotal.MatchString(line) {
			continue
		}
		m := reTrailPrice.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		amount, err := money.ParseAmount(m[1])
		if err != nil {
			continue
		}
		return &amount
	}
	return nil
}

// VendorName returns the first header-like line that appears before any
// priced item: letters, no digits, and no stop token.
func VendorName(text string) string {
	for line := range Lines(text) {
		if _, reason := ParseLine(line); reason == ReasonItem {
			return ""
		}
		if Filter(line) == ReasonNoDigits && strings.ContainsFunc(line, unicode.IsLetter) {
			return line
		}
	}
	return ""
}
