// Package payload parses strings decoded from QR codes and barcodes into
// receipt records.
//
// Decoding is attempted in a fixed order: a structured JSON document, a bare
// transaction identifier, and finally a loose list of "key: value" and priced
// fragments. Malformed input never produces an error; it simply falls through
// to the next step, and a payload no step understands yields no record.
package payload

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitscan/internal/dedupe"
	"github.com/mmynk/splitscan/internal/models"
	"github.com/mmynk/splitscan/internal/money"
	"github.com/mmynk/splitscan/internal/parser"
)

// Kind names the decoding step that produced a record.
type Kind int

const (
	KindNone Kind = iota
	KindJSON
	KindTransactionID
	KindLoose
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindTransactionID:
		return "transaction_id"
	case KindLoose:
		return "loose"
	default:
		return "none"
	}
}

var (
	reTransactionID = regexp.MustCompile(`^[A-Za-z0-9]{4,64}$`)
	reKeyValue      = regexp.MustCompile(`^([A-Za-z][A-Za-z _-]{0,30}?)\s*[:=]\s*(.+)$`)
)

// Loose-fragment keys, compared after lowercasing and collapsing separators.
var (
	looseIDKeys     = map[string]bool{"id": true, "txn": true, "txn id": true, "transaction": true, "transaction id": true, "receipt": true, "receipt id": true}
	looseVendorKeys = map[string]bool{"store": true, "vendor": true, "merchant": true, "shop": true}
	looseTotalKeys  = map[string]bool{"total": true, "grand total": true, "amount due": true, "total due": true}
)

// Parse decodes a scanned payload. ok is false when no step produced a
// record and the caller should fall back to manual entry.
func Parse(payload string) (models.ReceiptRecord, bool) {
	record, kind := Decode(payload)
	return record, kind != KindNone
}

// Decode is Parse that also reports which step produced the record.
// Loose payloads are deduplicated with the default suppressor.
func Decode(payload string) (models.ReceiptRecord, Kind) {
	return DecodeWith(payload, dedupe.Default())
}

// DecodeWith is Decode with a caller-supplied duplicate suppressor for the
// loose key:value step.
func DecodeWith(payload string, s dedupe.Suppressor) (models.ReceiptRecord, Kind) {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return models.ReceiptRecord{}, KindNone
	}
	if record, ok := parseJSON(trimmed); ok {
		return record, KindJSON
	}
	if record, ok := parseTransactionID(trimmed); ok {
		return record, KindTransactionID
	}
	if record, ok := parseLoose(trimmed, s); ok {
		return record, KindLoose
	}
	return models.ReceiptRecord{}, KindNone
}

func parseJSON(payload string) (models.ReceiptRecord, bool) {
	if !strings.HasPrefix(payload, "{") {
		return models.ReceiptRecord{}, false
	}
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return models.ReceiptRecord{}, false
	}
	if err := validateShape(doc); err != nil {
		return models.ReceiptRecord{}, false
	}
	obj := doc.(map[string]any)

	id := stringField(obj, idKeys)
	total, ok := amountField(obj, totalKeys)
	if id == "" || !ok {
		return models.ReceiptRecord{}, false
	}

	items := []models.LineItem{}
	for _, raw := range arrayField(obj, itemsKeys) {
		entry, isObj := raw.(map[string]any)
		if !isObj {
			continue
		}
		name := stringField(entry, itemNameKeys)
		price, ok := amountField(entry, priceKeys)
		if name == "" || !ok || price.IsNegative() {
			continue
		}
		items = append(items, models.LineItem{
			Name:       name,
			UnitPrice:  price,
			Quantity:   quantityField(entry),
			Confidence: 1,
		})
	}

	return models.ReceiptRecord{
		SourceKind:    models.SourceQR,
		TransactionID: id,
		Items:         items,
		DeclaredTotal: &total,
		VendorName:    stringField(obj, vendorKeys),
	}, true
}

func parseTransactionID(payload string) (models.ReceiptRecord, bool) {
	if u, err := uuid.Parse(payload); err == nil && strings.Contains(payload, "-") {
		return models.ReceiptRecord{SourceKind: models.SourceQR, TransactionID: u.String(), Items: []models.LineItem{}}, true
	}
	if !reTransactionID.MatchString(payload) {
		return models.ReceiptRecord{}, false
	}
	kind := models.SourceQR
	if !strings.ContainsFunc(payload, unicode.IsLetter) {
		kind = models.SourceBarcode
	}
	return models.ReceiptRecord{SourceKind: kind, TransactionID: payload, Items: []models.LineItem{}}, true
}

func parseLoose(payload string, s dedupe.Suppressor) (models.ReceiptRecord, bool) {
	record := models.ReceiptRecord{SourceKind: models.SourceQR}
	var items []models.LineItem

	fragments := strings.FieldsFunc(payload, func(r rune) bool { return r == '\n' || r == ';' })
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		line := fragment
		if m := reKeyValue.FindStringSubmatch(fragment); m != nil {
			key, value := normalizeKey(m[1]), strings.TrimSpace(m[2])
			switch {
			case looseIDKeys[key]:
				record.TransactionID = value
				continue
			case looseVendorKeys[key]:
				record.VendorName = value
				continue
			case looseTotalKeys[key]:
				if total, err := money.ParseAmount(value); err == nil {
					record.DeclaredTotal = &total
				}
				continue
			}
			line = m[1] + " " + value
		}
		if item, reason := parser.ParseLine(line); reason == parser.ReasonItem {
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return models.ReceiptRecord{}, false
	}
	record.Items, _ = s.Collapse(items)
	return record, true
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.Join(strings.FieldsFunc(key, func(r rune) bool { return r == ' ' || r == '_' || r == '-' }), " ")
}

func stringField(obj map[string]any, keys []string) string {
	for _, k := range keys {
		switch v := obj[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case json.Number:
			return v.String()
		}
	}
	return ""
}

func amountField(obj map[string]any, keys []string) (decimal.Decimal, bool) {
	for _, k := range keys {
		switch v := obj[k].(type) {
		case json.Number:
			if d, err := decimal.NewFromString(v.String()); err == nil {
				return d, true
			}
		case string:
			if d, err := money.ParseAmount(v); err == nil {
				return d, true
			}
		}
	}
	return decimal.Zero, false
}

func arrayField(obj map[string]any, keys []string) []any {
	for _, k := range keys {
		if arr, ok := obj[k].([]any); ok {
			return arr
		}
	}
	return nil
}

func quantityField(obj map[string]any) int {
	for _, k := range qtyKeys {
		var raw string
		switch v := obj[k].(type) {
		case json.Number:
			raw = v.String()
		case string:
			raw = strings.TrimSpace(v)
		default:
			continue
		}
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			return n
		}
	}
	return 1
}
