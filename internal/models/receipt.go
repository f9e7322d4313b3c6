package models

import "github.com/shopspring/decimal"

// SourceKind records where a ReceiptRecord came from.
type SourceKind int

const (
	// SourceOCR is free text from an OCR engine or a paste.
	SourceOCR SourceKind = iota
	// SourceQR is a payload decoded from a QR code.
	SourceQR
	// SourceBarcode is a payload decoded from a linear barcode.
	SourceBarcode
	// SourceManual is user-entered data.
	SourceManual
)

// String returns the lowercase name of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceOCR:
		return "ocr"
	case SourceQR:
		return "qr"
	case SourceBarcode:
		return "barcode"
	case SourceManual:
		return "manual"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so records serialize with readable kinds.
func (k SourceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// LineItem represents a single priced line on a receipt.
type LineItem struct {
	// Name is the trimmed item description (e.g., "Organic Bananas"). Never empty.
	Name string `json:"name"`

	// UnitPrice is the price as printed on the line. For quantity-prefixed
	// lines ("2x Apple $1.25") this is still the printed price; it is never
	// divided or multiplied by Quantity.
	UnitPrice decimal.Decimal `json:"unit_price"`

	// Quantity is the number of units, 1 unless the line carried a quantity prefix.
	Quantity int `json:"quantity"`

	// Confidence is how strongly the matching pattern indicated a priced item,
	// in [0,1]. Informational only.
	Confidence float64 `json:"confidence"`
}

// LineTotal returns UnitPrice multiplied by Quantity.
func (i LineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ReceiptRecord is the normalized result of parsing one receipt or scanned code.
type ReceiptRecord struct {
	// SourceKind identifies the input pipeline that produced the record.
	SourceKind SourceKind `json:"source_kind"`

	// TransactionID is the identifier carried by a scanned code, if any.
	TransactionID string `json:"transaction_id,omitempty"`

	// Items are the line items in receipt order.
	Items []LineItem `json:"items"`

	// DeclaredTotal is the total printed on or encoded in the receipt.
	// Nil when the source did not state one.
	DeclaredTotal *decimal.Decimal `json:"declared_total,omitempty"`

	// VendorName is the store or merchant name, if one was found.
	VendorName string `json:"vendor_name,omitempty"`
}

// ItemsTotal returns the sum of LineTotal over all items.
func (r ReceiptRecord) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range r.Items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}
