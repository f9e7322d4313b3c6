package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Accepted spellings for each field of a structured payload.
var (
	idKeys       = []string{"id", "transactionId", "transaction_id", "txnId", "receiptId"}
	itemsKeys    = []string{"items", "lineItems", "line_items"}
	totalKeys    = []string{"total", "totalAmount", "total_amount"}
	vendorKeys   = []string{"vendor", "vendorName", "merchant", "store"}
	itemNameKeys = []string{"name", "description", "title"}
	priceKeys    = []string{"price", "amount", "unitPrice", "unit_price"}
	qtyKeys      = []string{"quantity", "qty"}
)

var scalar = map[string]any{"type": []string{"string", "number"}}

// buildPayloadSchema returns a JSON Schema requiring an identifier, an item
// array whose entries carry a name and a price, and a total. Additional
// fields are allowed.
func buildPayloadSchema() map[string]any {
	item := map[string]any{
		"type": "object",
		"allOf": []any{
			requireOneOf(itemNameKeys),
			requireOneOf(priceKeys),
		},
		"properties": properties(itemNameKeys, priceKeys, qtyKeys),
	}

	props := properties(idKeys, totalKeys, vendorKeys)
	for _, k := range itemsKeys {
		props[k] = map[string]any{"type": "array", "items": item}
	}

	return map[string]any{
		"type": "object",
		"allOf": []any{
			requireOneOf(idKeys),
			requireOneOf(itemsKeys),
			requireOneOf(totalKeys),
		},
		"properties": props,
	}
}

func requireOneOf(keys []string) map[string]any {
	alts := make([]any, 0, len(keys))
	for _, k := range keys {
		alts = append(alts, map[string]any{"required": []string{k}})
	}
	return map[string]any{"anyOf": alts}
}

func properties(groups ...[]string) map[string]any {
	props := make(map[string]any)
	for _, keys := range groups {
		for _, k := range keys {
			props[k] = scalar
		}
	}
	return props
}

var payloadSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(buildPayloadSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("payload.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("payload.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// validateShape reports whether doc has the structured receipt shape.
func validateShape(doc any) error {
	schema, err := payloadSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("payload does not match schema: %w", err)
	}
	return nil
}
