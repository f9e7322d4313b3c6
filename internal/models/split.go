package models

import "github.com/shopspring/decimal"

// Participant represents one person sharing an expense.
// Identity is the trimmed name; comparison is case-sensitive.
type Participant struct {
	// Name is the display name of the person (e.g., "Alice").
	Name string `json:"name"`
}

// Allocation represents one participant's calculated share of an expense.
// This is the output of the split calculation.
type Allocation struct {
	// Participant is the person who owes the amount.
	Participant Participant `json:"participant"`

	// AmountOwed is this person's share, rounded to the currency minor unit.
	// Never negative.
	AmountOwed decimal.Decimal `json:"amount_owed"`

	// Percentage is the share requested for percentage splits.
	// Nil for every other strategy.
	Percentage *float64 `json:"percentage,omitempty"`
}
