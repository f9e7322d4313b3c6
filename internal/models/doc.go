// Package models defines the core domain models for Splitscan.
//
// # Models
//
// Receipt side, produced by the parser and payload packages:
//   - LineItem: one priced line extracted from receipt text or a scanned payload
//   - ReceiptRecord: the normalized result of one scan, with its line items
//
// Split side, produced by the calculator package:
//   - Participant: a person sharing an expense, identified by trimmed name
//   - Allocation: one participant's share of an expense total
//
// # Conventions
//
//  1. Money is always decimal.Decimal, never float64. Amounts are rounded to the
//     currency minor unit only by the calculator.
//  2. Participants are plain names. Names are case-sensitive and duplicates
//     are kept as distinct participants.
//  3. Values are immutable once produced; callers copy rather than mutate.
//  4. Item order is receipt line order and is preserved end to end.
package models
