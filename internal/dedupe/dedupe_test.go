package dedupe

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitscan/internal/models"
)

func item(name, price string) models.LineItem {
	return models.LineItem{Name: name, UnitPrice: decimal.RequireFromString(price), Quantity: 1, Confidence: 1}
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 3, Distance("kitten", "sitting"))
	assert.Equal(t, 0, Distance("", ""))
	assert.Equal(t, 4, Distance("", "milk"))
	assert.Equal(t, 1, Distance("café", "cafe"))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("milk", "milk"))
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 8.0/9.0, Similarity("coca cola", "cocacola"), 1e-9)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "cocacola", NormalizeName("Coca-Cola"))
	assert.Equal(t, "coca cola", NormalizeName("  Coca   Cola "))
	assert.Equal(t, "whole milk 2", NormalizeName("Whole Milk, 2%"))
}

func TestCollapse_MergesPunctuationVariants(t *testing.T) {
	items := []models.LineItem{item("Coca Cola", "1.99"), item("Coca-Cola", "1.99")}

	got := Collapse(items)

	require.Len(t, got, 1)
	assert.Equal(t, "Coca Cola", got[0].Name)
}

func TestCollapse_KeepsDifferentPrices(t *testing.T) {
	items := []models.LineItem{item("Coca Cola", "1.99"), item("Coca-Cola", "3.49")}

	assert.Len(t, Collapse(items), 2)
}

func TestCollapse_KeepsDistinctNames(t *testing.T) {
	items := []models.LineItem{item("Whole Milk", "4.25"), item("Bread", "2.50"), item("Whole Milk", "4.25")}

	got, dropped := Default().Collapse(items)

	require.Len(t, got, 2)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "Whole Milk", got[0].Name)
	assert.Equal(t, "Bread", got[1].Name)
}

func TestCollapse_PriceTolerance(t *testing.T) {
	items := []models.LineItem{item("Bananas", "3.99"), item("Bananaz", "4.05")}

	assert.Len(t, Collapse(items), 1, "1.5% price difference is an OCR misread")
}

func TestCollapse_Empty(t *testing.T) {
	got := Collapse(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollapse_StricterThreshold(t *testing.T) {
	s := Suppressor{Threshold: 0.95, PriceTolerance: DefaultPriceTolerance}
	got, dropped := s.Collapse([]models.LineItem{item("Coca Cola", "1.99"), item("Coca-Cola", "1.99")})

	assert.Len(t, got, 2)
	assert.Zero(t, dropped)
}
