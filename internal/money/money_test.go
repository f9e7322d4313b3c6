package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$3.99", "3.99"},
		{"3.99", "3.99"},
		{"1,234.56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"USD 12.00", "12"},
		{"3,99 €", "3.99"},
		{"1,234", "1234"},
		{"$3", "3"},
		{".99", "0.99"},
		{"12.5", "12.5"},
		{"1 234,50", "1234.5"},
		{"-30", "-30"},
		{"-$2.00", "-2"},
		{"$-2.00", "-2"},
		{"+4.50", "4.5"},
		{"usd 7", "7"},
		{"CA$ 5.25", "5.25"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestParseAmount_NoDigits(t *testing.T) {
	_, err := ParseAmount("$.")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoAmount)
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"1e3", "12abc", "3.99-", "--5", "-$-5", "5 USD EUR", "12/24"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAmount(in)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	d := decimal.RequireFromString
	assert.True(t, WithinTolerance(d("1.00"), d("1.04"), 0.05))
	assert.False(t, WithinTolerance(d("1.00"), d("1.10"), 0.05))
	assert.True(t, WithinTolerance(decimal.Zero, decimal.Zero, 0.05))
	assert.False(t, WithinTolerance(decimal.Zero, d("0.01"), 0.05))
}

func TestLookup(t *testing.T) {
	assert.Equal(t, "$", Lookup("usd").Symbol)
	assert.Equal(t, int32(0), MinorDigits("JPY"))
	assert.Equal(t, "XYZ ", Lookup("XYZ").Symbol)
	assert.Equal(t, DefaultCurrency, Lookup("").Code)
}

func TestFormat(t *testing.T) {
	d := decimal.RequireFromString
	assert.Equal(t, "$10.00", Format(d("10"), "USD", language.AmericanEnglish))
	assert.Equal(t, "$1,234.50", Format(d("1234.5"), "USD", language.AmericanEnglish))
	assert.Equal(t, "$3.34", Format(d("3.335"), "USD", language.AmericanEnglish))
	assert.Equal(t, "¥1,500", Format(d("1500"), "JPY", language.Japanese))
	assert.Equal(t, "€1.234,50", Format(d("1234.5"), "EUR", language.German))
	assert.Equal(t, "-$2.00", Format(d("-2"), "USD", language.AmericanEnglish))
	assert.Equal(t, "$0.05", Format(d("0.05"), "USD", language.AmericanEnglish))
	assert.Equal(t, "$999.00", Format(d("999"), "USD", language.AmericanEnglish))
}

func TestFormat_BeyondFloatPrecision(t *testing.T) {
	d := decimal.RequireFromString
	assert.Equal(t, "$12,345,678,901,234,567.89", Format(d("12345678901234567.89"), "USD", language.AmericanEnglish))
	assert.Equal(t, "€98.765.432.109.876.543,21", Format(d("98765432109876543.21"), "EUR", language.German))
}
