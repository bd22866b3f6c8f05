package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat_Defaults(t *testing.T) {
	f := NewFormatter("R$")

	assert.Equal(t, "R$ 0,00", f.Format(decimal.Zero))
	assert.Equal(t, "R$ 12,34", f.Format(decimal.RequireFromString("12.34")))
	assert.Equal(t, "R$ 1.234,56", f.Format(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "R$ 1.234.567,89", f.Format(decimal.RequireFromString("1234567.89")))
}

func TestFormat_RoundsToTwoPlaces(t *testing.T) {
	f := NewFormatter("R$")

	assert.Equal(t, "R$ 10,00", f.Format(decimal.RequireFromString("9.995")))
	assert.Equal(t, "R$ 9,99", f.Format(decimal.RequireFromString("9.994")))
}

func TestFormat_Negative(t *testing.T) {
	f := NewFormatter("R$")

	assert.Equal(t, "-R$ 5,50", f.Format(decimal.RequireFromString("-5.5")))
}

func TestFormat_NoSymbol(t *testing.T) {
	f := Formatter{Decimal: ".", Thousands: ","}

	assert.Equal(t, "1,000.00", f.Format(decimal.NewFromInt(1000)))
}
