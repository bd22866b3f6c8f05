package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Formatter renders decimal amounts for display. The defaults produce
// pt-BR style output ("R$ 1.234,56"); symbol and separators are
// configurable so the same storefront core can serve other currencies.
type Formatter struct {
	Symbol    string
	Decimal   string
	Thousands string
}

func NewFormatter(symbol string) Formatter {
	return Formatter{
		Symbol:    symbol,
		Decimal:   ",",
		Thousands: ".",
	}
}

// Format renders the amount with two decimal places, grouped thousands
// and the configured symbol. Negative amounts carry a leading minus.
func (f Formatter) Format(d decimal.Decimal) string {
	var b strings.Builder

	if d.IsNegative() {
		b.WriteString("-")
	}
	if f.Symbol != "" {
		b.WriteString(f.Symbol)
		b.WriteString(" ")
	}

	fixed := d.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	b.WriteString(groupThousands(intPart, f.Thousands))
	b.WriteString(f.Decimal)
	b.WriteString(fracPart)

	return b.String()
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
