package sanitize

import "github.com/shopspring/decimal"

// CurrencyPlaces количество знаков после запятой у минимальной денежной единицы
const CurrencyPlaces = 2

// Money rounds an amount to the smallest currency unit, half-up at the cent boundary.
// The float is read through its shortest decimal representation, so 1.005 becomes 1.01.
func Money(amount float64) float64 {
	return MoneyDecimal(decimal.NewFromFloat(amount)).InexactFloat64()
}

// MoneyDecimal rounds a decimal amount to CurrencyPlaces
func MoneyDecimal(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CurrencyPlaces)
}
