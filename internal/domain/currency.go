package domain

// Currency is an ISO 4217 code accepted for booking amounts
type Currency string

const (
	CurrencyUAH Currency = "UAH"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyPLN Currency = "PLN"
)

// DefaultCurrency подставляется, если валюта не указана
const DefaultCurrency = CurrencyUAH

// Currencies список поддерживаемых валют
var Currencies = []Currency{
	CurrencyUAH,
	CurrencyUSD,
	CurrencyEUR,
	CurrencyGBP,
	CurrencyPLN,
}

// IsValid returns true if the currency is recognized
func (c Currency) IsValid() bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}
