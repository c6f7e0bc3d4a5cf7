package sanitize

import "strings"

// DefaultCountryCode код страны, к которому приводятся национальные номера
const DefaultCountryCode = "380"

// Phone canonicalizes a national phone number to +<countrycode><number>.
// Inputs that match none of the prefix rules are returned unchanged;
// format validation happens in the validation chain.
func Phone(raw string) string {
	digits := digitsOnly(raw)

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, DefaultCountryCode):
		// 380XXXXXXXXX
		return "+" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "80"):
		// 80XXXXXXXXX (без ведущей тройки)
		return "+3" + digits
	case len(digits) == 10 && strings.HasPrefix(digits, "0"):
		// 0XXXXXXXXX (национальный формат)
		return "+38" + digits
	case len(digits) == 9:
		// XXXXXXXXX (локальный номер без кода оператора с нулём)
		return "+" + DefaultCountryCode + digits
	default:
		return raw
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
