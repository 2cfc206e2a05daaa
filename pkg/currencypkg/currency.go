// Package currencypkg provides common currency related functionality for apps.
package currencypkg

// Constants for all supported currencies.
const (
	NGN = "NGN"
	USD = "USD"
	GBP = "GBP"
	GHS = "GHS"
)

// SupportedCurrencies holds all the supported currencies.
var SupportedCurrencies = []string{
	NGN,
	USD,
	GBP,
	GHS,
}

// IsSupportedCurrency returns true if the currency is supported.
// The comparison is case-sensitive, codes are expected upper-cased.
func IsSupportedCurrency(currency string) bool {
	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}

	return false
}
