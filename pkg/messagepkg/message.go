// Package messagepkg maps transaction status codes to human readable text.
package messagepkg

var reasons = map[string]string{
	"AP00": "Transaction executed successfully",
	"AP02": "Transaction scheduled for future execution",
	"AM01": "Amount must be a positive integer",
	"CU01": "Account currency mismatch",
	"CU02": "Unsupported currency. Only NGN, USD, GBP, and GHS are supported",
	"AC01": "Insufficient funds in debit account",
	"AC02": "Debit and credit accounts cannot be the same",
	"AC03": "Account not found",
	"AC04": "Invalid account ID format",
	"DT01": "Invalid date format",
	"SY01": "Missing required keyword",
	"SY02": "Invalid keyword order",
	"SY03": "Malformed instruction: unable to parse keywords",
}

// Unknown is returned for codes without a catalog entry.
const Unknown = "Unknown status"

// Reason returns the default message for the given status code.
func Reason(code string) string {
	if r, ok := reasons[code]; ok {
		return r
	}

	return Unknown
}
