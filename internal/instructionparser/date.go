package instructionparser

import "time"

const dateLayout = "2006-01-02"

// validDate reports whether s is a calendar date in YYYY-MM-DD form.
// time.Parse rejects out of range days, including February 29 on common years.
func validDate(s string) bool {
	if len(s) != len(dateLayout) {
		return false
	}

	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			if s[i] != '-' {
				return false
			}

			continue
		}

		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	_, err := time.Parse(dateLayout, s)

	return err == nil
}
