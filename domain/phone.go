package domain

// NormalizePhone reduces a raw phone input to its canonical 10-digit form:
// non-digit characters are stripped and, when more than 10 digits remain
// (country-code prefixes), only the trailing 10 are kept. Shorter digit
// strings pass through unchanged; an empty result is invalid downstream.
func NormalizePhone(raw string) string {
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return string(digits)
}
