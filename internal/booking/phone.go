package booking

import "strings"

// FormatPhone re-formats partial phone input as the user types: non-digits
// are dropped, anything past ten digits is ignored, and the area code and
// exchange are punctuated progressively:
//
//	"555"        -> "(555"
//	"555123"     -> "(555) 123"
//	"5551234567" -> "(555) 123-4567"
func FormatPhone(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		digits = digits[:10]
	}

	switch {
	case len(digits) == 0:
		return ""
	case len(digits) <= 3:
		return "(" + digits
	case len(digits) <= 6:
		return "(" + digits[:3] + ") " + digits[3:]
	default:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	}
}
