package utils

import "strings"

// NormalizePhone strips separators and an optional +91 / 0 prefix so the
// stored parent number is the bare 10-digit subscriber number the SMS
// gateway expects. Returns "" when the input cannot be reduced to one.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	switch {
	case len(digits) == 10:
		return digits
	case len(digits) == 11 && digits[0] == '0':
		return digits[1:]
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return digits[2:]
	default:
		return ""
	}
}
