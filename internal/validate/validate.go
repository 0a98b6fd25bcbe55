package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reDigits = regexp.MustCompile(`[^0-9]`)
	reCode   = regexp.MustCompile(`^[A-Za-z0-9-]{1,20}$`)
)

// FullName requires at least a first and a last name.
func FullName(s string) bool {
	parts := strings.Fields(strings.TrimSpace(s))
	return len(parts) >= 2
}

// Phone strips everything but digits; ok is false for numbers that are
// too short to dial.
func Phone(s string) (string, bool) {
	digits := reDigits.ReplaceAllString(s, "")
	return digits, len(digits) >= 8
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Code normalizes a product code: trimmed, upper-cased, limited charset.
func Code(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reCode.MatchString(s)
}

// Answer normalizes a secret-recovery answer for comparison.
func Answer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
