// Package normalize holds the canonical forms for user-entered identity
// fields. Stores apply these before writing so lookups never depend on
// how the client happened to type a value.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// NIM trims a student identification number. Case is preserved because
// some faculties issue mixed-case suffixes.
func NIM(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role string.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims an account status string.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Phone keeps only the digits of a phone number. International prefixes
// written as "+62..." survive as "62...".
func Phone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
