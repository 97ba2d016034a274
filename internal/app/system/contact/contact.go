// Package contact builds the WhatsApp deep links shown on report
// detail pages so a finder can reach the reporter directly.
package contact

import (
	"errors"

	"github.com/projectrefind/refind/internal/app/system/normalize"
)

// ErrNoPhone is returned when a report has no usable phone number.
var ErrNoPhone = errors.New("no phone number on report")

// WhatsAppURL returns the wa.me link for a phone number. The number is
// reduced to digits first; formatting characters and a leading "+" are
// accepted but never appear in the link.
func WhatsAppURL(phone string) (string, error) {
	digits := normalize.Phone(phone)
	if digits == "" {
		return "", ErrNoPhone
	}
	return "https://wa.me/" + digits, nil
}
