package whatsapp

import (
	"errors"
	"net/url"
	"strings"
)

var ErrNoPhone = errors.New("no_phone_digits")

// Link builds a wa.me deep link from a free-form phone number. Every
// non-digit character is stripped; the optional message is URL-encoded
// as the pre-filled text.
func Link(phone, message string) (string, error) {
	digits := digitsOnly(phone)
	if digits == "" {
		return "", ErrNoPhone
	}

	link := "https://wa.me/" + digits
	if msg := strings.TrimSpace(message); msg != "" {
		link += "?text=" + url.QueryEscape(msg)
	}
	return link, nil
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
