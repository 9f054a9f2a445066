package validators

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

const (
	maxNameLength  = 100
	minPhoneDigits = 8
	maxPhoneDigits = 15
)

type Contact struct {
	Name  string
	Email string
	Phone string
}

// ContactValidator checks the client data sent with a booking.
// With CheckDomain set, the email domain must resolve (MX or A record).
type ContactValidator struct {
	CheckDomain  bool
	DomainExists func(email string) bool
}

func NewContactValidator(checkDomain bool) ContactValidator {
	return ContactValidator{CheckDomain: checkDomain, DomainExists: IsEmailDomainValid}
}

// Validate returns the contact trimmed, or a validation error.
func (v ContactValidator) Validate(c Contact) (Contact, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)

	if c.Name == "" || utf8.RuneCountInString(c.Name) > maxNameLength {
		return c, httperr.ErrValidation("invalid_name")
	}

	if !IsEmailSyntaxValid(c.Email) {
		return c, httperr.ErrValidation("invalid_email")
	}

	if !IsPhoneValid(c.Phone) {
		return c, httperr.ErrValidation("invalid_phone")
	}

	if v.CheckDomain && v.DomainExists != nil && !v.DomainExists(c.Email) {
		return c, httperr.ErrValidation("invalid_email_domain")
	}

	return c, nil
}

// IsEmailSyntaxValid accepts a bare address (no display name).
func IsEmailSyntaxValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

// PhoneDigits keeps only the digits of a phone number.
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func IsPhoneValid(phone string) bool {
	for _, r := range phone {
		if !strings.ContainsRune("0123456789+()- .", r) {
			return false
		}
	}
	n := len(PhoneDigits(phone))
	return n >= minPhoneDigits && n <= maxPhoneDigits
}
