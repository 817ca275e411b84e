// Package validation is the single definition of the field rules shared by
// the quote wizard and the intake services. The wizard calls these for
// per-step gating; the services recompute them because client input is
// untrusted. Both sides read the same constants so the two cannot drift.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Field length bounds for intake submissions.
const (
	MaxNameLen    = 100
	MaxEmailLen   = 255
	MaxServiceLen = 100
	MaxCityLen    = 100
	MaxStateLen   = 50
	MaxMessageLen = 2000

	// Contact-form message bounds (general inquiry).
	MinContactMessageLen = 10
	MaxContactMessageLen = 500

	PhoneDigits = 10
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Display pattern for contact-form phones: (XXX) XXX-XXXX
	phoneDisplayRe = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)

	nonDigitRe = regexp.MustCompile(`\D`)
)

// ValidateEmail reports whether s has a basic local@domain.tld shape.
func ValidateEmail(s string) bool {
	return emailRe.MatchString(s)
}

// NormalizePhone strips everything but digits.
func NormalizePhone(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// ValidatePhone accepts an absent phone (optional field) or one that
// normalizes to exactly ten digits.
func ValidatePhone(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	return len(NormalizePhone(s)) == PhoneDigits
}

// ValidatePhoneDisplay enforces the fixed (XXX) XXX-XXXX pattern used by
// the contact form.
func ValidatePhoneDisplay(s string) bool {
	return phoneDisplayRe.MatchString(s)
}

// FormatPhone renders ten digits as (XXX) XXX-XXXX. Inputs that are not
// ten digits are returned unchanged.
func FormatPhone(digits string) string {
	if len(digits) != PhoneDigits {
		return digits
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
}

// QuoteErrors validates the quote request fields, accumulating every
// failure so the client can show them together. An empty slice means valid.
func QuoteErrors(customerName, email, phone, service, city, state, message string) []string {
	var errs []string

	if strings.TrimSpace(customerName) == "" {
		errs = append(errs, "Name is required")
	} else if len(customerName) > MaxNameLen {
		errs = append(errs, fmt.Sprintf("Name must not exceed %d characters", MaxNameLen))
	}

	if strings.TrimSpace(email) == "" {
		errs = append(errs, "Email is required")
	} else if !ValidateEmail(email) {
		errs = append(errs, "Invalid email format")
	} else if len(email) > MaxEmailLen {
		errs = append(errs, fmt.Sprintf("Email must not exceed %d characters", MaxEmailLen))
	}

	if !ValidatePhone(phone) {
		errs = append(errs, "Phone number must have 10 digits")
	}

	if strings.TrimSpace(service) == "" {
		errs = append(errs, "Service is required")
	} else if len(service) > MaxServiceLen {
		errs = append(errs, fmt.Sprintf("Service must not exceed %d characters", MaxServiceLen))
	}

	if len(city) > MaxCityLen {
		errs = append(errs, fmt.Sprintf("City must not exceed %d characters", MaxCityLen))
	}
	if len(state) > MaxStateLen {
		errs = append(errs, fmt.Sprintf("State must not exceed %d characters", MaxStateLen))
	}
	if len(message) > MaxMessageLen {
		errs = append(errs, fmt.Sprintf("Message must not exceed %d characters", MaxMessageLen))
	}

	return errs
}

// ContactErrors validates the contact form fields, accumulating every
// failure. An empty slice means valid.
func ContactErrors(fullName, email, phone, message string) []string {
	var errs []string

	if strings.TrimSpace(fullName) == "" {
		errs = append(errs, "Name is required")
	} else if len(fullName) > MaxNameLen {
		errs = append(errs, fmt.Sprintf("Name must not exceed %d characters", MaxNameLen))
	}

	if strings.TrimSpace(email) == "" {
		errs = append(errs, "Email is required")
	} else if !ValidateEmail(email) {
		errs = append(errs, "Invalid email format")
	} else if len(email) > MaxEmailLen {
		errs = append(errs, fmt.Sprintf("Email must not exceed %d characters", MaxEmailLen))
	}

	if !ValidatePhoneDisplay(phone) {
		errs = append(errs, "Phone must match (XXX) XXX-XXXX")
	}

	trimmed := strings.TrimSpace(message)
	if len(trimmed) < MinContactMessageLen {
		errs = append(errs, fmt.Sprintf("Message must be at least %d characters", MinContactMessageLen))
	} else if len(trimmed) > MaxContactMessageLen {
		errs = append(errs, fmt.Sprintf("Message must not exceed %d characters", MaxContactMessageLen))
	}

	return errs
}

// Truncate caps s at max bytes. Normalized fields are truncated rather
// than rejected after validation has already passed.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
