package domain

import (
	"encoding/base64"
	"strings"
)

const (
	cardMinDigits = 13
	cardMaxDigits = 19
)

// CreditCardNumber holds an obfuscated card number. The stored value is
// a reversible keyless base64 encoding of the digits, kept for parity
// with the upstream data format; it carries no security value. Only the
// masked form is ever serialized outward.
type CreditCardNumber struct {
	encoded string
	last4   string
}

// NewCreditCardNumber validates raw card input. Spaces and hyphens are
// accepted as separators and stripped before validation.
func NewCreditCardNumber(raw string) (CreditCardNumber, error) {
	digits := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if digits == "" {
		return CreditCardNumber{}, NewInvalidArgument("credit card number required")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return CreditCardNumber{}, NewInvalidArgument("credit card number must contain only digits")
		}
	}
	if len(digits) < cardMinDigits || len(digits) > cardMaxDigits {
		return CreditCardNumber{}, NewInvalidArgument("credit card number must be between 13 and 19 digits")
	}
	if !luhnValid(digits) {
		return CreditCardNumber{}, NewInvalidArgument("credit card number failed checksum")
	}

	return CreditCardNumber{
		encoded: base64.StdEncoding.EncodeToString([]byte(digits)),
		last4:   digits[len(digits)-4:],
	}, nil
}

// CreditCardNumberFromStored rebuilds the value object from its
// persisted encoded form, trusting the store.
func CreditCardNumberFromStored(encoded string) CreditCardNumber {
	last4 := ""
	if decoded, err := base64.StdEncoding.DecodeString(encoded); err == nil && len(decoded) >= 4 {
		last4 = string(decoded[len(decoded)-4:])
	}
	return CreditCardNumber{encoded: encoded, last4: last4}
}

// Value returns the stored encoded representation.
func (c CreditCardNumber) Value() string {
	return c.encoded
}

// Masked returns the display form ****-****-****-<last4>.
func (c CreditCardNumber) Masked() string {
	return "****-****-****-" + c.last4
}

// IsZero reports whether the card number is unset.
func (c CreditCardNumber) IsZero() bool {
	return c.encoded == ""
}

// luhnValid runs the Luhn checksum: right to left, double every second
// digit, subtract 9 when the doubling exceeds 9, sum must divide by 10.
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
