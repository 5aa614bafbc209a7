package domain

import "strings"

// InvoiceAddress is a free-text billing address. Only emptiness is
// checked here; length limits belong to request validation upstream.
type InvoiceAddress struct {
	value string
}

// NewInvoiceAddress validates and trims the address text.
func NewInvoiceAddress(value string) (InvoiceAddress, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return InvoiceAddress{}, NewInvalidArgument("invoice address required")
	}
	return InvoiceAddress{value: trimmed}, nil
}

// String returns the address text.
func (a InvoiceAddress) String() string {
	return a.value
}

// IsZero reports whether the address is unset.
func (a InvoiceAddress) IsZero() bool {
	return a.value == ""
}
