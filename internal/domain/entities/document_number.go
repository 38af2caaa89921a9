package entities

import "strings"

// DocumentNumber is a Brazilian CPF or CNPJ holding digits only.
type DocumentNumber string

// NewDocumentNumber strips every non-digit, so "224.158.178-40" becomes "22415817840".
func NewDocumentNumber(raw string) DocumentNumber {
	return DocumentNumber(DigitsOnly(raw))
}

func (d DocumentNumber) String() string {
	return string(d)
}

// DigitsOnly drops every rune outside [0-9].
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
