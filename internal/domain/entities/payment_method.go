package entities

import "strings"

// PaymentMethod selects the payload branch and endpoint family of an authorisation.
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "creditcard"
	PaymentMethodBoleto     PaymentMethod = "boleto"
)

func ParsePaymentMethod(s string) PaymentMethod {
	return PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
}

func (m PaymentMethod) IsSupported() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodBoleto:
		return true
	}
	return false
}

// PersonType tells whether a boleto is issued to a person or to a company.
type PersonType string

const (
	PersonTypePersonal PersonType = "personal"
	PersonTypeCompany  PersonType = "company"
)

func (p PersonType) OrDefault() PersonType {
	if p == "" {
		return PersonTypePersonal
	}
	return p
}
