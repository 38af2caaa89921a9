package adyen

import (
	"fmt"
	"strings"

	"adyen_classic/internal/domain/entities"
)

const DefaultAPIVersion = "v52"

const (
	paymentsTestEndpoint = "https://pal-test.adyen.com/pal/servlet/Payment/%s"
	paymentsLiveEndpoint = "https://%s-pal-live.adyenpayments.com/pal/servlet/Payment/%s"
	checkoutTestEndpoint = "https://checkout-test.adyen.com/checkout/%s"
	checkoutLiveEndpoint = "https://%s-checkout-live.adyenpayments.com/checkout/%s"
)

// APIFamily is one of the processor's two HTTP APIs.
type APIFamily int

const (
	FamilyPayments APIFamily = iota
	FamilyCheckout
)

func (f APIFamily) String() string {
	if f == FamilyCheckout {
		return "checkout"
	}
	return "payments"
}

// Environment selects test or live hosts. LivePrefix is the merchant-specific
// host prefix and is ignored in test mode.
type Environment struct {
	Test       bool
	LivePrefix string
	Version    string
}

func (e Environment) version() string {
	if v := strings.TrimSpace(e.Version); v != "" {
		return v
	}
	return DefaultAPIVersion
}

func (e Environment) base(family APIFamily) (string, error) {
	if e.Test {
		if family == FamilyCheckout {
			return fmt.Sprintf(checkoutTestEndpoint, e.version()), nil
		}
		return fmt.Sprintf(paymentsTestEndpoint, e.version()), nil
	}

	prefix := strings.TrimSpace(e.LivePrefix)
	if prefix == "" {
		return "", required("liveUrlPrefix")
	}
	if family == FamilyCheckout {
		return fmt.Sprintf(checkoutLiveEndpoint, prefix, e.version()), nil
	}
	return fmt.Sprintf(paymentsLiveEndpoint, prefix, e.version()), nil
}

// ResolveFamily picks the API family: boleto authorisations go through
// Checkout, everything else through Payments.
func ResolveFamily(op Operation, method entities.PaymentMethod) (APIFamily, error) {
	switch op {
	case OperationAuthorize:
		switch method {
		case entities.PaymentMethodBoleto:
			return FamilyCheckout, nil
		case entities.PaymentMethodCreditCard:
			return FamilyPayments, nil
		default:
			return 0, &UnsupportedError{Kind: kindPaymentMethod, Value: string(method)}
		}
	case OperationCapture:
		return FamilyPayments, nil
	default:
		return 0, NotSupported(op)
	}
}

// ResolveEndpoint returns the absolute URL for op. Checkout authorisations
// post to its /payments resource.
func ResolveEndpoint(op Operation, method entities.PaymentMethod, env Environment) (string, error) {
	family, err := ResolveFamily(op, method)
	if err != nil {
		return "", err
	}

	base, err := env.base(family)
	if err != nil {
		return "", err
	}

	switch {
	case family == FamilyCheckout:
		return base + "/payments", nil
	case op == OperationCapture:
		return base + "/capture", nil
	default:
		return base + "/authorise", nil
	}
}
