package adyen

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrUnsupported matches every *UnsupportedError.
	ErrUnsupported = errors.New("not supported")
	// ErrTransport matches every *TransportError.
	ErrTransport = errors.New("transport failure")
	// ErrMalformedResponse is returned when the processor body is not a JSON object.
	ErrMalformedResponse = errors.New("malformed processor response")
	// ErrGatewayNotConfigured is returned when the gateway has no transport.
	ErrGatewayNotConfigured = errors.New("adyen gateway not configured")
)

// ValidationError names the request parameter that is missing or malformed.
// It is raised before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("the %s parameter is required", e.Field)
	}
	return fmt.Sprintf("the %s parameter is invalid: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func required(field string) error {
	return &ValidationError{Field: field}
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// UnsupportedError reports a payment method or gateway operation this driver
// does not implement.
type UnsupportedError struct {
	Kind  string
	Value string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("the %s '%s' is not supported on this gateway", e.Kind, e.Value)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

const (
	kindPaymentMethod = "payment method"
	kindOperation     = "operation"
)

// TransportError wraps a failure of the transport collaborator unchanged.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("adyen transport %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
