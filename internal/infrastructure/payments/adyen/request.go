package adyen

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"adyen_classic/internal/domain/entities"
)

// AuthorizeParams is everything an authorisation can carry. Card, Split and
// AdditionalFields are read, never modified.
type AuthorizeParams struct {
	Money           entities.Money
	PaymentMethod   entities.PaymentMethod
	Card            *entities.Card
	TransactionID   string
	MerchantAccount string
	NotifyURL       string
	Split           entities.Split
	Installments    entities.Installments
	DocumentNumber  entities.DocumentNumber
	Note            string
	BoletoDueDate   entities.BoletoDueDate
	PersonType      entities.PersonType
	CompanyName     string

	// AdditionalFields override any computed top-level key of the same name.
	AdditionalFields map[string]any
}

// CaptureParams identifies the authorisation to capture. TransactionReference
// is the pspReference of the authorisation; TransactionID is used when it is empty.
type CaptureParams struct {
	MerchantAccount      string
	TransactionReference string
	TransactionID        string
	// Money is optional; without it the full authorised amount is captured.
	Money *entities.Money
}

func (p CaptureParams) originalReference() string {
	if ref := strings.TrimSpace(p.TransactionReference); ref != "" {
		return ref
	}
	return strings.TrimSpace(p.TransactionID)
}

// Prepared is a fully built request, ready for the transport.
type Prepared struct {
	Operation Operation
	Method    string
	URL       string
	Headers   map[string]string
	Payload   Payload
	Body      []byte
}

func headers(key string) map[string]string {
	return map[string]string{
		"x-API-key":    key,
		"Content-Type": "application/json",
	}
}

func prepare(op Operation, url, key string, payload Payload) (*Prepared, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", op, err)
	}
	return &Prepared{
		Operation: op,
		Method:    http.MethodPost,
		URL:       url,
		Headers:   headers(key),
		Payload:   payload,
		Body:      body,
	}, nil
}

// AuthorizeRequest builds one authorisation call. It is built once, sent once
// and discarded.
type AuthorizeRequest struct {
	params AuthorizeParams
	env    Environment
	key    string
	now    func() time.Time
}

func NewAuthorizeRequest(params AuthorizeParams, env Environment, key string) *AuthorizeRequest {
	return &AuthorizeRequest{params: params, env: env, key: key, now: time.Now}
}

func (r *AuthorizeRequest) Params() AuthorizeParams {
	return r.params
}

// Build validates the params, assembles the payload and resolves the endpoint,
// in that order. Nothing is sent.
func (r *AuthorizeRequest) Build() (*Prepared, error) {
	if err := validateKey(r.key); err != nil {
		return nil, err
	}
	if err := ValidateAuthorize(r.params, r.now()); err != nil {
		return nil, err
	}

	payload, err := BuildAuthorizePayload(r.params)
	if err != nil {
		return nil, err
	}

	url, err := ResolveEndpoint(OperationAuthorize, r.params.PaymentMethod, r.env)
	if err != nil {
		return nil, err
	}
	return prepare(OperationAuthorize, url, r.key, payload)
}

// CaptureRequest builds one capture call.
type CaptureRequest struct {
	params CaptureParams
	env    Environment
	key    string
}

func NewCaptureRequest(params CaptureParams, env Environment, key string) *CaptureRequest {
	return &CaptureRequest{params: params, env: env, key: key}
}

func (r *CaptureRequest) Params() CaptureParams {
	return r.params
}

func (r *CaptureRequest) Build() (*Prepared, error) {
	if err := validateKey(r.key); err != nil {
		return nil, err
	}
	if err := ValidateCapture(r.params); err != nil {
		return nil, err
	}

	url, err := ResolveEndpoint(OperationCapture, "", r.env)
	if err != nil {
		return nil, err
	}
	return prepare(OperationCapture, url, r.key, BuildCapturePayload(r.params))
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return required("key")
	}
	return nil
}

// reservedAdditionalFields are computed from validated params and never taken
// from the caller's additional fields.
var reservedAdditionalFields = []string{"amount", "card"}

func isReservedAdditionalField(k string) bool {
	for _, r := range reservedAdditionalFields {
		if k == r {
			return true
		}
	}
	return false
}

// ValidateAuthorize checks p the way the processor would reject it, stopping
// at the first problem. now is used for the card expiry check.
func ValidateAuthorize(p AuthorizeParams, now time.Time) error {
	if err := validateMoney("amount", p.Money); err != nil {
		return err
	}
	if !p.PaymentMethod.IsSupported() {
		return &UnsupportedError{Kind: kindPaymentMethod, Value: string(p.PaymentMethod)}
	}
	if strings.TrimSpace(p.MerchantAccount) == "" {
		return required("merchantAccount")
	}
	if strings.TrimSpace(p.TransactionID) == "" {
		return required("transactionId")
	}
	if p.Card == nil {
		return required("card")
	}

	switch p.PaymentMethod {
	case entities.PaymentMethodCreditCard:
		if err := validateCard(*p.Card, now); err != nil {
			return err
		}
		if err := p.Installments.Validate(); err != nil {
			return invalid("installments", err.Error())
		}
	case entities.PaymentMethodBoleto:
		if !p.BoletoDueDate.IsSet() {
			return required("boletoDueDate")
		}
		if p.PersonType != "" && p.PersonType != entities.PersonTypePersonal && p.PersonType != entities.PersonTypeCompany {
			return invalid("personType", "must be personal or company")
		}
	}

	if _, ok := entities.ParseAddressLine(p.Card.Address1); !ok {
		return required("card.address1")
	}
	for _, k := range reservedAdditionalFields {
		if _, ok := p.AdditionalFields[k]; ok {
			return invalid("additionalFields", fmt.Sprintf("%s cannot be overridden", k))
		}
	}
	return nil
}

// ValidateCapture requires the merchant account and the prior transaction identifier.
func ValidateCapture(p CaptureParams) error {
	if strings.TrimSpace(p.MerchantAccount) == "" {
		return required("merchantAccount")
	}
	if p.originalReference() == "" {
		return required("transactionReference")
	}
	if p.Money != nil {
		return validateMoney("amount", *p.Money)
	}
	return nil
}

func validateMoney(field string, m entities.Money) error {
	if m.IsZero() {
		return required(field)
	}
	if err := m.Validate(); err != nil {
		if errors.Is(err, entities.ErrInvalidCurrency) {
			return invalid("currency", err.Error())
		}
		return invalid(field, err.Error())
	}
	return nil
}

func validateCard(c entities.Card, now time.Time) error {
	number := c.CardNumberDigits()
	switch {
	case number == "":
		return required("card.number")
	case c.ExpiryMonth == 0:
		return required("card.expiryMonth")
	case c.ExpiryYear == 0:
		return required("card.expiryYear")
	case c.ExpiryMonth < 1 || c.ExpiryMonth > 12:
		return invalid("card.expiryMonth", "must be between 1 and 12")
	case len(number) < 12 || len(number) > 19:
		return invalid("card.number", "must have between 12 and 19 digits")
	case !entities.LuhnValid(number):
		return invalid("card.number", "failed the Luhn check")
	case c.IsExpired(now):
		return invalid("card.expiry", "card has expired")
	}
	return nil
}
