package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"adyen_classic/internal/domain/entities"
	"adyen_classic/internal/usecase"
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidBoletoDueDate = errors.New("invalid boleto_due_date")
)

// CardRequest carries card holder, card and billing address data. Boleto
// payments use it for the payer's name, e-mail and address only.
type CardRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Number      string `json:"number"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	CVC         string `json:"cvc"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Address1    string `json:"address1" example:"Rua Augusta, 1500"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country" binding:"omitempty,len=2"`
	Postcode    string `json:"postcode"`
}

func (r *CardRequest) toEntity() *entities.Card {
	if r == nil {
		return nil
	}
	return &entities.Card{
		FirstName:   strings.TrimSpace(r.FirstName),
		LastName:    strings.TrimSpace(r.LastName),
		Number:      strings.TrimSpace(r.Number),
		ExpiryMonth: r.ExpiryMonth,
		ExpiryYear:  r.ExpiryYear,
		CVC:         strings.TrimSpace(r.CVC),
		Email:       strings.TrimSpace(r.Email),
		Phone:       strings.TrimSpace(r.Phone),
		Address1:    r.Address1,
		City:        strings.TrimSpace(r.City),
		State:       strings.TrimSpace(r.State),
		Country:     strings.ToUpper(strings.TrimSpace(r.Country)),
		Postcode:    strings.TrimSpace(r.Postcode),
	}
}

// AuthorizePaymentRequest is the payload of POST /v1/payments/authorize.
//
// `amount` is a decimal string in major units ("10.00"). `split` entries and
// `additional_data` are forwarded to the processor as-is; additional_data keys
// override computed fields except merchantAccount on boleto payments.
type AuthorizePaymentRequest struct {
	Amount         string            `json:"amount" binding:"required" example:"10.00"`
	Currency       string            `json:"currency" binding:"required,len=3" example:"BRL"`
	PaymentMethod  string            `json:"payment_method" binding:"required" example:"creditcard"`
	Reference      string            `json:"reference" example:"order-1"`
	NotifyURL      string            `json:"notify_url" binding:"omitempty,url"`
	Installments   int               `json:"installments" binding:"omitempty,min=0"`
	DocumentNumber string            `json:"document_number" example:"224.158.178-40"`
	Note           string            `json:"note"`
	BoletoDueDate  string            `json:"boleto_due_date" example:"2026-04-01"`
	PersonType     string            `json:"person_type" binding:"omitempty,oneof=personal company"`
	CompanyName    string            `json:"company_name"`
	Split          []json.RawMessage `json:"split" swaggertype:"array,object"`
	AdditionalData map[string]any    `json:"additional_data"`
	Card           *CardRequest      `json:"card"`
}

func (r AuthorizePaymentRequest) ToCommand() (usecase.AuthorizeCommand, error) {
	money, err := entities.NewMoneyFromDecimal(r.Amount, r.Currency)
	if err != nil {
		return usecase.AuthorizeCommand{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	due, err := entities.ParseBoletoDueDate(r.BoletoDueDate)
	if err != nil {
		return usecase.AuthorizeCommand{}, ErrInvalidBoletoDueDate
	}

	return usecase.AuthorizeCommand{
		Money:            money,
		PaymentMethod:    entities.ParsePaymentMethod(r.PaymentMethod),
		Card:             r.Card.toEntity(),
		Reference:        strings.TrimSpace(r.Reference),
		NotifyURL:        strings.TrimSpace(r.NotifyURL),
		Split:            entities.Split(r.Split),
		Installments:     entities.Installments(r.Installments),
		DocumentNumber:   entities.NewDocumentNumber(r.DocumentNumber),
		Note:             strings.TrimSpace(r.Note),
		BoletoDueDate:    due,
		PersonType:       entities.PersonType(strings.ToLower(strings.TrimSpace(r.PersonType))),
		CompanyName:      strings.TrimSpace(r.CompanyName),
		AdditionalFields: r.AdditionalData,
	}, nil
}

// CapturePaymentRequest is the optional body of POST /v1/payments/:id/capture.
// An empty body captures the full authorised amount.
type CapturePaymentRequest struct {
	Amount   string `json:"amount" example:"4.00"`
	Currency string `json:"currency" example:"BRL"`
}

func (r CapturePaymentRequest) ToMoney() (*entities.Money, error) {
	if strings.TrimSpace(r.Amount) == "" && strings.TrimSpace(r.Currency) == "" {
		return nil, nil
	}
	m, err := entities.NewMoneyFromDecimal(r.Amount, r.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	return &m, nil
}
