package response

import (
	"encoding/json"
	"time"

	"adyen_classic/internal/domain/entities"
)

type PaymentResponse struct {
	ID            string           `json:"id"`
	ParentID      string           `json:"parent_id,omitempty"`
	Reference     string           `json:"reference"`
	PSPReference  string           `json:"psp_reference,omitempty"`
	AuthCode      string           `json:"auth_code,omitempty"`
	Operation     string           `json:"operation"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	Amount        string           `json:"amount"`
	Currency      string           `json:"currency"`
	ResultCode    string           `json:"result_code"`
	Successful    bool             `json:"successful"`
	Redirect      bool             `json:"redirect"`
	Message       string           `json:"message,omitempty"`
	ErrorCode     string           `json:"error_code,omitempty"`
	Boleto        *entities.Boleto `json:"boleto,omitempty"`
	Date          time.Time        `json:"date"`

	RawResponse json.RawMessage `json:"raw_response,omitempty" swaggertype:"object"`
}

func FromPaymentRecord(p entities.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		ParentID:      p.ParentID,
		Reference:     p.Reference,
		PSPReference:  p.PSPReference,
		AuthCode:      p.AuthCode,
		Operation:     string(p.Operation),
		PaymentMethod: string(p.PaymentMethod),
		Amount:        p.Amount.Decimal(),
		Currency:      p.Amount.Currency,
		ResultCode:    string(p.ResultCode),
		Successful:    p.Successful,
		Redirect:      p.Redirect,
		Message:       p.Message,
		ErrorCode:     p.ErrorCode,
		Boleto:        p.Boleto,
		Date:          p.Date,
		RawResponse:   p.RawResponse,
	}
}

func FromPaymentRecords(ps []entities.PaymentRecord) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPaymentRecord(p))
	}
	return out
}
