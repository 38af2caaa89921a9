package entities

import (
	"encoding/json"
	"time"
)

// PaymentOperation is the processor call a record was created for.
type PaymentOperation string

const (
	PaymentOperationAuthorize PaymentOperation = "authorize"
	PaymentOperationCapture   PaymentOperation = "capture"
)

// PaymentRecord is one authorize or capture call persisted by the service.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (reference-index): reference
//
// Capture records point at the authorisation they captured through ParentID.
// RawResponse keeps the processor body as received for audit.
type PaymentRecord struct {
	ID            string           `json:"id"`
	ParentID      string           `json:"parent_id,omitempty"`
	Reference     string           `json:"reference"`
	PSPReference  string           `json:"psp_reference,omitempty"`
	AuthCode      string           `json:"auth_code,omitempty"`
	Operation     PaymentOperation `json:"operation"`
	PaymentMethod PaymentMethod    `json:"payment_method,omitempty"`
	Amount        Money            `json:"amount"`
	ResultCode    OutcomeCode      `json:"result_code"`
	Successful    bool             `json:"successful"`
	Redirect      bool             `json:"redirect"`
	Message       string           `json:"message,omitempty"`
	ErrorCode     string           `json:"error_code,omitempty"`
	Boleto        *Boleto          `json:"boleto,omitempty"`
	Date          time.Time        `json:"date"`

	RawResponse json.RawMessage `json:"raw_response,omitempty"`
}

// Capturable reports whether the record is an authorisation that can still be captured.
func (r PaymentRecord) Capturable() bool {
	return r.Operation == PaymentOperationAuthorize &&
		r.Successful &&
		!r.Redirect &&
		r.PSPReference != ""
}

// NewPaymentRecord copies the outcome fields into a record.
func NewPaymentRecord(id string, op PaymentOperation, method PaymentMethod, reference string, amount Money, o *Outcome, now time.Time) PaymentRecord {
	r := PaymentRecord{
		ID:            id,
		Reference:     reference,
		Operation:     op,
		PaymentMethod: method,
		Amount:        amount,
		Date:          now.UTC(),
	}
	if o == nil {
		r.ResultCode = OutcomeUnknown
		return r
	}
	r.PSPReference = o.Reference()
	r.AuthCode = o.TransactionID()
	r.ResultCode = o.Code
	r.Successful = o.Successful
	r.Redirect = o.Redirect
	r.Message = o.Message
	r.ErrorCode = o.ErrorCode
	r.Boleto = o.Boleto
	r.RawResponse = o.Raw
	return r
}
