package adyen

import (
	"bytes"
	"encoding/json"
	"fmt"

	"adyen_classic/internal/domain/entities"
)

const (
	outputBoletoURL            = "boletobancario.url"
	outputBoletoBarcode        = "boletobancario.barCodeReference"
	outputBoletoExpirationDate = "boletobancario.expirationDate"
)

// flexString accepts a JSON string or number; errorCode comes as either.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// isSet reports an error code worth acting on; "" and "0" mean no error.
func (f flexString) isSet() bool {
	return f != "" && f != "0"
}

type rawResponse struct {
	ResultCode    *string         `json:"resultCode"`
	Response      *string         `json:"response"`
	PSPReference  *string         `json:"pspReference"`
	AuthCode      *string         `json:"authCode"`
	ErrorCode     flexString      `json:"errorCode"`
	ErrorType     string          `json:"errorType"`
	Message       string          `json:"message"`
	Status        int             `json:"status"`
	FraudResult   json.RawMessage `json:"fraudResult"`
	OutputDetails map[string]any  `json:"outputDetails"`
	Redirect      json.RawMessage `json:"redirect"`
	Action        json.RawMessage `json:"action"`
}

// Interpret parses a processor reply into an Outcome. Processor failures are
// data; the only error is a body that is not a JSON object.
func Interpret(raw []byte) (*entities.Outcome, error) {
	return interpret(raw, 0)
}

func interpret(raw []byte, httpStatus int) (*entities.Outcome, error) {
	body := bytes.TrimSpace(bytes.TrimPrefix(raw, []byte("\ufeff")))
	if len(body) == 0 || body[0] != '{' {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrMalformedResponse)
	}

	var r rawResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	code := classify(r)
	o := &entities.Outcome{
		Code:                 code,
		Successful:           !r.ErrorCode.isSet() && code.IsSuccessful(),
		Redirect:             r.ResultCode != nil && *r.ResultCode == string(entities.OutcomeRedirectShopper),
		TransactionReference: r.PSPReference,
		AuthCode:             r.AuthCode,
		TransactionStatus:    transactionStatus(r),
		PaymentStatus:        paymentStatus(r),
		Message:              r.Message,
		ErrorCode:            string(r.ErrorCode),
		ErrorType:            r.ErrorType,
		HTTPStatus:           httpStatus,
		RiskAnalysis:         nonNull(r.FraudResult),
		OutputDetails:        stringifyDetails(r.OutputDetails),
		RedirectData:         redirectData(r),
		Raw:                  json.RawMessage(append([]byte(nil), body...)),
	}
	if r.Status != 0 {
		o.HTTPStatus = r.Status
	}
	o.Boleto = boletoFrom(o.OutputDetails)
	return o, nil
}

// classify applies the precedence error code > resultCode > capture acknowledgement.
func classify(r rawResponse) entities.OutcomeCode {
	switch {
	case r.ErrorCode.isSet():
		return entities.OutcomeError
	case r.ResultCode != nil:
		return entities.OutcomeFromResultCode(*r.ResultCode)
	case r.Response != nil && *r.Response == entities.CaptureReceivedResponse:
		return entities.OutcomeCaptureReceived
	default:
		return entities.OutcomeUnknown
	}
}

func transactionStatus(r rawResponse) string {
	if s := paymentStatus(r); s != "" {
		return s
	}
	return r.ErrorType
}

func paymentStatus(r rawResponse) string {
	switch {
	case r.ResultCode != nil:
		return *r.ResultCode
	case r.Response != nil:
		return *r.Response
	}
	return ""
}

func redirectData(r rawResponse) json.RawMessage {
	if v := nonNull(r.Redirect); v != nil {
		return v
	}
	return nonNull(r.Action)
}

func nonNull(m json.RawMessage) json.RawMessage {
	if len(m) == 0 || string(m) == "null" {
		return nil
	}
	return m
}

func stringifyDetails(details map[string]any) map[string]string {
	if len(details) == 0 {
		return nil
	}
	out := make(map[string]string, len(details))
	for k, v := range details {
		switch t := v.(type) {
		case string:
			out[k] = t
		case nil:
			out[k] = ""
		default:
			b, _ := json.Marshal(t)
			out[k] = string(b)
		}
	}
	return out
}

// boletoFrom returns nil unless the details carry a boleto URL; a missing
// block means "not a boleto response".
func boletoFrom(details map[string]string) *entities.Boleto {
	url, ok := details[outputBoletoURL]
	if !ok {
		return nil
	}
	return &entities.Boleto{
		URL:            url,
		Barcode:        details[outputBoletoBarcode],
		ExpirationDate: details[outputBoletoExpirationDate],
	}
}
