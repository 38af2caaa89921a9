package entities

import "encoding/json"

// OutcomeCode is the normalized result of a processor reply. Authorisation
// codes are the processor's own resultCode values.
type OutcomeCode string

const (
	OutcomeAuthorised             OutcomeCode = "Authorised"
	OutcomeReceived               OutcomeCode = "Received"
	OutcomePresentToShopper       OutcomeCode = "PresentToShopper"
	OutcomeRedirectShopper        OutcomeCode = "RedirectShopper"
	OutcomeAuthenticationFinished OutcomeCode = "AuthenticationFinished"
	OutcomePending                OutcomeCode = "Pending"
	OutcomeChallengeShopper       OutcomeCode = "ChallengeShopper"
	OutcomeIdentifyShopper        OutcomeCode = "IdentifyShopper"
	OutcomeCancelled              OutcomeCode = "Cancelled"
	OutcomeRefused                OutcomeCode = "Refused"
	OutcomeError                  OutcomeCode = "Error"
	OutcomeCaptureReceived        OutcomeCode = "CaptureReceived"
	OutcomeUnknown                OutcomeCode = "Unknown"
)

// CaptureReceivedResponse is the literal acknowledgement of a capture request.
const CaptureReceivedResponse = "[capture-received]"

var resultCodes = map[string]OutcomeCode{
	string(OutcomeAuthorised):             OutcomeAuthorised,
	string(OutcomeReceived):               OutcomeReceived,
	string(OutcomePresentToShopper):       OutcomePresentToShopper,
	string(OutcomeRedirectShopper):        OutcomeRedirectShopper,
	string(OutcomeAuthenticationFinished): OutcomeAuthenticationFinished,
	string(OutcomePending):                OutcomePending,
	string(OutcomeChallengeShopper):       OutcomeChallengeShopper,
	string(OutcomeIdentifyShopper):        OutcomeIdentifyShopper,
	string(OutcomeCancelled):              OutcomeCancelled,
	string(OutcomeRefused):                OutcomeRefused,
	string(OutcomeError):                  OutcomeError,
}

// OutcomeFromResultCode maps a processor resultCode. Codes outside the known
// set become OutcomeUnknown.
func OutcomeFromResultCode(code string) OutcomeCode {
	if c, ok := resultCodes[code]; ok {
		return c
	}
	return OutcomeUnknown
}

// IsSuccessful reports whether the code counts as a successful call.
func (c OutcomeCode) IsSuccessful() bool {
	switch c {
	case OutcomeAuthorised, OutcomeReceived, OutcomePresentToShopper,
		OutcomeRedirectShopper, OutcomeAuthenticationFinished, OutcomeCaptureReceived:
		return true
	}
	return false
}

// Outcome is the interpreted processor reply. It is built once per response
// and never mutated afterwards.
type Outcome struct {
	Code       OutcomeCode `json:"code"`
	Successful bool        `json:"successful"`
	Redirect   bool        `json:"redirect"`

	// TransactionReference is the processor's pspReference.
	TransactionReference *string `json:"transaction_reference,omitempty"`
	// AuthCode is the issuer authorisation code, distinct from the pspReference.
	AuthCode *string `json:"auth_code,omitempty"`

	TransactionStatus string `json:"transaction_status,omitempty"`
	PaymentStatus     string `json:"payment_status,omitempty"`
	Message           string `json:"message,omitempty"`
	ErrorCode         string `json:"error_code,omitempty"`
	ErrorType         string `json:"error_type,omitempty"`
	HTTPStatus        int    `json:"http_status,omitempty"`

	RiskAnalysis  json.RawMessage   `json:"risk_analysis,omitempty"`
	OutputDetails map[string]string `json:"output_details,omitempty"`
	RedirectData  json.RawMessage   `json:"redirect,omitempty"`
	Boleto        *Boleto           `json:"boleto,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// Reference returns the pspReference or "".
func (o *Outcome) Reference() string {
	if o == nil || o.TransactionReference == nil {
		return ""
	}
	return *o.TransactionReference
}

// TransactionID returns the authCode or "".
func (o *Outcome) TransactionID() string {
	if o == nil || o.AuthCode == nil {
		return ""
	}
	return *o.AuthCode
}

// IsProcessorError reports a reply the processor rejected or failed.
func (o *Outcome) IsProcessorError() bool {
	return o != nil && (o.ErrorCode != "" || o.Code == OutcomeError)
}
