package entities

import (
	"errors"
	"strings"
	"time"
)

// BoletoDeliveryDateLayout is the processor's deliveryDate format.
const BoletoDeliveryDateLayout = "2006-01-02T15:04:05Z"

// boletoDueHour is the UTC hour every due date is pinned to.
const boletoDueHour = 3

var ErrInvalidBoletoDueDate = errors.New("invalid boleto due date")

// BoletoDueDate is the calendar day a boleto expires. The zero value means
// "no due date".
type BoletoDueDate struct {
	t time.Time
}

// NewBoletoDueDate keeps only the calendar day of t and pins it to 03:00:00 UTC.
func NewBoletoDueDate(t time.Time) BoletoDueDate {
	if t.IsZero() {
		return BoletoDueDate{}
	}
	y, m, d := t.Date()
	return BoletoDueDate{t: time.Date(y, m, d, boletoDueHour, 0, 0, 0, time.UTC)}
}

// ParseBoletoDueDate accepts 2006-01-02, 02/01/2006 or RFC3339. An empty string
// yields the zero value.
func ParseBoletoDueDate(s string) (BoletoDueDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BoletoDueDate{}, nil
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewBoletoDueDate(t), nil
		}
	}
	return BoletoDueDate{}, ErrInvalidBoletoDueDate
}

func (b BoletoDueDate) IsSet() bool {
	return !b.t.IsZero()
}

func (b BoletoDueDate) Time() time.Time {
	return b.t
}

// DeliveryDate formats the due date as YYYY-MM-DDTHH:mm:ssZ, empty when unset.
func (b BoletoDueDate) DeliveryDate() string {
	if !b.IsSet() {
		return ""
	}
	return b.t.Format(BoletoDeliveryDateLayout)
}

// Boleto is the voucher data returned by the processor for boleto payments.
type Boleto struct {
	URL            string `json:"boleto_url"`
	Barcode        string `json:"boleto_barcode"`
	ExpirationDate string `json:"boleto_expiration_date"`
}
