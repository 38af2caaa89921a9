package entities

import (
	"strings"
	"time"
)

// Card carries the payer, card and billing address data supplied by the caller.
//
// Boleto payments reuse the same structure for the payer's name, e-mail and
// address; the card fields are ignored there.
type Card struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Number      string `json:"number"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	CVC         string `json:"cvc,omitempty"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	// Address1 is "street, house number" separated by a comma.
	Address1 string `json:"address1"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
}

// Name is the card holder name.
func (c Card) Name() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// AddressLine is the raw address split on commas.
type AddressLine struct {
	Street            string
	HouseNumberOrName string
}

// ParseAddressLine takes the first comma-separated segment as the street and
// the second, when present, as the house number. Further segments are ignored.
// ok is false when the line has no non-empty segment.
func ParseAddressLine(raw string) (line AddressLine, ok bool) {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	line.Street = parts[0]
	if len(parts) > 1 {
		line.HouseNumberOrName = parts[1]
	}

	for _, p := range parts {
		if p != "" {
			return line, true
		}
	}
	return line, false
}

// CardNumberDigits strips spaces and dashes from the card number.
func (c Card) CardNumberDigits() string {
	return DigitsOnly(c.Number)
}

// MaskedNumber keeps the last four digits only.
func (c Card) MaskedNumber() string {
	n := c.CardNumberDigits()
	if len(n) <= 4 {
		return n
	}
	return strings.Repeat("*", len(n)-4) + n[len(n)-4:]
}

// IsExpired reports whether the card expired before now. A card is valid
// through the last day of its expiry month.
func (c Card) IsExpired(now time.Time) bool {
	year := c.ExpiryYear
	if year < 100 {
		year += 2000
	}
	endOfMonth := time.Date(year, time.Month(c.ExpiryMonth)+1, 1, 0, 0, 0, 0, time.UTC)
	return !now.UTC().Before(endOfMonth)
}

// LuhnValid reports whether the card number passes the mod-10 check.
func LuhnValid(number string) bool {
	if number == "" {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
