package entities

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCurrency = errors.New("currency must be a 3-letter ISO-4217 code")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrInvalidAmount   = errors.New("invalid amount")
)

// Money is an amount expressed in the currency's minor units (cents for BRL/USD).
type Money struct {
	Currency   string `json:"currency"`
	MinorUnits int64  `json:"value"`
}

// currencyExponents lists ISO-4217 currencies whose minor unit is not 2 digits.
var currencyExponents = map[string]int32{
	"BIF": 0, "CLP": 0, "CVE": 0, "DJF": 0, "GNF": 0, "IDR": 0, "ISK": 0,
	"JPY": 0, "KMF": 0, "KRW": 0, "PYG": 0, "RWF": 0, "UGX": 0, "VND": 0,
	"VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

func NewMoney(minorUnits int64, currency string) (Money, error) {
	currency, err := normalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	if minorUnits < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{Currency: currency, MinorUnits: minorUnits}, nil
}

// NewMoneyFromDecimal converts a decimal amount such as "10.00" into minor units
// using the currency exponent. Amounts with more fractional digits than the
// currency allows are rejected instead of rounded.
func NewMoneyFromDecimal(amount, currency string) (Money, error) {
	currency, err := normalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}

	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	if d.IsNegative() {
		return Money{}, ErrNegativeAmount
	}

	exp := CurrencyExponent(currency)
	scaled := d.Shift(exp)
	if !scaled.Equal(scaled.Truncate(0)) {
		return Money{}, fmt.Errorf("%w: %q has more than %d decimal places for %s", ErrInvalidAmount, amount, exp, currency)
	}
	return Money{Currency: currency, MinorUnits: scaled.IntPart()}, nil
}

func CurrencyExponent(currency string) int32 {
	if exp, ok := currencyExponents[strings.ToUpper(currency)]; ok {
		return exp
	}
	return 2
}

// Decimal renders the amount in major units, e.g. 1000 BRL -> "10.00".
func (m Money) Decimal() string {
	exp := CurrencyExponent(m.Currency)
	return decimal.New(m.MinorUnits, -exp).StringFixed(exp)
}

// Normalized returns m with its currency code trimmed and upper-cased.
func (m Money) Normalized() Money {
	m.Currency = strings.ToUpper(strings.TrimSpace(m.Currency))
	return m
}

func (m Money) IsZero() bool {
	return m.Currency == "" && m.MinorUnits == 0
}

func (m Money) Validate() error {
	if _, err := normalizeCurrency(m.Currency); err != nil {
		return err
	}
	if m.MinorUnits < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func normalizeCurrency(currency string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(currency))
	if len(c) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return c, nil
}
