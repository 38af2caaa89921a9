package entities

import (
	"encoding/json"
	"errors"
)

const (
	MinInstallments = 1
	MaxInstallments = 12
)

var ErrInstallmentsOutOfRange = errors.New("installments must be between 1 and 12")

// Installments is the number of card installments. The zero value means 1.
type Installments int

func (i Installments) Value() int {
	if i == 0 {
		return MinInstallments
	}
	return int(i)
}

func (i Installments) Validate() error {
	if v := i.Value(); v < MinInstallments || v > MaxInstallments {
		return ErrInstallmentsOutOfRange
	}
	return nil
}

// Split is the ordered list of split instructions. Entries are opaque to this
// service and forwarded verbatim.
type Split []json.RawMessage

func (s Split) IsEmpty() bool {
	return len(s) == 0
}
