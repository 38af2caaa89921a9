package adyen

import (
	"encoding/json"
	"testing"
	"time"

	"adyen_classic/internal/domain/entities"
)

var fixedNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func testCard() *entities.Card {
	return &entities.Card{
		FirstName:   "Maria",
		LastName:    "Silva",
		Number:      "4111 1111 1111 1111",
		ExpiryMonth: 3,
		ExpiryYear:  2030,
		CVC:         "737",
		Email:       "maria@example.com",
		Phone:       "+55 11 99999-0000",
		Address1:    " Rua Augusta , 1500, apto 3 ",
		City:        "São Paulo",
		State:       "SP",
		Country:     "BR",
		Postcode:    "01305-100",
	}
}

func cardParams() AuthorizeParams {
	return AuthorizeParams{
		Money:           entities.Money{Currency: "BRL", MinorUnits: 1000},
		PaymentMethod:   entities.PaymentMethodCreditCard,
		Card:            testCard(),
		TransactionID:   "order-1",
		MerchantAccount: "AdyenAccount",
	}
}

func boletoParams() AuthorizeParams {
	return AuthorizeParams{
		Money:           entities.Money{Currency: "BRL", MinorUnits: 25990},
		PaymentMethod:   entities.PaymentMethodBoleto,
		Card:            testCard(),
		TransactionID:   "order-2",
		MerchantAccount: "AdyenAccount",
		DocumentNumber:  entities.NewDocumentNumber("224.158.178-40"),
		Note:            "Loja Exemplo",
		BoletoDueDate:   entities.NewBoletoDueDate(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)),
	}
}

// decode round-trips a payload through JSON so assertions see the wire shape.
func decode(t *testing.T, p Payload) map[string]any {
	t.Helper()
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	return m
}

func object(t *testing.T, m map[string]any, key string) map[string]any {
	t.Helper()
	v, ok := m[key].(map[string]any)
	if !ok {
		t.Fatalf("expected %s to be an object, got %#v", key, m[key])
	}
	return v
}
