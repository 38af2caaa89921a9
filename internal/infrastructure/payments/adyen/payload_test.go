package adyen

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"adyen_classic/internal/domain/entities"
)

func TestMerge_LaterFragmentWins(t *testing.T) {
	p := Merge(
		Fragment{Name: "first", Fields: map[string]any{"a": 1, "b": 1}},
		Fragment{Name: "second", Fields: map[string]any{"b": 2, "c": 2}},
		Fragment{Name: "third", Fields: map[string]any{"c": 3}},
	)

	want := map[string]struct {
		value  int
		origin string
	}{
		"a": {1, "first"},
		"b": {2, "second"},
		"c": {3, "third"},
	}
	for k, w := range want {
		v, ok := p.Get(k)
		if !ok || v != w.value {
			t.Fatalf("key %s: expected %d, got %v", k, w.value, v)
		}
		if p.Origin(k) != w.origin {
			t.Fatalf("key %s: expected origin %s, got %s", k, w.origin, p.Origin(k))
		}
	}
	if p.Len() != 3 {
		t.Fatalf("expected 3 keys, got %v", p.Keys())
	}
}

func TestBuildAuthorizePayload_CreditCard(t *testing.T) {
	p := cardParams()
	p.NotifyURL = "https://shop.example.com/notify"
	p.Installments = 3

	payload, err := BuildAuthorizePayload(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := decode(t, payload)

	amount := object(t, m, "amount")
	if amount["currency"] != "BRL" || amount["value"] != float64(1000) {
		t.Fatalf("unexpected amount: %#v", amount)
	}
	if m["merchantAccount"] != "AdyenAccount" || m["reference"] != "order-1" {
		t.Fatalf("unexpected base fields: %#v", m)
	}
	if m["notificationURL"] != "https://shop.example.com/notify" {
		t.Fatalf("unexpected notificationURL: %#v", m["notificationURL"])
	}
	if m["shopperName"] != "Maria Silva" || m["shopperEmail"] != "maria@example.com" || m["telephoneNumber"] != "+55 11 99999-0000" {
		t.Fatalf("unexpected customer fields: %#v", m)
	}

	addr := object(t, m, "billingAddress")
	if addr["street"] != "Rua Augusta" || addr["houseNumberOrName"] != "1500" {
		t.Fatalf("unexpected street split: %#v", addr)
	}
	if addr["postalCode"] != "01305100" || addr["city"] != "São Paulo" || addr["country"] != "BR" {
		t.Fatalf("unexpected address: %#v", addr)
	}
	if _, ok := addr["stateOrProvince"]; ok {
		t.Fatalf("card payload must not carry stateOrProvince: %#v", addr)
	}

	if object(t, m, "installments")["value"] != float64(3) {
		t.Fatalf("unexpected installments: %#v", m["installments"])
	}
	card := object(t, m, "card")
	if card["holderName"] != "Maria Silva" || card["number"] != "4111111111111111" {
		t.Fatalf("unexpected card: %#v", card)
	}
	if card["expiryMonth"] != "03" || card["expiryYear"] != "2030" || card["cvc"] != "737" {
		t.Fatalf("unexpected card expiry/cvc: %#v", card)
	}
	if _, ok := m["splits"]; ok {
		t.Fatalf("empty split must be omitted")
	}
}

func TestBuildAuthorizePayload_AmountIndependentOfOtherFields(t *testing.T) {
	for _, minor := range []int64{0, 1, 999, 123456789} {
		p := cardParams()
		p.Money = entities.Money{Currency: "USD", MinorUnits: minor}
		p.Installments = 12
		p.Split = entities.Split{json.RawMessage(`{"amount":{"value":1},"account":"A"}`)}

		payload, err := BuildAuthorizePayload(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		amount := object(t, decode(t, payload), "amount")
		if amount["value"] != float64(minor) || amount["currency"] != "USD" {
			t.Fatalf("minor=%d: unexpected amount %#v", minor, amount)
		}
	}
}

func TestBuildAuthorizePayload_CreditCardOptionalFields(t *testing.T) {
	p := cardParams()
	p.Card.CVC = ""
	p.Card.Address1 = "Avenida Paulista"
	p.Split = entities.Split{
		json.RawMessage(`{"amount":{"value":600},"type":"MarketPlace","account":"151272963"}`),
		json.RawMessage(`{"amount":{"value":400},"type":"Commission"}`),
	}

	payload, err := BuildAuthorizePayload(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := decode(t, payload)

	if _, ok := object(t, m, "card")["cvc"]; ok {
		t.Fatalf("cvc must be omitted when absent")
	}
	if object(t, m, "installments")["value"] != float64(1) {
		t.Fatalf("installments must default to 1")
	}
	addr := object(t, m, "billingAddress")
	if addr["street"] != "Avenida Paulista" || addr["houseNumberOrName"] != "" {
		t.Fatalf("unexpected address: %#v", addr)
	}
	splits, ok := m["splits"].([]any)
	if !ok || len(splits) != 2 {
		t.Fatalf("expected 2 splits in order, got %#v", m["splits"])
	}
	if first := splits[0].(map[string]any); first["account"] != "151272963" {
		t.Fatalf("split order not preserved: %#v", splits)
	}
}

func TestBuildAuthorizePayload_AdditionalFieldsOverride(t *testing.T) {
	p := cardParams()
	p.AdditionalFields = map[string]any{
		"billingAddress": map[string]any{"street": "Override"},
		"reference":      "override-ref",
		"shopperLocale":  "pt_BR",
	}

	payload, err := BuildAuthorizePayload(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := decode(t, payload)

	if object(t, m, "billingAddress")["street"] != "Override" {
		t.Fatalf("additional billingAddress must override computed address")
	}
	if m["reference"] != "override-ref" || m["shopperLocale"] != "pt_BR" {
		t.Fatalf("unexpected overrides: %#v", m)
	}
	if payload.Origin("billingAddress") != FragmentAdditional {
		t.Fatalf("expected additional origin, got %s", payload.Origin("billingAddress"))
	}
	if payload.Origin("shopperEmail") != FragmentCustomer || payload.Origin("merchantAccount") != FragmentBase {
		t.Fatalf("unexpected origins: shopperEmail=%s merchantAccount=%s", payload.Origin("shopperEmail"), payload.Origin("merchantAccount"))
	}
}

func TestBuildAuthorizePayload_AmountAndCardCannotBeOverridden(t *testing.T) {
	for _, method := range []entities.PaymentMethod{entities.PaymentMethodCreditCard, entities.PaymentMethodBoleto} {
		t.Run(string(method), func(t *testing.T) {
			p := cardParams()
			if method == entities.PaymentMethodBoleto {
				p = boletoParams()
			}
			p.AdditionalFields = map[string]any{
				"amount": map[string]any{"currency": "USD", "value": 1},
				"card":   map[string]any{"number": "4000000000000002"},
			}

			payload, err := BuildAuthorizePayload(p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			m := decode(t, payload)

			amount := object(t, m, "amount")
			if amount["currency"] != p.Money.Currency || amount["value"] != float64(p.Money.MinorUnits) {
				t.Fatalf("amount must equal the money, got %#v", amount)
			}
			if payload.Origin("amount") != FragmentAmount {
				t.Fatalf("expected amount origin, got %s", payload.Origin("amount"))
			}
			if method == entities.PaymentMethodCreditCard && object(t, m, "card")["number"] != "4111111111111111" {
				t.Fatalf("card must come from the validated card, got %#v", m["card"])
			}
			if _, ok := m["card"]; method == entities.PaymentMethodBoleto && ok {
				t.Fatalf("boleto payload must not carry card, got %#v", m["card"])
			}
		})
	}
}

func TestBuildAuthorizePayload_CurrencyUpperCased(t *testing.T) {
	p := cardParams()
	p.Money = entities.Money{Currency: "brl", MinorUnits: 1000}

	payload, err := BuildAuthorizePayload(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c := object(t, decode(t, payload), "amount")["currency"]; c != "BRL" {
		t.Fatalf("expected BRL, got %#v", c)
	}

	capture := decode(t, BuildCapturePayload(CaptureParams{
		MerchantAccount:      "AdyenAccount",
		TransactionReference: "PSP1",
		Money:                &entities.Money{Currency: "brl", MinorUnits: 400},
	}))
	if c := object(t, capture, "modificationAmount")["currency"]; c != "BRL" {
		t.Fatalf("expected BRL modificationAmount, got %#v", c)
	}
}

func TestBuildAuthorizePayload_DocumentNumberDigitsOnly(t *testing.T) {
	p := boletoParams()
	p.DocumentNumber = entities.DocumentNumber("224.158.178-40")

	payload, err := BuildAuthorizePayload(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc := decode(t, payload)["socialSecurityNumber"]; doc != "22415817840" {
		t.Fatalf("expected digits-only document, got %#v", doc)
	}

	p.DocumentNumber = entities.DocumentNumber("..-")
	payload, err = BuildAuthorizePayload(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := decode(t, payload)["socialSecurityNumber"]; ok {
		t.Fatalf("a document without digits must be omitted")
	}
}

func TestBuildAuthorizePayload_Boleto(t *testing.T) {
	p := boletoParams()
	p.AdditionalFields = map[string]any{"merchantAccount": "Hijacked", "shopperLocale": "pt_BR"}

	payload, err := BuildAuthorizePayload(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := decode(t, payload)

	if m["merchantAccount"] != "AdyenAccount" || payload.Origin("merchantAccount") != FragmentMerchant {
		t.Fatalf("merchantAccount must not be overridden, got %#v", m["merchantAccount"])
	}
	if m["shopperLocale"] != "pt_BR" {
		t.Fatalf("other additional fields must still apply")
	}
	if m["reference"] != "order-2" {
		t.Fatalf("unexpected reference: %#v", m["reference"])
	}
	name := object(t, m, "shopperName")
	if name["firstName"] != "Maria" || name["lastName"] != "Silva" {
		t.Fatalf("unexpected shopperName: %#v", name)
	}
	if m["shopperEmail"] != "maria@example.com" || m["socialSecurityNumber"] != "22415817840" {
		t.Fatalf("unexpected shopper fields: %#v", m)
	}
	if object(t, m, "paymentMethod")["type"] != "boletobancario_santander" {
		t.Fatalf("unexpected paymentMethod: %#v", m["paymentMethod"])
	}
	if m["shopperStatement"] != "Loja Exemplo" {
		t.Fatalf("unexpected shopperStatement: %#v", m["shopperStatement"])
	}
	if m["deliveryDate"] != "2026-04-01T03:00:00Z" {
		t.Fatalf("unexpected deliveryDate: %#v", m["deliveryDate"])
	}
	addr := object(t, m, "billingAddress")
	if addr["stateOrProvince"] != "SP" || addr["street"] != "Rua Augusta" {
		t.Fatalf("unexpected boleto address: %#v", addr)
	}
	for _, k := range []string{"card", "installments", "telephoneNumber"} {
		if _, ok := m[k]; ok {
			t.Fatalf("boleto payload must not carry %s", k)
		}
	}
}

func TestBuildAuthorizePayload_BoletoDeliveryDateIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	for _, in := range []time.Time{
		time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.May, 20, 23, 59, 59, 0, time.UTC),
		time.Date(2026, time.May, 20, 22, 30, 0, 0, loc),
	} {
		p := boletoParams()
		p.BoletoDueDate = entities.NewBoletoDueDate(in)
		payload, err := BuildAuthorizePayload(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := decode(t, payload)["deliveryDate"]; got != "2026-05-20T03:00:00Z" {
			t.Fatalf("input %s: unexpected deliveryDate %v", in, got)
		}
	}
}

func TestBuildAuthorizePayload_BoletoCompany(t *testing.T) {
	p := boletoParams()
	p.PersonType = entities.PersonTypeCompany
	p.CompanyName = "Exemplo LTDA"
	p.DocumentNumber = entities.NewDocumentNumber("12.345.678/0001-95")

	payload, err := BuildAuthorizePayload(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := decode(t, payload)
	if name := object(t, m, "shopperName"); name["firstName"] != "Exemplo LTDA" || name["lastName"] != "" {
		t.Fatalf("unexpected company shopperName: %#v", name)
	}
	if m["socialSecurityNumber"] != "12345678000195" {
		t.Fatalf("unexpected document: %#v", m["socialSecurityNumber"])
	}
}

func TestBuildAuthorizePayload_UnsupportedMethod(t *testing.T) {
	p := cardParams()
	p.PaymentMethod = "paypal"
	_, err := BuildAuthorizePayload(p)
	var ue *UnsupportedError
	if !errors.As(err, &ue) || ue.Kind != kindPaymentMethod || ue.Value != "paypal" {
		t.Fatalf("expected unsupported payment method, got %v", err)
	}
}

func TestBuildCapturePayload(t *testing.T) {
	t.Run("without amount", func(t *testing.T) {
		m := decode(t, BuildCapturePayload(CaptureParams{MerchantAccount: "AdyenAccount", TransactionReference: "8815"}))
		if m["merchantAccount"] != "AdyenAccount" || m["originalReference"] != "8815" {
			t.Fatalf("unexpected capture payload: %#v", m)
		}
		if _, ok := m["modificationAmount"]; ok {
			t.Fatalf("modificationAmount must be omitted without money")
		}
	})

	t.Run("falls back to transaction id", func(t *testing.T) {
		m := decode(t, BuildCapturePayload(CaptureParams{MerchantAccount: "AdyenAccount", TransactionID: "auth-1"}))
		if m["originalReference"] != "auth-1" {
			t.Fatalf("unexpected originalReference: %#v", m["originalReference"])
		}
	})

	t.Run("with amount", func(t *testing.T) {
		money := entities.Money{Currency: "BRL", MinorUnits: 500}
		m := decode(t, BuildCapturePayload(CaptureParams{MerchantAccount: "AdyenAccount", TransactionReference: "8815", Money: &money}))
		amount := object(t, m, "modificationAmount")
		if amount["currency"] != "BRL" || amount["value"] != float64(500) {
			t.Fatalf("unexpected modificationAmount: %#v", amount)
		}
	})
}
