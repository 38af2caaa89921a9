package adyen

import (
	"encoding/json"
	"fmt"
	"sort"

	"adyen_classic/internal/domain/entities"
)

// BoletoPaymentMethodType is the Checkout paymentMethod.type used for boletos.
const BoletoPaymentMethodType = "boletobancario_santander"

// Fragment names, in the order they are merged.
const (
	FragmentBase       = "base"
	FragmentCustomer   = "customer"
	FragmentAddress    = "address"
	FragmentSplit      = "split"
	FragmentCard       = "card"
	FragmentBoleto     = "boleto"
	FragmentAdditional = "additional"
	FragmentMerchant   = "merchant"
	FragmentAmount     = "amount"
)

// Fragment is one independently computed part of a request body.
type Fragment struct {
	Name   string
	Fields map[string]any
}

// Payload is a merged request body. It remembers which fragment supplied each
// top-level key so precedence can be inspected.
type Payload struct {
	fields map[string]any
	origin map[string]string
}

// Merge combines fragments left to right: a key set by a later fragment
// replaces the same key set by an earlier one. Keys are replaced whole, nested
// objects are not deep-merged.
func Merge(fragments ...Fragment) Payload {
	p := Payload{fields: map[string]any{}, origin: map[string]string{}}
	for _, f := range fragments {
		for k, v := range f.Fields {
			p.fields[k] = v
			p.origin[k] = f.Name
		}
	}
	return p
}

func (p Payload) Get(key string) (any, bool) {
	v, ok := p.fields[key]
	return v, ok
}

// Origin names the fragment that supplied key, "" when the key is absent.
func (p Payload) Origin(key string) string {
	return p.origin[key]
}

func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p.fields))
	for k := range p.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p Payload) Len() int {
	return len(p.fields)
}

func (p Payload) MarshalJSON() ([]byte, error) {
	if p.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p.fields)
}

// Wire types. Key names are the processor's and are case-sensitive.

type amountData struct {
	Currency string `json:"currency"`
	Value    int64  `json:"value"`
}

type billingAddress struct {
	Street            string `json:"street"`
	HouseNumberOrName string `json:"houseNumberOrName"`
	City              string `json:"city"`
	StateOrProvince   string `json:"stateOrProvince,omitempty"`
	Country           string `json:"country"`
	PostalCode        string `json:"postalCode"`
}

type installmentsData struct {
	Value int `json:"value"`
}

type cardData struct {
	HolderName  string `json:"holderName"`
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CVC         string `json:"cvc,omitempty"`
}

type shopperName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type paymentMethodData struct {
	Type string `json:"type"`
}

func amountOf(m entities.Money) amountData {
	m = m.Normalized()
	return amountData{Currency: m.Currency, Value: m.MinorUnits}
}

// amountFragment is merged last so the charged amount always equals the Money.
func amountFragment(m entities.Money) Fragment {
	return Fragment{Name: FragmentAmount, Fields: map[string]any{"amount": amountOf(m)}}
}

func baseFragment(p AuthorizeParams, withMerchant bool) Fragment {
	fields := map[string]any{
		"amount":    amountOf(p.Money),
		"reference": p.TransactionID,
	}
	if withMerchant {
		fields["merchantAccount"] = p.MerchantAccount
	}
	if p.NotifyURL != "" {
		fields["notificationURL"] = p.NotifyURL
	}
	return Fragment{Name: FragmentBase, Fields: fields}
}

func customerFragment(card entities.Card) Fragment {
	fields := map[string]any{"shopperName": card.Name()}
	if card.Email != "" {
		fields["shopperEmail"] = card.Email
	}
	if card.Phone != "" {
		fields["telephoneNumber"] = card.Phone
	}
	return Fragment{Name: FragmentCustomer, Fields: fields}
}

func boletoCustomerFragment(p AuthorizeParams) Fragment {
	name := shopperName{FirstName: p.Card.FirstName, LastName: p.Card.LastName}
	if p.PersonType.OrDefault() == entities.PersonTypeCompany && p.CompanyName != "" {
		name = shopperName{FirstName: p.CompanyName}
	}

	fields := map[string]any{"shopperName": name}
	if p.Card.Email != "" {
		fields["shopperEmail"] = p.Card.Email
	}
	return Fragment{Name: FragmentCustomer, Fields: fields}
}

func addressFragment(card entities.Card, withState bool) Fragment {
	line, _ := entities.ParseAddressLine(card.Address1)
	addr := billingAddress{
		Street:            line.Street,
		HouseNumberOrName: line.HouseNumberOrName,
		City:              card.City,
		Country:           card.Country,
		PostalCode:        entities.DigitsOnly(card.Postcode),
	}
	if withState {
		addr.StateOrProvince = card.State
	}
	return Fragment{Name: FragmentAddress, Fields: map[string]any{"billingAddress": addr}}
}

func splitFragment(split entities.Split) Fragment {
	f := Fragment{Name: FragmentSplit, Fields: map[string]any{}}
	if !split.IsEmpty() {
		f.Fields["splits"] = split
	}
	return f
}

func cardFragment(card entities.Card, installments entities.Installments) Fragment {
	return Fragment{Name: FragmentCard, Fields: map[string]any{
		"installments": installmentsData{Value: installments.Value()},
		"card": cardData{
			HolderName:  card.Name(),
			Number:      card.CardNumberDigits(),
			ExpiryMonth: fmt.Sprintf("%02d", card.ExpiryMonth),
			ExpiryYear:  fmt.Sprintf("%d", normalizeYear(card.ExpiryYear)),
			CVC:         card.CVC,
		},
	}}
}

func boletoFragment(p AuthorizeParams) Fragment {
	fields := map[string]any{
		"paymentMethod": paymentMethodData{Type: BoletoPaymentMethodType},
	}
	if doc := entities.DigitsOnly(p.DocumentNumber.String()); doc != "" {
		fields["socialSecurityNumber"] = doc
	}
	if p.Note != "" {
		fields["shopperStatement"] = p.Note
	}
	if p.BoletoDueDate.IsSet() {
		fields["deliveryDate"] = p.BoletoDueDate.DeliveryDate()
	}
	return Fragment{Name: FragmentBoleto, Fields: fields}
}

func additionalFragment(extra map[string]any) Fragment {
	fields := make(map[string]any, len(extra))
	for k, v := range extra {
		if isReservedAdditionalField(k) {
			continue
		}
		fields[k] = v
	}
	return Fragment{Name: FragmentAdditional, Fields: fields}
}

func merchantFragment(merchantAccount string) Fragment {
	return Fragment{Name: FragmentMerchant, Fields: map[string]any{"merchantAccount": merchantAccount}}
}

// BuildAuthorizePayload assembles the authorisation body for p. It expects
// validated params; only the payment method dispatch can fail here.
//
// Precedence, lowest first: base identifying fields, computed customer,
// address and split data, caller additional fields. Card data and the amount
// are merged after the additional fields so callers cannot replace the
// validated card or the charged amount; boleto bodies also pin merchantAccount.
func BuildAuthorizePayload(p AuthorizeParams) (Payload, error) {
	if !p.PaymentMethod.IsSupported() {
		return Payload{}, &UnsupportedError{Kind: kindPaymentMethod, Value: string(p.PaymentMethod)}
	}
	if p.Card == nil {
		return Payload{}, required("card")
	}

	switch p.PaymentMethod {
	case entities.PaymentMethodCreditCard:
		return Merge(
			baseFragment(p, true),
			customerFragment(*p.Card),
			addressFragment(*p.Card, false),
			splitFragment(p.Split),
			additionalFragment(p.AdditionalFields),
			cardFragment(*p.Card, p.Installments),
			amountFragment(p.Money),
		), nil
	case entities.PaymentMethodBoleto:
		return Merge(
			baseFragment(p, false),
			boletoCustomerFragment(p),
			addressFragment(*p.Card, true),
			boletoFragment(p),
			additionalFragment(p.AdditionalFields),
			merchantFragment(p.MerchantAccount),
			amountFragment(p.Money),
		), nil
	default:
		return Payload{}, &UnsupportedError{Kind: kindPaymentMethod, Value: string(p.PaymentMethod)}
	}
}

// BuildCapturePayload assembles the flat capture body.
func BuildCapturePayload(p CaptureParams) Payload {
	fields := map[string]any{
		"merchantAccount":   p.MerchantAccount,
		"originalReference": p.originalReference(),
	}
	if p.Money != nil {
		fields["modificationAmount"] = amountOf(*p.Money)
	}
	return Merge(Fragment{Name: FragmentBase, Fields: fields})
}

func normalizeYear(y int) int {
	if y < 100 {
		return y + 2000
	}
	return y
}
