package adyen

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"adyen_classic/internal/domain/entities"
)

// MockTransport fabricates processor-shaped replies so the service can run
// without credentials. Captures are acknowledged, boletos are presented to the
// shopper and every other authorisation is Authorised.
type MockTransport struct {
	now func() time.Time
}

var _ Transport = (*MockTransport)(nil)

func NewMockTransport() *MockTransport {
	return &MockTransport{now: time.Now}
}

func (m *MockTransport) Send(_ context.Context, _, url string, _ map[string]string, body []byte) (int, []byte, error) {
	now := m.now().UTC()
	psp := strconv.FormatInt(now.UnixNano(), 10)

	if strings.HasSuffix(url, "/capture") {
		return m.reply(map[string]any{
			"pspReference": psp,
			"response":     entities.CaptureReceivedResponse,
		})
	}

	var req struct {
		PaymentMethod struct {
			Type string `json:"type"`
		} `json:"paymentMethod"`
		DeliveryDate string `json:"deliveryDate"`
	}
	_ = json.Unmarshal(body, &req)

	if req.PaymentMethod.Type == BoletoPaymentMethodType {
		expiration := req.DeliveryDate
		if len(expiration) >= 10 {
			expiration = expiration[:10]
		}
		return m.reply(map[string]any{
			"pspReference": psp,
			"resultCode":   string(entities.OutcomePresentToShopper),
			"outputDetails": map[string]string{
				outputBoletoURL:            "https://test.adyen.com/hpp/generationBoleto.shtml?data=" + psp,
				outputBoletoBarcode:        "03399.33335 33800.000001 00000.000000 1 " + psp[len(psp)-14:],
				outputBoletoExpirationDate: expiration,
			},
		})
	}

	return m.reply(map[string]any{
		"pspReference": psp,
		"resultCode":   string(entities.OutcomeAuthorised),
		"authCode":     psp[len(psp)-6:],
	})
}

func (m *MockTransport) reply(v any) (int, []byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, b, nil
}
