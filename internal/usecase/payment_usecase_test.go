package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"adyen_classic/internal/domain/entities"
	"adyen_classic/internal/infrastructure/lock"
	"adyen_classic/internal/infrastructure/payments/adyen"
	mock_interfaces "adyen_classic/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestUseCase(repo *mock_interfaces.MockIPaymentRepository, gateway *mock_interfaces.MockIPaymentGateway, locker *mock_interfaces.MockIPaymentLocker) *PaymentUseCase {
	var uc *PaymentUseCase
	switch {
	case gateway == nil && locker == nil:
		uc = NewPaymentUseCase(repo, nil, nil, 0, nil)
	case locker == nil:
		uc = NewPaymentUseCase(repo, gateway, nil, 0, nil)
	default:
		uc = NewPaymentUseCase(repo, gateway, locker, time.Minute, nil)
	}
	uc.now = func() time.Time { return fixedNow }
	ids := []string{"id-1", "id-2", "id-3"}
	uc.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	return uc
}

func strPtr(s string) *string { return &s }

func cardCommand() AuthorizeCommand {
	return AuthorizeCommand{
		Money:         entities.Money{Currency: "BRL", MinorUnits: 1000},
		PaymentMethod: entities.PaymentMethodCreditCard,
		Card: &entities.Card{
			FirstName: "Maria", LastName: "Silva",
			Number: "4111111111111111", ExpiryMonth: 3, ExpiryYear: 2030,
			Address1: "Rua Augusta, 1500", City: "Sao Paulo", Country: "BR", Postcode: "01305-100",
		},
		Reference: "order-1",
	}
}

func authorisedRecord() entities.PaymentRecord {
	return entities.PaymentRecord{
		ID:            "auth-1",
		Reference:     "order-1",
		PSPReference:  "8815",
		Operation:     entities.PaymentOperationAuthorize,
		PaymentMethod: entities.PaymentMethodCreditCard,
		Amount:        entities.Money{Currency: "BRL", MinorUnits: 1000},
		ResultCode:    entities.OutcomeAuthorised,
		Successful:    true,
	}
}

func TestPaymentUseCase_Authorize(t *testing.T) {
	t.Run("gateway not configured", func(t *testing.T) {
		uc := newTestUseCase(nil, nil, nil)
		_, err := uc.Authorize(context.Background(), cardCommand())
		if !errors.Is(err, adyen.ErrGatewayNotConfigured) {
			t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("success persists record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := newTestUseCase(repo, gateway, nil)

		gateway.EXPECT().Authorize(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p adyen.AuthorizeParams) (*entities.Outcome, error) {
			if p.TransactionID != "order-1" || p.Money.MinorUnits != 1000 || p.Card == nil {
				t.Fatalf("unexpected params: %+v", p)
			}
			return &entities.Outcome{Code: entities.OutcomeAuthorised, Successful: true, TransactionReference: strPtr("PSP1"), AuthCode: strPtr("065696")}, nil
		})
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error) {
			return r, nil
		})

		got, err := uc.Authorize(context.Background(), cardCommand())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "id-1" || got.PSPReference != "PSP1" || got.AuthCode != "065696" || !got.Successful {
			t.Fatalf("unexpected record: %+v", got)
		}
		if got.Operation != entities.PaymentOperationAuthorize || !got.Date.Equal(fixedNow) {
			t.Fatalf("unexpected record metadata: %+v", got)
		}
	})

	t.Run("generates reference when empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := newTestUseCase(repo, gateway, nil)

		cmd := cardCommand()
		cmd.Reference = "   "
		gateway.EXPECT().Authorize(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p adyen.AuthorizeParams) (*entities.Outcome, error) {
			if p.TransactionID != "id-1" {
				t.Fatalf("expected generated reference, got %q", p.TransactionID)
			}
			return &entities.Outcome{Code: entities.OutcomeRefused}, nil
		})
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error) {
			return r, nil
		})

		got, err := uc.Authorize(context.Background(), cmd)
		if err != nil {
			t.Fatalf("refusals are not errors, got %v", err)
		}
		if got.Reference != "id-1" || got.ID != "id-2" || got.Successful {
			t.Fatalf("unexpected record: %+v", got)
		}
	})

	t.Run("gateway error is not persisted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := newTestUseCase(repo, gateway, nil)

		gateway.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(nil, &adyen.ValidationError{Field: "card"})

		_, err := uc.Authorize(context.Background(), cardCommand())
		if !errors.Is(err, adyen.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := newTestUseCase(repo, gateway, nil)

		gateway.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(&entities.Outcome{Code: entities.OutcomeAuthorised, Successful: true}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, errors.New("db"))

		_, err := uc.Authorize(context.Background(), cardCommand())
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestPaymentUseCase_Capture(t *testing.T) {
	t.Run("empty id", func(t *testing.T) {
		uc := newTestUseCase(nil, nil, nil)
		_, err := uc.Capture(context.Background(), " ", nil)
		if !errors.Is(err, ErrInvalidPaymentID) {
			t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := newTestUseCase(repo, gateway, nil)

		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.PaymentRecord{}, nil)

		_, err := uc.Capture(context.Background(), "missing", nil)
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("refused authorisation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := newTestUseCase(repo, gateway, nil)

		auth := authorisedRecord()
		auth.Successful = false
		auth.ResultCode = entities.OutcomeRefused
		repo.EXPECT().GetByID(gomock.Any(), "auth-1").Return(auth, nil)

		_, err := uc.Capture(context.Background(), "auth-1", nil)
		if !errors.Is(err, ErrPaymentNotCapturable) {
			t.Fatalf("expected ErrPaymentNotCapturable, got %v", err)
		}
	})

	t.Run("already captured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := newTestUseCase(repo, gateway, nil)

		auth := authorisedRecord()
		repo.EXPECT().GetByID(gomock.Any(), "auth-1").Return(auth, nil)
		repo.EXPECT().ListByReference(gomock.Any(), "order-1").Return([]entities.PaymentRecord{
			auth,
			{ID: "cap-1", ParentID: "auth-1", Operation: entities.PaymentOperationCapture, Successful: true},
		}, nil)

		_, err := uc.Capture(context.Background(), "auth-1", nil)
		if !errors.Is(err, ErrPaymentNotCapturable) {
			t.Fatalf("expected ErrPaymentNotCapturable, got %v", err)
		}
	})

	t.Run("full capture", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := newTestUseCase(repo, gateway, nil)

		auth := authorisedRecord()
		repo.EXPECT().GetByID(gomock.Any(), "auth-1").Return(auth, nil)
		repo.EXPECT().ListByReference(gomock.Any(), "order-1").Return([]entities.PaymentRecord{auth}, nil)
		gateway.EXPECT().Capture(gomock.Any(), adyen.CaptureParams{TransactionReference: "8815", TransactionID: "order-1"}).
			Return(&entities.Outcome{Code: entities.OutcomeCaptureReceived, Successful: true, TransactionReference: strPtr("9915")}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error) {
			return r, nil
		})

		got, err := uc.Capture(context.Background(), "auth-1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ParentID != "auth-1" || got.Operation != entities.PaymentOperationCapture || got.ResultCode != entities.OutcomeCaptureReceived {
			t.Fatalf("unexpected capture record: %+v", got)
		}
		if got.Amount != auth.Amount || got.Reference != "order-1" || got.PSPReference != "9915" {
			t.Fatalf("expected full amount and reference, got %+v", got)
		}
	})

	t.Run("partial capture", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := newTestUseCase(repo, gateway, nil)

		amount := entities.Money{Currency: "BRL", MinorUnits: 400}
		repo.EXPECT().GetByID(gomock.Any(), "auth-1").Return(authorisedRecord(), nil)
		repo.EXPECT().ListByReference(gomock.Any(), "order-1").Return(nil, nil)
		gateway.EXPECT().Capture(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p adyen.CaptureParams) (*entities.Outcome, error) {
			if p.Money == nil || *p.Money != amount {
				t.Fatalf("expected partial amount, got %+v", p.Money)
			}
			return &entities.Outcome{Code: entities.OutcomeCaptureReceived, Successful: true}, nil
		})
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error) {
			return r, nil
		})

		got, err := uc.Capture(context.Background(), "auth-1", &amount)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Amount != amount {
			t.Fatalf("expected partial amount on record, got %+v", got.Amount)
		}
	})

	t.Run("invalid capture amount", func(t *testing.T) {
		cases := map[string]entities.Money{
			"currency mismatch": {Currency: "USD", MinorUnits: 100},
			"exceeds":           {Currency: "BRL", MinorUnits: 1001},
			"zero":              {Currency: "BRL", MinorUnits: 0},
		}
		for name, amount := range cases {
			t.Run(name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
				gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
				uc := newTestUseCase(repo, gateway, nil)

				repo.EXPECT().GetByID(gomock.Any(), "auth-1").Return(authorisedRecord(), nil)
				repo.EXPECT().ListByReference(gomock.Any(), "order-1").Return(nil, nil)

				_, err := uc.Capture(context.Background(), "auth-1", &amount)
				if !errors.Is(err, ErrInvalidPayload) {
					t.Fatalf("expected ErrInvalidPayload, got %v", err)
				}
			})
		}
	})

	t.Run("locked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		locker := mock_interfaces.NewMockIPaymentLocker(ctrl)
		uc := newTestUseCase(repo, gateway, locker)

		locker.EXPECT().Acquire(gomock.Any(), "auth-1", time.Minute).Return(nil, lock.ErrLocked)

		_, err := uc.Capture(context.Background(), "auth-1", nil)
		if !errors.Is(err, ErrPaymentLocked) {
			t.Fatalf("expected ErrPaymentLocked, got %v", err)
		}
	})

	t.Run("lock released after capture", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		locker := mock_interfaces.NewMockIPaymentLocker(ctrl)
		uc := newTestUseCase(repo, gateway, locker)

		released := false
		locker.EXPECT().Acquire(gomock.Any(), "auth-1", time.Minute).Return(func(context.Context) error {
			released = true
			return nil
		}, nil)
		repo.EXPECT().GetByID(gomock.Any(), "auth-1").Return(authorisedRecord(), nil)
		repo.EXPECT().ListByReference(gomock.Any(), "order-1").Return(nil, nil)
		gateway.EXPECT().Capture(gomock.Any(), gomock.Any()).Return(nil, &adyen.TransportError{URL: "u", Err: errors.New("timeout")})

		_, err := uc.Capture(context.Background(), "auth-1", nil)
		if !errors.Is(err, adyen.ErrTransport) {
			t.Fatalf("expected transport error, got %v", err)
		}
		if !released {
			t.Fatalf("expected lock to be released")
		}
	})
}

func TestPaymentUseCase_Queries(t *testing.T) {
	t.Run("get by id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := newTestUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "auth-1").Return(authorisedRecord(), nil)

		got, err := uc.GetByID(context.Background(), " auth-1 ")
		if err != nil || got.ID != "auth-1" {
			t.Fatalf("unexpected result %+v %v", got, err)
		}
	})

	t.Run("get by id repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := newTestUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "auth-1").Return(entities.PaymentRecord{}, errors.New("db"))

		if _, err := uc.GetByID(context.Background(), "auth-1"); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("list requires reference", func(t *testing.T) {
		uc := newTestUseCase(nil, nil, nil)
		if _, err := uc.ListByReference(context.Background(), ""); !errors.Is(err, ErrInvalidReference) {
			t.Fatalf("expected ErrInvalidReference, got %v", err)
		}
	})

	t.Run("list by reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := newTestUseCase(repo, nil, nil)

		repo.EXPECT().ListByReference(gomock.Any(), "order-1").Return([]entities.PaymentRecord{authorisedRecord()}, nil)

		got, err := uc.ListByReference(context.Background(), "order-1")
		if err != nil || len(got) != 1 {
			t.Fatalf("unexpected result %+v %v", got, err)
		}
	})
}

func TestPaymentUseCase_Modify(t *testing.T) {
	t.Run("unsupported operation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := newTestUseCase(repo, gateway, nil)

		repo.EXPECT().GetByID(gomock.Any(), "auth-1").Return(authorisedRecord(), nil)
		gateway.EXPECT().Unsupported(adyen.OperationRefund).Return(adyen.NotSupported(adyen.OperationRefund))

		_, err := uc.Modify(context.Background(), "auth-1", adyen.OperationRefund)
		if !errors.Is(err, adyen.ErrUnsupported) {
			t.Fatalf("expected ErrUnsupported, got %v", err)
		}
	})

	t.Run("unknown payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := newTestUseCase(repo, gateway, nil)

		repo.EXPECT().GetByID(gomock.Any(), "nope").Return(entities.PaymentRecord{}, nil)

		_, err := uc.Modify(context.Background(), "nope", adyen.OperationVoid)
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})
}
