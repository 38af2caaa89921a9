package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"adyen_classic/internal/domain/entities"
	"adyen_classic/internal/infrastructure/lock"
	"adyen_classic/internal/infrastructure/payments/adyen"
	"adyen_classic/internal/infrastructure/telemetry"
	"adyen_classic/internal/usecase/interfaces"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvalidPaymentID     = errors.New("invalid payment id")
	ErrInvalidReference     = errors.New("invalid reference")
	ErrPaymentNotCapturable = errors.New("payment cannot be captured")
	ErrInvalidPayload       = errors.New("invalid payment payload")
	ErrPaymentLocked        = errors.New("payment is being processed")
)

const DefaultCaptureLockTTL = 60 * time.Second

// AuthorizeCommand is the caller's authorisation request. An empty Reference is
// replaced by a generated one.
type AuthorizeCommand struct {
	Money            entities.Money
	PaymentMethod    entities.PaymentMethod
	Card             *entities.Card
	Reference        string
	NotifyURL        string
	Split            entities.Split
	Installments     entities.Installments
	DocumentNumber   entities.DocumentNumber
	Note             string
	BoletoDueDate    entities.BoletoDueDate
	PersonType       entities.PersonType
	CompanyName      string
	AdditionalFields map[string]any
}

func (c AuthorizeCommand) params() adyen.AuthorizeParams {
	return adyen.AuthorizeParams{
		Money:            c.Money,
		PaymentMethod:    c.PaymentMethod,
		Card:             c.Card,
		TransactionID:    c.Reference,
		NotifyURL:        c.NotifyURL,
		Split:            c.Split,
		Installments:     c.Installments,
		DocumentNumber:   c.DocumentNumber,
		Note:             c.Note,
		BoletoDueDate:    c.BoletoDueDate,
		PersonType:       c.PersonType,
		CompanyName:      c.CompanyName,
		AdditionalFields: c.AdditionalFields,
	}
}

// IPaymentUseCase is the authorize/capture flow exposed over HTTP.
//
// Every processor call that gets a reply is persisted as a PaymentRecord,
// refusals included.

type IPaymentUseCase interface {
	Authorize(ctx context.Context, cmd AuthorizeCommand) (entities.PaymentRecord, error)
	Capture(ctx context.Context, paymentID string, amount *entities.Money) (entities.PaymentRecord, error)
	GetByID(ctx context.Context, id string) (entities.PaymentRecord, error)
	ListByReference(ctx context.Context, reference string) ([]entities.PaymentRecord, error)
	Modify(ctx context.Context, paymentID string, op adyen.Operation) (entities.PaymentRecord, error)
}

type PaymentUseCase struct {
	repo    interfaces.IPaymentRepository
	gateway interfaces.IPaymentGateway
	locker  interfaces.IPaymentLocker
	lockTTL time.Duration
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, gateway interfaces.IPaymentGateway, locker interfaces.IPaymentLocker, lockTTL time.Duration, logger *zap.Logger) *PaymentUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lockTTL <= 0 {
		lockTTL = DefaultCaptureLockTTL
	}
	return &PaymentUseCase{
		repo:    repo,
		gateway: gateway,
		locker:  locker,
		lockTTL: lockTTL,
		logger:  logger.Named("payment.usecase"),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (u *PaymentUseCase) Authorize(ctx context.Context, cmd AuthorizeCommand) (entities.PaymentRecord, error) {
	if u.gateway == nil {
		u.logger.Error("gateway not configured")
		return entities.PaymentRecord{}, adyen.ErrGatewayNotConfigured
	}

	cmd.Reference = strings.TrimSpace(cmd.Reference)
	if cmd.Reference == "" {
		cmd.Reference = u.newID()
	}
	log := u.logger.With(
		zap.String("reference", cmd.Reference),
		zap.String("payment_method", string(cmd.PaymentMethod)),
	)
	log.Info("authorize start", zap.String("amount", cmd.Money.Decimal()), zap.String("currency", cmd.Money.Currency))

	outcome, err := u.gateway.Authorize(ctx, cmd.params())
	if err != nil {
		log.Warn("authorize failed", zap.Error(err))
		return entities.PaymentRecord{}, err
	}

	record := entities.NewPaymentRecord(u.newID(), entities.PaymentOperationAuthorize, cmd.PaymentMethod, cmd.Reference, cmd.Money, outcome, u.now())
	created, err := u.persist(ctx, record)
	if err != nil {
		log.Error("authorize record create failed", zap.String("payment_id", record.ID), zap.Error(err))
		return entities.PaymentRecord{}, err
	}

	log.Info("authorize done",
		zap.String("payment_id", created.ID),
		zap.String("psp_reference", created.PSPReference),
		zap.String("result_code", string(created.ResultCode)),
		zap.Bool("successful", created.Successful),
	)
	return created, nil
}

// Capture confirms the authorisation stored under paymentID. A nil amount
// captures the full authorised amount.
func (u *PaymentUseCase) Capture(ctx context.Context, paymentID string, amount *entities.Money) (entities.PaymentRecord, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.PaymentRecord{}, ErrInvalidPaymentID
	}
	if u.gateway == nil {
		u.logger.Error("gateway not configured", zap.String("payment_id", paymentID))
		return entities.PaymentRecord{}, adyen.ErrGatewayNotConfigured
	}
	log := u.logger.With(zap.String("payment_id", paymentID))

	if u.locker != nil {
		release, err := u.locker.Acquire(ctx, paymentID, u.lockTTL)
		if err != nil {
			if errors.Is(err, lock.ErrLocked) {
				log.Warn("capture already in progress")
				return entities.PaymentRecord{}, ErrPaymentLocked
			}
			log.Error("capture lock failed", zap.Error(err))
			return entities.PaymentRecord{}, err
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				log.Warn("capture lock release failed", zap.Error(err))
			}
		}()
	}

	auth, err := u.GetByID(ctx, paymentID)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if !auth.Capturable() {
		log.Warn("payment not capturable",
			zap.String("operation", string(auth.Operation)),
			zap.String("result_code", string(auth.ResultCode)),
			zap.Bool("redirect", auth.Redirect),
		)
		return entities.PaymentRecord{}, ErrPaymentNotCapturable
	}

	captured, err := u.alreadyCaptured(ctx, auth)
	if err != nil {
		log.Error("capture history lookup failed", zap.Error(err))
		return entities.PaymentRecord{}, err
	}
	if captured {
		log.Warn("payment already captured")
		return entities.PaymentRecord{}, ErrPaymentNotCapturable
	}

	captureAmount := auth.Amount
	if amount != nil {
		if err := checkCaptureAmount(auth.Amount, *amount); err != nil {
			log.Warn("invalid capture amount", zap.Error(err))
			return entities.PaymentRecord{}, err
		}
		captureAmount = *amount
	}

	log.Info("capture start", zap.String("psp_reference", auth.PSPReference), zap.String("amount", captureAmount.Decimal()))
	outcome, err := u.gateway.Capture(ctx, adyen.CaptureParams{
		TransactionReference: auth.PSPReference,
		TransactionID:        auth.Reference,
		Money:                amount,
	})
	if err != nil {
		log.Warn("capture failed", zap.Error(err))
		return entities.PaymentRecord{}, err
	}

	record := entities.NewPaymentRecord(u.newID(), entities.PaymentOperationCapture, auth.PaymentMethod, auth.Reference, captureAmount, outcome, u.now())
	record.ParentID = auth.ID
	created, err := u.persist(ctx, record)
	if err != nil {
		log.Error("capture record create failed", zap.String("capture_id", record.ID), zap.Error(err))
		return entities.PaymentRecord{}, err
	}

	log.Info("capture done",
		zap.String("capture_id", created.ID),
		zap.String("result_code", string(created.ResultCode)),
		zap.Bool("successful", created.Successful),
	)
	return created, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.PaymentRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PaymentRecord{}, ErrInvalidPaymentID
	}

	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if r.ID == "" {
		return entities.PaymentRecord{}, ErrPaymentNotFound
	}
	return r, nil
}

func (u *PaymentUseCase) ListByReference(ctx context.Context, reference string) ([]entities.PaymentRecord, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, ErrInvalidReference
	}
	return u.repo.ListByReference(ctx, reference)
}

// Modify handles the processor operations this service does not implement.
// The payment must exist; the result is always an unsupported-operation error.
func (u *PaymentUseCase) Modify(ctx context.Context, paymentID string, op adyen.Operation) (entities.PaymentRecord, error) {
	if _, err := u.GetByID(ctx, paymentID); err != nil {
		return entities.PaymentRecord{}, err
	}
	if u.gateway == nil {
		return entities.PaymentRecord{}, adyen.ErrGatewayNotConfigured
	}
	return entities.PaymentRecord{}, u.gateway.Unsupported(op)
}

func (u *PaymentUseCase) persist(ctx context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error) {
	created, err := u.repo.Create(ctx, r)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	telemetry.ObservePaymentRecord(string(created.Operation), created.Successful)
	return created, nil
}

func (u *PaymentUseCase) alreadyCaptured(ctx context.Context, auth entities.PaymentRecord) (bool, error) {
	history, err := u.repo.ListByReference(ctx, auth.Reference)
	if err != nil {
		return false, err
	}
	for _, r := range history {
		if r.Operation == entities.PaymentOperationCapture && r.ParentID == auth.ID && r.Successful {
			return true, nil
		}
	}
	return false, nil
}

func checkCaptureAmount(authorised, requested entities.Money) error {
	if err := requested.Validate(); err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}
	if !strings.EqualFold(requested.Currency, authorised.Currency) {
		return errors.Join(ErrInvalidPayload, errors.New("capture currency differs from the authorisation"))
	}
	if requested.MinorUnits <= 0 || requested.MinorUnits > authorised.MinorUnits {
		return errors.Join(ErrInvalidPayload, errors.New("capture amount must be positive and not exceed the authorised amount"))
	}
	return nil
}
