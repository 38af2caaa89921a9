package handlers

import (
	"errors"
	"io"
	"net/http"

	request "adyen_classic/internal/adapter/http/dto/request"
	response "adyen_classic/internal/adapter/http/dto/response"
	"adyen_classic/internal/domain/entities"
	"adyen_classic/internal/infrastructure/payments/adyen"
	"adyen_classic/internal/usecase"
	"adyen_classic/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// PaymentHandler handles HTTP requests for authorisations and captures.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
	logger  *zap.Logger
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, logger *zap.Logger) *PaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentHandler{usecase: uc, logger: logger.Named("payment.handler")}
}

// Authorize godoc
// @Summary      Authorise a card or boleto payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payment  body      request.AuthorizePaymentRequest  true  "Authorisation"
// @Success      201      {object}  response.PaymentResponse
// @Failure      402      {object}  response.PaymentResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      501      {object}  pkg.HTTPError
// @Failure      502      {object}  pkg.HTTPError
// @Router       /payments/authorize [post]
func (h *PaymentHandler) Authorize(c *gin.Context) {
	var payload request.AuthorizePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("authorize invalid payload", zap.Error(err))
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	cmd, err := payload.ToCommand()
	if err != nil {
		h.logger.Warn("authorize invalid payload", zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	record, err := h.usecase.Authorize(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, "authorize failed", err, zap.String("reference", cmd.Reference))
		return
	}

	status := http.StatusCreated
	if !record.Successful {
		status = http.StatusPaymentRequired
	}
	c.JSON(status, response.FromPaymentRecord(record))
}

// Capture godoc
// @Summary      Capture an authorised payment
// @Description  An empty body captures the full authorised amount.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true   "Authorisation payment id"
// @Param        capture  body      request.CapturePaymentRequest  false  "Partial amount"
// @Success      200      {object}  response.PaymentResponse
// @Failure      402      {object}  response.PaymentResponse
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Router       /payments/{id}/capture [post]
func (h *PaymentHandler) Capture(c *gin.Context) {
	paymentID := c.Param("id")

	var payload request.CapturePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("capture invalid payload", zap.String("payment_id", paymentID), zap.Error(err))
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	amount, err := payload.ToMoney()
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	record, err := h.usecase.Capture(c.Request.Context(), paymentID, amount)
	if err != nil {
		h.fail(c, "capture failed", err, zap.String("payment_id", paymentID))
		return
	}

	status := http.StatusOK
	if !record.Successful {
		status = http.StatusPaymentRequired
	}
	c.JSON(status, response.FromPaymentRecord(record))
}

// Refund godoc
// @Summary  Refund a payment (not supported by this processor integration)
// @Tags     payments
// @Param    id   path      string  true  "Payment id"
// @Failure  501  {object}  pkg.HTTPError
// @Router   /payments/{id}/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	h.modify(c, adyen.OperationRefund)
}

// Void godoc
// @Summary  Void an authorisation (not supported by this processor integration)
// @Tags     payments
// @Param    id   path      string  true  "Payment id"
// @Failure  501  {object}  pkg.HTTPError
// @Router   /payments/{id}/void [post]
func (h *PaymentHandler) Void(c *gin.Context) {
	h.modify(c, adyen.OperationVoid)
}

func (h *PaymentHandler) modify(c *gin.Context, op adyen.Operation) {
	paymentID := c.Param("id")
	record, err := h.usecase.Modify(c.Request.Context(), paymentID, op)
	if err != nil {
		h.fail(c, "modification failed", err, zap.String("payment_id", paymentID), zap.String("operation", string(op)))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentRecord(record))
}

// GetByID godoc
// @Summary  Get a payment record
// @Tags     payments
// @Produce  json
// @Param    id   path      string  true  "Payment id"
// @Success  200  {object}  response.PaymentResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	paymentID := c.Param("id")
	record, err := h.usecase.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		h.fail(c, "get failed", err, zap.String("payment_id", paymentID))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentRecord(record))
}

// ListByReference godoc
// @Summary  List the records of a merchant reference
// @Tags     payments
// @Produce  json
// @Param    reference  query     string  true  "Merchant reference"
// @Success  200        {array}   response.PaymentResponse
// @Failure  400        {object}  pkg.HTTPError
// @Router   /payments [get]
func (h *PaymentHandler) ListByReference(c *gin.Context) {
	reference := c.Query("reference")
	records, err := h.usecase.ListByReference(c.Request.Context(), reference)
	if err != nil {
		h.fail(c, "list failed", err, zap.String("reference", reference))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentRecords(records))
}

func (h *PaymentHandler) fail(c *gin.Context, msg string, err error, fields ...zap.Field) {
	appErr := mapPaymentError(err)
	fields = append(fields, zap.String("code", appErr.Code), zap.Int("status", appErr.HTTPStatus), zap.Error(err))
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error(msg, fields...)
	} else {
		h.logger.Warn(msg, fields...)
	}
	_ = c.Error(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapPaymentError(err error) *pkg.AppError {
	var validation *adyen.ValidationError
	var unsupported *adyen.UnsupportedError

	switch {
	case errors.As(err, &validation):
		return pkg.NewDomainError("VALIDATION_ERROR", validation.Error(), err, http.StatusBadRequest)
	case errors.As(err, &unsupported):
		return pkg.NewDomainError("NOT_SUPPORTED", unsupported.Error(), err, http.StatusNotImplemented)
	case errors.Is(err, request.ErrInvalidAmount), errors.Is(err, entities.ErrInvalidCurrency), errors.Is(err, entities.ErrNegativeAmount):
		return pkg.NewDomainError("INVALID_AMOUNT", "Invalid amount", err, http.StatusBadRequest)
	case errors.Is(err, request.ErrInvalidBoletoDueDate):
		return pkg.NewDomainError("INVALID_BOLETO_DUE_DATE", "Invalid boleto due date", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPaymentID), errors.Is(err, usecase.ErrInvalidReference), errors.Is(err, usecase.ErrInvalidPayload):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotCapturable):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_CAPTURABLE", "Payment cannot be captured", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentLocked):
		return pkg.NewDomainErrorSimple("PAYMENT_LOCKED", "Payment is being processed", http.StatusConflict)
	case errors.Is(err, adyen.ErrTransport), errors.Is(err, adyen.ErrMalformedResponse):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider unavailable", err, http.StatusBadGateway)
	case errors.Is(err, adyen.ErrGatewayNotConfigured):
		return pkg.NewDomainError("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment provider not configured", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
