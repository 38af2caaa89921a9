package adyen

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"adyen_classic/internal/domain/entities"
	"adyen_classic/internal/infrastructure/telemetry"
)

const tracerName = "adyen_classic/adyen"

const GatewayName = "AdyenClassic"

// Credentials are the merchant settings shared, read-only, by every call.
type Credentials struct {
	Key             string
	MerchantAccount string
	LiveURLPrefix   string
	TestMode        bool
	Version         string
}

func (c Credentials) Environment() Environment {
	return Environment{Test: c.TestMode, LivePrefix: c.LiveURLPrefix, Version: c.Version}
}

// Gateway is the facade over the authorize and capture requests. It holds no
// per-call state and is safe for concurrent use.
type Gateway struct {
	creds     Credentials
	transport Transport
	logger    *zap.Logger
	now       func() time.Time
}

func NewGateway(creds Credentials, transport Transport, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		creds:     creds,
		transport: transport,
		logger:    logger.Named("payment.gateway"),
		now:       time.Now,
	}
}

func (g *Gateway) Name() string {
	return GatewayName
}

func (g *Gateway) MerchantAccount() string {
	return g.creds.MerchantAccount
}

// Supports reports whether op is implemented.
func (g *Gateway) Supports(op Operation) bool {
	return op.Supported()
}

// Unsupported is what any operation besides authorize and capture returns.
func (g *Gateway) Unsupported(op Operation) error {
	g.logger.Warn("operation not supported", zap.String("operation", string(op)))
	return NotSupported(op)
}

// NewAuthorizeRequest fills the merchant account from the credentials when
// the params leave it empty.
func (g *Gateway) NewAuthorizeRequest(p AuthorizeParams) *AuthorizeRequest {
	if strings.TrimSpace(p.MerchantAccount) == "" {
		p.MerchantAccount = g.creds.MerchantAccount
	}
	r := NewAuthorizeRequest(p, g.creds.Environment(), g.creds.Key)
	r.now = g.now
	return r
}

func (g *Gateway) NewCaptureRequest(p CaptureParams) *CaptureRequest {
	if strings.TrimSpace(p.MerchantAccount) == "" {
		p.MerchantAccount = g.creds.MerchantAccount
	}
	return NewCaptureRequest(p, g.creds.Environment(), g.creds.Key)
}

// Authorize reserves funds. A processor refusal comes back as an Outcome with
// Successful false; errors are validation, unsupported or transport failures.
func (g *Gateway) Authorize(ctx context.Context, p AuthorizeParams) (*entities.Outcome, error) {
	prepared, err := g.NewAuthorizeRequest(p).Build()
	if err != nil {
		g.logger.Warn("authorize build failed",
			zap.String("reference", p.TransactionID),
			zap.String("payment_method", string(p.PaymentMethod)),
			zap.Error(err),
		)
		telemetry.ObserveGatewayCall(string(OperationAuthorize), buildFailureCode(err), 0)
		return nil, err
	}
	return g.send(ctx, prepared, p.TransactionID)
}

// Capture confirms a previous authorisation.
func (g *Gateway) Capture(ctx context.Context, p CaptureParams) (*entities.Outcome, error) {
	prepared, err := g.NewCaptureRequest(p).Build()
	if err != nil {
		g.logger.Warn("capture build failed",
			zap.String("original_reference", p.originalReference()),
			zap.Error(err),
		)
		telemetry.ObserveGatewayCall(string(OperationCapture), buildFailureCode(err), 0)
		return nil, err
	}
	return g.send(ctx, prepared, p.originalReference())
}

func (g *Gateway) send(ctx context.Context, req *Prepared, reference string) (*entities.Outcome, error) {
	if g.transport == nil {
		return nil, ErrGatewayNotConfigured
	}

	op := string(req.Operation)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "adyen."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("adyen.operation", op),
			attribute.String("server.address", host(req.URL)),
		),
	)
	defer span.End()

	log := g.logger.With(
		zap.String("operation", op),
		zap.String("reference", reference),
		zap.String("url", req.URL),
	)
	log.Info("request start", zap.Int("payload_len", len(req.Body)))

	start := g.now()
	status, body, err := g.transport.Send(ctx, req.Method, req.URL, req.Headers, req.Body)
	duration := g.now().Sub(start)
	if err != nil {
		log.Error("transport failed", zap.Error(err), zap.Duration("duration", duration))
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failed")
		telemetry.ObserveGatewayCall(op, telemetry.CodeTransport, duration)
		return nil, &TransportError{URL: req.URL, Err: err}
	}
	span.SetAttributes(attribute.Int("http.status_code", status))

	outcome, err := interpret(body, status)
	if err != nil {
		log.Error("response unreadable", zap.Int("http_status", status), zap.Int("body_len", len(body)), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed response")
		telemetry.ObserveGatewayCall(op, telemetry.CodeMalformed, duration)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("adyen.outcome", string(outcome.Code)),
		attribute.Bool("adyen.successful", outcome.Successful),
	)
	telemetry.ObserveGatewayCall(op, string(outcome.Code), duration)

	log.Info("request done",
		zap.String("code", string(outcome.Code)),
		zap.Bool("successful", outcome.Successful),
		zap.String("psp_reference", outcome.Reference()),
		zap.Int("http_status", status),
		zap.Duration("duration", duration),
	)
	return outcome, nil
}

func buildFailureCode(err error) string {
	if errors.Is(err, ErrUnsupported) {
		return telemetry.CodeUnsupported
	}
	return telemetry.CodeValidation
}

func host(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
