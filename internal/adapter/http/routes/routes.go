package routes

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "adyen_classic/docs" // This will be auto-generated
	"adyen_classic/internal/adapter/http/handlers"
	"adyen_classic/internal/adapter/persistence/repository"
	"adyen_classic/internal/config"
	"adyen_classic/internal/infrastructure/database"
	"adyen_classic/internal/infrastructure/lock"
	"adyen_classic/internal/infrastructure/payments/adyen"
	"adyen_classic/internal/infrastructure/telemetry"
	"adyen_classic/internal/usecase"
	"adyen_classic/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

var (
	_ interfaces.IPaymentGateway    = (*adyen.Gateway)(nil)
	_ interfaces.IPaymentRepository = (*repository.PaymentDynamoRepository)(nil)
	_ interfaces.IPaymentLocker     = (*lock.RedisLocker)(nil)
	_ interfaces.IPaymentLocker     = (*lock.LocalLocker)(nil)
)

const shutdownTimeout = 10 * time.Second

// Run will start the server
func Run() {
	cfg := config.Load()

	logger, err := telemetry.NewLogger(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
		shutdownTracing = func(context.Context) error { return nil }
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	setMiddlewares(router, logger)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", telemetry.MetricsHandler())

	paymentHandler, cleanup, err := buildPaymentHandler(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to wire dependencies", zap.Error(err))
	}
	defer cleanup()

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, paymentHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to startup the application", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracer shutdown", zap.Error(err))
	}
}

func buildPaymentHandler(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*handlers.PaymentHandler, func(), error) {
	ddb, err := database.ConnectDynamoDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	if database.LocalEndpoint() != "" {
		created, err := database.EnsurePaymentsTable(ctx, ddb, cfg.PaymentsTable, repository.PaymentsReferenceIndex)
		if err != nil {
			return nil, nil, err
		}
		if created {
			logger.Info("payments table created", zap.String("table", cfg.PaymentsTable))
		}
	}
	paymentRepo := repository.NewPaymentDynamoRepository(ddb, cfg.PaymentsTable)

	cleanup := func() {}
	var locker interfaces.IPaymentLocker
	if cfg.RedisURL != "" {
		client, err := lock.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = client.Close() }
		locker = lock.NewRedisLocker(client)
	} else {
		logger.Warn("REDIS_URL not set, capture lock is process-local")
		locker = lock.NewLocalLocker()
	}

	var paymentGateway interfaces.IPaymentGateway
	if gw := newGateway(cfg, logger); gw != nil {
		paymentGateway = gw
	}

	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, paymentGateway, locker, cfg.CaptureLockTTL, logger)
	return handlers.NewPaymentHandler(paymentUseCase, logger), cleanup, nil
}

func newGateway(cfg *config.Config, logger *zap.Logger) *adyen.Gateway {
	creds := adyen.Credentials{
		Key:             cfg.Adyen.APIKey,
		MerchantAccount: cfg.Adyen.MerchantAccount,
		LiveURLPrefix:   cfg.Adyen.LiveURLPrefix,
		TestMode:        cfg.Adyen.TestMode,
		Version:         cfg.Adyen.APIVersion,
	}

	if cfg.Adyen.Mock {
		logger.Warn("adyen gateway running in mock mode")
		if creds.Key == "" {
			creds.Key = "mock-key"
		}
		return adyen.NewGateway(creds, adyen.NewMockTransport(), logger)
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("adyen gateway not configured", zap.Error(err))
		return nil
	}
	return adyen.NewGateway(creds, adyen.NewHTTPTransport(cfg.Adyen.HTTPTimeout), logger)
}

func setMiddlewares(router *gin.Engine, logger *zap.Logger) {
	router.Use(telemetry.Recovery(logger))
	router.Use(telemetry.RequestMiddleware(logger))
}
