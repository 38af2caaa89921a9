package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort           = "8080"
	defaultAPIVersion     = "v52"
	defaultHTTPTimeout    = 30 * time.Second
	defaultCaptureLockTTL = 60 * time.Second
	defaultPaymentsTable  = "payments"
	defaultServiceName    = "adyen-classic"
)

var (
	ErrMissingAPIKey          = errors.New("ADYEN_API_KEY is required")
	ErrMissingMerchantAccount = errors.New("ADYEN_MERCHANT_ACCOUNT is required")
	ErrMissingLivePrefix      = errors.New("ADYEN_LIVE_URL_PREFIX is required when ADYEN_TEST_MODE=false")
)

type Config struct {
	Port        string
	AppEnv      string
	LogLevel    string
	ServiceName string

	Adyen AdyenConfig

	PaymentsTable  string
	RedisURL       string
	CaptureLockTTL time.Duration
	OTLPEndpoint   string
}

// AdyenConfig holds the processor credentials and transport settings.
type AdyenConfig struct {
	APIKey          string
	MerchantAccount string
	LiveURLPrefix   string
	TestMode        bool
	APIVersion      string
	HTTPTimeout     time.Duration
	Mock            bool
}

// Load reads the process environment. Malformed booleans and durations fall
// back to their defaults. The capture lock always outlives one processor call.
func Load() *Config {
	cfg := &Config{
		Port:        getenvDefault("PORT", defaultPort),
		AppEnv:      getenvDefault("APP_ENV", "production"),
		LogLevel:    getenvDefault("LOG_LEVEL", "info"),
		ServiceName: getenvDefault("SERVICE_NAME", defaultServiceName),
		Adyen: AdyenConfig{
			APIKey:          os.Getenv("ADYEN_API_KEY"),
			MerchantAccount: os.Getenv("ADYEN_MERCHANT_ACCOUNT"),
			LiveURLPrefix:   os.Getenv("ADYEN_LIVE_URL_PREFIX"),
			TestMode:        getenvBool("ADYEN_TEST_MODE", true),
			APIVersion:      getenvDefault("ADYEN_API_VERSION", defaultAPIVersion),
			HTTPTimeout:     getenvDuration("ADYEN_HTTP_TIMEOUT", defaultHTTPTimeout),
			Mock:            getenvBool("PAYMENT_GATEWAY_MOCK", false),
		},
		PaymentsTable:  getenvDefault("PAYMENTS_TABLE", defaultPaymentsTable),
		RedisURL:       os.Getenv("REDIS_URL"),
		CaptureLockTTL: getenvDuration("CAPTURE_LOCK_TTL", defaultCaptureLockTTL),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
	if cfg.CaptureLockTTL <= cfg.Adyen.HTTPTimeout {
		cfg.CaptureLockTTL = 2 * cfg.Adyen.HTTPTimeout
	}
	return cfg
}

// Validate reports missing processor credentials. Mock mode needs none.
func (c *Config) Validate() error {
	if c.Adyen.Mock {
		return nil
	}
	var errs []error
	if strings.TrimSpace(c.Adyen.APIKey) == "" {
		errs = append(errs, ErrMissingAPIKey)
	}
	if strings.TrimSpace(c.Adyen.MerchantAccount) == "" {
		errs = append(errs, ErrMissingMerchantAccount)
	}
	if !c.Adyen.TestMode && strings.TrimSpace(c.Adyen.LiveURLPrefix) == "" {
		errs = append(errs, ErrMissingLivePrefix)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development") || strings.EqualFold(c.AppEnv, "local")
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
