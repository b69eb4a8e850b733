package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	Port   string `validate:"required,numeric"`

	// Downstream collaborators
	AuthServiceURL string `validate:"required,http_url"`
	UserServiceURL string `validate:"required,http_url"`

	// Per-call deadlines. Queries use ReadTimeout, mutations WriteTimeout.
	DownstreamReadTimeout  time.Duration `validate:"gt=0"`
	DownstreamWriteTimeout time.Duration `validate:"gt=0"`
	AuthProbeTimeout       time.Duration `validate:"gt=0"`

	CORSAllowedOrigins []string `validate:"dive,required"`

	OTelEnabled  bool
	OTelEndpoint string

	HTTPReadTimeout  time.Duration `validate:"gt=0"`
	HTTPWriteTimeout time.Duration `validate:"gt=0"`
	HTTPIdleTimeout  time.Duration `validate:"gt=0"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "dev"),
		Port:   getEnv("HTTP_PORT", "4000"),

		AuthServiceURL: strings.TrimRight(getEnv("AUTH_SERVICE_URL", "http://localhost:8081"), "/"),
		UserServiceURL: strings.TrimRight(getEnv("USER_SERVICE_URL", "http://localhost:8082"), "/"),

		DownstreamReadTimeout:  getDuration("DOWNSTREAM_READ_TIMEOUT", 3*time.Second),
		DownstreamWriteTimeout: getDuration("DOWNSTREAM_WRITE_TIMEOUT", 5*time.Second),
		AuthProbeTimeout:       getDuration("AUTH_PROBE_TIMEOUT", 2*time.Second),

		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:4200"}),

		OTelEnabled:  getEnv("OTEL_ENABLED", "false") == "true",
		OTelEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),

		HTTPReadTimeout:  getDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout: getDuration("HTTP_WRITE_TIMEOUT", 20*time.Second),
		HTTPIdleTimeout:  getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants Load relies on. Tests that build a Config
// literal can call it directly.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
