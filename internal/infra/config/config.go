// Package config loads runtime configuration from PAYROLL_* environment
// variables, optionally seeded from a local .env file.
// All fields have safe defaults so the binaries run locally without any env setup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds runtime configuration for the payroll environment.
type Config struct {
	Env             string        `validate:"oneof=development test production"` // PAYROLL_ENV
	DataDir         string        `validate:"required"`                          // PAYROLL_DATA_DIR
	HTTPAddr        string        `validate:"required"`                          // PAYROLL_HTTP_ADDR
	LogLevel        string        `validate:"oneof=trace debug info warn error"` // PAYROLL_LOG_LEVEL
	LogFormat       string        `validate:"oneof=console json"`                // PAYROLL_LOG_FORMAT
	MetricsEnabled  bool          // PAYROLL_METRICS_ENABLED
	ShutdownTimeout time.Duration `validate:"gt=0"` // PAYROLL_SHUTDOWN_TIMEOUT
}

const envPrefix = "PAYROLL"

const (
	keyEnv             = "env"
	keyDataDir         = "data_dir"
	keyHTTPAddr        = "http_addr"
	keyLogLevel        = "log_level"
	keyLogFormat       = "log_format"
	keyMetricsEnabled  = "metrics_enabled"
	keyShutdownTimeout = "shutdown_timeout"
)

// DefaultDataDir is where the seed CLI writes and the environment reads.
const DefaultDataDir = "data"

// Load reads a .env file from the working directory when present, then
// environment variables, applying defaults for missing values.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read .env: %w", err)
	}
	return FromViper(newViper())
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:             strings.ToLower(v.GetString(keyEnv)),
		DataDir:         v.GetString(keyDataDir),
		HTTPAddr:        v.GetString(keyHTTPAddr),
		LogLevel:        strings.ToLower(v.GetString(keyLogLevel)),
		LogFormat:       strings.ToLower(v.GetString(keyLogFormat)),
		MetricsEnabled:  v.GetBool(keyMetricsEnabled),
		ShutdownTimeout: v.GetDuration(keyShutdownTimeout),
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsDevelopment reports whether human-oriented output is wanted.
func (c Config) IsDevelopment() bool { return c.Env == "development" }

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault(keyEnv, "development")
	v.SetDefault(keyDataDir, DefaultDataDir)
	v.SetDefault(keyHTTPAddr, ":8080")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "console")
	v.SetDefault(keyMetricsEnabled, true)
	v.SetDefault(keyShutdownTimeout, 10*time.Second)
	return v
}

func validate(cfg Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s=%s", fe.Field(), fe.Tag()))
	}
	sort.Strings(fields)
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(fields, ", "))
}
