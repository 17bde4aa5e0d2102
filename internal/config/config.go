// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.agentpay/config.yaml)
//  3. Default values
//
// Sensitive data (API keys) is never logged; MarshalJSON masks it.
// Validation uses sentinel errors for errors.Is checks, wrapped with
// fmt.Errorf("%w: details", ErrXxx).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates a required API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidMaxTurns indicates the tool-loop turn cap is out of range.
	ErrInvalidMaxTurns = errors.New("invalid max turns")

	// ErrInvalidDelay indicates a simulated delay is negative or inverted.
	ErrInvalidDelay = errors.New("invalid delay")

	// ErrInvalidServeAddr indicates the HTTP listen address is invalid.
	ErrInvalidServeAddr = errors.New("invalid serve address")

	// ErrInvalidRateLimit indicates an outbound rate limit is out of range.
	ErrInvalidRateLimit = errors.New("invalid rate limit")
)

const (
	// DefaultModelName is the Gemini model used for the AI path.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultMaxTurns caps LLM round-trips within a single user turn.
	DefaultMaxTurns = 5

	// DefaultServeAddr is the default HTTP API listen address.
	DefaultServeAddr = "127.0.0.1:3400"

	// MaxAllowedTurns is the absolute cap on the tool-calling loop.
	MaxAllowedTurns = 20
)

// DatadogConfig holds tracing configuration for the local Datadog Agent.
type DatadogConfig struct {
	AgentHost   string `mapstructure:"agent_host" json:"agent_host"`
	Environment string `mapstructure:"environment" json:"environment"`
	ServiceName string `mapstructure:"service_name" json:"service_name"`
}

// Config stores application configuration.
// SECURITY: API keys are masked in MarshalJSON. When adding new sensitive
// fields, update MarshalJSON.
type Config struct {
	// Gemini model configuration
	ModelName    string `mapstructure:"model_name" json:"model_name"`
	GeminiAPIKey string `mapstructure:"gemini_api_key" json:"gemini_api_key"` // SENSITIVE: masked in MarshalJSON
	MaxTurns     int    `mapstructure:"max_turns" json:"max_turns"`

	// Product URL resolution (web search) configuration
	TavilyAPIKey string `mapstructure:"tavily_api_key" json:"tavily_api_key"` // SENSITIVE: masked in MarshalJSON

	// Simulated latency for the deterministic path, in milliseconds.
	// The rule-based path alone waits a randomized ThinkingDelayMinMS..
	// ThinkingDelayMaxMS before replying; checkout waits CheckoutDelayMS
	// between the processing and confirmation messages.
	ThinkingDelayMinMS int `mapstructure:"thinking_delay_min_ms" json:"thinking_delay_min_ms"`
	ThinkingDelayMaxMS int `mapstructure:"thinking_delay_max_ms" json:"thinking_delay_max_ms"`
	CheckoutDelayMS    int `mapstructure:"checkout_delay_ms" json:"checkout_delay_ms"`

	// Outbound client rate limiting (requests/sec sustained, burst).
	RequestsPerSecond float64 `mapstructure:"requests_per_second" json:"requests_per_second"`
	RequestBurst      int     `mapstructure:"request_burst" json:"request_burst"`

	// HTTP server configuration (serve mode only)
	ServeAddr string `mapstructure:"serve_addr" json:"serve_addr"`

	// Observability configuration
	Datadog DatadogConfig `mapstructure:"datadog" json:"datadog"`
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".agentpay")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".") // Also support current directory

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use default values
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."},
			"config_name", "config.yaml")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults() {
	viper.SetDefault("model_name", DefaultModelName)
	viper.SetDefault("max_turns", DefaultMaxTurns)
	viper.SetDefault("thinking_delay_min_ms", 500)
	viper.SetDefault("thinking_delay_max_ms", 1200)
	viper.SetDefault("checkout_delay_ms", 2500)
	viper.SetDefault("requests_per_second", 10)
	viper.SetDefault("request_burst", 30)
	viper.SetDefault("serve_addr", DefaultServeAddr)
	viper.SetDefault("datadog.service_name", "agentpay")
	viper.SetDefault("datadog.environment", "dev")
}

// bindEnvVariables binds environment variables to configuration keys.
func bindEnvVariables() {
	viper.SetEnvPrefix("AGENTPAY")
	viper.AutomaticEnv()

	// Well-known key names take precedence over the prefixed form.
	_ = viper.BindEnv("gemini_api_key", "GEMINI_API_KEY", "AGENTPAY_GEMINI_API_KEY")
	_ = viper.BindEnv("tavily_api_key", "TAVILY_API_KEY", "AGENTPAY_TAVILY_API_KEY")
	_ = viper.BindEnv("model_name", "AGENTPAY_MODEL_NAME")
	_ = viper.BindEnv("serve_addr", "AGENTPAY_SERVE_ADDR")
	_ = viper.BindEnv("max_turns", "AGENTPAY_MAX_TURNS")
}

// AIAvailable reports whether the AI path can be used: both the Gemini and
// the web-search collaborators must be configured. Absence is a routing
// decision, not an error.
func (c *Config) AIAvailable() bool {
	return c != nil && c.GeminiAPIKey != "" && c.TavilyAPIKey != ""
}

// Validate checks all configuration values. It does not require API keys:
// the deterministic path works without them.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}
	if c.ModelName == "" {
		return fmt.Errorf("%w: model name must not be empty", ErrInvalidModelName)
	}
	if c.MaxTurns < 1 || c.MaxTurns > MaxAllowedTurns {
		return fmt.Errorf("%w: must be between 1 and %d, got %d", ErrInvalidMaxTurns, MaxAllowedTurns, c.MaxTurns)
	}
	if c.ThinkingDelayMinMS < 0 || c.ThinkingDelayMaxMS < c.ThinkingDelayMinMS {
		return fmt.Errorf("%w: thinking delay range %d..%d ms", ErrInvalidDelay, c.ThinkingDelayMinMS, c.ThinkingDelayMaxMS)
	}
	if c.CheckoutDelayMS < 0 {
		return fmt.Errorf("%w: checkout delay %d ms", ErrInvalidDelay, c.CheckoutDelayMS)
	}
	if c.RequestsPerSecond <= 0 || c.RequestBurst < 1 {
		return fmt.Errorf("%w: %g req/s burst %d", ErrInvalidRateLimit, c.RequestsPerSecond, c.RequestBurst)
	}
	if c.ServeAddr == "" {
		return fmt.Errorf("%w: address must not be empty", ErrInvalidServeAddr)
	}
	return nil
}

// MarshalJSON masks sensitive fields.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config // avoid recursion
	masked := alias(c)
	if masked.GeminiAPIKey != "" {
		masked.GeminiAPIKey = "***"
	}
	if masked.TavilyAPIKey != "" {
		masked.TavilyAPIKey = "***"
	}
	return json.Marshal(masked)
}
