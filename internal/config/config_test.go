package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ModelName:          DefaultModelName,
		MaxTurns:           DefaultMaxTurns,
		ThinkingDelayMinMS: 500,
		ThinkingDelayMaxMS: 1200,
		CheckoutDelayMS:    2500,
		RequestsPerSecond:  10,
		RequestBurst:       30,
		ServeAddr:          DefaultServeAddr,
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid config passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()
		var cfg *Config
		assert.ErrorIs(t, cfg.Validate(), ErrConfigNil)
	})

	t.Run("empty model name", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.ModelName = ""
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidModelName)
	})

	t.Run("max turns out of range", func(t *testing.T) {
		t.Parallel()
		for _, turns := range []int{0, -1, MaxAllowedTurns + 1} {
			cfg := validConfig()
			cfg.MaxTurns = turns
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidMaxTurns, "turns=%d", turns)
		}
	})

	t.Run("inverted thinking delay range", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.ThinkingDelayMinMS = 1000
		cfg.ThinkingDelayMaxMS = 500
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidDelay)
	})

	t.Run("negative checkout delay", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.CheckoutDelayMS = -1
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidDelay)
	})

	t.Run("rate limit", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.RequestsPerSecond = 0
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidRateLimit)
	})

	t.Run("empty serve addr", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.ServeAddr = ""
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidServeAddr)
	})
}

func TestConfig_AIAvailable(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	assert.False(t, cfg.AIAvailable(), "no keys configured")

	cfg.GeminiAPIKey = "g-key"
	assert.False(t, cfg.AIAvailable(), "resolver key still missing")

	cfg.TavilyAPIKey = "t-key"
	assert.True(t, cfg.AIAvailable())

	var nilCfg *Config
	assert.False(t, nilCfg.AIAvailable())
}

func TestConfig_MarshalJSON_MasksSecrets(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.GeminiAPIKey = "super-secret-gemini"
	cfg.TavilyAPIKey = "super-secret-tavily"

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	s := string(data)
	assert.NotContains(t, s, "super-secret-gemini")
	assert.NotContains(t, s, "super-secret-tavily")
	assert.Contains(t, s, "***")
}
