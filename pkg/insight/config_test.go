package insight

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromReader(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader(`
model: gpt-4o-mini
api_key: sk-test
timeout: 30s
max_tokens: 800
temperature: 0.4
`))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 800, cfg.MaxTokens)
	assert.Equal(t, 0.4, cfg.Temperature)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Equal(t, defaultModel, cfg.Model)
	assert.Equal(t, defaultMaxTokens, cfg.MaxTokens)
	assert.Equal(t, defaultTemperature, cfg.Temperature)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
}

func TestLoadConfigExplicitZeroTemperature(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader("temperature: 0\n"))
	require.NoError(t, err)
	// A deliberate zero must not be replaced by the default.
	assert.Equal(t, 0.0, cfg.Temperature)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("OPENAI_MODEL", "gpt-env")

	cfg, err := LoadConfigFromReader(strings.NewReader("api_key: sk-file\nmodel: gpt-file\n"))
	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.APIKey)
	assert.Equal(t, "gpt-env", cfg.Model)
}

func TestLoadConfigInvalidTimeout(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("timeout: soon\n"))
	require.Error(t, err)

	_, err = LoadConfigFromReader(strings.NewReader("timeout: -5s\n"))
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	valid := &Config{Model: "gpt-test", MaxTokens: 100, Temperature: 0.7}
	require.NoError(t, valid.Validate())

	assert.Error(t, (&Config{MaxTokens: 100, Temperature: 0.7}).Validate())
	assert.Error(t, (&Config{Model: "gpt-test", Temperature: 0.7}).Validate())
	assert.Error(t, (&Config{Model: "gpt-test", MaxTokens: 100, Temperature: 3}).Validate())
}
