package insight

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultModel       = "gpt-4-turbo-preview"
	defaultTimeout     = 60 * time.Second
	defaultMaxTokens   = 1000
	defaultTemperature = 0.7

	envAPIKey = "OPENAI_API_KEY"
	envModel  = "OPENAI_MODEL"
)

// Config holds runtime settings for the insight generator. APIKey may stay
// empty at load time when callers always supply per-user keys.
type Config struct {
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	Timeout     time.Duration `yaml:"-"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`

	timeoutRaw     string
	temperatureSet bool
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open insight config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from a reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	var raw struct {
		BaseURL   string `yaml:"base_url"`
		APIKey    string `yaml:"api_key"`
		Model     string `yaml:"model"`
		Timeout   string `yaml:"timeout"`
		MaxTokens int    `yaml:"max_tokens"`
		// Pointer so an explicit "temperature: 0" is distinguishable from
		// an absent key.
		Temperature *float64 `yaml:"temperature"`
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read insight config: %w", err)
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal insight config: %w", err)
	}

	cfg := &Config{
		BaseURL:    raw.BaseURL,
		APIKey:     raw.APIKey,
		Model:      raw.Model,
		MaxTokens:  raw.MaxTokens,
		timeoutRaw: raw.Timeout,
	}
	if raw.Temperature != nil {
		cfg.Temperature = *raw.Temperature
		cfg.temperatureSet = true
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	if err := cfg.parseTimeout(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no insight section is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	cfg.Timeout = defaultTimeout
	return cfg
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("insight config: model is required")
	}
	if c.MaxTokens <= 0 {
		return errors.New("insight config: max_tokens must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("insight config: temperature must be within [0, 2]")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Model) == "" {
		c.Model = defaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if !c.temperatureSet && c.Temperature == 0 {
		c.Temperature = defaultTemperature
	}
}

func (c *Config) applyEnvOverrides() {
	c.APIKey = expandAndOverride(c.APIKey, envAPIKey)
	c.Model = expandAndOverride(c.Model, envModel)
	c.BaseURL = os.ExpandEnv(c.BaseURL)
}

func (c *Config) parseTimeout() error {
	if strings.TrimSpace(c.timeoutRaw) == "" {
		c.Timeout = defaultTimeout
		return nil
	}
	d, err := time.ParseDuration(c.timeoutRaw)
	if err != nil {
		return fmt.Errorf("insight config: invalid timeout %q: %w", c.timeoutRaw, err)
	}
	if d <= 0 {
		return fmt.Errorf("insight config: timeout must be positive, got %s", d)
	}
	c.Timeout = d
	return nil
}

func expandAndOverride(current, envKey string) string {
	current = os.ExpandEnv(current)
	if envVal := os.Getenv(envKey); envVal != "" {
		return envVal
	}
	return current
}
