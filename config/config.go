// Package config loads the service configuration from a YAML or JSON file and
// applies OPENROUTER_* / PORT environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel       = "openai/gpt-4o-mini"
	DefaultBaseURL     = "https://openrouter.ai/api/v1"
	DefaultApp         = "Health Literacy Translator"
	DefaultServerAddr  = ":3000"
	DefaultTemperature = 0.3
	DefaultEndpoint    = "http://localhost:3000/translate"
)

// Config holds everything the CLI and server need.
type Config struct {
	ServerAddr string          `json:"server_addr,omitempty" yaml:"server_addr"`
	LLM        LLMConfig       `json:"llm" yaml:"llm"`
	Remote     RemoteConfig    `json:"remote" yaml:"remote"`
	Translate  TranslateConfig `json:"translate" yaml:"translate"`
	Logging    LoggingConfig   `json:"logging" yaml:"logging"`
}

// LLMConfig configures the OpenAI-compatible model provider.
type LLMConfig struct {
	Provider    string  `json:"provider,omitempty" yaml:"provider"` // openai, openrouter, deepseek, mock
	Model       string  `json:"model,omitempty" yaml:"model"`
	APIKey      string  `json:"api_key,omitempty" yaml:"api_key"`
	BaseURL     string  `json:"base_url,omitempty" yaml:"base_url"`
	Site        string  `json:"site,omitempty" yaml:"site"`
	App         string  `json:"app,omitempty" yaml:"app"`
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature"`
	MaxRetries  int     `json:"max_retries,omitempty" yaml:"max_retries"`
	Timeout     string  `json:"timeout,omitempty" yaml:"timeout"`
}

// RemoteConfig points the CLI at a running /translate endpoint.
type RemoteConfig struct {
	Enabled  bool   `json:"enabled,omitempty" yaml:"enabled"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint"`
	Timeout  string `json:"timeout,omitempty" yaml:"timeout"`
}

// TranslateConfig holds the default presentation choices.
type TranslateConfig struct {
	Audience  string `json:"audience,omitempty" yaml:"audience"`
	Tone      string `json:"tone,omitempty" yaml:"tone"`
	Highlight bool   `json:"highlight,omitempty" yaml:"highlight"`
}

// LoggingConfig selects the zap encoder and level.
type LoggingConfig struct {
	Level  string `json:"level,omitempty" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format,omitempty" yaml:"format"` // json, console
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ServerAddr: DefaultServerAddr,
		LLM: LLMConfig{
			Provider:    "openrouter",
			Model:       DefaultModel,
			BaseURL:     DefaultBaseURL,
			App:         DefaultApp,
			Temperature: DefaultTemperature,
		},
		Remote: RemoteConfig{
			Endpoint: DefaultEndpoint,
		},
		Translate: TranslateConfig{
			Audience:  "adult",
			Tone:      "warm",
			Highlight: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults and then applies environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			err = json.Unmarshal(data, &cfg)
		default:
			err = yaml.Unmarshal(data, &cfg)
		}
		if err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OPENROUTER_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("OPENROUTER_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("OPENROUTER_SITE"); v != "" {
		c.LLM.Site = v
	}
	if v := os.Getenv("OPENROUTER_APP"); v != "" {
		c.LLM.App = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.ServerAddr = ":" + strings.TrimPrefix(v, ":")
	}
}

// Validate checks the duration fields.
func (c Config) Validate() error {
	if _, err := c.LLMTimeout(); err != nil {
		return fmt.Errorf("llm.timeout: %w", err)
	}
	if _, err := c.RemoteTimeout(); err != nil {
		return fmt.Errorf("remote.timeout: %w", err)
	}
	return nil
}

// LLMTimeout is zero when unset, meaning the transport default applies.
func (c Config) LLMTimeout() (time.Duration, error) {
	return parseDuration(c.LLM.Timeout)
}

// RemoteTimeout is zero when unset.
func (c Config) RemoteTimeout() (time.Duration, error) {
	return parseDuration(c.Remote.Timeout)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
