package model

import "time"

// OracleConfig configures the optional language-model interpreter
type OracleConfig struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled)
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for OpenAI/Anthropic
	APIKey string `yaml:"api_key"`

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string `yaml:"base_url"`

	// Timeout per API request
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries before degrading to the deterministic fallback
	MaxRetries int `yaml:"max_retries"`

	// MaxInputChars truncates user text sent to the oracle
	MaxInputChars int `yaml:"max_input_chars"`
}

// WebhookConfig configures the Messenger webhook surface
type WebhookConfig struct {
	ListenAddr  string `yaml:"listen_addr"`
	VerifyToken string `yaml:"verify_token"`
	AppSecret   string `yaml:"app_secret"`
	PageToken   string `yaml:"page_token"`
	GraphURL    string `yaml:"graph_url"`

	// SendRate limits outbound Messenger sends per second
	SendRate  float64 `yaml:"send_rate"`
	SendBurst int     `yaml:"send_burst"`
}

// StoreConfig configures completed-case persistence
type StoreConfig struct {
	DataDir string `yaml:"data_dir"`
}

// SessionConfig configures the live session registry
type SessionConfig struct {
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// Config is the immutable top-level configuration passed into the engine
type Config struct {
	CriteriaFile string        `yaml:"criteria_file"`
	Oracle       OracleConfig  `yaml:"oracle"`
	Webhook      WebhookConfig `yaml:"webhook"`
	Store        StoreConfig   `yaml:"store"`
	Session      SessionConfig `yaml:"session"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		CriteriaFile: "criteria.yaml",
		Oracle: OracleConfig{
			Provider:      "", // Disabled by default
			Timeout:       10 * time.Second,
			MaxRetries:    3,
			MaxInputChars: 1000,
		},
		Webhook: WebhookConfig{
			ListenAddr: ":8080",
			GraphURL:   "https://graph.facebook.com/v22.0/me/messages",
			SendRate:   5,
			SendBurst:  5,
		},
		Store: StoreConfig{
			DataDir: "data",
		},
		Session: SessionConfig{
			IdleTimeout:     30 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
	}
}
