package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Oracle providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderNone   = "none"
)

// Player interfaces.
const (
	UIConsole = "console"
	UITUI     = "tui"
)

// Config holds the application configuration.
type Config struct {
	Provider string `envconfig:"ORACLE_PROVIDER" default:"openai"`

	OpenAIKey     string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`

	OllamaURL   string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	OllamaModel string `envconfig:"OLLAMA_MODEL" default:"llama3.1"`

	OracleTimeout time.Duration `envconfig:"ORACLE_TIMEOUT" default:"0s"`

	UI        string `envconfig:"UI" default:"console"`
	WorldFile string `envconfig:"WORLD_FILE"`
	TextWidth int    `envconfig:"TEXT_WIDTH" default:"80"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile     string `envconfig:"LOG_FILE" default:"narrative-engine.log"`
	MetricsAddr string `envconfig:"METRICS_ADDR"`
}

// LoadConfig loads the configuration from a .env file, if there is one, and
// then from environment variables. Variables already set win over the file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown providers and interfaces. A missing API key is
// not an error: the game asks for it at startup.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderOllama, ProviderNone:
	default:
		return fmt.Errorf("unknown ORACLE_PROVIDER %q", c.Provider)
	}
	switch c.UI {
	case UIConsole, UITUI:
	default:
		return fmt.Errorf("unknown UI %q", c.UI)
	}
	if c.TextWidth <= 0 {
		return fmt.Errorf("TEXT_WIDTH must be positive, got %d", c.TextWidth)
	}
	if c.OracleTimeout < 0 {
		return fmt.Errorf("ORACLE_TIMEOUT must not be negative, got %s", c.OracleTimeout)
	}
	return nil
}

// APIKeyVar names the environment variable holding the chosen provider's
// key, or "" if the provider needs none.
func (c *Config) APIKeyVar() string {
	switch c.Provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	}
	return ""
}

// APIKey returns the chosen provider's key.
func (c *Config) APIKey() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIKey
	case ProviderGemini:
		return c.GeminiAPIKey
	}
	return ""
}

// SetAPIKey stores a key entered at the prompt for the chosen provider.
func (c *Config) SetAPIKey(key string) {
	switch c.Provider {
	case ProviderOpenAI:
		c.OpenAIKey = key
	case ProviderGemini:
		c.GeminiAPIKey = key
	}
}

// NeedsAPIKey reports whether the chosen provider requires a key that has not been given.
func (c *Config) NeedsAPIKey() bool {
	return c.APIKeyVar() != "" && c.APIKey() == ""
}
