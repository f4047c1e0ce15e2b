package config

import (
	"fmt"
	"time"

	"github.com/codingconcepts/env"
	"github.com/joho/godotenv"
)

// CredentialKey names the API key in both the secret store and the environment.
const CredentialKey = "OPENAI_API_KEY"

// Model id and temperature are not configurable: the client always uses
// openai.DefaultModel at openai.DefaultTemperature.
type Config struct {
	Port          string        `env:"PORT" default:"8080"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL"`
	AskTimeout    time.Duration `env:"ASK_TIMEOUT" default:"60s"`
	SecretsFile   string        `env:"SECRETS_FILE" default:".secrets/secrets.yaml"`
	AppTitle      string        `env:"APP_TITLE" default:"LangChain LLM Webアプリ"`
	AppReferer    string        `env:"APP_REFERER"`
	LogLevel      string        `env:"LOG_LEVEL" default:"info"`

	// Resolved once by Load; never re-read from the environment afterwards.
	OpenAIAPIKey     string
	CredentialSource string
}

// HasCredential reports whether an API key was found at startup.
func (c Config) HasCredential() bool { return c.OpenAIAPIKey != "" }

// Load reads environment variables, optionally from a .env file if present,
// then resolves the API key from the secrets file and the environment, in
// that order. A missing key is not an error.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	var cfg Config
	if err := env.Set(&cfg); err != nil {
		return Config{}, fmt.Errorf("setting config from environment: %w", err)
	}

	key, source, err := ResolveCredential(CredentialKey,
		NewFileSecrets(cfg.SecretsFile),
		EnvSecrets{},
	)
	if err != nil {
		return Config{}, fmt.Errorf("resolve %s: %w", CredentialKey, err)
	}
	cfg.OpenAIAPIKey = key
	cfg.CredentialSource = source
	return cfg, nil
}
