package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      int
	Env       string
	LogLevel  string
	LogFormat string

	OpenAI   OpenAIConfig
	Basecamp BasecampConfig
	Airtable AirtableConfig
	OTel     OTelConfig

	AppURLScheme string
	DatabaseURL  string
	NatsURL      string
	NatsToken    string
}

type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Temperature    float64
	TimeoutSeconds int
}

type BasecampConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthURL      string
}

type AirtableConfig struct {
	APIKey  string
	BaseID  string
	Table   string
	BaseURL string
}

type OTelConfig struct {
	Endpoint    string
	Headers     string
	ServiceName string
}

// Load reads configuration from the environment. Outside production a .env
// file in the working directory is loaded first; variables already set in the
// environment take precedence over it.
func Load() Config {
	if envStr("APP_ENV", "development") == "development" {
		_ = godotenv.Load()
	}

	return Config{
		Port:      envInt("PORT", 8080),
		Env:       envStr("APP_ENV", "development"),
		LogLevel:  envStr("LOG_LEVEL", "info"),
		LogFormat: envStr("LOG_FORMAT", "json"),
		OpenAI: OpenAIConfig{
			APIKey:         envStr("OPENAI_API_KEY", ""),
			BaseURL:        envStr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:          envStr("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature:    envFloat("OPENAI_TEMPERATURE", 0.1),
			TimeoutSeconds: envInt("OPENAI_TIMEOUT_SECONDS", 60),
		},
		Basecamp: BasecampConfig{
			ClientID:     envStr("BASECAMP_CLIENT_ID", ""),
			ClientSecret: envStr("BASECAMP_CLIENT_SECRET", ""),
			RedirectURI:  envStr("BASECAMP_REDIRECT_URI", ""),
			AuthURL:      envStr("BASECAMP_AUTH_URL", "https://launchpad.37signals.com/authorization"),
		},
		Airtable: AirtableConfig{
			APIKey:  envStr("AIRTABLE_API_KEY", ""),
			BaseID:  envStr("AIRTABLE_BASE_ID", ""),
			Table:   envStr("AIRTABLE_TABLE", "Emails"),
			BaseURL: envStr("AIRTABLE_API_URL", "https://api.airtable.com/v0"),
		},
		OTel: OTelConfig{
			Endpoint:    envStr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     envStr("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName: envStr("OTEL_SERVICE_NAME", "promisekeeper"),
		},
		AppURLScheme: envStr("APP_URL_SCHEME", "promisekeeper"),
		DatabaseURL:  envStr("DATABASE_URL", ""),
		NatsURL:      envStr("NATS_URL", ""),
		NatsToken:    envStr("NATS_TOKEN", ""),
	}
}

func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

func (c BasecampConfig) Enabled() bool {
	return c.ClientID != "" && c.RedirectURI != ""
}

// CanExchange reports whether token and refresh exchanges can be performed,
// which additionally needs the client secret.
func (c BasecampConfig) CanExchange() bool {
	return c.Enabled() && c.ClientSecret != ""
}

func (c AirtableConfig) Enabled() bool {
	return c.APIKey != "" && c.BaseID != ""
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
