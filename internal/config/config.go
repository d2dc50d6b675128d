package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full environment-driven application configuration.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"mindprofile"`
	RedisURI string `env:"REDIS_URI" envDefault:"localhost:6379"`

	JWTSecret  string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// SnapshotTTL bounds how long a rendered catalog snapshot stays
	// valid for submission.
	SnapshotTTL time.Duration `env:"SNAPSHOT_TTL" envDefault:"1h"`

	// Admin bootstrap account, created at startup if absent.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	Recaptcha RecaptchaConfig
	AI        AIConfig
}

// RecaptchaConfig configures the bot-verification gate. An empty
// secret disables the gate.
type RecaptchaConfig struct {
	Secret    string `env:"RECAPTCHA_SECRET_KEY"`
	VerifyURL string `env:"RECAPTCHA_VERIFY_URL" envDefault:"https://www.google.com/recaptcha/api/siteverify"`
	MinScore  float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`
}

// AIConfig configures the generative-text provider. An empty API key
// disables the provider; the evaluator then answers with its
// deterministic default.
type AIConfig struct {
	APIKey    string `env:"AI_API_KEY"`
	BaseURL   string `env:"AI_BASE_URL"`
	Model     string `env:"AI_MODEL" envDefault:"gpt-4o-mini"`
	TimeoutMS int    `env:"AI_TIMEOUT_MS" envDefault:"10000"`
}

// IsEnabled returns true if the provider is configured.
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Timeout returns the bounded per-call provider timeout.
func (c *AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
