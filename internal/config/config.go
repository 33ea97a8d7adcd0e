package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port              int    `envconfig:"PORT" default:"8080"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL       string `envconfig:"DATABASE_URL" required:"true"`
	JWTSigningKey     string `envconfig:"JWT_SIGNING_KEY" required:"true"`
	JWTIssuer         string `envconfig:"JWT_ISSUER" default:"taskforge"`
	JWTAudience       string `envconfig:"JWT_AUDIENCE" default:"taskforge-users"`
	JWTExpiresMinutes int    `envconfig:"JWT_EXPIRES_MINUTES" default:"60"`
	BcryptCost        int    `envconfig:"BCRYPT_COST" default:"12"`
	SeedDemoUsers     bool   `envconfig:"SEED_DEMO_USERS" default:"false"`
	Version           string `envconfig:"VERSION" default:"dev"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
