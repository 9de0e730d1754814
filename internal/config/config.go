package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// DB settings are optional: when DB_HOST is empty the server runs on the
	// in-memory store, the way the original front-end fell back to mock data.
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBHost     string `env:"DB_HOST"` // e.g. tcp(host:3306) or unix(/socket/path)
	DBName     string `env:"DB_NAME"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`

	// Firebase is optional for the same reason; unset means the in-memory
	// identity provider.
	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID"`
	FirebaseWebAPIKey string `env:"FIREBASE_WEB_API_KEY"`

	AllowedOrigin string `env:"ALLOWED_ORIGIN"`
}

func (c *Config) DBConfigured() bool {
	return c.DBHost != ""
}

func (c *Config) FirebaseConfigured() bool {
	return c.FirebaseProjectID != "" && c.FirebaseWebAPIKey != ""
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
