package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	Env        string `env:"APP_ENV" envDefault:"development"`

	MySQLDSN       string `env:"MYSQL_DSN" envDefault:"root:password@tcp(localhost:3306)/news_events?charset=utf8mb4&parseTime=True&loc=Local"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`

	JWTSecret      string `env:"JWT_SECRET" envDefault:"change-me"`
	JWTExpiryHours int    `env:"JWT_EXPIRES_IN_HOURS" envDefault:"24"`

	UploadsDir    string `env:"UPLOADS_DIR" envDefault:"./uploads"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	SwaggerHost string   `env:"SWAGGER_HOST"`
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the app runs in development mode. Error
// responses include underlying detail only in development.
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// JWTExpiry returns the configured token lifetime.
func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}
