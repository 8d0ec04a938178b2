package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Billdesk"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"billdesk"`
	}

	Redis struct {
		URL     string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
		ListTTL time.Duration `envconfig:"REDIS_LIST_TTL" default:"10m"`
	}

	Session struct {
		Secret string        `envconfig:"SESSION_SECRET"`
		TTL    time.Duration `envconfig:"SESSION_TTL" default:"5h"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	return &cfg, nil
}
