package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// ClientConfig configures the activity terminal client. Command-line flags
// may override any field before Validate is called.
type ClientConfig struct {
	APIURL   string        `env:"FLOWBOARD_API" env-default:"http://localhost:4000/api"`
	Email    string        `env:"FLOWBOARD_EMAIL"`
	Password string        `env:"FLOWBOARD_PASSWORD"`
	Interval time.Duration `env:"FLOWBOARD_INTERVAL" env-default:"5s"`
}

// LoadClient reads an optional .env file and then the process environment.
func LoadClient() (*ClientConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using system environment variables")
	}

	var cfg ClientConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}

func (c *ClientConfig) Validate() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	c.Email = strings.TrimSpace(c.Email)
	if c.APIURL == "" {
		return fmt.Errorf("FLOWBOARD_API must not be empty")
	}
	if c.Email == "" || c.Password == "" {
		return fmt.Errorf("email and password are required (-email/-password or FLOWBOARD_EMAIL/FLOWBOARD_PASSWORD)")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("FLOWBOARD_INTERVAL must be positive, got %s", c.Interval)
	}
	return nil
}
