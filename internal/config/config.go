package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	ServerPort string `env:"PORT" env-default:"4000"`
	GinMode    string `env:"GIN_MODE" env-default:"release"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`

	// CORSOrigin is the address the browser client is served from.
	CORSOrigin string `env:"ORIGIN" env-default:"http://localhost:4200"`

	DBDriver string `env:"DB_DRIVER" env-default:"mongo"`
	DBURI    string `env:"DB_URI" env-default:"mongodb://localhost:27017/flowboard"`

	JWTSecret string        `env:"JWT_SECRET" env-default:"devsecret"`
	JWTTTL    time.Duration `env:"JWT_TTL" env-default:"168h"`

	// StrictOwnership makes task update/delete and board delete check the caller owns the row.
	StrictOwnership bool `env:"STRICT_OWNERSHIP" env-default:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using system environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case DriverMongo, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be one of %s, %s, %s; got %q", DriverMongo, DriverPostgres, DriverSQLite, c.DBDriver)
	}
	c.GinMode = strings.ToLower(strings.TrimSpace(c.GinMode))
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test; got %q", c.GinMode)
	}
	if c.DBURI == "" {
		return fmt.Errorf("DB_URI is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto slog levels; unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// String returns a representation safe for logs.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, DB: %s, Origin: %s, TokenTTL: %s, StrictOwnership: %t, Secret: ***}",
		c.ServerPort, c.DBDriver, c.CORSOrigin, c.JWTTTL, c.StrictOwnership)
}
