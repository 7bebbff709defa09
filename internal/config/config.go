// internal/config/config.go
//
// Process configuration.
// Responsibilities:
//   - Loading a local .env file when present (never required).
//   - Parsing environment variables into Config with defaults.
//
// NUMBER_MIN > NUMBER_MAX is not rejected here; the controller reports it when a
// number round is started.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration for both front ends.
type Config struct {
	Port           int           `env:"PORT"            envDefault:"5175"`
	LogLevel       string        `env:"LOG_LEVEL"       envDefault:"info"`
	NumberMin      int           `env:"NUMBER_MIN"      envDefault:"1"`
	NumberMax      int           `env:"NUMBER_MAX"      envDefault:"50"`
	DatabaseDSN    string        `env:"DATABASE_DSN"    envDefault:"file:guessbot?mode=memory&cache=shared"`
	JWTSecret      string        `env:"JWT_SECRET"      envDefault:"dev_secret_change_me"`
	SessionTTL     time.Duration `env:"SESSION_TTL"     envDefault:"24h"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN"   envDefault:"http://localhost:5173"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the given dotenv files (".env" when none are named) and then the
// environment. Missing dotenv files are ignored; variables already set win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP front end.
func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }
