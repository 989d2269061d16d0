package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"community_board/internal/utils"

	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config is the full process configuration, read once at startup
type Config struct {
	JWTSecretKey         string `env:"JWT_SECRET_KEY,required,notEmpty"`
	JWTExpirationSeconds int    `env:"JWT_EXPIRATION_SECONDS" envDefault:"0"`
	BcryptCost           int    `env:"BCRYPT_COST" envDefault:"10"`
	ServerPort           string `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel             string `env:"LOG_LEVEL" envDefault:"info"`
	GinMode              string `env:"GIN_MODE" envDefault:"release"`
	DB                   DBConfig
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTExpirationSeconds < 0 {
		return fmt.Errorf("JWT_EXPIRATION_SECONDS must not be negative, got %d", c.JWTExpirationSeconds)
	}
	if err := utils.ValidateCost(c.BcryptCost); err != nil {
		return fmt.Errorf("BCRYPT_COST: %w", err)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if !slices.Contains([]string{gin.DebugMode, gin.ReleaseMode, gin.TestMode}, c.GinMode) {
		return fmt.Errorf("GIN_MODE must be one of debug, release, test, got %q", c.GinMode)
	}
	return nil
}

// TokenExpiry is zero when tokens should never expire
func (c *Config) TokenExpiry() time.Duration {
	return time.Duration(c.JWTExpirationSeconds) * time.Second
}

// NewLogger builds the JSON process logger at the configured level
func (c *Config) NewLogger() *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
