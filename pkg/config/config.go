package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Pricing  PricingConfig
}

type ServerConfig struct {
	Address      string
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	MaxPoolConns int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type PricingConfig struct {
	ServiceFeeCents int64
}

func (dc *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s pool_max_conns=%d",
		dc.Host,
		dc.Port,
		dc.Name,
		dc.User,
		dc.Password,
		dc.MaxPoolConns,
	)
}

func NewConfig() (*Config, error) {
	serverCfg, err := newServerConfig()
	if err != nil {
		return nil, fmt.Errorf("server config error: %w", err)
	}

	dbCfg, err := newDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("database config error: %w", err)
	}

	authCfg, err := newAuthConfig()
	if err != nil {
		return nil, fmt.Errorf("auth config error: %w", err)
	}

	pricingCfg, err := newPricingConfig()
	if err != nil {
		return nil, fmt.Errorf("pricing config error: %w", err)
	}

	return &Config{
		Server:   serverCfg,
		Database: dbCfg,
		Auth:     authCfg,
		Pricing:  pricingCfg,
	}, nil
}

func newServerConfig() (ServerConfig, error) {
	writeTimeout, err := getDurationFromEnv("SERVER_WRITE_TIMEOUT", "15s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("write timeout parse error: %w", err)
	}

	readTimeout, err := getDurationFromEnv("SERVER_READ_TIMEOUT", "15s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("read timeout parse error: %w", err)
	}

	idleTimeout, err := getDurationFromEnv("SERVER_IDLE_TIMEOUT", "30s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("idle timeout parse error: %w", err)
	}

	return ServerConfig{
		Address:      getEnvOrDefault("SERVER_ADDRESS", ":5000"),
		WriteTimeout: writeTimeout,
		ReadTimeout:  readTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func newDatabaseConfig() (DatabaseConfig, error) {
	maxConns, err := strconv.Atoi(getEnvOrDefault("MAX_CONNS", "99"))
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("max connections parse error: %w", err)
	}

	return DatabaseConfig{
		Host:         getEnvOrDefault("POSTGRES_HOST", "localhost"),
		Port:         getEnvOrDefault("POSTGRES_PORT", "5432"),
		Name:         getEnvOrDefault("POSTGRES_DB", "rentacar"),
		User:         getEnvOrDefault("POSTGRES_USER", "postgres"),
		Password:     getEnvOrDefault("POSTGRES_PASSWORD", ""),
		MaxPoolConns: maxConns,
	}, nil
}

func newAuthConfig() (AuthConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return AuthConfig{}, fmt.Errorf("JWT_SECRET must be set")
	}

	ttl, err := getDurationFromEnv("JWT_TTL", "24h")
	if err != nil {
		return AuthConfig{}, fmt.Errorf("token ttl parse error: %w", err)
	}

	return AuthConfig{JWTSecret: secret, TokenTTL: ttl}, nil
}

func newPricingConfig() (PricingConfig, error) {
	fee, err := strconv.ParseInt(getEnvOrDefault("SERVICE_FEE_CENTS", "2500"), 10, 64)
	if err != nil {
		return PricingConfig{}, fmt.Errorf("service fee parse error: %w", err)
	}
	if fee < 0 {
		return PricingConfig{}, fmt.Errorf("service fee must not be negative")
	}

	return PricingConfig{ServiceFeeCents: fee}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationFromEnv(key, defaultValue string) (time.Duration, error) {
	return time.ParseDuration(getEnvOrDefault(key, defaultValue))
}
