package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/pkg/config"
)

func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	os.Clearenv()
	for k, v := range vars {
		os.Setenv(k, v)
	}
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setEnv(t, map[string]string{"JWT_SECRET": "test-secret"})

		cfg, err := config.NewConfig()
		require.NoError(t, err)

		assert.Equal(t, ":5000", cfg.Server.Address)
		assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 30*time.Second, cfg.Server.IdleTimeout)

		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, "5432", cfg.Database.Port)
		assert.Equal(t, "rentacar", cfg.Database.Name)
		assert.Equal(t, 99, cfg.Database.MaxPoolConns)

		assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
		assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)

		assert.Equal(t, int64(2500), cfg.Pricing.ServiceFeeCents)
	})

	t.Run("env overrides", func(t *testing.T) {
		setEnv(t, map[string]string{
			"JWT_SECRET":        "test-secret",
			"JWT_TTL":           "1h",
			"SERVER_ADDRESS":    ":8080",
			"POSTGRES_HOST":     "db.internal",
			"POSTGRES_DB":       "fleet",
			"MAX_CONNS":         "10",
			"SERVICE_FEE_CENTS": "1000",
		})

		cfg, err := config.NewConfig()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Address)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "fleet", cfg.Database.Name)
		assert.Equal(t, 10, cfg.Database.MaxPoolConns)
		assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
		assert.Equal(t, int64(1000), cfg.Pricing.ServiceFeeCents)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		setEnv(t, map[string]string{})

		_, err := config.NewConfig()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("bad duration", func(t *testing.T) {
		setEnv(t, map[string]string{
			"JWT_SECRET":           "test-secret",
			"SERVER_WRITE_TIMEOUT": "soon",
		})

		_, err := config.NewConfig()
		assert.Error(t, err)
	})

	t.Run("negative service fee", func(t *testing.T) {
		setEnv(t, map[string]string{
			"JWT_SECRET":        "test-secret",
			"SERVICE_FEE_CENTS": "-5",
		})

		_, err := config.NewConfig()
		assert.ErrorContains(t, err, "service fee")
	})
}

func TestDSN(t *testing.T) {
	dc := config.DatabaseConfig{
		Host:         "localhost",
		Port:         "5432",
		Name:         "rentacar",
		User:         "postgres",
		Password:     "secret",
		MaxPoolConns: 5,
	}
	assert.Equal(t,
		"host=localhost port=5432 dbname=rentacar user=postgres password=secret pool_max_conns=5",
		dc.DSN())
}
