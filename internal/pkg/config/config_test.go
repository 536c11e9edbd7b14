package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "hotel_admin", cfg.Mongo.Database)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 4, cfg.Redis.Workers)
	assert.Empty(t, cfg.Setup.Secret)
	assert.True(t, cfg.Development())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s",
		"ENV":          "production",
		"SETUP_SECRET": "open-sesame",
		"STORE_DRIVER": "postgres",
		"POSTGRES_URL": "postgres://localhost/hotel?sslmode=disable",
		"SESSION_TTL":  "2h",
		"REDIS_URL":    "redis://:pw@cache:6379/2",
	}))
	require.NoError(t, err)

	assert.Equal(t, "redis://:pw@cache:6379/2", cfg.Redis.URL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)

	assert.Equal(t, "open-sesame", cfg.Setup.Secret)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	assert.False(t, cfg.Development())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing jwt secret":   {},
		"unknown driver":       {"JWT_SECRET": "s", "STORE_DRIVER": "sqlite"},
		"postgres without url": {"JWT_SECRET": "s", "STORE_DRIVER": "postgres"},
		"bad duration":         {"JWT_SECRET": "s", "SESSION_TTL": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := load(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-dotenv\nMONGO_DB=dotenv_db\n"), 0o600))
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("MONGO_DB", "")
	require.NoError(t, os.Unsetenv("MONGO_DB"))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret, "environment wins over .env")
	assert.Equal(t, "dotenv_db", cfg.Mongo.Database)
}

func TestLoad_MissingDotEnvIsFine(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}
