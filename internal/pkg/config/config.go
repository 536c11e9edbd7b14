package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Setup SetupConfig
	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL,         default=24h"`
	SignInRate    float64       `env:"SIGNIN_RATE_PER_SEC, default=1"`
	SignInBurst   int           `env:"SIGNIN_BURST,        default=5"`
	SecureCookies bool          `env:"SECURE_COOKIES,      default=false"`
}

// SetupConfig holds the one-time bootstrap secret. While it is set, page
// routes redirect to /setup.
type SetupConfig struct {
	Secret string `env:"SETUP_SECRET"`
}

type StoreConfig struct {
	Driver      string `env:"STORE_DRIVER, default=mongo"`
	PostgresURL string `env:"POSTGRES_URL"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hotel_admin"`
}

// RedisConfig locates the revalidation signal store. REDIS_URL overrides
// the address fields when set.
type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR,         default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,           default=0"`
	Workers  int    `env:"REVALIDATE_WORKERS, default=4"`
}

// Load reads a .env file when present, then the environment, using
// go-envconfig. Variables already set in the environment win over .env.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	switch strings.ToLower(c.Store.Driver) {
	case DriverMongo:
	case DriverPostgres:
		if c.Store.PostgresURL == "" {
			return errors.New("config: POSTGRES_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}
	return nil
}

// Development reports whether ENV selects the development profile.
func (c *Config) Development() bool {
	return strings.EqualFold(c.Env, "development")
}
