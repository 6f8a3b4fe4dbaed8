package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"
)

// DevelopmentSecret is the signing secret used when none is configured.
const DevelopmentSecret = "dev-secret"

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Logger   LoggerConfig
	Auth     AuthConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name           string        `env:"APP_NAME, default=list-manager"`
	Env            string        `env:"APP_ENV, default=development"`
	Host           string        `env:"APP_HOST, default=0.0.0.0"`
	Port           string        `env:"APP_PORT, default=8080"`
	Version        string        `env:"APP_VERSION, default=dev"`
	RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT, default=30s"`
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN           string        `env:"POSTGRES_DSN"`
	MaxConns      int32         `env:"POSTGRES_MAX_CONNS, default=10"`
	MinConns      int32         `env:"POSTGRES_MIN_CONNS, default=2"`
	RunMigrations bool          `env:"POSTGRES_RUN_MIGRATIONS, default=true"`
	ConnMaxIdle   time.Duration `env:"POSTGRES_CONN_MAX_IDLE, default=30s"`
	ConnMaxLife   time.Duration `env:"POSTGRES_CONN_MAX_LIFE, default=5m"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=127.0.0.1:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// MongoConfig points at the audit store. An empty URI disables it.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=list_manager"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `env:"LOG_LEVEL, default=info"`
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret        string        `env:"AUTH_JWT_SECRET, default=dev-secret"`
	TokenTTL         time.Duration `env:"AUTH_TOKEN_TTL, default=4h"`
	BcryptCost       int           `env:"AUTH_BCRYPT_COST, default=10"`
	LoginMaxAttempts int           `env:"AUTH_LOGIN_MAX_ATTEMPTS, default=10"`
	LoginWindow      time.Duration `env:"AUTH_LOGIN_WINDOW, default=15m"`
}

// Load reads configuration from the environment, after applying any .env file.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot safely run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET must not be empty"))
	}
	if c.Auth.JWTSecret == DevelopmentSecret && !c.App.IsDevelopment() {
		errs = append(errs, fmt.Errorf("AUTH_JWT_SECRET must be set when APP_ENV=%s", c.App.Env))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_TOKEN_TTL must be positive"))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("AUTH_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	return errors.Join(errs...)
}

// IsDevelopment reports whether the service runs in the development environment.
func (a AppConfig) IsDevelopment() bool {
	return a.Env == "development"
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}
