package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Переменные окружения читаются с префиксом GRAMS_. Первый "_" после префикса
// отделяет секцию: GRAMS_SERVER_PORT -> server.port -> Config.Server.Port,
// GRAMS_AUTH_SECRET_KEY -> auth.secret_key.
const EnvPrefix = "GRAMS_"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Storage  StorageConfig  `koanf:"storage" validate:"required"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth" validate:"required"`
	Logging  LoggingConfig  `koanf:"logging" validate:"required"`
}

type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"min=1s"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"min=1s"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

type StorageConfig struct {
	Type string `koanf:"type" validate:"required,oneof=memory postgres"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MigrationsDir   string        `koanf:"migrations_dir"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type AuthConfig struct {
	SecretKey string        `koanf:"secret_key" validate:"required,min=16"`
	TokenTTL  time.Duration `koanf:"token_ttl" validate:"min=1m"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// Default - значения, поверх которых накладывается окружение
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       10 * time.Second,
			IdleTimeout:        60 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			CORSAllowedOrigins: []string{"*"},
		},
		Storage: StorageConfig{Type: StorageMemory},
		Database: DatabaseConfig{
			MigrationsDir:   "migrations",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Auth: AuthConfig{TokenTTL: 24 * time.Hour},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load читает конфигурацию из окружения (и .env, если он есть) и проверяет её
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.Replace(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "_", ".", 1)
		if key == "server.cors_allowed_origins" {
			return key, strings.Split(value, ",")
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "load env")
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	if c.Storage.Type == StoragePostgres && c.Database.URL == "" {
		return errors.New("config validation failed: database.url is required for postgres storage")
	}
	return nil
}

func (c *Config) IsPostgres() bool {
	return c.Storage.Type == StoragePostgres
}
