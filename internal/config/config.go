// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

// Package config loads ForumHub configuration from defaults, a YAML file,
// a .env file, FORUMHUB_ environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FORUMHUB_"

// DefaultEnvFile is read when present; its absence is not an error.
const DefaultEnvFile = ".env"

// Token store backends.
const (
	TokenStorePostgres = "postgres"
	TokenStoreRedis    = "redis"
)

// Password hashing algorithms.
const (
	HasherArgon2id = "argon2id"
	HasherBcrypt   = "bcrypt"
)

// Config is the complete service configuration.
type Config struct {
	HTTP     HTTPConfig     `koanf:"http"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Log      LogConfig      `koanf:"log"`
	Database DatabaseConfig `koanf:"database"`
	Token    TokenConfig    `koanf:"token"`
	Auth     AuthConfig     `koanf:"auth"`
	Redis    RedisConfig    `koanf:"redis"`
	Hasher   HasherConfig   `koanf:"hasher"`
}

// HTTPConfig configures the API listener.
type HTTPConfig struct {
	Addr string `koanf:"addr" validate:"required"`
}

// MetricsConfig configures the observability listener. An empty Addr
// disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// LogConfig configures slog output.
type LogConfig struct {
	Format string `koanf:"format" validate:"oneof=json text"`
	Level  string `koanf:"level" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

// DatabaseConfig configures the PostgreSQL pool.
type DatabaseConfig struct {
	URL             string `koanf:"url" validate:"required"`
	ConnectAttempts int    `koanf:"connect_attempts" validate:"min=1"`
}

// TokenConfig configures JWT signing. A zero RefreshTTL issues refresh
// tokens without an exp claim.
type TokenConfig struct {
	AccessSecret  string        `koanf:"access_secret" validate:"required,min=32"`
	RefreshSecret string        `koanf:"refresh_secret" validate:"required,min=32"`
	AccessTTL     time.Duration `koanf:"access_ttl" validate:"gt=0"`
	RefreshTTL    time.Duration `koanf:"refresh_ttl" validate:"gte=0"`
	Issuer        string        `koanf:"issuer" validate:"required"`
}

// AuthConfig selects the refresh-token allow-list backend.
type AuthConfig struct {
	TokenStore string `koanf:"token_store" validate:"oneof=postgres redis"`
}

// RedisConfig configures the Redis allow-list.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
}

// HasherConfig selects the password hashing algorithm.
type HasherConfig struct {
	Algorithm  string `koanf:"algorithm" validate:"oneof=argon2id bcrypt"`
	BcryptCost int    `koanf:"bcrypt_cost" validate:"min=4,max=31"`
}

// Defaults returns the lowest-precedence configuration layer.
func Defaults() map[string]any {
	return map[string]any{
		"http.addr":                 ":5000",
		"metrics.addr":              "127.0.0.1:9100",
		"log.format":                "json",
		"log.level":                 "info",
		"database.url":              "",
		"database.connect_attempts": 5,
		"token.access_secret":       "",
		"token.refresh_secret":      "",
		"token.access_ttl":          "15m",
		"token.refresh_ttl":         "720h",
		"token.issuer":              "forumhub",
		"auth.token_store":          TokenStorePostgres,
		"redis.addr":                "localhost:6379",
		"redis.password":            "",
		"redis.db":                  0,
		"hasher.algorithm":          HasherArgon2id,
		"hasher.bcrypt_cost":        12,
	}
}

// Options selects the sources Load reads.
type Options struct {
	// File is a YAML configuration file. Empty skips it.
	File string
	// EnvFile is a dotenv file. Empty skips it; a missing DefaultEnvFile is ignored.
	EnvFile string
	// Flags are applied last. Only flags the user changed override other layers.
	Flags *pflag.FlagSet
}

// Load builds and validates a Config.
func Load(opts Options) (*Config, error) {
	cfg, err := Read(opts)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read builds a Config from every layer without validating it.
func Read(opts Options) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("key", key).Wrap(err)
		}
	}

	if opts.File != "" {
		if err := k.Load(file.Provider(opts.File), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("file", opts.File).Wrap(err)
		}
	}

	if opts.EnvFile != "" {
		if err := loadEnvFile(k, opts.EnvFile); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").With("source", "environment").Wrap(err)
	}

	if opts.Flags != nil {
		if err := k.Load(posflag.Provider(opts.Flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("source", "flags").Wrap(err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}
	return &cfg, nil
}

// loadEnvFile reads FORUMHUB_ entries from a dotenv file without touching
// the process environment.
func loadEnvFile(k *koanf.Koanf, path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultEnvFile {
			return nil
		}
		return oops.Code("CONFIG_LOAD_FAILED").With("file", path).Wrap(err)
	}
	for name, value := range values {
		key := envKey(name)
		if key == "" {
			continue
		}
		if err := k.Set(key, value); err != nil {
			return oops.Code("CONFIG_LOAD_FAILED").With("key", key).Wrap(err)
		}
	}
	return nil
}

// envKey maps FORUMHUB_TOKEN_ACCESS_SECRET to token.access_secret. Names
// without the prefix map to "".
func envKey(name string) string {
	if !strings.HasPrefix(name, EnvPrefix) {
		return ""
	}
	section, rest, ok := strings.Cut(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "_")
	if !ok || section == "" || rest == "" {
		return ""
	}
	return section + "." + rest
}

// RegisterFlags adds the flags Load understands to flags. Flag names are the
// configuration keys.
func RegisterFlags(flags *pflag.FlagSet) {
	d := Defaults()
	flags.String("http.addr", d["http.addr"].(string), "API listen address")
	flags.String("metrics.addr", d["metrics.addr"].(string), "metrics/health listen address (empty = disabled)")
	flags.String("log.format", d["log.format"].(string), "log format (json or text)")
	flags.String("log.level", d["log.level"].(string), "log level (debug, info, warn, error)")
	flags.String("database.url", "", "PostgreSQL connection URL")
	flags.String("auth.token_store", d["auth.token_store"].(string), "refresh token store (postgres or redis)")
	flags.String("hasher.algorithm", d["hasher.algorithm"].(string), "password hashing algorithm (argon2id or bcrypt)")
}
