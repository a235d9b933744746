// Package config loads invctl settings with viper.
//
// Values come, lowest precedence first, from built-in defaults, an optional
// YAML file, INVCTL_* environment variables and bound command-line flags.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/KirkDiggler/rpg-inventory/internal/codec"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// Backend names
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config keys
const (
	KeyBackend       = "backend"
	KeyDataDir       = "data_dir"
	KeySQLitePath    = "sqlite_path"
	KeyRedisAddr     = "redis.addr"
	KeyRedisPassword = "redis.password"
	KeyRedisDB       = "redis.db"
	KeyCodec         = "codec"
	KeyCompression   = "compression"
	KeyCatalog       = "catalog"
	KeyLogLevel      = "log_level"
)

// EnvPrefix prefixes environment overrides, e.g. INVCTL_REDIS_ADDR
const EnvPrefix = "INVCTL"

const (
	appName        = "invctl"
	configFileName = "config"
	configFileType = "yaml"
)

// Config holds the resolved settings
type Config struct {
	Backend     string      `mapstructure:"backend"`
	DataDir     string      `mapstructure:"data_dir"`
	SQLitePath  string      `mapstructure:"sqlite_path"`
	Redis       RedisConfig `mapstructure:"redis"`
	Codec       string      `mapstructure:"codec"`
	Compression string      `mapstructure:"compression"`
	Catalog     string      `mapstructure:"catalog"`
	LogLevel    string      `mapstructure:"log_level"`
}

// RedisConfig holds the Redis connection settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Validate checks the settings are consistent
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum(KeyBackend, c.Backend,
		[]string{BackendFile, BackendRedis, BackendSQLite, BackendMemory}, vb)
	errors.ValidateEnum(KeyCodec, c.Codec, []string{codec.NameJSON, codec.NameCBOR}, vb)
	if c.Compression != "" {
		errors.ValidateEnum(KeyCompression, c.Compression,
			[]string{codec.CompressionNone, codec.CompressionZstd, codec.CompressionLZ4}, vb)
	}
	errors.ValidateEnum(KeyLogLevel, c.LogLevel, []string{"debug", "info", "warn", "error"}, vb)

	switch c.Backend {
	case BackendFile:
		errors.ValidateRequired(KeyDataDir, c.DataDir, vb)
	case BackendSQLite:
		if c.SQLitePath == "" {
			errors.ValidateRequired(KeyDataDir, c.DataDir, vb)
		}
	case BackendRedis:
		errors.ValidateRequired(KeyRedisAddr, c.Redis.Addr, vb)
		if c.Redis.DB < 0 {
			vb.Field(KeyRedisDB, "cannot be negative")
		}
	}

	return vb.Build()
}

// SQLiteFile returns the database path, defaulting to <data_dir>/saves.db
func (c *Config) SQLiteFile() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.DataDir, "saves.db")
}

// New returns a viper instance with defaults and environment overrides set
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyBackend, BackendFile)
	v.SetDefault(KeyDataDir, DefaultDataDir())
	v.SetDefault(KeySQLitePath, "")
	v.SetDefault(KeyRedisAddr, "localhost:6379")
	v.SetDefault(KeyRedisPassword, "")
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyCodec, codec.NameCBOR)
	v.SetDefault(KeyCompression, codec.CompressionNone)
	v.SetDefault(KeyCatalog, "")
	v.SetDefault(KeyLogLevel, "warn")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the optional config file and decodes the result.
// An explicit configFile must exist; otherwise config.yaml is looked up in
// DefaultConfigDir and a missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(DefaultConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if configFile != "" || !notFound {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode config")
	}
	cfg.Backend = strings.ToLower(cfg.Backend)
	cfg.Codec = strings.ToLower(cfg.Codec)
	cfg.Compression = strings.ToLower(cfg.Compression)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

// DefaultConfigDir returns where config.yaml is looked up:
// $XDG_CONFIG_HOME/invctl on Linux, the platform config dir elsewhere.
func DefaultConfigDir() string {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName)
		}
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(dir, appName)
}

// DefaultDataDir returns where saves are kept by default:
// $XDG_DATA_HOME/invctl/Saves on Linux, <config dir>/Saves elsewhere.
func DefaultDataDir() string {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appName, "Saves")
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share", appName, "Saves")
		}
	}
	return filepath.Join(DefaultConfigDir(), "Saves")
}

// SlogLevel maps LogLevel to a slog level
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
