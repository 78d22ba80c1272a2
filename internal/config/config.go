package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	// LogSQL logs every statement sent to the store at debug level.
	LogSQL   bool
	HTTPAddr string

	Driver          string
	DSN             string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// fileConfig mirrors Config in the optional YAML file. Every field is a string so
// the same parsing and validation runs for file and environment values.
type fileConfig struct {
	AppEnv   string `yaml:"app_env"`
	LogLevel string `yaml:"log_level"`
	LogSQL   string `yaml:"log_sql"`
	HTTPAddr string `yaml:"http_addr"`
	DB       struct {
		Driver          string `yaml:"driver"`
		DSN             string `yaml:"dsn"`
		SQLitePath      string `yaml:"sqlite_path"`
		MaxOpenConns    string `yaml:"max_open_conns"`
		MaxIdleConns    string `yaml:"max_idle_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime"`
	} `yaml:"db"`
}

func LoadFromEnv() (Config, error) {
	return Load(strings.TrimSpace(os.Getenv("CONFIG_FILE")))
}

// Load builds the configuration from the environment, falling back to the YAML
// file at path (if any) and then to defaults.
func Load(path string) (Config, error) {
	var fc fileConfig
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	appEnv := setting("APP_ENV", fc.AppEnv, "dev")
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	level, err := parseLogLevel(setting("LOG_LEVEL", fc.LogLevel, "info"))
	if err != nil {
		return Config{}, err
	}

	logSQLStr := setting("LOG_SQL", fc.LogSQL, "false")
	logSQL, err := strconv.ParseBool(logSQLStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_SQL %q: %w", logSQLStr, err)
	}

	driver := setting("DB_DRIVER", fc.DB.Driver, DriverSQLite)
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("invalid DB_DRIVER %q (allowed: %s, %s)", driver, DriverSQLite, DriverPostgres)
	}
	dsn := setting("DB_DSN", fc.DB.DSN, "")
	if driver == DriverPostgres && dsn == "" {
		return Config{}, fmt.Errorf("DB_DSN is required when DB_DRIVER=%s", DriverPostgres)
	}

	maxOpenConnsStr := setting("DB_MAX_OPEN_CONNS", fc.DB.MaxOpenConns, "4")
	maxOpenConns, err := strconv.Atoi(maxOpenConnsStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid DB_MAX_OPEN_CONNS %q: %w", maxOpenConnsStr, err)
	}

	maxIdleConnsStr := setting("DB_MAX_IDLE_CONNS", fc.DB.MaxIdleConns, "2")
	maxIdleConns, err := strconv.Atoi(maxIdleConnsStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid DB_MAX_IDLE_CONNS %q: %w", maxIdleConnsStr, err)
	}

	connMaxLifetimeStr := setting("DB_CONN_MAX_LIFETIME", fc.DB.ConnMaxLifetime, "0s")
	connMaxLifetime, err := time.ParseDuration(connMaxLifetimeStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME %q: %w", connMaxLifetimeStr, err)
	}

	return Config{
		AppEnv:          appEnv,
		LogLevel:        level,
		LogSQL:          logSQL,
		HTTPAddr:        setting("HTTP_ADDR", fc.HTTPAddr, ":8080"),
		Driver:          driver,
		DSN:             dsn,
		SQLitePath:      setting("SQLITE_PATH", fc.DB.SQLitePath, "Resources/hawaii.sqlite"),
		MaxOpenConns:    maxOpenConns,
		MaxIdleConns:    maxIdleConns,
		ConnMaxLifetime: connMaxLifetime,
	}, nil
}

// setting returns the trimmed env value for key, else the file value, else def.
func setting(key, fromFile, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	if v := strings.TrimSpace(fromFile); v != "" {
		return v
	}
	return def
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
