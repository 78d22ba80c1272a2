package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"

	"climate-server/internal/config"
)

const pingTimeout = 5 * time.Second

// Open returns a pooled handle to the configured store and verifies it answers.
func Open(cfg config.Config) (*sql.DB, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	if cfg.LogSQL {
		drv, err := driverFor(cfg.Driver)
		if err != nil {
			return nil, err
		}
		connector, err := NewLoggingConnector(drv, dsn, slog.Default())
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		db = sql.OpenDB(connector)
	} else {
		db, err = sql.Open(cfg.Driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns >= 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

func driverFor(name string) (driver.Driver, error) {
	switch name {
	case config.DriverSQLite:
		return &sqlite3.SQLiteDriver{}, nil
	case config.DriverPostgres:
		return &pq.Driver{}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", name)
	}
}

func buildDSN(cfg config.Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	if cfg.Driver != config.DriverSQLite {
		return "", fmt.Errorf("driver %q needs an explicit DSN", cfg.Driver)
	}
	path := strings.TrimSpace(cfg.SQLitePath)
	if path == "" {
		return "", fmt.Errorf("sqlite path is empty")
	}

	// The dataset is owned upstream: open it read-only and never create it.
	params := []string{
		"mode=ro",
		"_busy_timeout=5000",
	}

	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&"), nil
	}

	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&")), nil
}

// Rebind rewrites '?' placeholders into the positional form the driver expects.
func Rebind(driverName, query string) string {
	if driverName != config.DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
