package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"CONFIG_FILE",
	"APP_ENV",
	"LOG_LEVEL",
	"LOG_SQL",
	"HTTP_ADDR",
	"DB_DRIVER",
	"DB_DSN",
	"SQLITE_PATH",
	"DB_MAX_OPEN_CONNS",
	"DB_MAX_IDLE_CONNS",
	"DB_CONN_MAX_LIFETIME",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	got, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v, want nil", err)
	}

	if got.AppEnv != "dev" {
		t.Errorf("AppEnv = %q, want %q", got.AppEnv, "dev")
	}
	if got.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want %v", got.LogLevel, slog.LevelInfo)
	}
	if got.LogSQL {
		t.Errorf("LogSQL = true, want false")
	}
	if got.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", got.HTTPAddr, ":8080")
	}
	if got.Driver != DriverSQLite {
		t.Errorf("Driver = %q, want %q", got.Driver, DriverSQLite)
	}
	if got.SQLitePath != "Resources/hawaii.sqlite" {
		t.Errorf("SQLitePath = %q, want %q", got.SQLitePath, "Resources/hawaii.sqlite")
	}
	if got.MaxOpenConns != 4 || got.MaxIdleConns != 2 {
		t.Errorf("pool = (%d, %d), want (4, 2)", got.MaxOpenConns, got.MaxIdleConns)
	}
	if got.ConnMaxLifetime != 0 {
		t.Errorf("ConnMaxLifetime = %v, want 0", got.ConnMaxLifetime)
	}
}

func TestLoadFromEnv_AppEnv(t *testing.T) {
	tests := []struct {
		name    string
		appEnv  string
		want    string
		wantErr bool
	}{
		{name: "dev", appEnv: "dev", want: "dev"},
		{name: "prod with whitespace", appEnv: "\nprod\t", want: "prod"},
		{name: "staging", appEnv: "staging", wantErr: true},
		{name: "uppercase invalid", appEnv: "DEV", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("APP_ENV", tt.appEnv)

			got, err := LoadFromEnv()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("LoadFromEnv() error = nil, want non-nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFromEnv() error = %v, want nil", err)
			}
			if got.AppEnv != tt.want {
				t.Errorf("AppEnv = %q, want %q", got.AppEnv, tt.want)
			}
		})
	}
}

func TestLoadFromEnv_Driver(t *testing.T) {
	t.Run("postgres requires DSN", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "postgres")

		if _, err := LoadFromEnv(); err == nil {
			t.Fatal("LoadFromEnv() error = nil, want DSN error")
		}
	})

	t.Run("postgres with DSN", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_DSN", "postgres://u:p@localhost:5432/climate?sslmode=disable")

		got, err := LoadFromEnv()
		if err != nil {
			t.Fatalf("LoadFromEnv() error = %v, want nil", err)
		}
		if got.Driver != DriverPostgres {
			t.Errorf("Driver = %q, want %q", got.Driver, DriverPostgres)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "mysql")

		if _, err := LoadFromEnv(); err == nil {
			t.Fatal("LoadFromEnv() error = nil, want non-nil")
		}
	})
}

func TestLoadFromEnv_InvalidNumbers(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "DB_MAX_OPEN_CONNS", value: "many"},
		{key: "DB_MAX_IDLE_CONNS", value: "1.5"},
		{key: "DB_CONN_MAX_LIFETIME", value: "forever"},
		{key: "LOG_SQL", value: "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := LoadFromEnv(); err == nil {
				t.Fatalf("LoadFromEnv() with %s=%q error = nil, want non-nil", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	body := `
app_env: prod
log_level: debug
log_sql: "true"
http_addr: ":9000"
db:
  sqlite_path: /data/hawaii.sqlite
  max_open_conns: "8"
  conn_max_lifetime: 5m
`
	t.Run("file values apply", func(t *testing.T) {
		clearEnv(t)
		got, err := Load(writeFile(t, body))
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if got.AppEnv != "prod" || got.LogLevel != slog.LevelDebug || !got.LogSQL {
			t.Errorf("got env=%q level=%v logSQL=%v", got.AppEnv, got.LogLevel, got.LogSQL)
		}
		if got.HTTPAddr != ":9000" {
			t.Errorf("HTTPAddr = %q, want :9000", got.HTTPAddr)
		}
		if got.SQLitePath != "/data/hawaii.sqlite" {
			t.Errorf("SQLitePath = %q", got.SQLitePath)
		}
		if got.MaxOpenConns != 8 {
			t.Errorf("MaxOpenConns = %d, want 8", got.MaxOpenConns)
		}
		if got.ConnMaxLifetime != 5*time.Minute {
			t.Errorf("ConnMaxLifetime = %v, want 5m", got.ConnMaxLifetime)
		}
	})

	t.Run("env overrides file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HTTP_ADDR", "127.0.0.1:7000")
		got, err := Load(writeFile(t, body))
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if got.HTTPAddr != "127.0.0.1:7000" {
			t.Errorf("HTTPAddr = %q, want env value", got.HTTPAddr)
		}
	})

	t.Run("CONFIG_FILE is honored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONFIG_FILE", writeFile(t, body))
		got, err := LoadFromEnv()
		if err != nil {
			t.Fatalf("LoadFromEnv() error = %v, want nil", err)
		}
		if got.AppEnv != "prod" {
			t.Errorf("AppEnv = %q, want prod", got.AppEnv)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatal("Load() error = nil, want non-nil")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		clearEnv(t)
		if _, err := Load(writeFile(t, "db: [unterminated")); err == nil {
			t.Fatal("Load() error = nil, want non-nil")
		}
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "  DeBuG \n", want: slog.LevelDebug},
		{in: "", want: slog.LevelInfo, wantErr: true},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
