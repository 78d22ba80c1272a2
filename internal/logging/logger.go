package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"climate-server/internal/config"
)

// New returns the process logger writing to stdout. Builds stamped "dev" get
// colored text; release builds get JSON tagged with version, env and driver.
func New(cfg config.Config, version string, appName string) *slog.Logger {
	return newWithWriter(os.Stdout, cfg, version, appName)
}

func newWithWriter(w io.Writer, cfg config.Config, version string, appName string) *slog.Logger {
	if version == "dev" {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      cfg.LogLevel,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		})).With("app", appName, "driver", cfg.Driver)
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel})).With(
		"app", appName,
		"version", version,
		"env", cfg.AppEnv,
		"driver", cfg.Driver,
	)
}
