package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"climate-server/internal/config"
	"climate-server/internal/logging"
)

const appName = "climate-server"

// version is "dev" unless set with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Read-only JSON API over the Hawaii climate dataset",
		Long: `climate-server serves precipitation, station and temperature summaries
from a pre-populated measurement/station store (sqlite file or postgres).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "path to a YAML config file (overrides CONFIG_FILE)")

	root.AddCommand(
		newServeCmd(),
		newCheckCmd(),
		newRoutesCmd(),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration for cmd and installs the process logger.
func setup(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}

	slog.SetDefault(logging.New(cfg, version, appName))
	slog.Info("starting",
		"app", appName,
		"version", version,
		"env", cfg.AppEnv,
		"log_level", cfg.LogLevel.String(),
		"command", cmd.Name(),
	)
	return cfg, nil
}

// loadDotEnv loads path into the environment when it exists. A missing file is
// not an error; any other stat failure is.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func main() {
	if err := loadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}
