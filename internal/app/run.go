package app

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"climate-server/internal/config"
	db "climate-server/internal/db"
	httpapi "climate-server/internal/httpapi"
	climate "climate-server/internal/modules/climate"
	climateviews "climate-server/internal/modules/climate/views"
)

const shutdownTimeout = 10 * time.Second

func logConfig(cfg config.Config) {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"logSQL", cfg.LogSQL,
		"httpAddr", cfg.HTTPAddr,
		"dbDriver", cfg.Driver,
		"sqlitePath", cfg.SQLitePath,
		"dbDSNSet", cfg.DSN != "",
		"dbMaxOpenConns", cfg.MaxOpenConns,
		"dbMaxIdleConns", cfg.MaxIdleConns,
		"dbConnMaxLifetime", cfg.ConnMaxLifetime,
	)
}

// openStore opens the configured store and verifies its schema. The caller
// owns the returned handle.
func openStore(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	dbConn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.VerifySchema(ctx, dbConn); err != nil {
		_ = db.Close(dbConn)
		return nil, err
	}
	slog.Info("database connection successful", "driver", cfg.Driver)
	return dbConn, nil
}

// Check opens the store, verifies the schema and closes it again.
func Check(ctx context.Context, cfg config.Config) error {
	logConfig(cfg)
	dbConn, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	return db.Close(dbConn)
}

// NewHandler builds the full route tree over dbConn.
func NewHandler(dbConn *sql.DB, driverName string) http.Handler {
	router := httpapi.NewRouter(dbConn)
	climate.RegisterFeature(router, dbConn, driverName)
	return router
}

func Run(ctx context.Context, cfg config.Config) error {
	logConfig(cfg)

	dbConn, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := db.Close(dbConn)
		if closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()

	if err := climateviews.LoadTemplates(); err != nil {
		return err
	}

	srv := httpapi.NewServer(cfg, NewHandler(dbConn, cfg.Driver))

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
