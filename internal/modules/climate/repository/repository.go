package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"climate-server/internal/db"
	"climate-server/internal/modules/climate/types"
)

//go:embed sql/get-precipitation.sql
var getPrecipitationSQL string

//go:embed sql/get-stations.sql
var getStationsSQL string

//go:embed sql/get-temperatures-from.sql
var getTemperaturesFromSQL string

//go:embed sql/get-temperatures-range.sql
var getTemperaturesRangeSQL string

//go:embed sql/get-temperature-summary-from.sql
var getTemperatureSummaryFromSQL string

//go:embed sql/get-temperature-summary-range.sql
var getTemperatureSummaryRangeSQL string

// ErrStoreUnavailable means no session could be opened against the store.
var ErrStoreUnavailable = errors.New("store unavailable")

type ClimateRepository interface {
	GetPrecipitation(ctx context.Context) ([]types.Measurement, error)
	GetStations(ctx context.Context) ([]types.Station, error)
	GetTemperatures(ctx context.Context, window types.DateRange) ([]float64, error)
	GetTemperatureSummary(ctx context.Context, window types.DateRange) (types.TemperatureSummary, error)
}

type queries struct {
	precipitation           string
	stations                string
	temperaturesFrom        string
	temperaturesRange       string
	temperatureSummaryFrom  string
	temperatureSummaryRange string
}

type repositoryImpl struct {
	db *sql.DB
	q  queries
}

// NewRepository binds the embedded queries to the placeholder style of driverName.
func NewRepository(conn *sql.DB, driverName string) ClimateRepository {
	return &repositoryImpl{
		db: conn,
		q: queries{
			precipitation:           db.Rebind(driverName, getPrecipitationSQL),
			stations:                db.Rebind(driverName, getStationsSQL),
			temperaturesFrom:        db.Rebind(driverName, getTemperaturesFromSQL),
			temperaturesRange:       db.Rebind(driverName, getTemperaturesRangeSQL),
			temperatureSummaryFrom:  db.Rebind(driverName, getTemperatureSummaryFromSQL),
			temperatureSummaryRange: db.Rebind(driverName, getTemperatureSummaryRangeSQL),
		},
	}
}

// withSession checks a connection out of the pool for the duration of fn and
// always returns it, including when fn fails.
func (r *repositoryImpl) withSession(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Error("close store session", "error", err)
		}
	}()
	return fn(conn)
}

func (r *repositoryImpl) GetPrecipitation(ctx context.Context) ([]types.Measurement, error) {
	out := []types.Measurement{}
	err := r.withSession(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, r.q.precipitation)
		if err != nil {
			return fmt.Errorf("query precipitation: %w", err)
		}
		defer func() {
			if err := rows.Close(); err != nil {
				slog.Error("close precipitation rows", "error", err)
			}
		}()
		for rows.Next() {
			var (
				m    types.Measurement
				prcp sql.NullFloat64
			)
			if err := rows.Scan(&m.ID, &m.StationID, &m.Date, &prcp); err != nil {
				return fmt.Errorf("scan precipitation: %w", err)
			}
			m.Precipitation = nullableFloat(prcp)
			out = append(out, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repositoryImpl) GetStations(ctx context.Context) ([]types.Station, error) {
	out := []types.Station{}
	err := r.withSession(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, r.q.stations)
		if err != nil {
			return fmt.Errorf("query stations: %w", err)
		}
		defer func() {
			if err := rows.Close(); err != nil {
				slog.Error("close stations rows", "error", err)
			}
		}()
		for rows.Next() {
			var (
				s                   types.Station
				lat, lon, elevation sql.NullFloat64
			)
			if err := rows.Scan(&s.ID, &s.StationID, &s.Name, &lat, &lon, &elevation); err != nil {
				return fmt.Errorf("scan station: %w", err)
			}
			s.Latitude, s.Longitude, s.Elevation = lat.Float64, lon.Float64, elevation.Float64
			out = append(out, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repositoryImpl) GetTemperatures(ctx context.Context, window types.DateRange) ([]float64, error) {
	query, args := r.q.temperaturesRange, []any{window.StartString(), window.EndString()}
	if window.OpenEnded() {
		query, args = r.q.temperaturesFrom, []any{window.StartString()}
	}

	out := []float64{}
	err := r.withSession(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query temperatures: %w", err)
		}
		defer func() {
			if err := rows.Close(); err != nil {
				slog.Error("close temperature rows", "error", err)
			}
		}()
		for rows.Next() {
			var tobs float64
			if err := rows.Scan(&tobs); err != nil {
				return fmt.Errorf("scan temperature: %w", err)
			}
			out = append(out, tobs)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repositoryImpl) GetTemperatureSummary(ctx context.Context, window types.DateRange) (types.TemperatureSummary, error) {
	query, args := r.q.temperatureSummaryRange, []any{window.StartString(), window.EndString()}
	if window.OpenEnded() {
		query, args = r.q.temperatureSummaryFrom, []any{window.StartString()}
	}

	var summary types.TemperatureSummary
	err := r.withSession(ctx, func(conn *sql.Conn) error {
		var lo, hi, avg sql.NullFloat64
		if err := conn.QueryRowContext(ctx, query, args...).Scan(&lo, &hi, &avg); err != nil {
			return fmt.Errorf("query temperature summary: %w", err)
		}
		summary = types.TemperatureSummary{
			Min: nullableFloat(lo),
			Max: nullableFloat(hi),
			Avg: nullableFloat(avg),
		}
		return nil
	})
	if err != nil {
		return types.TemperatureSummary{}, err
	}
	return summary, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
