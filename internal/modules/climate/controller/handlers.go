package controller

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"climate-server/internal/modules/climate/repository"
	"climate-server/internal/modules/climate/types"
	"climate-server/internal/modules/climate/views"
	"climate-server/internal/utils"
)

func (c *climateControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := &views.IndexData{Title: indexTitle, Routes: Routes()}
	var buf bytes.Buffer
	if err := views.RenderIndex(&buf, data); err != nil {
		slog.Error("index template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("index: write response failed", "error", err)
	}
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	measurements, err := c.repository.GetPrecipitation(r.Context())
	if err != nil {
		writeRepositoryError(w, "precipitation", err)
		return
	}
	byDate := types.NewPrecipitationByDate()
	for _, m := range measurements {
		byDate.Add(m.Date, m.Precipitation)
	}
	utils.WriteJSON(w, http.StatusOK, byDate)
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	stations, err := c.repository.GetStations(r.Context())
	if err != nil {
		writeRepositoryError(w, "stations", err)
		return
	}
	byName := make(map[string]string, len(stations))
	for _, s := range stations {
		byName[s.Name] = s.StationID
	}
	utils.WriteJSON(w, http.StatusOK, byName)
}

func (c *climateControllerImpl) handleTobs(w http.ResponseWriter, r *http.Request) {
	temps, err := c.repository.GetTemperatures(r.Context(), tobsWindow)
	if err != nil {
		writeRepositoryError(w, "tobs", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, temps)
}

func (c *climateControllerImpl) handleStart(w http.ResponseWriter, r *http.Request) {
	start, err := parseDateVar(r, "start_date")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.writeSummary(w, r, types.DateRange{Start: start})
}

func (c *climateControllerImpl) handleStartEnd(w http.ResponseWriter, r *http.Request) {
	start, err := parseDateVar(r, "start_date")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseDateVar(r, "end_date")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.writeSummary(w, r, types.DateRange{Start: start, End: end})
}

func (c *climateControllerImpl) writeSummary(w http.ResponseWriter, r *http.Request, window types.DateRange) {
	summary, err := c.repository.GetTemperatureSummary(r.Context(), window)
	if err != nil {
		writeRepositoryError(w, "temperature summary", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

// writeRepositoryError answers 503 when the store could not be reached and 500
// for any other query failure.
func writeRepositoryError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrStoreUnavailable) {
		slog.Error(op+": store unavailable", "error", err)
		utils.WriteError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	slog.Error(op+": query failed", "error", err)
	utils.WriteError(w, http.StatusInternalServerError, "failed to load "+op)
}
