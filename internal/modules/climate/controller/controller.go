package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"climate-server/internal/modules/climate/repository"
)

const apiPrefix = "/api/v1.0"

type ClimateController interface {
	RegisterRoutes(r *mux.Router)
}

type climateControllerImpl struct {
	repository repository.ClimateRepository
}

func NewClimateController(repository repository.ClimateRepository) ClimateController {
	return &climateControllerImpl{repository: repository}
}

// RegisterRoutes adds the index and API routes to r itself, so a method
// mismatch reaches r's MethodNotAllowedHandler.
func (c *climateControllerImpl) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", c.handleIndex).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/precipitation", c.handlePrecipitation).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/stations", c.handleStations).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/tobs", c.handleTobs).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/start/{start_date}", c.handleStart).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/start/end/{start_date}/{end_date}", c.handleStartEnd).Methods(http.MethodGet)
}
