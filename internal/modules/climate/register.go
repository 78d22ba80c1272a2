package climate

import (
	"database/sql"

	"github.com/gorilla/mux"

	"climate-server/internal/modules/climate/controller"
	"climate-server/internal/modules/climate/repository"
)

func RegisterFeature(r *mux.Router, db *sql.DB, driverName string) {
	climateRepository := repository.NewRepository(db, driverName)
	climateController := controller.NewClimateController(climateRepository)
	climateController.RegisterRoutes(r)
}
