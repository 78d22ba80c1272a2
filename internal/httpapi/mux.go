package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"climate-server/internal/utils"
)

// NewRouter returns a router with /healthz registered and JSON bodies for
// unknown paths and disallowed methods.
func NewRouter(db *sql.DB) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	})
	registerHealthcheck(r, db)
	return r
}
