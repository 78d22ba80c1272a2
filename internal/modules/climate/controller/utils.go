package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"climate-server/internal/modules/climate/types"
	"climate-server/internal/modules/climate/views"
)

const indexTitle = "Hawaii Climate API"

// tobsWindow is the trailing twelve months of the dataset, both ends inclusive.
var tobsWindow = types.DateRange{
	Start: time.Date(2016, time.August, 23, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2017, time.August, 23, 0, 0, 0, 0, time.UTC),
}

var routeDirectory = []views.Route{
	{Path: apiPrefix + "/precipitation", Description: "precipitation values grouped by date"},
	{Path: apiPrefix + "/stations", Description: "station ids keyed by station name"},
	{Path: apiPrefix + "/tobs", Description: "temperature observations from 2016-08-23 to 2017-08-23"},
	{Path: apiPrefix + "/start/<start_date>", Description: "[min, max, avg] temperature from start_date (YYYY-MM-DD)"},
	{Path: apiPrefix + "/start/end/<start_date>/<end_date>", Description: "[min, max, avg] temperature between both dates, inclusive"},
}

// Routes returns the API routes listed on the index page.
func Routes() []views.Route {
	out := make([]views.Route, len(routeDirectory))
	copy(out, routeDirectory)
	return out
}

// parseDateVar reads the named path variable as a YYYY-MM-DD calendar date.
// The value is taken as sent: surrounding whitespace is a parse error.
func parseDateVar(r *http.Request, name string) (time.Time, error) {
	s := mux.Vars(r)[name]
	if s == "" {
		return time.Time{}, fmt.Errorf("missing '%s'", name)
	}
	d, err := time.Parse(types.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid '%s' %q (expected YYYY-MM-DD)", name, s)
	}
	return d, nil
}
