package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the payload of every non-2xx API response. Error carries the
// status text of the response code; Message says what went wrong.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON sends v as a newline-terminated JSON document with the given
// status. The header is already committed by the time v is encoded, so an
// encode failure can only be logged.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response body", "status", status, "error", err)
	}
}

// WriteError sends an ErrorBody for status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{Error: http.StatusText(status), Message: msg})
}
