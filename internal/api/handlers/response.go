package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ishankgp/MF-return-tracker/internal/analysis"
	"github.com/ishankgp/MF-return-tracker/internal/external/fundapi"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusFor maps analysis and provider errors to HTTP status codes
func statusFor(err error) int {
	var fetchErr *fundapi.DataFetchError
	switch {
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.Is(err, analysis.ErrEmptyResult):
		return http.StatusUnprocessableEntity
	case errors.Is(err, analysis.ErrUnknownFormula):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
