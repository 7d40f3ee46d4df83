package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Veraticus/reviewlens/internal/analysis"
	"github.com/Veraticus/reviewlens/internal/common"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps err onto a status code.
func writeError(w http.ResponseWriter, err error) {
	var schemaErr *common.SchemaError
	if errors.As(err, &schemaErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Missing: schemaErr.Missing})
		return
	}

	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrDuplicateEntry):
		return http.StatusConflict
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrInvalidCategory),
		errors.Is(err, common.ErrUnsupportedFormat),
		errors.Is(err, common.ErrEmptyTable),
		errors.Is(err, analysis.ErrInvalidGroup),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errBadRequest marks malformed client input.
var errBadRequest = errors.New("bad request")
