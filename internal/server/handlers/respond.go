package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iudanet/deltasync/internal/statesync"
	"github.com/iudanet/deltasync/pkg/api"
)

// maxBodySize ограничение тела запроса
const maxBodySize = 1 << 20

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// writeServiceError переводит ошибку сервиса в HTTP статус
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	if errors.Is(err, statesync.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Error("Operation failed", "operation", op, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
