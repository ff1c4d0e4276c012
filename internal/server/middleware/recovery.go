package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/iudanet/deltasync/internal/server/handlers"
	"github.com/iudanet/deltasync/pkg/api"
)

// RecoveryMiddleware перехватывает panic, логирует стек и отвечает 500
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					// обрыв соединения сервер обрабатывает сам
					if err == http.ErrAbortHandler {
						panic(err)
					}
					clientID, _ := handlers.GetClientID(r.Context())
					logger.Error("Panic recovered",
						"error", err,
						"client_id", clientID,
						"method", r.Method,
						"path", r.URL.Path,
						"remote_addr", r.RemoteAddr,
						"stack", string(debug.Stack()),
					)
					// детали паники клиенту не раскрываем
					writeJSONError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: msg})
}
