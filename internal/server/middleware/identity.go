package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/deltasync/internal/server/handlers"
)

// IdentityMiddleware проверяет bearer-токен внешнего сервиса авторизации
// и кладет client_id из него в контекст. Пустой secret отключает проверку.
// WebSocket-клиенты без заголовков передают токен в ?access_token=.
func IdentityMiddleware(logger *slog.Logger, secret []byte, skipPaths []string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		if len(secret) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				logger.Warn("Missing identity token", "path", r.URL.Path)
				writeJSONError(w, http.StatusUnauthorized, "missing token")
				return
			}

			claims, err := handlers.ValidateIdentityToken(secret, token)
			if err != nil {
				logger.Warn("Invalid identity token", "path", r.URL.Path, "error", err)
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithClientID(r.Context(), claims.ClientID)))
		})
	}
}

// bearerToken ожидает формат "Bearer <token>"
func bearerToken(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if t := r.URL.Query().Get("access_token"); t != "" {
		return t, true
	}
	return "", false
}
