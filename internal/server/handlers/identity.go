package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey тип для ключей контекста
type contextKey string

// ClientIDKey ключ идентичности клиента в контексте (установлен IdentityMiddleware)
const ClientIDKey contextKey = "client_id"

// ErrInvalidToken returned for tokens that fail validation
var ErrInvalidToken = errors.New("invalid token")

// WithClientID кладет идентичность клиента в контекст
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, ClientIDKey, clientID)
}

// GetClientID извлекает идентичность клиента из контекста запроса
func GetClientID(ctx context.Context) (string, bool) {
	clientID, ok := ctx.Value(ClientIDKey).(string)
	return clientID, ok && clientID != ""
}

// IdentityClaims claims токена, выданного внешним сервисом авторизации
type IdentityClaims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// IssueIdentityToken подписывает HS256 токен для клиента.
// Используется в тестах и в локальной разработке вместо сервиса авторизации.
func IssueIdentityToken(secret []byte, clientID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := IdentityClaims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ValidateIdentityToken проверяет подпись и срок токена и возвращает claims
func ValidateIdentityToken(secret []byte, tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ClientID == "" {
		return nil, fmt.Errorf("%w: missing client_id claim", ErrInvalidToken)
	}
	return claims, nil
}

// authorize сверяет clientId запроса с идентичностью из токена.
// Без идентичности в контексте проверка отключена.
func authorize(w http.ResponseWriter, r *http.Request, clientID string) bool {
	identity, ok := GetClientID(r.Context())
	if !ok || identity == clientID {
		return true
	}
	writeError(w, http.StatusForbidden, "client id does not match token")
	return false
}
