package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/iudanet/deltasync/internal/server/handlers"
)

// RateLimiter ограничивает число запросов на ключ за окно времени.
// Бакеты живут в go-cache и истекают после двух окон простоя.
type RateLimiter struct {
	buckets *gocache.Cache
	now     func() time.Time
	rate    int
	window  time.Duration
	mu      sync.Mutex
}

// bucket счетчик токенов одного ключа
type bucket struct {
	lastRefill time.Time
	tokens     int
	mu         sync.Mutex
}

// NewRateLimiter создает limiter на rate запросов за window
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets: gocache.New(window*2, window*2),
		now:     time.Now,
		rate:    rate,
		window:  window,
	}
}

// Allow проверяет, разрешен ли запрос для ключа
func (rl *RateLimiter) Allow(key string) bool {
	b := rl.bucket(key)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := rl.now()
	if now.Sub(b.lastRefill) >= rl.window {
		b.tokens = rl.rate
		b.lastRefill = now
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) bucket(key string) *bucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.buckets.Get(key); ok {
		// продлеваем жизнь активного бакета
		rl.buckets.SetDefault(key, v)
		return v.(*bucket)
	}
	b := &bucket{tokens: rl.rate, lastRefill: rl.now()}
	rl.buckets.SetDefault(key, b)
	return b
}

// Len returns the number of live buckets
func (rl *RateLimiter) Len() int {
	return rl.buckets.ItemCount()
}

// RateLimitMiddleware ограничивает частоту запросов по клиенту из токена,
// а без него по IP. rate <= 0 отключает ограничение.
func RateLimitMiddleware(rate int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rate <= 0 || window <= 0 {
			return next
		}
		limiter := NewRateLimiter(rate, window)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateKey(r)
			if !limiter.Allow(key) {
				logger.Warn("Rate limit exceeded",
					"key", key,
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rateKey(r *http.Request) string {
	if clientID, ok := handlers.GetClientID(r.Context()); ok {
		return "client:" + clientID
	}
	return "ip:" + getClientIP(r)
}

// getClientIP извлекает IP адрес клиента из запроса
// Проверяет заголовки X-Forwarded-For и X-Real-IP для прокси
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
