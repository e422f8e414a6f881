package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"gocontrole/internal/domain"
	"gocontrole/internal/pkg/cache"
	"gocontrole/internal/pkg/logger"
	"gocontrole/internal/pkg/response"
)

// RateLimiter limita cada IP a limit requisições por janela. O contador vive
// no cache, então instâncias que compartilham o Redis compartilham o limite.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip

			count, err := client.Incr(r.Context(), key, window)
			if err != nil {
				// Cache fora do ar não derruba o login.
				log.Error("Falha no rate limiter; requisição liberada.", err)
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				log.Warn("Rate limit excedido.", map[string]interface{}{"ip": ip, "path": r.URL.Path})
				response.JSON(w, http.StatusTooManyRequests, domain.ErrorResponse{
					Error:    fmt.Sprintf("Muitas requisições. Tente novamente em %s.", window),
					Code:     http.StatusTooManyRequests,
					Category: "RATE_LIMITED",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
