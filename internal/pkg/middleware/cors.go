package middleware

import (
	"net/http"
	"strings"
)

// CORS libera as origens configuradas (ou "*") para o front-end. Com a lista
// vazia nenhum header é adicionado. Credenciais só são permitidas para
// origens explícitas, pois o cookie de sessão não pode ir para "*".
func CORS(origins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || len(origins) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			allowed, wildcard := originAllowed(origins, origin)
			if !allowed {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			if wildcard {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			// Preflight
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
				w.Header().Set("Access-Control-Max-Age", "3600")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			w.Header().Set("Access-Control-Expose-Headers", "X-RateLimit-Limit, X-RateLimit-Remaining")
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origins []string, origin string) (allowed, wildcard bool) {
	for _, o := range origins {
		if strings.EqualFold(o, origin) {
			return true, false
		}
	}
	for _, o := range origins {
		if o == "*" {
			return true, true
		}
	}
	return false, false
}
