package middleware

import (
	"crypto/subtle"
	"net/http"
)

// Authentication rejects requests whose X-API-Key header does not match apiKey.
func Authentication(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			given := r.Header.Get("X-API-Key")
			if given == "" || subtle.ConstantTimeCompare([]byte(given), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"invalid or missing API key","kind":"unauthorized"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
