package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the SPA origins to call the GraphQL endpoint with a bearer header.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Cache-Control", HeaderXRequestID},
		ExposedHeaders:   []string{HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
