package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns a middleware with settings suitable for the browser clients
// that consume this API. Origins are restricted in production via config; the
// default allows everything for local development.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	})
}
