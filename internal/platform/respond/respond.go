package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/zipparents/backend/internal/platform/logging"
)

// errorBody mirrors huma's error model shape so router-level responses look
// the same as handler-level ones.
type errorBody struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}

// NotFoundHandler renders a 404 for paths outside the API surface.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "resource not found")
	}
}

// MethodNotAllowedHandler renders a 405 for known paths with unknown methods.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Recoverer converts panics into structured 500 responses and logs the stack.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					var err error
					switch v := rec.(type) {
					case error:
						err = v
					default:
						err = fmt.Errorf("%v", v)
					}
					logging.LogError(r.Context(), "panic recovered",
						fmt.Errorf("%w\n%s", err, debug.Stack()))
					writeError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
