package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go-cms-app/internal/logger"
)

// AppError represents a handler failure with the HTTP status it maps to.
type AppError struct {
	Error   error
	Message string
	Code    int
}

// AppHandler is a handler function that returns an AppError instead of
// writing failures itself.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// Error is a middleware that converts handler errors into JSON error
// responses and logs them. Panics become opaque 500s.
func Error(log logger.Logger) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					writeError(w, http.StatusInternalServerError, "Internal server error.")
				}
			}()

			if err := next(w, r); err != nil {
				if err.Code >= http.StatusInternalServerError {
					log.Error(err.Error, err.Message)
				}
				writeError(w, err.Code, err.Message)
			}
		})
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
