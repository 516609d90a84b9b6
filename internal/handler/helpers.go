package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"go-cms-app/internal/data"
	"go-cms-app/internal/middleware"
	"go-cms-app/internal/service"
	"go-cms-app/internal/validator"
)

// writeJSON renders a JSON response body.
func writeJSON(w http.ResponseWriter, code int, v interface{}) *middleware.AppError {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode response.", Code: http.StatusInternalServerError}
	}
	return nil
}

// readJSON decodes a JSON request body into dst, rejecting unknown shapes.
func readJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

// idParam parses the {id} route parameter as a positive integer.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("page id must be a positive integer")
	}
	return id, nil
}

// toAppError maps a service error to its HTTP representation. Validation
// failures carry every violated rule in one combined message.
func toAppError(err error, notFound, fallback string) *middleware.AppError {
	var verr validator.ValidationError
	switch {
	case errors.As(err, &verr):
		return &middleware.AppError{Error: err, Message: verr.Error(), Code: http.StatusUnprocessableEntity}
	case errors.Is(err, data.ErrNotFound):
		return &middleware.AppError{Error: err, Message: notFound, Code: http.StatusNotFound}
	case errors.Is(err, service.ErrNotAuthenticated):
		return &middleware.AppError{Error: err, Message: "Not authenticated.", Code: http.StatusUnauthorized}
	case errors.Is(err, service.ErrForbidden):
		return &middleware.AppError{Error: err, Message: "Insufficient privileges to complete the requested operation.", Code: http.StatusForbidden}
	default:
		return &middleware.AppError{Error: err, Message: fallback, Code: http.StatusInternalServerError}
	}
}
