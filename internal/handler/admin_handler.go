package handler

import (
	"net/http"

	"go-cms-app/internal/middleware"
	"go-cms-app/internal/service"
)

// AdminHandler serves the app config and the user directory. The PUT config
// and user listing routes are admin-only by policy.
type AdminHandler struct {
	config *service.ConfigService
	users  *service.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(config *service.ConfigService, users *service.UserService) *AdminHandler {
	return &AdminHandler{config: config, users: users}
}

// getConfig returns the app config, which includes the app name.
func (h *AdminHandler) getConfig(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	name, err := h.config.GetAppName(r.Context())
	if err != nil {
		return toAppError(err, "App config not found.", "Failed to retrieve the app config.")
	}
	return writeJSON(w, http.StatusOK, map[string]string{"appName": name})
}

type configRequest struct {
	AppName string `json:"appName"`
}

// putConfig updates the app name.
func (h *AdminHandler) putConfig(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req configRequest
	if err := readJSON(r, &req); err != nil {
		return &middleware.AppError{Error: err, Message: "Malformed request body.", Code: http.StatusBadRequest}
	}
	if err := h.config.SetAppName(r.Context(), req.AppName); err != nil {
		return toAppError(err, "App config not found.", "Database error during the update of config.")
	}
	return writeJSON(w, http.StatusOK, map[string]string{"appName": req.AppName})
}

// listUsers returns the {name, username} directory for author reassignment.
func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		return toAppError(err, "User not found.", "Database error while retrieving the users list.")
	}
	return writeJSON(w, http.StatusOK, users)
}
