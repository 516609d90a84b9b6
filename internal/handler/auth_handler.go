package handler

import (
	"net/http"

	"go-cms-app/internal/middleware"
	"go-cms-app/internal/service"
	"go-cms-app/internal/session"
)

// AuthHandler holds the dependencies for the session handlers.
type AuthHandler struct {
	users    *service.UserService
	sessions session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *service.UserService, sessions session.Manager) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login verifies credentials and establishes a session.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		return &middleware.AppError{Error: err, Message: "Malformed request body.", Code: http.StatusBadRequest}
	}

	user, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if appErr := toAppError(err, "User not found.", "Login failed."); appErr.Code != http.StatusUnauthorized {
			return appErr
		}
		return &middleware.AppError{Error: err, Message: "Incorrect username or password.", Code: http.StatusUnauthorized}
	}

	// A fresh token on privilege change protects against session fixation.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to establish session.", Code: http.StatusInternalServerError}
	}
	h.sessions.Put(r.Context(), session.KeyUserID, int(user.ID))
	h.sessions.Put(r.Context(), session.KeyUsername, user.Username)
	h.sessions.Put(r.Context(), session.KeyRole, string(user.Role))

	return writeJSON(w, http.StatusOK, user)
}

// currentSession returns the logged-in user, or 401 for anonymous callers.
func (h *AuthHandler) currentSession(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	actor := middleware.GetActor(r.Context())
	if actor.Anonymous() {
		return &middleware.AppError{Error: service.ErrNotAuthenticated, Message: "Not authenticated.", Code: http.StatusUnauthorized}
	}
	user, err := h.users.GetUserByID(r.Context(), actor.ID)
	if err != nil {
		return toAppError(err, "User not found.", "Failed to load the current user.")
	}
	return writeJSON(w, http.StatusOK, user)
}

// logout destroys the session.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to destroy session.", Code: http.StatusInternalServerError}
	}
	return writeJSON(w, http.StatusOK, map[string]string{})
}
