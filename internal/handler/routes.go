package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"go-cms-app/internal/middleware"
	"go-cms-app/internal/session"
)

// NewRouter creates and configures a new chi router. Every application route
// runs behind the session loader and the casbin authorizer; handlers return
// *AppError and are wrapped by the error middleware.
func NewRouter(
	pageHandler *PageHandler,
	authHandler *AuthHandler,
	adminHandler *AdminHandler,
	imageHandler *ImageHandler,
	staticDir string,
	authz func(http.Handler) http.Handler,
	errMiddleware func(middleware.AppHandler) http.Handler,
	sessions session.Manager,
) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Use(sessions.LoadAndSave)
	r.Use(authz)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/sessions", errMiddleware(authHandler.login))
		r.Method(http.MethodGet, "/sessions/current", errMiddleware(authHandler.currentSession))
		r.Method(http.MethodDelete, "/sessions/current", errMiddleware(authHandler.logout))

		r.Method(http.MethodGet, "/pages", errMiddleware(pageHandler.listPages))
		r.Method(http.MethodGet, "/published-pages", errMiddleware(pageHandler.listPublishedPages))
		r.Method(http.MethodGet, "/pages/{id}", errMiddleware(pageHandler.getPage))
		r.Method(http.MethodPost, "/pages", errMiddleware(pageHandler.createPage))
		r.Method(http.MethodPut, "/pages/{id}", errMiddleware(pageHandler.updatePage))
		r.Method(http.MethodDelete, "/pages/{id}", errMiddleware(pageHandler.deletePage))

		r.Method(http.MethodGet, "/config", errMiddleware(adminHandler.getConfig))
		r.Method(http.MethodPut, "/config", errMiddleware(adminHandler.putConfig))
		r.Method(http.MethodGet, "/users", errMiddleware(adminHandler.listUsers))

		r.Method(http.MethodGet, "/images", errMiddleware(imageHandler.listImages))
	})

	// Image bytes referenced by image blocks.
	fileServer := http.FileServer(http.Dir(staticDir))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	return r
}
