package handler

import (
	"net/http"

	"go-cms-app/internal/logger"
	"go-cms-app/internal/middleware"
	"go-cms-app/internal/service"
)

// PageHandler holds the dependencies for the page handlers.
type PageHandler struct {
	pages *service.PageService
	log   logger.Logger
}

// NewPageHandler creates a new PageHandler with the given dependencies.
func NewPageHandler(pages *service.PageService, log logger.Logger) *PageHandler {
	return &PageHandler{pages: pages, log: log}
}

// listPages returns every page for the back office.
func (h *PageHandler) listPages(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	pages, err := h.pages.ListPages(r.Context())
	if err != nil {
		return toAppError(err, "Page not found.", "Failed to retrieve pages.")
	}
	return writeJSON(w, http.StatusOK, pages)
}

// listPublishedPages returns the published pages for the front office.
func (h *PageHandler) listPublishedPages(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	pages, err := h.pages.ListPublishedPages(r.Context())
	if err != nil {
		return toAppError(err, "Page not found.", "Failed to retrieve published pages.")
	}
	return writeJSON(w, http.StatusOK, pages)
}

// getPage returns a page with its blocks. The service decides whether the
// caller may see it based on the resolved status.
func (h *PageHandler) getPage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := idParam(r)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Page id must be a positive integer.", Code: http.StatusUnprocessableEntity}
	}
	page, err := h.pages.GetPage(r.Context(), id, middleware.GetActor(r.Context()))
	if err != nil {
		return toAppError(err, "Page not found.", "Failed to retrieve the page.")
	}
	return writeJSON(w, http.StatusOK, page)
}

// createPage creates a new page and its blocks.
func (h *PageHandler) createPage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var input service.PageInput
	if err := readJSON(r, &input); err != nil {
		return &middleware.AppError{Error: err, Message: "Malformed request body.", Code: http.StatusBadRequest}
	}
	page, err := h.pages.CreatePage(r.Context(), middleware.GetActor(r.Context()), input)
	if err != nil {
		return toAppError(err, "User not found.", "Database error during the creation of the page.")
	}
	return writeJSON(w, http.StatusCreated, page)
}

// updatePage edits an existing page, replacing its blocks.
func (h *PageHandler) updatePage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := idParam(r)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Page id must be a positive integer.", Code: http.StatusUnprocessableEntity}
	}
	var input service.PageInput
	if err := readJSON(r, &input); err != nil {
		return &middleware.AppError{Error: err, Message: "Malformed request body.", Code: http.StatusBadRequest}
	}
	page, err := h.pages.UpdatePage(r.Context(), middleware.GetActor(r.Context()), id, input)
	if err != nil {
		return toAppError(err, "Page not found.", "Database error during the update of the page.")
	}
	return writeJSON(w, http.StatusOK, page)
}

// deletePage deletes a page and all of its blocks.
func (h *PageHandler) deletePage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := idParam(r)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Page id must be a positive integer.", Code: http.StatusUnprocessableEntity}
	}
	if err := h.pages.DeletePage(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		return toAppError(err, "Page not found.", "Database error during the deletion of the page.")
	}
	return writeJSON(w, http.StatusOK, map[string]string{})
}
