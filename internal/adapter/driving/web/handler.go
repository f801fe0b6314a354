// Package web implements the HTML hover driving adapter using templ components.
package web

import (
	"context"
	"log/slog"
	"net/http"

	httphandler "github.com/ericfisherdev/approverhover/internal/adapter/driving/http"
)

// Handler is the web driving adapter that serves hover cards as HTML.
type Handler struct {
	resolver         httphandler.HoverResolver
	defaultWorkspace string
	logger           *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(resolver httphandler.HoverResolver, defaultWorkspace string, logger *slog.Logger) *Handler {
	return &Handler{
		resolver:         resolver,
		defaultWorkspace: defaultWorkspace,
		logger:           logger,
	}
}

// Hover renders the hover card for the requested line. It accepts the same
// query parameters as the JSON approvers endpoint.
func (h *Handler) Hover(w http.ResponseWriter, r *http.Request) {
	query, _, err := httphandler.ParseHoverRequest(r, h.defaultWorkspace)
	if err != nil {
		http.Error(w, err.Error(), httphandler.StatusForParseError(err))
		return
	}

	result := h.resolver.Resolve(context.WithoutCancel(r.Context()), query)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := HoverCard(result).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render hover card", "error", err)
	}
}
