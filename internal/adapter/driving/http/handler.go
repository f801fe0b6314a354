package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/approverhover/internal/domain/model"
)

// HoverResolver resolves the approvers of a single line.
type HoverResolver interface {
	Resolve(ctx context.Context, q model.LineQuery) model.HoverResult
}

// Handler is the HTTP driving adapter that serves the REST API editor plugins call.
type Handler struct {
	resolver         HoverResolver
	defaultWorkspace string
	logger           *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. defaultWorkspace
// is used as the repository root when a request does not pass one.
func NewHandler(resolver HoverResolver, defaultWorkspace string, logger *slog.Logger) *Handler {
	return &Handler{
		resolver:         resolver,
		defaultWorkspace: defaultWorkspace,
		logger:           logger,
	}
}

// RegisterAPIRoutes registers all REST API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/approvers", h.GetApprovers)
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// ApplyMiddleware wraps handler with recovery and request logging.
func ApplyMiddleware(handler http.Handler, logger *slog.Logger) http.Handler {
	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, handler)
	return loggingMiddleware(logger, wrapped)
}

// Position is a 0-based editor position.
type Position struct {
	Line      int
	Character int
}

// ErrRootOutsideWorkspace is returned when a request names a repository root
// outside the configured workspace.
var ErrRootOutsideWorkspace = errors.New("root must be inside the configured workspace")

// ParseHoverRequest reads path, line (0-based), character and root from the
// query string. Relative paths are resolved against the repository root, and
// the root must lie within the workspace.
func ParseHoverRequest(r *http.Request, defaultWorkspace string) (model.LineQuery, Position, error) {
	q := r.URL.Query()

	path := strings.TrimSpace(q.Get("path"))
	if path == "" {
		return model.LineQuery{}, Position{}, errors.New("path is required")
	}

	line, err := strconv.Atoi(q.Get("line"))
	if err != nil || line < 0 {
		return model.LineQuery{}, Position{}, errors.New("line must be a non-negative integer")
	}

	character := 0
	if v := q.Get("character"); v != "" {
		character, err = strconv.Atoi(v)
		if err != nil || character < 0 {
			return model.LineQuery{}, Position{}, errors.New("character must be a non-negative integer")
		}
	}

	root, err := confineRoot(strings.TrimSpace(q.Get("root")), defaultWorkspace)
	if err != nil {
		return model.LineQuery{}, Position{}, err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	lq, err := model.NewLineQuery(root, path, line)
	if err != nil {
		return model.LineQuery{}, Position{}, err
	}
	return lq, Position{Line: line, Character: character}, nil
}

// confineRoot returns the repository root for a request. An empty root means
// the workspace itself; a relative one is taken from the workspace. git only
// ever runs inside the workspace tree.
func confineRoot(root, workspace string) (string, error) {
	if workspace == "" {
		return "", errors.New("root is required")
	}
	workspace = filepath.Clean(workspace)
	if root == "" {
		return workspace, nil
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(workspace, root)
	}
	root = filepath.Clean(root)

	rel, err := filepath.Rel(workspace, root)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrRootOutsideWorkspace
	}
	return root, nil
}

// GetApprovers resolves who approved the change behind the requested line.
// The resolution is detached from the request's cancellation: an abandoned
// hover runs to completion and its result is dropped.
func (h *Handler) GetApprovers(w http.ResponseWriter, r *http.Request) {
	query, pos, err := ParseHoverRequest(r, h.defaultWorkspace)
	if err != nil {
		writeError(w, StatusForParseError(err), err.Error())
		return
	}

	result := h.resolver.Resolve(context.WithoutCancel(r.Context()), query)

	writeJSON(w, http.StatusOK, toHoverResponse(result, pos))
}

// StatusForParseError maps a ParseHoverRequest error to an HTTP status.
func StatusForParseError(err error) int {
	if errors.Is(err, ErrRootOutsideWorkspace) {
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}

// Health returns a simple liveness response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
