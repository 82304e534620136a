package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/capitalize-ai/hivemind/internal/middleware"
	"github.com/capitalize-ai/hivemind/internal/model"
	"github.com/capitalize-ai/hivemind/internal/service"
	"github.com/capitalize-ai/hivemind/pkg/logger"
)

// ThoughtHandler handles thought board endpoints.
type ThoughtHandler struct {
	service *service.ThoughtService
	logger  *logger.Logger
}

// NewThoughtHandler creates a new thought handler.
func NewThoughtHandler(svc *service.ThoughtService, log *logger.Logger) *ThoughtHandler {
	return &ThoughtHandler{
		service: svc,
		logger:  log,
	}
}

// Create handles POST /api/v1/thoughts
func (h *ThoughtHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateThoughtRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateContent(req.Content); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Style != nil {
		if err := middleware.ValidateStyle(req.Style); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	node, err := h.service.Create(ctx, middleware.GetAuthor(ctx), &req)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create thought")
		return
	}

	writeJSON(w, http.StatusCreated, node)
}

// List handles GET /api/v1/thoughts
func (h *ThoughtHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	writeJSON(w, http.StatusOK, h.service.List(r.Context(), limit, offset))
}

// Get handles GET /api/v1/thoughts/{id}
func (h *ThoughtHandler) Get(w http.ResponseWriter, r *http.Request) {
	thoughtID, ok := thoughtIDParam(w, r)
	if !ok {
		return
	}

	detail, err := h.service.Get(r.Context(), thoughtID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to get thought")
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// Like handles POST /api/v1/thoughts/{id}/like
func (h *ThoughtHandler) Like(w http.ResponseWriter, r *http.Request) {
	thoughtID, ok := thoughtIDParam(w, r)
	if !ok {
		return
	}

	node, err := h.service.Like(r.Context(), thoughtID, middleware.GetAuthorID(r.Context()))
	if err != nil {
		h.writeServiceError(w, r, err, "failed to like thought")
		return
	}

	writeJSON(w, http.StatusOK, node)
}

// Comment handles POST /api/v1/thoughts/{id}/comments
func (h *ThoughtHandler) Comment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	thoughtID, ok := thoughtIDParam(w, r)
	if !ok {
		return
	}

	var req model.CommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateContent(req.Content); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.service.Comment(ctx, thoughtID, middleware.GetAuthor(ctx), &req)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to add comment")
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// Customize handles PUT /api/v1/thoughts/{id}/style
func (h *ThoughtHandler) Customize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	thoughtID, ok := thoughtIDParam(w, r)
	if !ok {
		return
	}

	var style model.VisualStyle
	if err := decodeJSON(w, r, &style); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateStyle(&style); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	node, err := h.service.Customize(ctx, thoughtID, middleware.GetAuthorID(ctx), &style)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to customize thought")
		return
	}

	writeJSON(w, http.StatusOK, node)
}

// Clusters handles GET /api/v1/thoughts/clusters
func (h *ThoughtHandler) Clusters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Clusters(r.Context()))
}

// Trending handles GET /api/v1/thoughts/trending
func (h *ThoughtHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	writeJSON(w, http.StatusOK, map[string]any{
		"thoughts": h.service.Trending(r.Context(), limit),
	})
}

// Search handles GET /api/v1/thoughts/search?q=
func (h *ThoughtHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if err := middleware.ValidateQuery(query); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.service.Search(r.Context(), query, queryInt(r, "limit", 20)))
}

func thoughtIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	thoughtID := chi.URLParam(r, "id")
	if err := middleware.ValidateThoughtID(thoughtID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return thoughtID, true
}

func (h *ThoughtHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case errors.Is(err, service.ErrThoughtNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmptyContent):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotAuthor):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		h.logger.Error(message,
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, message)
	}
}
