package handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/capitalize-ai/hivemind/internal/service"
	"github.com/capitalize-ai/hivemind/pkg/logger"
)

// EventHandler serves the activity feed as JSON pages.
type EventHandler struct {
	service *service.ActivityService
	logger  *logger.Logger
}

// NewEventHandler creates a new event handler. svc is nil when the event
// stream is disabled.
func NewEventHandler(svc *service.ActivityService, log *logger.Logger) *EventHandler {
	return &EventHandler{
		service: svc,
		logger:  log,
	}
}

// List handles GET /api/v1/events
// Supports ?after_sequence=N and ?limit=N for pagination.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeError(w, http.StatusServiceUnavailable, "event stream disabled")
		return
	}

	var afterSequence uint64
	if seqStr := r.URL.Query().Get("after_sequence"); seqStr != "" {
		seq, err := strconv.ParseUint(seqStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid after_sequence")
			return
		}
		afterSequence = seq
	}

	resp, err := h.service.Recent(r.Context(), afterSequence, queryInt(r, "limit", 50))
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
