package handler

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/capitalize-ai/hivemind/internal/analysis/synthesis"
	"github.com/capitalize-ai/hivemind/internal/middleware"
	"github.com/capitalize-ai/hivemind/internal/model"
	"github.com/capitalize-ai/hivemind/internal/service"
	"github.com/capitalize-ai/hivemind/pkg/logger"
	"github.com/capitalize-ai/hivemind/pkg/metrics"
)

const (
	heartbeatInterval = 30 * time.Second
	replayBatchSize   = 50
)

// StreamHandler handles SSE streaming endpoints.
type StreamHandler struct {
	synthesisService *service.SynthesisService
	activityService  *service.ActivityService
	logger           *logger.Logger
	heartbeat        time.Duration
}

// NewStreamHandler creates a new stream handler. activitySvc is nil when the
// event stream is disabled.
func NewStreamHandler(
	synthesisSvc *service.SynthesisService,
	activitySvc *service.ActivityService,
	log *logger.Logger,
) *StreamHandler {
	return &StreamHandler{
		synthesisService: synthesisSvc,
		activityService:  activitySvc,
		logger:           log,
		heartbeat:        heartbeatInterval,
	}
}

// ResponseEvent carries one provider response during a streamed synthesis.
type ResponseEvent struct {
	Index    int                `json:"index"`
	Response synthesis.Response `json:"response"`
	Failed   bool               `json:"failed"`
}

// Synthesis handles POST /api/v1/synthesis/stream
// Emits connected, one response event per source, synthesis and done.
func (h *StreamHandler) Synthesis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeSynthesisRequest(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	setSSEHeaders(w)

	metrics.IncrementSSEConnections()
	defer metrics.DecrementSSEConnections()

	sources := h.synthesisService.Providers()
	if len(req.Responses) > 0 {
		sources = make([]string, len(req.Responses))
		for i, resp := range req.Responses {
			sources[i] = resp.Source
		}
	}
	sendSSEEvent(w, flusher, "connected", map[string]any{
		"correlation_id": middleware.GetCorrelationID(ctx),
		"sources":        sources,
	})

	resp, err := h.synthesisService.SynthesizeStream(ctx, middleware.GetAuthorID(ctx), req,
		func(resp synthesis.Response, index int) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			return sendSSEEvent(w, flusher, "response", &ResponseEvent{
				Index:    index,
				Response: resp,
				Failed:   synthesis.IsError(resp),
			})
		},
	)
	if err != nil {
		h.logger.Warn("synthesis stream failed",
			zap.String("correlation_id", middleware.GetCorrelationID(ctx)),
			zap.Error(err),
		)
		sendSSEEvent(w, flusher, "error", &model.ErrorEvent{
			Code:    "synthesis_error",
			Message: err.Error(),
		})
		return
	}

	sendSSEEvent(w, flusher, "synthesis", resp)
	sendSSEEvent(w, flusher, "done", map[string]bool{"success": true})
}

// Activity handles GET /api/v1/events/stream
// Supports ?after_sequence=N for resuming from a specific point.
func (h *StreamHandler) Activity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.activityService == nil {
		writeError(w, http.StatusServiceUnavailable, "event stream disabled")
		return
	}

	var afterSequence uint64
	if seqStr := r.URL.Query().Get("after_sequence"); seqStr != "" {
		if seq, err := strconv.ParseUint(seqStr, 10, 64); err == nil {
			afterSequence = seq
		}
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	setSSEHeaders(w)

	metrics.IncrementSSEConnections()
	defer metrics.DecrementSSEConnections()

	done := ctx.Done()

	sendSSEEvent(w, flusher, "connected", map[string]uint64{
		"after_sequence": afterSequence,
	})

	lastSequence := afterSequence
	var totalReplayed int

	for {
		resp, err := h.activityService.Recent(ctx, lastSequence, replayBatchSize)
		if err != nil {
			h.logger.Error("failed to replay events", zap.Error(err))
			sendSSEEvent(w, flusher, "error", &model.ErrorEvent{
				Code:    "replay_error",
				Message: "Failed to replay events",
			})
			break
		}

		for _, event := range resp.Events {
			select {
			case <-done:
				return
			default:
			}

			sendSSEEvent(w, flusher, "event", event)
			totalReplayed++
		}
		lastSequence = resp.LastSequence

		if !resp.HasMore || len(resp.Events) == 0 {
			break
		}
	}

	sendSSEEvent(w, flusher, "replay_complete", &model.ReplayCompleteEvent{
		LastSequence: lastSequence,
		EventCount:   totalReplayed,
	})

	h.logger.Debug("event replay complete",
		zap.Int("events_replayed", totalReplayed),
		zap.Uint64("last_sequence", lastSequence),
	)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return

		case <-ticker.C:
			// Poll for events published since the last one sent.
			resp, err := h.activityService.Recent(ctx, lastSequence, replayBatchSize)
			if err == nil {
				for _, event := range resp.Events {
					sendSSEEvent(w, flusher, "event", event)
				}
				lastSequence = resp.LastSequence
			}

			sendSSEEvent(w, flusher, "heartbeat", &model.HeartbeatEvent{
				Timestamp: time.Now(),
			})
		}
	}
}
