package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/capitalize-ai/hivemind/internal/middleware"
	"github.com/capitalize-ai/hivemind/internal/model"
	"github.com/capitalize-ai/hivemind/internal/service"
	"github.com/capitalize-ai/hivemind/pkg/logger"
)

// SynthesisHandler handles multi-source synthesis endpoints.
type SynthesisHandler struct {
	service *service.SynthesisService
	logger  *logger.Logger
}

// NewSynthesisHandler creates a new synthesis handler.
func NewSynthesisHandler(svc *service.SynthesisService, log *logger.Logger) *SynthesisHandler {
	return &SynthesisHandler{
		service: svc,
		logger:  log,
	}
}

// Synthesize handles POST /api/v1/synthesis
func (h *SynthesisHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeSynthesisRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Synthesize(ctx, middleware.GetAuthorID(ctx), req)
	if err != nil {
		if errors.Is(err, service.ErrNoProviders) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		h.logger.Error("synthesis failed",
			zap.String("correlation_id", middleware.GetCorrelationID(ctx)),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "synthesis failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Providers handles GET /api/v1/synthesis/providers
func (h *SynthesisHandler) Providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"providers": h.service.Providers(),
	})
}

func decodeSynthesisRequest(w http.ResponseWriter, r *http.Request) (*model.SynthesisRequest, bool) {
	var req model.SynthesisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	if err := middleware.ValidatePrompt(req.Prompt); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if err := middleware.ValidateResponses(req.Responses); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	return &req, true
}
