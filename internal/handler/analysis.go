// Package handler provides HTTP handlers for the API.
package handler

import (
	"net/http"

	"github.com/capitalize-ai/hivemind/internal/middleware"
	"github.com/capitalize-ai/hivemind/internal/model"
	"github.com/capitalize-ai/hivemind/internal/service"
	"github.com/capitalize-ai/hivemind/pkg/logger"
)

// AnalysisHandler handles the stateless analysis endpoints.
type AnalysisHandler struct {
	service *service.AnalysisService
	logger  *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(svc *service.AnalysisService, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service: svc,
		logger:  log,
	}
}

// Sentiment handles POST /api/v1/analyze/sentiment
func (h *AnalysisHandler) Sentiment(w http.ResponseWriter, r *http.Request) {
	var req model.SentimentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateContent(req.Text); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.service.Sentiment(r.Context(), req.Text))
}

// Search handles POST /api/v1/analyze/search
func (h *AnalysisHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req model.SearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateQuery(req.Query); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateSearchItems(len(req.Items)); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, &model.SearchResponse{
		Query:   req.Query,
		Results: h.service.Rank(r.Context(), req.Query, req.Items),
	})
}
