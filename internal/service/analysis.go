package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/capitalize-ai/hivemind/internal/analysis/search"
	"github.com/capitalize-ai/hivemind/internal/analysis/sentiment"
	"github.com/capitalize-ai/hivemind/pkg/logger"
	"github.com/capitalize-ai/hivemind/pkg/metrics"
)

// AnalysisService exposes the stateless text engines.
type AnalysisService struct {
	logger *logger.Logger
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(log *logger.Logger) *AnalysisService {
	return &AnalysisService{logger: log.Named("analysis")}
}

// Sentiment scores the sentiment of text.
func (s *AnalysisService) Sentiment(ctx context.Context, text string) sentiment.Result {
	result := sentiment.Analyze(text)

	metrics.SentimentAnalysesTotal.WithLabelValues(result.Label).Inc()
	s.logger.Debug("sentiment analyzed",
		zap.Int("bytes", len(text)),
		zap.String("label", result.Label),
		zap.Float64("score", result.Score),
	)

	return result
}

// Rank orders items by lexical overlap with query.
func (s *AnalysisService) Rank(ctx context.Context, query string, items []search.Item) []search.Scored {
	ranked := search.Rank(query, items)

	metrics.SearchesTotal.WithLabelValues("items").Inc()
	s.logger.Debug("items ranked", zap.String("query", query), zap.Int("items", len(items)))

	return ranked
}
