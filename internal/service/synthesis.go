package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/capitalize-ai/hivemind/internal/analysis/synthesis"
	"github.com/capitalize-ai/hivemind/internal/llm"
	"github.com/capitalize-ai/hivemind/internal/model"
	"github.com/capitalize-ai/hivemind/pkg/logger"
	"github.com/capitalize-ai/hivemind/pkg/metrics"
)

// ErrNoProviders is returned when a prompt must be fanned out but no
// requested provider is configured.
var ErrNoProviders = errors.New("no LLM providers available")

var tracer = otel.Tracer("github.com/capitalize-ai/hivemind/internal/service")

// ResponseCallback is called for each provider response as it arrives.
type ResponseCallback func(resp synthesis.Response, index int) error

// SynthesisService gathers provider responses and merges them.
type SynthesisService struct {
	clients   []llm.Client
	publisher EventPublisher
	timeout   time.Duration
	maxTokens int
	logger    *logger.Logger
}

// NewSynthesisService creates a new synthesis service. clients are queried in
// the given order, which is also the order of responses in the report.
func NewSynthesisService(
	clients []llm.Client,
	publisher EventPublisher,
	timeout time.Duration,
	maxTokens int,
	log *logger.Logger,
) *SynthesisService {
	return &SynthesisService{
		clients:   clients,
		publisher: publisher,
		timeout:   timeout,
		maxTokens: maxTokens,
		logger:    log.Named("synthesis"),
	}
}

// Providers returns the names of the configured providers.
func (s *SynthesisService) Providers() []string {
	names := make([]string, len(s.clients))
	for i, c := range s.clients {
		names[i] = c.Name()
	}
	return names
}

// Synthesize merges the supplied responses, or the responses of the
// configured providers when none are supplied.
func (s *SynthesisService) Synthesize(ctx context.Context, authorID string, req *model.SynthesisRequest) (*model.SynthesisResponse, error) {
	return s.run(ctx, "sync", authorID, req, nil)
}

// SynthesizeStream is Synthesize with onResponse called for every response
// before the merge. Supplied responses are reported in order.
func (s *SynthesisService) SynthesizeStream(ctx context.Context, authorID string, req *model.SynthesisRequest, onResponse ResponseCallback) (*model.SynthesisResponse, error) {
	return s.run(ctx, "stream", authorID, req, onResponse)
}

func (s *SynthesisService) run(ctx context.Context, mode, authorID string, req *model.SynthesisRequest, onResponse ResponseCallback) (*model.SynthesisResponse, error) {
	start := time.Now()

	ctx, span := tracer.Start(ctx, "synthesis."+mode)
	defer span.End()

	responses := req.Responses
	if len(responses) > 0 {
		for i, r := range responses {
			if onResponse == nil {
				break
			}
			if err := onResponse(r, i); err != nil {
				return nil, err
			}
		}
	} else {
		var err error
		responses, err = s.gather(ctx, req.Prompt, req.Providers, onResponse)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	result := synthesis.Synthesize(responses)
	report := synthesis.Render(req.Prompt, responses, result)

	span.SetAttributes(
		attribute.Int("synthesis.responses", len(responses)),
		attribute.Int("synthesis.key_points", len(result.KeyPoints)),
		attribute.Int("synthesis.contradictions", len(result.Contradictions)),
	)
	metrics.RecordSynthesis(mode, time.Since(start).Seconds(), len(result.KeyPoints))

	s.logger.Info("synthesis completed",
		zap.String("mode", mode),
		zap.Int("responses", len(responses)),
		zap.Int("key_points", len(result.KeyPoints)),
		zap.Int("consensus", len(result.Consensus)),
		zap.Int("contradictions", len(result.Contradictions)),
		zap.Duration("duration", time.Since(start)),
	)

	publishEvent(ctx, s.publisher, s.logger, &model.ThoughtEvent{
		ID:       uuid.Must(uuid.NewV7()).String(),
		AuthorID: authorID,
		Type:     model.EventTypeSynthesis,
		Metadata: map[string]any{
			"responses":      len(responses),
			"key_points":     len(result.KeyPoints),
			"consensus":      len(result.Consensus),
			"contradictions": len(result.Contradictions),
			"confidence":     result.Confidence,
		},
		CreatedAt: time.Now(),
	})

	return &model.SynthesisResponse{
		Prompt:    req.Prompt,
		Responses: responses,
		Result:    result,
		Report:    report,
	}, nil
}

// gather sends prompt to every selected provider concurrently. A failed
// provider yields an "Error connecting to" response, which synthesis skips.
// The returned slice follows provider order; onResponse sees arrival order.
func (s *SynthesisService) gather(ctx context.Context, prompt string, providers []string, onResponse ResponseCallback) ([]synthesis.Response, error) {
	clients := s.selectClients(providers)
	if len(clients) == 0 {
		return nil, ErrNoProviders
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type arrival struct {
		index    int
		response synthesis.Response
	}
	arrivals := make(chan arrival, len(clients))

	for i, client := range clients {
		go func(i int, client llm.Client) {
			arrivals <- arrival{index: i, response: s.ask(ctx, client, prompt)}
		}(i, client)
	}

	responses := make([]synthesis.Response, len(clients))
	for n := 0; n < len(clients); n++ {
		a := <-arrivals
		responses[a.index] = a.response
		if onResponse != nil {
			if err := onResponse(a.response, n); err != nil {
				return nil, err
			}
		}
	}

	return responses, nil
}

func (s *SynthesisService) ask(ctx context.Context, client llm.Client, prompt string) synthesis.Response {
	ctx, span := tracer.Start(ctx, "llm.complete")
	defer span.End()
	span.SetAttributes(attribute.String("llm.provider", client.Name()))

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := client.Complete(ctx, llm.UserPrompt(prompt, s.maxTokens))
	if err != nil {
		metrics.RecordLLMRequest(client.Name(), "error", time.Since(start).Seconds(), 0, 0)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn("provider request failed",
			zap.String("provider", client.Name()),
			zap.Error(err),
		)
		return synthesis.Response{
			Source: client.Name(),
			Text:   fmt.Sprintf("Error connecting to %s: %v", client.Name(), err),
		}
	}

	metrics.RecordLLMRequest(client.Name(), "success", time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)
	return synthesis.Response{Source: client.Name(), Text: resp.Content}
}

// selectClients returns the configured clients named in providers, or all of
// them when providers is empty.
func (s *SynthesisService) selectClients(providers []string) []llm.Client {
	if len(providers) == 0 {
		return s.clients
	}

	wanted := make(map[string]bool, len(providers))
	for _, p := range providers {
		wanted[p] = true
	}

	var selected []llm.Client
	for _, c := range s.clients {
		if wanted[c.Name()] {
			selected = append(selected, c)
		}
	}
	return selected
}
