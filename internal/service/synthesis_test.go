package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/hivemind/internal/analysis/synthesis"
	"github.com/capitalize-ai/hivemind/internal/llm"
	"github.com/capitalize-ai/hivemind/internal/model"
	"github.com/capitalize-ai/hivemind/pkg/logger"
)

const (
	openaiAnswer = "You should use renewable energy sources for long term savings. " +
		"Solar power is definitely the most accessible option for homeowners today."
	anthropicAnswer = "You should use renewable energy sources for long term savings. " +
		"Wind turbines might be a better option for rural properties with open land."
)

func newTestSynthesisService(pub EventPublisher, timeout time.Duration, clients ...llm.Client) *SynthesisService {
	return NewSynthesisService(clients, pub, timeout, 512, logger.NewNop())
}

func TestSynthesisService_SuppliedResponses(t *testing.T) {
	pub := &fakePublisher{}
	client := &fakeClient{name: "openai", content: openaiAnswer}
	s := newTestSynthesisService(pub, time.Second, client)

	resp, err := s.Synthesize(context.Background(), "user-1", &model.SynthesisRequest{
		Prompt: "How should I power my home?",
		Responses: []synthesis.Response{
			{Source: "gpt", Text: openaiAnswer},
			{Source: "claude", Text: anthropicAnswer},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, client.requests, "supplied responses must not reach providers")
	assert.Len(t, resp.Responses, 2)
	assert.NotEmpty(t, resp.Result.KeyPoints)
	assert.NotEmpty(t, resp.Result.Consensus)
	assert.Contains(t, resp.Report, "How should I power my home?")
	assert.Equal(t, []model.EventType{model.EventTypeSynthesis}, pub.types())
	assert.Equal(t, "user-1", pub.events[0].AuthorID)
}

func TestSynthesisService_FanOut(t *testing.T) {
	openai := &fakeClient{name: "openai", content: openaiAnswer}
	anthropic := &fakeClient{name: "anthropic", content: anthropicAnswer}
	s := newTestSynthesisService(nil, time.Second, openai, anthropic)

	resp, err := s.Synthesize(context.Background(), "user-1", &model.SynthesisRequest{Prompt: "How should I power my home?"})
	require.NoError(t, err)

	require.Len(t, resp.Responses, 2)
	assert.Equal(t, "openai", resp.Responses[0].Source)
	assert.Equal(t, "anthropic", resp.Responses[1].Source)

	require.Len(t, openai.requests, 1)
	assert.Equal(t, "How should I power my home?", openai.requests[0].Messages[0].Content)
	assert.Equal(t, 512, openai.requests[0].MaxTokens)
	assert.NotEmpty(t, resp.Result.Consensus)
}

func TestSynthesisService_ProviderFailure(t *testing.T) {
	openai := &fakeClient{name: "openai", content: openaiAnswer}
	broken := &fakeClient{name: "anthropic", err: errUnavailable}
	s := newTestSynthesisService(nil, time.Second, openai, broken)

	resp, err := s.Synthesize(context.Background(), "", &model.SynthesisRequest{Prompt: "power?"})
	require.NoError(t, err)

	require.Len(t, resp.Responses, 2)
	assert.Equal(t, "Error connecting to anthropic: service unavailable", resp.Responses[1].Text)
	assert.True(t, synthesis.IsError(resp.Responses[1]))
	for _, kp := range resp.Result.KeyPoints {
		assert.Equal(t, "openai", kp.Source)
	}
}

func TestSynthesisService_ProviderTimeout(t *testing.T) {
	slow := &fakeClient{name: "openai", block: true}
	s := newTestSynthesisService(nil, 20*time.Millisecond, slow)

	resp, err := s.Synthesize(context.Background(), "", &model.SynthesisRequest{Prompt: "power?"})
	require.NoError(t, err)

	require.Len(t, resp.Responses, 1)
	assert.Contains(t, resp.Responses[0].Text, "Error connecting to openai")
	assert.Empty(t, resp.Result.KeyPoints)
}

func TestSynthesisService_ProviderSelection(t *testing.T) {
	openai := &fakeClient{name: "openai", content: openaiAnswer}
	anthropic := &fakeClient{name: "anthropic", content: anthropicAnswer}
	s := newTestSynthesisService(nil, time.Second, openai, anthropic)

	assert.Equal(t, []string{"openai", "anthropic"}, s.Providers())

	resp, err := s.Synthesize(context.Background(), "", &model.SynthesisRequest{
		Prompt:    "power?",
		Providers: []string{"anthropic"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Responses, 1)
	assert.Equal(t, "anthropic", resp.Responses[0].Source)
	assert.Empty(t, openai.requests)

	_, err = s.Synthesize(context.Background(), "", &model.SynthesisRequest{
		Prompt:    "power?",
		Providers: []string{"gemini"},
	})
	assert.ErrorIs(t, err, ErrNoProviders)

	empty := newTestSynthesisService(nil, time.Second)
	_, err = empty.Synthesize(context.Background(), "", &model.SynthesisRequest{Prompt: "power?"})
	assert.ErrorIs(t, err, ErrNoProviders)
}

func TestSynthesisService_Stream(t *testing.T) {
	openai := &fakeClient{name: "openai", content: openaiAnswer}
	anthropic := &fakeClient{name: "anthropic", content: anthropicAnswer}
	s := newTestSynthesisService(nil, time.Second, openai, anthropic)

	t.Run("reports every response", func(t *testing.T) {
		var seen []string
		var indexes []int
		resp, err := s.SynthesizeStream(context.Background(), "", &model.SynthesisRequest{Prompt: "power?"},
			func(r synthesis.Response, index int) error {
				seen = append(seen, r.Source)
				indexes = append(indexes, index)
				return nil
			})
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"openai", "anthropic"}, seen)
		assert.Equal(t, []int{0, 1}, indexes)
		assert.Equal(t, "openai", resp.Responses[0].Source)
	})

	t.Run("supplied responses in order", func(t *testing.T) {
		var seen []string
		_, err := s.SynthesizeStream(context.Background(), "", &model.SynthesisRequest{
			Prompt: "power?",
			Responses: []synthesis.Response{
				{Source: "b", Text: anthropicAnswer},
				{Source: "a", Text: openaiAnswer},
			},
		}, func(r synthesis.Response, index int) error {
			seen = append(seen, r.Source)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, seen)
	})

	t.Run("callback error aborts", func(t *testing.T) {
		stop := errors.New("client went away")
		_, err := s.SynthesizeStream(context.Background(), "", &model.SynthesisRequest{Prompt: "power?"},
			func(r synthesis.Response, index int) error { return stop })
		assert.ErrorIs(t, err, stop)
	})
}
