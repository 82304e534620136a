package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/hivemind/internal/llm"
	"github.com/capitalize-ai/hivemind/internal/middleware"
	"github.com/capitalize-ai/hivemind/internal/model"
	"github.com/capitalize-ai/hivemind/internal/service"
	"github.com/capitalize-ai/hivemind/pkg/logger"
)

var testAuthor = model.Author{ID: "author-1", Name: "Grace"}

type stubClient struct {
	name    string
	content string
}

func (c *stubClient) Name() string { return c.name }

func (c *stubClient) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{Content: c.content, Model: c.name}, nil
}

type stubEventLog struct {
	events []model.ThoughtEvent
}

func (l *stubEventLog) RecentEvents(ctx context.Context, afterSequence uint64, limit int) ([]model.ThoughtEvent, bool, error) {
	var out []model.ThoughtEvent
	for _, e := range l.events {
		if e.Sequence > afterSequence && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, false, nil
}

type testServer struct {
	router   chi.Router
	thoughts *service.ThoughtService
}

func newTestServer(t *testing.T, clients []llm.Client, events service.EventLog) *testServer {
	t.Helper()
	log := logger.NewNop()

	thoughtSvc := service.NewThoughtService(nil, nil, log)
	synthesisSvc := service.NewSynthesisService(clients, nil, time.Second, 256, log)
	var activitySvc *service.ActivityService
	if events != nil {
		activitySvc = service.NewActivityService(events)
	}

	analysisHandler := NewAnalysisHandler(service.NewAnalysisService(log), log)
	thoughtHandler := NewThoughtHandler(thoughtSvc, log)
	synthesisHandler := NewSynthesisHandler(synthesisSvc, log)
	streamHandler := NewStreamHandler(synthesisSvc, activitySvc, log)
	eventHandler := NewEventHandler(activitySvc, log)
	healthHandler := NewHealthHandler(nil, synthesisSvc.Providers())

	r := chi.NewRouter()
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(middleware.WithAuthor(r.Context(), testAuthor)))
			})
		})
		r.Post("/analyze/sentiment", analysisHandler.Sentiment)
		r.Post("/analyze/search", analysisHandler.Search)
		r.Post("/synthesis", synthesisHandler.Synthesize)
		r.Get("/synthesis/providers", synthesisHandler.Providers)
		r.Post("/synthesis/stream", streamHandler.Synthesis)
		r.Get("/events", eventHandler.List)
		r.Route("/thoughts", func(r chi.Router) {
			r.Post("/", thoughtHandler.Create)
			r.Get("/", thoughtHandler.List)
			r.Get("/search", thoughtHandler.Search)
			r.Get("/trending", thoughtHandler.Trending)
			r.Get("/clusters", thoughtHandler.Clusters)
			r.Get("/{id}", thoughtHandler.Get)
			r.Post("/{id}/like", thoughtHandler.Like)
			r.Post("/{id}/comments", thoughtHandler.Comment)
			r.Put("/{id}/style", thoughtHandler.Customize)
		})
	})

	return &testServer{router: r, thoughts: thoughtSvc}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, []llm.Client{&stubClient{name: "openai"}}, nil)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health", nil).Code)

	rec := s.do(t, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, false, body["event_stream"])
	assert.Equal(t, []any{"openai"}, body["providers"])
}

func TestAnalysisHandler(t *testing.T) {
	s := newTestServer(t, nil, nil)

	t.Run("sentiment", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/analyze/sentiment", model.SentimentRequest{Text: "This is a great and wonderful idea"})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[map[string]any](t, rec)
		assert.Equal(t, "Very Positive", body["label"])
	})

	t.Run("sentiment rejects empty text", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/analyze/sentiment", model.SentimentRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sentiment rejects malformed body", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/analyze/sentiment", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("search", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/analyze/search", map[string]any{
			"query": "open data",
			"items": []map[string]string{
				{"id": "a", "text": "closed systems"},
				{"id": "b", "text": "open data commons"},
			},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[model.SearchResponse](t, rec)
		require.Len(t, body.Results, 2)
		assert.Equal(t, "b", body.Results[0].Item.ID)
		assert.InDelta(t, 1.0, body.Results[0].Score, 1e-9)
		assert.InDelta(t, 0.0, body.Results[1].Score, 1e-9)
	})
}

func TestThoughtHandler(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := s.do(t, http.MethodPost, "/thoughts/", map[string]any{
		"content":    "Open science accelerates discovery",
		"cluster_id": "cluster3",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.ThoughtNode](t, rec)
	assert.Equal(t, testAuthor, created.Author)

	t.Run("get", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/thoughts/"+created.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, created.ID, decode[model.ThoughtDetail](t, rec).ID)
	})

	t.Run("get unknown", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/thoughts/unknown-id", nil).Code)
	})

	t.Run("get invalid id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/thoughts/bad%20id", nil).Code)
	})

	t.Run("whitespace content", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/thoughts/", map[string]string{"content": "   "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("like and comment", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/thoughts/"+created.ID+"/like", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, decode[model.ThoughtNode](t, rec).Likes)

		rec = s.do(t, http.MethodPost, "/thoughts/"+created.ID+"/comments", model.CommentRequest{Content: "Agreed"})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Agreed", decode[model.Comment](t, rec).Content)
	})

	t.Run("customize", func(t *testing.T) {
		rec := s.do(t, http.MethodPut, "/thoughts/"+created.ID+"/style", model.VisualStyle{Color: "#123456"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "#123456", decode[model.ThoughtNode](t, rec).Style.Color)
	})

	t.Run("customize someone else's thought", func(t *testing.T) {
		s.thoughts.Seed(context.Background(), []model.ThoughtNode{
			{ID: "seed-1", Content: "Not yours", Author: model.Author{ID: "other"}},
		})
		rec := s.do(t, http.MethodPut, "/thoughts/seed-1/style", model.VisualStyle{Color: "#000000"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("clusters", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/thoughts/clusters", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[model.ListClustersResponse](t, rec)
		require.Len(t, body.Clusters, 1)
		assert.Equal(t, "Cluster 3", body.Clusters[0].Name)
		// 1 like + 1 comment + 10 recency
		assert.Equal(t, 12, body.Clusters[0].TrendingScore)
	})

	t.Run("trending and search", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/thoughts/trending?limit=1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[map[string][]model.RankedThought](t, rec)["thoughts"], 1)

		rec = s.do(t, http.MethodGet, "/thoughts/search?q=open+science", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		results := decode[model.SearchThoughtsResponse](t, rec).Results
		require.Len(t, results, 1)
		assert.Equal(t, created.ID, results[0].Thought.ID)
	})

	t.Run("list", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/thoughts/?limit=1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[model.ListThoughtsResponse](t, rec)
		assert.Len(t, body.Thoughts, 1)
		assert.Equal(t, 2, body.Total)
		assert.True(t, body.HasMore)
	})
}

const (
	answerA = "Teams should adopt asynchronous communication for distributed work. " +
		"Meetings are definitely the largest drain on focused engineering time."
	answerB = "Teams should adopt asynchronous communication for distributed work. " +
		"Perhaps a weekly sync still helps maintain shared context across teams."
)

func TestSynthesisHandler(t *testing.T) {
	clients := []llm.Client{
		&stubClient{name: "openai", content: answerA},
		&stubClient{name: "anthropic", content: answerB},
	}
	s := newTestServer(t, clients, nil)

	t.Run("fan out", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/synthesis", model.SynthesisRequest{Prompt: "How should remote teams work?"})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[model.SynthesisResponse](t, rec)
		assert.Len(t, body.Responses, 2)
		assert.NotEmpty(t, body.Result.Consensus)
		assert.Contains(t, body.Report, "How should remote teams work?")
	})

	t.Run("validation", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/synthesis", model.SynthesisRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("providers", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/synthesis/providers", nil)
		assert.Equal(t, []string{"openai", "anthropic"}, decode[map[string][]string](t, rec)["providers"])
	})

	t.Run("no providers", func(t *testing.T) {
		empty := newTestServer(t, nil, nil)
		rec := empty.do(t, http.MethodPost, "/synthesis", model.SynthesisRequest{Prompt: "anyone?"})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestStreamHandler_Synthesis(t *testing.T) {
	clients := []llm.Client{
		&stubClient{name: "openai", content: answerA},
		&stubClient{name: "anthropic", content: answerB},
	}
	s := newTestServer(t, clients, nil)

	rec := s.do(t, http.MethodPost, "/synthesis/stream", model.SynthesisRequest{Prompt: "How should remote teams work?"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, "event: response\n"))

	connected := strings.Index(body, "event: connected\n")
	synthesized := strings.Index(body, "event: synthesis\n")
	done := strings.Index(body, "event: done\n")
	assert.Equal(t, 0, connected)
	assert.Greater(t, synthesized, strings.LastIndex(body, "event: response\n"))
	assert.Greater(t, done, synthesized)
}

func TestEventHandler(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		s := newTestServer(t, nil, nil)
		assert.Equal(t, http.StatusServiceUnavailable, s.do(t, http.MethodGet, "/events", nil).Code)
	})

	t.Run("pages events", func(t *testing.T) {
		s := newTestServer(t, nil, &stubEventLog{events: []model.ThoughtEvent{
			{ID: "e1", Type: model.EventTypeThoughtCreated, Sequence: 1},
			{ID: "e2", Type: model.EventTypeThoughtLiked, Sequence: 2},
		}})

		rec := s.do(t, http.MethodGet, "/events?after_sequence=1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[model.ListEventsResponse](t, rec)
		require.Len(t, body.Events, 1)
		assert.Equal(t, "e2", body.Events[0].ID)
		assert.Equal(t, uint64(2), body.LastSequence)

		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/events?after_sequence=x", nil).Code)
	})
}
