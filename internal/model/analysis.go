package model

import (
	"github.com/capitalize-ai/hivemind/internal/analysis/search"
	"github.com/capitalize-ai/hivemind/internal/analysis/synthesis"
)

// SentimentRequest is the request to analyze a text.
type SentimentRequest struct {
	Text string `json:"text"`
}

// SearchRequest is the request to rank arbitrary items against a query.
type SearchRequest struct {
	Query string        `json:"query"`
	Items []search.Item `json:"items"`
}

// SearchResponse holds ranked items, best match first.
type SearchResponse struct {
	Query   string          `json:"query"`
	Results []search.Scored `json:"results"`
}

// SynthesisRequest is the request to synthesize responses to a prompt. When
// Responses is empty the prompt is sent to the configured providers, optionally
// restricted to Providers.
type SynthesisRequest struct {
	Prompt    string               `json:"prompt"`
	Responses []synthesis.Response `json:"responses,omitempty"`
	Providers []string             `json:"providers,omitempty"`
}

// SynthesisResponse carries the structured result and the rendered report.
type SynthesisResponse struct {
	Prompt    string               `json:"prompt"`
	Responses []synthesis.Response `json:"responses"`
	Result    synthesis.Result     `json:"result"`
	Report    string               `json:"report"`
}

// ListEventsResponse is the response for the activity feed.
type ListEventsResponse struct {
	Events       []ThoughtEvent `json:"events"`
	HasMore      bool           `json:"has_more"`
	LastSequence uint64         `json:"last_sequence"`
}
