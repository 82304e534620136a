// Package synthesis merges several labeled AI responses into key points,
// contradictions, consensus statements and action items, and renders the
// result as a plain-text report.
//
// Every function is pure. Contradiction detection is quadratic in the size of
// each topic group and consensus clustering is quadratic in the number of key
// points; MaxResponses and MaxSentences bound both.
package synthesis

import (
	"strings"

	"github.com/montanaflynn/stats"
)

const (
	// MaxResponses is the number of responses considered per call.
	MaxResponses = 16
	// MaxSentences is the number of sentences considered per response.
	MaxSentences = 200

	// errorSentinel marks a response from a provider that could not be reached.
	errorSentinel = "Error connecting"
)

// PointType classifies a key point.
type PointType string

const (
	TypeFactual        PointType = "factual"
	TypeAnalytical     PointType = "analytical"
	TypeSpeculative    PointType = "speculative"
	TypeRecommendation PointType = "recommendation"
)

// Response is the text one source produced for a prompt.
type Response struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// KeyPoint is a classified sentence taken from a response.
type KeyPoint struct {
	Text       string    `json:"text"`
	Source     string    `json:"source"`
	Confidence float64   `json:"confidence"`
	Type       PointType `json:"type"`
}

// Position is one source's stance within a contradiction.
type Position struct {
	Source string `json:"source"`
	Stance string `json:"stance"`
}

// Contradiction is a topic on which sources used opposite phrasing.
type Contradiction struct {
	Topic     string     `json:"topic"`
	Positions []Position `json:"positions"`
}

// Result is the aggregate produced by Synthesize.
type Result struct {
	KeyPoints      []KeyPoint      `json:"key_points"`
	Contradictions []Contradiction `json:"contradictions"`
	Consensus      []string        `json:"consensus"`
	ActionItems    []string        `json:"action_items"`

	// Confidence is the mean confidence of KeyPoints, 0 when there are none.
	Confidence float64 `json:"confidence"`
}

// Synthesize merges responses. Responses containing "Error connecting" are
// skipped; when every response is skipped the result is empty.
func Synthesize(responses []Response) Result {
	responses = bound(responses)

	var all []KeyPoint
	for _, r := range responses {
		all = append(all, ExtractKeyPoints(r)...)
	}

	unique := Deduplicate(all)

	return Result{
		KeyPoints:      unique,
		Contradictions: IdentifyContradictions(all),
		Consensus:      FindConsensus(all, len(responses)),
		ActionItems:    ExtractActionItems(responses),
		Confidence:     meanConfidence(unique),
	}
}

// IsError reports whether a response is an unreachable-provider placeholder.
func IsError(r Response) bool {
	return strings.Contains(r.Text, errorSentinel)
}

func bound(responses []Response) []Response {
	if len(responses) > MaxResponses {
		return responses[:MaxResponses]
	}
	return responses
}

func meanConfidence(points []KeyPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	data := make(stats.Float64Data, len(points))
	for i, p := range points {
		data[i] = p.Confidence
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return 0
	}
	return mean
}
