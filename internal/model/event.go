package model

import (
	"time"
)

// EventType represents the type of thought board event.
type EventType string

const (
	EventTypeThoughtCreated   EventType = "created"
	EventTypeThoughtLiked     EventType = "liked"
	EventTypeThoughtCommented EventType = "commented"
	EventTypeThoughtStyled    EventType = "styled"
	EventTypeSynthesis        EventType = "synthesis"
)

// ThoughtEvent represents a mutation on the thought board or a completed synthesis.
type ThoughtEvent struct {
	ID        string         `json:"id"`
	ThoughtID string         `json:"thought_id,omitempty"`
	AuthorID  string         `json:"author_id,omitempty"`
	Type      EventType      `json:"type"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Sequence  uint64         `json:"sequence,omitempty"`
}

// ErrorEvent represents an error event sent over SSE.
type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HeartbeatEvent keeps an idle SSE connection alive.
type HeartbeatEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// ReplayCompleteEvent marks the end of an activity replay.
type ReplayCompleteEvent struct {
	LastSequence uint64 `json:"last_sequence"`
	EventCount   int    `json:"event_count"`
}
