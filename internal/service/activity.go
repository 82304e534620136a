package service

import (
	"context"
	"fmt"

	"github.com/capitalize-ai/hivemind/internal/model"
)

// EventLog reads published events back in stream order.
type EventLog interface {
	RecentEvents(ctx context.Context, afterSequence uint64, limit int) ([]model.ThoughtEvent, bool, error)
}

// ActivityService serves the board activity feed from the event stream.
type ActivityService struct {
	events EventLog
}

// NewActivityService creates a new activity service.
func NewActivityService(events EventLog) *ActivityService {
	return &ActivityService{events: events}
}

// Recent returns events published after afterSequence.
func (s *ActivityService) Recent(ctx context.Context, afterSequence uint64, limit int) (*model.ListEventsResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	events, hasMore, err := s.events.RecentEvents(ctx, afterSequence, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	lastSeq := afterSequence
	if len(events) > 0 {
		lastSeq = events[len(events)-1].Sequence
	}

	return &model.ListEventsResponse{
		Events:       events,
		HasMore:      hasMore,
		LastSequence: lastSeq,
	}, nil
}
