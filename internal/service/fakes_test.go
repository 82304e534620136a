package service

import (
	"context"
	"errors"
	"sync"

	"github.com/capitalize-ai/hivemind/internal/llm"
	"github.com/capitalize-ai/hivemind/internal/model"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []model.ThoughtEvent
	err    error
}

func (p *fakePublisher) PublishEvent(ctx context.Context, event *model.ThoughtEvent) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return 0, p.err
	}
	p.events = append(p.events, *event)
	return uint64(len(p.events)), nil
}

func (p *fakePublisher) types() []model.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]model.EventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

type fakeClient struct {
	name    string
	content string
	err     error
	block   bool

	mu       sync.Mutex
	requests []*llm.CompletionRequest
}

func (c *fakeClient) Name() string { return c.name }

func (c *fakeClient) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()

	if c.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if c.err != nil {
		return nil, c.err
	}
	return &llm.CompletionResponse{Content: c.content, Model: c.name, TokensIn: 10, TokensOut: 20}, nil
}

var errUnavailable = errors.New("service unavailable")
