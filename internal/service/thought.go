// Package service provides business logic for the hivemind platform.
package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/capitalize-ai/hivemind/internal/analysis/cluster"
	"github.com/capitalize-ai/hivemind/internal/analysis/search"
	"github.com/capitalize-ai/hivemind/internal/model"
	"github.com/capitalize-ai/hivemind/pkg/logger"
	"github.com/capitalize-ai/hivemind/pkg/metrics"
)

var (
	// ErrThoughtNotFound is returned when a thought id is unknown.
	ErrThoughtNotFound = errors.New("thought not found")

	// ErrEmptyContent is returned when a thought or comment has no text.
	ErrEmptyContent = errors.New("content is required")

	// ErrNotAuthor is returned when someone other than the author restyles a thought.
	ErrNotAuthor = errors.New("only the author can customize a thought")
)

const (
	defaultListLimit   = 50
	maxListLimit       = 100
	defaultSearchLimit = 20
)

// EventPublisher publishes board events. The NATS stream manager satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *model.ThoughtEvent) (uint64, error)
}

// ThoughtService handles thought board operations.
type ThoughtService struct {
	publisher    EventPublisher
	clusterNames map[string]string
	logger       *logger.Logger
	now          func() time.Time

	// In-memory board; order holds ids in insertion order.
	thoughts map[string]*model.ThoughtNode
	comments map[string][]model.Comment
	order    []string
	mu       sync.RWMutex
}

// NewThoughtService creates a new thought service. publisher may be nil, in
// which case events are dropped.
func NewThoughtService(publisher EventPublisher, clusterNames map[string]string, log *logger.Logger) *ThoughtService {
	return &ThoughtService{
		publisher:    publisher,
		clusterNames: clusterNames,
		logger:       log.Named("thoughts"),
		now:          time.Now,
		thoughts:     make(map[string]*model.ThoughtNode),
		comments:     make(map[string][]model.Comment),
	}
}

// Create posts a new thought.
func (s *ThoughtService) Create(ctx context.Context, author model.Author, req *model.CreateThoughtRequest) (*model.ThoughtNode, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	now := s.now()
	node := &model.ThoughtNode{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Content:    content,
		Author:     author,
		Timestamp:  cluster.FormatRelativeTime(now, now),
		ClusterID:  req.ClusterID,
		CommentIDs: []string{},
		Style:      req.Style,
		CreatedAt:  now,
	}

	s.mu.Lock()
	s.thoughts[node.ID] = node
	s.order = append(s.order, node.ID)
	created := *node
	s.mu.Unlock()

	metrics.ThoughtsTotal.Inc()
	s.logger.Info("thought created",
		zap.String("thought_id", node.ID),
		zap.String("author_id", author.ID),
	)

	metadata := map[string]any{}
	if node.ClusterID != nil {
		metadata["cluster_id"] = *node.ClusterID
	}
	s.publish(ctx, node.ID, author.ID, model.EventTypeThoughtCreated, metadata)

	return &created, nil
}

// Seed loads existing thoughts onto the board, for example a fixture set.
// Thoughts without an id get one; thoughts whose id is already present are
// skipped. It returns the number of thoughts added.
func (s *ThoughtService) Seed(ctx context.Context, nodes []model.ThoughtNode) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, n := range nodes {
		node := n
		if node.ID == "" {
			node.ID = uuid.Must(uuid.NewV7()).String()
		}
		if _, exists := s.thoughts[node.ID]; exists {
			continue
		}
		if node.CommentIDs == nil {
			node.CommentIDs = []string{}
		}
		s.thoughts[node.ID] = &node
		s.order = append(s.order, node.ID)
		added++
	}

	s.logger.Info("board seeded", zap.Int("added", added), zap.Int("total", len(s.order)))
	return added
}

// Get retrieves a thought and its comments.
func (s *ThoughtService) Get(ctx context.Context, thoughtID string) (*model.ThoughtDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, exists := s.thoughts[thoughtID]
	if !exists {
		return nil, ErrThoughtNotFound
	}

	comments := append([]model.Comment{}, s.comments[thoughtID]...)
	return &model.ThoughtDetail{
		ThoughtNode: s.view(node),
		CommentList: comments,
	}, nil
}

// List returns thoughts newest first.
func (s *ThoughtService) List(ctx context.Context, limit, offset int) *model.ListThoughtsResponse {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.order)
	start := min(offset, total)
	end := min(start+limit, total)

	thoughts := make([]model.ThoughtNode, 0, end-start)
	for i := start; i < end; i++ {
		thoughts = append(thoughts, s.view(s.thoughts[s.order[total-1-i]]))
	}

	return &model.ListThoughtsResponse{
		Thoughts: thoughts,
		Total:    total,
		HasMore:  end < total,
	}
}

// Like adds one like to a thought.
func (s *ThoughtService) Like(ctx context.Context, thoughtID, authorID string) (*model.ThoughtNode, error) {
	s.mu.Lock()
	node, exists := s.thoughts[thoughtID]
	if !exists {
		s.mu.Unlock()
		return nil, ErrThoughtNotFound
	}
	node.Likes++
	liked := s.view(node)
	s.mu.Unlock()

	metrics.ThoughtInteractionsTotal.WithLabelValues(string(model.EventTypeThoughtLiked)).Inc()
	s.publish(ctx, thoughtID, authorID, model.EventTypeThoughtLiked, map[string]any{"likes": liked.Likes})

	return &liked, nil
}

// Comment attaches a comment to a thought.
func (s *ThoughtService) Comment(ctx context.Context, thoughtID string, author model.Author, req *model.CommentRequest) (*model.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	s.mu.Lock()
	node, exists := s.thoughts[thoughtID]
	if !exists {
		s.mu.Unlock()
		return nil, ErrThoughtNotFound
	}
	comment := model.Comment{
		ID:        uuid.Must(uuid.NewV7()).String(),
		ThoughtID: thoughtID,
		Author:    author,
		Content:   content,
		CreatedAt: s.now(),
	}
	node.CommentIDs = append(node.CommentIDs, comment.ID)
	s.comments[thoughtID] = append(s.comments[thoughtID], comment)
	count := len(node.CommentIDs)
	s.mu.Unlock()

	metrics.ThoughtInteractionsTotal.WithLabelValues(string(model.EventTypeThoughtCommented)).Inc()
	s.publish(ctx, thoughtID, author.ID, model.EventTypeThoughtCommented, map[string]any{
		"comment_id": comment.ID,
		"comments":   count,
	})

	return &comment, nil
}

// Customize replaces the visual style of a thought. Style never affects
// analysis.
func (s *ThoughtService) Customize(ctx context.Context, thoughtID, authorID string, style *model.VisualStyle) (*model.ThoughtNode, error) {
	s.mu.Lock()
	node, exists := s.thoughts[thoughtID]
	if !exists {
		s.mu.Unlock()
		return nil, ErrThoughtNotFound
	}
	if node.Author.ID != authorID {
		s.mu.Unlock()
		return nil, ErrNotAuthor
	}
	node.Style = style
	styled := s.view(node)
	s.mu.Unlock()

	metrics.ThoughtInteractionsTotal.WithLabelValues(string(model.EventTypeThoughtStyled)).Inc()
	s.publish(ctx, thoughtID, authorID, model.EventTypeThoughtStyled, nil)

	return &styled, nil
}

// Clusters groups the board into clusters sorted by trending score.
func (s *ThoughtService) Clusters(ctx context.Context) *model.ListClustersResponse {
	nodes := s.snapshot()

	clusters := cluster.GenerateWithNames(nodes, s.clusterNames)
	cluster.SortByTrending(clusters)
	metrics.ClustersActive.Set(float64(len(clusters)))

	return &model.ListClustersResponse{
		Clusters: clusters,
		Summary:  cluster.Summarize(clusters),
	}
}

// Trending returns individual thoughts ranked by trending score.
func (s *ThoughtService) Trending(ctx context.Context, limit int) []model.RankedThought {
	if limit <= 0 {
		limit = defaultListLimit
	}
	ranked := cluster.RankThoughts(s.snapshot())
	return ranked[:min(limit, len(ranked))]
}

// Search ranks board thoughts against a query. Thoughts that share no token
// with the query are omitted.
func (s *ThoughtService) Search(ctx context.Context, query string, limit int) *model.SearchThoughtsResponse {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	nodes := s.snapshot()
	byID := make(map[string]model.ThoughtNode, len(nodes))
	items := make([]search.Item, len(nodes))
	for i, n := range nodes {
		byID[n.ID] = n
		items[i] = search.Item{ID: n.ID, Text: n.Content, Source: n.Author.Name}
	}

	results := []model.RankedSearch{}
	for _, scored := range search.Rank(query, items) {
		if scored.Score <= 0 || len(results) == limit {
			break
		}
		results = append(results, model.RankedSearch{Thought: byID[scored.Item.ID], Score: scored.Score})
	}

	metrics.SearchesTotal.WithLabelValues("thoughts").Inc()
	s.logger.Debug("thoughts searched",
		zap.String("query", query),
		zap.Int("candidates", len(items)),
		zap.Int("results", len(results)),
	)

	return &model.SearchThoughtsResponse{Query: query, Results: results}
}

// snapshot copies every thought in insertion order.
func (s *ThoughtService) snapshot() []model.ThoughtNode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]model.ThoughtNode, len(s.order))
	for i, id := range s.order {
		nodes[i] = s.view(s.thoughts[id])
	}
	return nodes
}

// view copies a thought and refreshes its relative timestamp. Callers hold the lock.
func (s *ThoughtService) view(node *model.ThoughtNode) model.ThoughtNode {
	v := *node
	v.CommentIDs = append([]string{}, node.CommentIDs...)
	if !v.CreatedAt.IsZero() {
		v.Timestamp = cluster.FormatRelativeTime(s.now(), v.CreatedAt)
	}
	return v
}

func (s *ThoughtService) publish(ctx context.Context, thoughtID, authorID string, eventType model.EventType, metadata map[string]any) {
	publishEvent(ctx, s.publisher, s.logger, &model.ThoughtEvent{
		ID:        uuid.Must(uuid.NewV7()).String(),
		ThoughtID: thoughtID,
		AuthorID:  authorID,
		Type:      eventType,
		Metadata:  metadata,
		CreatedAt: s.now(),
	})
}

// publishEvent sends an event and records the outcome. Publish failures are
// logged and do not fail the operation.
func publishEvent(ctx context.Context, publisher EventPublisher, log *logger.Logger, event *model.ThoughtEvent) {
	if publisher == nil {
		return
	}

	seq, err := publisher.PublishEvent(ctx, event)
	if err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(string(event.Type), "error").Inc()
		log.Warn("failed to publish event",
			zap.String("event_type", string(event.Type)),
			zap.String("thought_id", event.ThoughtID),
			zap.Error(err),
		)
		return
	}

	event.Sequence = seq
	metrics.EventsPublishedTotal.WithLabelValues(string(event.Type), "success").Inc()
}
