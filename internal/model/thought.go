// Package model defines data structures for the hivemind platform.
package model

import (
	"time"
)

// Author describes who posted a thought.
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// VisualStyle is the display customization of a thought. It is never analyzed.
type VisualStyle struct {
	Color   string   `json:"color,omitempty"`
	Shape   string   `json:"shape,omitempty"`
	Size    string   `json:"size,omitempty"`
	Effects []string `json:"effects,omitempty"`
}

// ThoughtNode represents a single post on the thought board.
type ThoughtNode struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Author  Author `json:"author"`

	// Timestamp is a free-form relative string such as "2 hours ago".
	Timestamp string `json:"timestamp"`

	// ClusterID is nil for unclustered thoughts.
	ClusterID  *string      `json:"cluster_id"`
	Likes      int          `json:"likes"`
	CommentIDs []string     `json:"comments"`
	Style      *VisualStyle `json:"style,omitempty"`

	// CreatedAt is set for thoughts created on the board; seeded thoughts may
	// carry only a Timestamp.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ThoughtCluster is derived from the thoughts sharing a cluster id.
type ThoughtCluster struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Posts         []string `json:"posts"`
	Tags          []string `json:"tags"`
	TrendingScore int      `json:"trending_score"`
}

// RankedThought pairs a thought with its individual trending score.
type RankedThought struct {
	Thought ThoughtNode `json:"thought"`
	Score   int         `json:"score"`
}

// CreateThoughtRequest is the request to post a new thought.
type CreateThoughtRequest struct {
	Content   string       `json:"content"`
	ClusterID *string      `json:"cluster_id,omitempty"`
	Style     *VisualStyle `json:"style,omitempty"`
}

// CommentRequest is the request to comment on a thought.
type CommentRequest struct {
	Content string `json:"content"`
}

// ListThoughtsResponse is the response for listing thoughts.
type ListThoughtsResponse struct {
	Thoughts []ThoughtNode `json:"thoughts"`
	Total    int           `json:"total"`
	HasMore  bool          `json:"has_more"`
}

// ListClustersResponse is the response for listing clusters.
type ListClustersResponse struct {
	Clusters []ThoughtCluster `json:"clusters"`
	Summary  TrendingSummary  `json:"summary"`
}

// TrendingSummary describes the distribution of cluster trending scores.
type TrendingSummary struct {
	Clusters int     `json:"clusters"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Max      float64 `json:"max"`
}

// Comment is a reply attached to a thought.
type Comment struct {
	ID        string    `json:"id"`
	ThoughtID string    `json:"thought_id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ThoughtDetail is a thought together with its comments.
type ThoughtDetail struct {
	ThoughtNode
	CommentList []Comment `json:"comment_list"`
}

// SearchThoughtsResponse holds board thoughts matching a query, best first.
type SearchThoughtsResponse struct {
	Query   string         `json:"query"`
	Results []RankedSearch `json:"results"`
}

// RankedSearch pairs a thought with its relevance to a search query.
type RankedSearch struct {
	Thought ThoughtNode `json:"thought"`
	Score   float64     `json:"score"`
}
