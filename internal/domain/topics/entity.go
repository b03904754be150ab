package topics

import (
	"context"

	"github.com/pulse-cx/insight/internal/domain/reviews"
)

// Topic is a cluster of reviews sharing similar embedded content. Topics are
// recomputed per run and never persisted on their own.
type Topic struct {
	ID          int      `json:"id"`
	Keywords    []string `json:"keywords"` // top-k tokens by frequency
	MemberCount int      `json:"member_count"`
}

// Result carries the full outcome of one assignment run. Every review's
// Topic field is either reviews.TopicUnclustered or the ID of a Topic in
// Topics.
type Result struct {
	Topics   []Topic          // ascending by ID
	Reviews  []reviews.Review // all input reviews, topic ids filled in
	DocCount int              // reviews that survived preprocessing
}

// ByID returns the topic with the given id, if present.
func (r *Result) ByID(id int) (Topic, bool) {
	for _, t := range r.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// MemberReviews returns the reviews assigned to the given topic.
func (r *Result) MemberReviews(id int) []reviews.Review {
	var out []reviews.Review
	for _, rev := range r.Reviews {
		if rev.Topic == id {
			out = append(out, rev)
		}
	}
	return out
}

// Assigner port: tokenizes, embeds and clusters cleaned reviews, assigning a
// topic id to every input.
type Assigner interface {
	Assign(ctx context.Context, revs []reviews.Review) (*Result, error)
}
