package reviews

import "context"

// Source enum
type Source string

const (
	SourceNaver Source = "naver"
	SourceKakao Source = "kakao"
)

// TopicUnclustered marks a review that survived collection but produced no
// usable tokens, so it never entered clustering.
const TopicUnclustered = -1

// Review is the unit collected from a map platform. RawText is the scraped
// list-item text before cleaning; Text is the cleaned body used for analysis.
type Review struct {
	RawText string `json:"raw_text"`
	Text    string `json:"text"`
	Rating  int    `json:"rating,omitempty"` // 1-5, 0 = not shown on the platform
	Date    string `json:"date,omitempty"`
	Source  Source `json:"source"`
	Topic   int    `json:"topic"`
}

// Collector port: drives the platform crawlers and returns the combined,
// per-platform-deduplicated review set.
type Collector interface {
	Collect(ctx context.Context, storeName, address string) ([]Review, error)
}

// Archive port: long-term storage for the raw review batch of one task.
// Failures here must never fail the task.
type Archive interface {
	ArchiveRawBatch(ctx context.Context, taskID, storeName, address string, revs []Review) (string, error)
}

// ReplyWriter port: drafts an owner reply to a single customer review.
type ReplyWriter interface {
	Reply(ctx context.Context, reviewText, tone, length string) (string, error)
}
