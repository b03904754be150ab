package report

import "time"

// JourneyStep is one stage of a persona's journey map.
type JourneyStep struct {
	Label       string `json:"label"`
	Action      string `json:"action"`
	Thought     string `json:"thought"`
	Type        string `json:"type"` // good | neutral | pain
	Touchpoint  string `json:"touchpoint"`
	PainPoint   string `json:"painPoint,omitempty"`
	Opportunity string `json:"opportunity"`
}

// JourneyMap is the fixed four-stage narrative of a persona's interaction
// with the business.
type JourneyMap struct {
	Explore JourneyStep `json:"explore"`
	Visit   JourneyStep `json:"visit"`
	Eat     JourneyStep `json:"eat"`
	Share   JourneyStep `json:"share"`
}

// Persona is an LLM-synthesized profile of one topic's customer segment.
type Persona struct {
	ID                   int        `json:"id"`
	Nickname             string     `json:"nickname"`
	Tags                 []string   `json:"tags"`
	Img                  string     `json:"img"`
	Summary              string     `json:"summary"`
	Journey              JourneyMap `json:"journey"`
	OverallComment       string     `json:"overall_comment,omitempty"`
	ActionRecommendation string     `json:"action_recommendation,omitempty"`
}

// Report is the final deliverable of one analysis task.
type Report struct {
	StoreName     string    `json:"store_name"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
	StoreSummary  string    `json:"store_summary"`
	Personas      []Persona `json:"personas"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}
