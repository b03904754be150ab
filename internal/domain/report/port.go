package report

import (
	"context"

	"github.com/pulse-cx/insight/internal/domain/topics"
)

// Repository port for persisting and querying reports, keyed by task id.
type Repository interface {
	Save(ctx context.Context, taskID string, r *Report) error
	Latest(ctx context.Context) (*Report, error)
}

// Synthesizer port: turns a topic assignment into the final report.
// Per-persona generation failures are absorbed with fallback objects, so a
// non-nil error means the whole report could not be produced.
type Synthesizer interface {
	Synthesize(ctx context.Context, storeName string, res *topics.Result) (*Report, error)
}
