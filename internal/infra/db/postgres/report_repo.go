package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	domain "github.com/pulse-cx/insight/internal/domain/report"
)

type ReportRepository struct{ db *sql.DB }

func NewReportRepository(db *sql.DB) *ReportRepository { return &ReportRepository{db: db} }

// Save insert/update the report for a task.
func (r *ReportRepository) Save(ctx context.Context, taskID string, rep *domain.Report) error {
	const q = `
INSERT INTO analysis_reports
(task_id, store_name, average_rating, total_reviews, store_summary, personas, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (task_id) DO UPDATE SET
 store_name = EXCLUDED.store_name,
 average_rating = EXCLUDED.average_rating,
 total_reviews = EXCLUDED.total_reviews,
 store_summary = EXCLUDED.store_summary,
 personas = EXCLUDED.personas,
 created_at = EXCLUDED.created_at;`

	personas, err := json.Marshal(rep.Personas)
	if err != nil {
		return err
	}
	created := rep.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err = r.db.ExecContext(ctx, q,
		taskID, rep.StoreName, rep.AverageRating, rep.TotalReviews,
		rep.StoreSummary, personas, created,
	)
	return err
}

// Latest returns the most recently created report.
func (r *ReportRepository) Latest(ctx context.Context) (*domain.Report, error) {
	const q = `
SELECT store_name, average_rating, total_reviews, store_summary, personas, created_at
FROM analysis_reports
ORDER BY created_at DESC
LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q)

	var rep domain.Report
	var personas []byte
	if err := row.Scan(
		&rep.StoreName, &rep.AverageRating, &rep.TotalReviews,
		&rep.StoreSummary, &personas, &rep.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(personas, &rep.Personas); err != nil {
		return nil, err
	}
	return &rep, nil
}
