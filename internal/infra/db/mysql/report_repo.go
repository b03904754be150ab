package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	domain "github.com/pulse-cx/insight/internal/domain/report"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save insert/update the report for a task. Re-running a task id overwrites
// its previous report.
func (r *ReportRepository) Save(ctx context.Context, taskID string, rep *domain.Report) error {
	const q = `
INSERT INTO analysis_reports
(task_id, store_name, average_rating, total_reviews, store_summary, personas, created_at)
VALUES (?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 store_name=VALUES(store_name),
 average_rating=VALUES(average_rating),
 total_reviews=VALUES(total_reviews),
 store_summary=VALUES(store_summary),
 personas=VALUES(personas),
 created_at=VALUES(created_at);
`
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

// Latest returns the most recently created report. sql.ErrNoRows when the
// store is empty.
func (r *ReportRepository) Latest(ctx context.Context) (*domain.Report, error) {
	const q = `
SELECT store_name, average_rating, total_reviews, store_summary, personas, created_at
FROM analysis_reports
ORDER BY created_at DESC LIMIT 1;
`
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
