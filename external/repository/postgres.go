package repository

import (
	"context"
	"fmt"

	"github.com/foxseedlab/edittime/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

// Shutdown is called by the injector when the run ends.
func (r *PostgresRepository) Shutdown() {
	r.pool.Close()
}

// SaveReport stores the run and its entries in a single transaction. Entry
// positions keep the report order.
func (r *PostgresRepository) SaveReport(ctx context.Context, input repository.SaveReportInput) (*repository.ReportRun, error) {
	var run *repository.ReportRun
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			`INSERT INTO report_runs (generated_at, mime_type, modified_after, inactivity_gap_seconds, min_session_minutes, total_minutes, failure_count)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id, generated_at, mime_type, modified_after, inactivity_gap_seconds, min_session_minutes, total_minutes, failure_count, created_at`,
			input.GeneratedAt, input.MimeType, input.ModifiedAfter, input.InactivityGapSeconds, input.MinSessionMinutes, input.TotalMinutes, input.FailureCount)
		var saved repository.ReportRun
		if err := row.Scan(&saved.ID, &saved.GeneratedAt, &saved.MimeType, &saved.ModifiedAfter, &saved.InactivityGapSeconds, &saved.MinSessionMinutes, &saved.TotalMinutes, &saved.FailureCount, &saved.CreatedAt); err != nil {
			return fmt.Errorf("insert report run: %w", err)
		}

		batch := &pgx.Batch{}
		for i, d := range input.Documents {
			batch.Queue(
				`INSERT INTO document_reports (run_id, position, document_id, document_name, total_minutes, session_count, event_count)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				saved.ID, i, d.DocumentID, d.DocumentName, d.TotalMinutes, d.SessionCount, d.EventCount)
		}
		if batch.Len() > 0 {
			if err := tx.SendBatch(ctx, batch).Close(); err != nil {
				return fmt.Errorf("insert document reports: %w", err)
			}
		}
		run = &saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}
