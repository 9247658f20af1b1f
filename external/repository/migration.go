package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS report_runs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		generated_at TIMESTAMPTZ NOT NULL,
		mime_type TEXT NOT NULL,
		modified_after TIMESTAMPTZ NOT NULL,
		inactivity_gap_seconds BIGINT NOT NULL,
		min_session_minutes BIGINT NOT NULL,
		total_minutes BIGINT NOT NULL,
		failure_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_report_runs_generated_at ON report_runs (generated_at DESC)`,
	`CREATE TABLE IF NOT EXISTS document_reports (
		run_id UUID NOT NULL REFERENCES report_runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		document_id TEXT NOT NULL,
		document_name TEXT NOT NULL,
		total_minutes BIGINT NOT NULL CHECK (total_minutes >= 0),
		session_count INTEGER NOT NULL,
		event_count INTEGER NOT NULL,
		PRIMARY KEY (run_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_document_reports_document ON document_reports (document_id)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, s := range migrationStatements {
		stmt := strings.TrimSpace(s)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
