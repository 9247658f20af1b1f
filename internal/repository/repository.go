package repository

import (
	"context"
	"time"
)

type DocumentReportInput struct {
	DocumentID   string
	DocumentName string
	TotalMinutes int64
	SessionCount int
	EventCount   int
}

type SaveReportInput struct {
	GeneratedAt          time.Time
	MimeType             string
	ModifiedAfter        time.Time
	InactivityGapSeconds int64
	MinSessionMinutes    int64
	TotalMinutes         int64
	FailureCount         int
	Documents            []DocumentReportInput
}

type Repository interface {
	SaveReport(ctx context.Context, input SaveReportInput) (*ReportRun, error)
}
