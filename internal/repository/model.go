package repository

import "time"

type ReportRun struct {
	ID                   string
	GeneratedAt          time.Time
	MimeType             string
	ModifiedAfter        time.Time
	InactivityGapSeconds int64
	MinSessionMinutes    int64
	TotalMinutes         int64
	FailureCount         int
	CreatedAt            time.Time
}
