package webhook

import "context"

const ReportWebhookSchemaVersion = "2026-10-01"

type ReportWebhookPayload struct {
	SchemaVersion string                  `json:"schema_version"`
	GeneratedAt   string                  `json:"generated_at"`
	Timezone      string                  `json:"timezone"`
	Criteria      ReportWebhookCriteria   `json:"criteria"`
	Rules         ReportWebhookRules      `json:"rules"`
	Documents     []ReportWebhookDocument `json:"documents"`
	Failures      []ReportWebhookFailure  `json:"failures"`
	TotalMinutes  int64                   `json:"total_minutes"`
}

type ReportWebhookCriteria struct {
	MimeType      string `json:"mime_type"`
	ModifiedAfter string `json:"modified_after"`
}

type ReportWebhookRules struct {
	InactivityGapMinutes float64 `json:"inactivity_gap_minutes"`
	MinSessionMinutes    int64   `json:"min_session_minutes"`
}

type ReportWebhookDocument struct {
	DocumentID   string `json:"document_id"`
	DocumentName string `json:"document_name"`
	TotalMinutes int64  `json:"total_minutes"`
	SessionCount int    `json:"session_count"`
	EventCount   int    `json:"event_count"`
}

type ReportWebhookFailure struct {
	DocumentID   string `json:"document_id"`
	DocumentName string `json:"document_name"`
	Error        string `json:"error"`
}

type Sender interface {
	SendReport(ctx context.Context, payload ReportWebhookPayload) error
}
