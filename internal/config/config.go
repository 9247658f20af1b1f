package config

import (
	"fmt"
	"time"

	"github.com/foxseedlab/edittime/internal/activity"
	"github.com/foxseedlab/edittime/internal/document"
)

type Config struct {
	Env                      string
	GoogleCredentialsJSON    string
	GoogleImpersonateSubject string
	ReportMimeType           string
	ReportLookbackHours      int
	DriveOrderBy             string
	SessionInactivityGapMin  int
	SessionMinDurationMin    int
	FetchConcurrency         int
	RunTimeoutSec            int
	PublishTimeoutSec        int
	ReportTimezone           string
	ReportWebhookURL         string
	DiscordToken             string
	DiscordReportChannelID   string
	DatabaseURL              string
	DatabaseInitTimeoutSec   int
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	for _, pos := range c.positiveFieldChecks() {
		if pos.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", pos.name, pos.value)
		}
	}
	if _, err := time.LoadLocation(c.ReportTimezone); err != nil {
		return fmt.Errorf("REPORT_TIMEZONE is invalid: %w", err)
	}
	if (c.DiscordToken == "") != (c.DiscordReportChannelID == "") {
		return fmt.Errorf("DISCORD_TOKEN and DISCORD_REPORT_CHANNEL_ID must be set together")
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "GOOGLE_CREDENTIALS_JSON", value: c.GoogleCredentialsJSON},
		{name: "REPORT_MIME_TYPE", value: c.ReportMimeType},
		{name: "REPORT_TIMEZONE", value: c.ReportTimezone},
	}
}

type positiveEnvField struct {
	name  string
	value int
}

func (c *Config) positiveFieldChecks() []positiveEnvField {
	return []positiveEnvField{
		{name: "REPORT_LOOKBACK_HOURS", value: c.ReportLookbackHours},
		{name: "SESSION_INACTIVITY_GAP_MIN", value: c.SessionInactivityGapMin},
		{name: "SESSION_MIN_DURATION_MIN", value: c.SessionMinDurationMin},
		{name: "FETCH_CONCURRENCY", value: c.FetchConcurrency},
		{name: "RUN_TIMEOUT_SEC", value: c.RunTimeoutSec},
		{name: "PUBLISH_TIMEOUT_SEC", value: c.PublishTimeoutSec},
		{name: "DATABASE_INIT_TIMEOUT_SEC", value: c.DatabaseInitTimeoutSec},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordReportChannelID != ""
}

// Criteria selects documents modified within the lookback window ending at now.
func (c *Config) Criteria(now time.Time) document.Criteria {
	return document.Criteria{
		MimeType:      c.ReportMimeType,
		ModifiedAfter: now.Add(-time.Duration(c.ReportLookbackHours) * time.Hour),
	}
}

func (c *Config) Rules() activity.Rules {
	return activity.Rules{
		InactivityGap:     time.Duration(c.SessionInactivityGapMin) * time.Minute,
		MinSessionMinutes: int64(c.SessionMinDurationMin),
	}
}

// RunTimeout bounds document listing and activity fetching only.
func (c *Config) RunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutSec) * time.Second
}

func (c *Config) PublishTimeout() time.Duration {
	return time.Duration(c.PublishTimeoutSec) * time.Second
}

func (c *Config) DatabaseInitTimeout() time.Duration {
	return time.Duration(c.DatabaseInitTimeoutSec) * time.Second
}

// Location falls back to UTC when the timezone cannot be loaded; Validate
// reports that case at startup.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ReportTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
