package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/foxseedlab/edittime/internal/config"
	"github.com/foxseedlab/edittime/internal/document"
)

type envConfig struct {
	Env                      string `env:"ENV" envDefault:"production"`
	GoogleCredentialsJSON    string `env:"GOOGLE_CREDENTIALS_JSON,required"`
	GoogleImpersonateSubject string `env:"GOOGLE_IMPERSONATE_SUBJECT"`
	ReportMimeType           string `env:"REPORT_MIME_TYPE" envDefault:"application/vnd.google-apps.document"`
	ReportLookbackHours      int    `env:"REPORT_LOOKBACK_HOURS" envDefault:"168"`
	DriveOrderBy             string `env:"DRIVE_ORDER_BY" envDefault:"modifiedTime desc"`
	SessionInactivityGapMin  int    `env:"SESSION_INACTIVITY_GAP_MIN" envDefault:"5"`
	SessionMinDurationMin    int    `env:"SESSION_MIN_DURATION_MIN" envDefault:"1"`
	FetchConcurrency         int    `env:"FETCH_CONCURRENCY" envDefault:"4"`
	RunTimeoutSec            int    `env:"RUN_TIMEOUT_SEC" envDefault:"300"`
	PublishTimeoutSec        int    `env:"PUBLISH_TIMEOUT_SEC" envDefault:"60"`
	ReportTimezone           string `env:"REPORT_TIMEZONE" envDefault:"Asia/Tokyo"`
	ReportWebhookURL         string `env:"REPORT_WEBHOOK_URL"`
	DiscordToken             string `env:"DISCORD_TOKEN"`
	DiscordReportChannelID   string `env:"DISCORD_REPORT_CHANNEL_ID"`
	DatabaseURL              string `env:"DATABASE_URL"`
	DatabaseInitTimeoutSec   int    `env:"DATABASE_INIT_TIMEOUT_SEC" envDefault:"15"`
}

func Load() (*config.Config, error) {
	return parse(env.Options{})
}

func parse(opts env.Options) (*config.Config, error) {
	var raw envConfig
	if err := env.ParseWithOptions(&raw, opts); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &config.Config{
		Env:                      raw.Env,
		GoogleCredentialsJSON:    raw.GoogleCredentialsJSON,
		GoogleImpersonateSubject: raw.GoogleImpersonateSubject,
		ReportMimeType:           raw.ReportMimeType,
		ReportLookbackHours:      raw.ReportLookbackHours,
		DriveOrderBy:             raw.DriveOrderBy,
		SessionInactivityGapMin:  raw.SessionInactivityGapMin,
		SessionMinDurationMin:    raw.SessionMinDurationMin,
		FetchConcurrency:         raw.FetchConcurrency,
		RunTimeoutSec:            raw.RunTimeoutSec,
		PublishTimeoutSec:        raw.PublishTimeoutSec,
		ReportTimezone:           raw.ReportTimezone,
		ReportWebhookURL:         raw.ReportWebhookURL,
		DiscordToken:             raw.DiscordToken,
		DiscordReportChannelID:   raw.DiscordReportChannelID,
		DatabaseURL:              raw.DatabaseURL,
		DatabaseInitTimeoutSec:   raw.DatabaseInitTimeoutSec,
	}
	if cfg.ReportMimeType == "" {
		cfg.ReportMimeType = document.GoogleDocsMimeType
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
