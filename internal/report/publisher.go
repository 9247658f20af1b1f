package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/foxseedlab/edittime/internal/config"
	"github.com/foxseedlab/edittime/internal/discord"
	"github.com/foxseedlab/edittime/internal/repository"
	"github.com/foxseedlab/edittime/internal/webhook"
)

// Publisher hands a finished report to every configured sink. A nil discord
// client or repository disables that sink.
type Publisher struct {
	cfg     *config.Config
	discord discord.Client
	webhook webhook.Sender
	repo    repository.Repository
}

func NewPublisher(cfg *config.Config, dc discord.Client, wh webhook.Sender, repo repository.Repository) *Publisher {
	return &Publisher{
		cfg:     cfg,
		discord: dc,
		webhook: wh,
		repo:    repo,
	}
}

// Publish tries every sink even when an earlier one fails and returns the
// joined errors.
func (p *Publisher) Publish(ctx context.Context, rep *Report) error {
	p.logReport(rep)

	var errs []error
	if err := p.publishDiscord(rep); err != nil {
		slog.Error("failed to post report to discord", "error", err, "channel_id", p.cfg.DiscordReportChannelID)
		errs = append(errs, fmt.Errorf("discord: %w", err))
	}
	if err := p.publishWebhook(ctx, rep); err != nil {
		slog.Error("failed to send report webhook", "error", err)
		errs = append(errs, fmt.Errorf("webhook: %w", err))
	}
	if err := p.publishRepository(ctx, rep); err != nil {
		slog.Error("failed to save report", "error", err)
		errs = append(errs, fmt.Errorf("repository: %w", err))
	}
	return errors.Join(errs...)
}

func (p *Publisher) logReport(rep *Report) {
	for i, e := range rep.Entries {
		slog.Info("document editing time", "position", i, "document_id", e.DocumentID, "document_name", e.DocumentName, "total_minutes", e.TotalMinutes, "sessions", e.SessionCount, "events", e.EventCount)
	}
	for _, f := range rep.Failures {
		slog.Warn("document skipped", "document_id", f.DocumentID, "document_name", f.DocumentName, "error", f.Err)
	}
	slog.Info("report summary", "entries", len(rep.Entries), "failures", len(rep.Failures), "total_minutes", rep.TotalMinutes())
}

func (p *Publisher) publishDiscord(rep *Report) error {
	if p.discord == nil {
		return nil
	}
	channelID := p.cfg.DiscordReportChannelID
	if len(rep.Entries) == 0 && len(rep.Failures) == 0 {
		if err := p.discord.SendChannelMessage(channelID, reportSummaryMessage(rep, false)); err != nil {
			return err
		}
		slog.Info("empty report posted to discord", "channel_id", channelID)
		return nil
	}

	loc := p.cfg.Location()
	err := p.discord.SendChannelMessageWithFile(discord.FileMessage{
		ChannelID: channelID,
		Content:   reportSummaryMessage(rep, true),
		Filename:  buildReportFilename(rep, loc),
		FileBody:  buildReportText(rep, p.cfg.ReportTimezone, loc),
	})
	if err != nil {
		return err
	}
	slog.Info("report posted to discord", "channel_id", channelID)
	return nil
}

func (p *Publisher) publishWebhook(ctx context.Context, rep *Report) error {
	if p.webhook == nil {
		return nil
	}
	payload := buildReportWebhookPayload(rep, p.cfg.ReportTimezone, p.cfg.Location())
	return p.webhook.SendReport(ctx, payload)
}

func (p *Publisher) publishRepository(ctx context.Context, rep *Report) error {
	if p.repo == nil {
		return nil
	}
	run, err := p.repo.SaveReport(ctx, buildSaveReportInput(rep))
	if err != nil {
		return err
	}
	slog.Info("report saved", "run_id", run.ID, "entries", len(rep.Entries))
	return nil
}
