package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/foxseedlab/edittime/internal/repository"
	"github.com/foxseedlab/edittime/internal/webhook"
)

// 変更容易性を高めるため、time.DateTime をあえて指定していない
const reportTimeLayout = "2006-01-02 15:04:05"

const reportFilenameDateLayout = "20060102"

func buildReportText(rep *Report, timezone string, loc *time.Location) []byte {
	loc = safeLocation(loc)
	lines := []string{
		fmt.Sprintf("作成日時：%s（%s）", rep.GeneratedAt.In(loc).Format(reportTimeLayout), timezone),
		fmt.Sprintf("対象：%s 以降に更新された %s", rep.Criteria.ModifiedAfter.In(loc).Format(reportTimeLayout), rep.Criteria.MimeType),
		fmt.Sprintf("セッション区切り：%s／最小時間：%d分", formatGap(rep.Rules.InactivityGap), rep.Rules.MinSessionMinutes),
		"",
	}
	for _, e := range rep.Entries {
		lines = append(lines, fmt.Sprintf("%s %s (%s)", formatMinutesHM(e.TotalMinutes), e.DocumentName, e.DocumentID))
	}
	if len(rep.Entries) == 0 {
		lines = append(lines, "編集されたドキュメントはありません。")
	}
	lines = append(lines, "", fmt.Sprintf("合計：%s（%d分）", formatMinutesHM(rep.TotalMinutes()), rep.TotalMinutes()))
	if len(rep.Failures) > 0 {
		lines = append(lines, "", fmt.Sprintf("取得に失敗したドキュメント：%d件", len(rep.Failures)))
		for _, f := range rep.Failures {
			lines = append(lines, fmt.Sprintf("- %s (%s): %v", f.DocumentName, f.DocumentID, f.Err))
		}
	}
	return []byte(strings.Join(lines, "\n"))
}

func buildReportFilename(rep *Report, loc *time.Location) string {
	return fmt.Sprintf("edittime-%s.txt", rep.GeneratedAt.In(safeLocation(loc)).Format(reportFilenameDateLayout))
}

func buildReportWebhookPayload(rep *Report, timezone string, loc *time.Location) webhook.ReportWebhookPayload {
	loc = safeLocation(loc)
	docs := make([]webhook.ReportWebhookDocument, 0, len(rep.Entries))
	for _, e := range rep.Entries {
		docs = append(docs, webhook.ReportWebhookDocument{
			DocumentID:   e.DocumentID,
			DocumentName: e.DocumentName,
			TotalMinutes: e.TotalMinutes,
			SessionCount: e.SessionCount,
			EventCount:   e.EventCount,
		})
	}
	failures := make([]webhook.ReportWebhookFailure, 0, len(rep.Failures))
	for _, f := range rep.Failures {
		failures = append(failures, webhook.ReportWebhookFailure{
			DocumentID:   f.DocumentID,
			DocumentName: f.DocumentName,
			Error:        errorText(f.Err),
		})
	}

	return webhook.ReportWebhookPayload{
		SchemaVersion: webhook.ReportWebhookSchemaVersion,
		GeneratedAt:   rep.GeneratedAt.In(loc).Format(time.RFC3339),
		Timezone:      timezone,
		Criteria: webhook.ReportWebhookCriteria{
			MimeType:      rep.Criteria.MimeType,
			ModifiedAfter: rep.Criteria.ModifiedAfter.In(loc).Format(time.RFC3339),
		},
		Rules: webhook.ReportWebhookRules{
			InactivityGapMinutes: rep.Rules.InactivityGap.Minutes(),
			MinSessionMinutes:    rep.Rules.MinSessionMinutes,
		},
		Documents:    docs,
		Failures:     failures,
		TotalMinutes: rep.TotalMinutes(),
	}
}

func buildSaveReportInput(rep *Report) repository.SaveReportInput {
	docs := make([]repository.DocumentReportInput, 0, len(rep.Entries))
	for _, e := range rep.Entries {
		docs = append(docs, repository.DocumentReportInput{
			DocumentID:   e.DocumentID,
			DocumentName: e.DocumentName,
			TotalMinutes: e.TotalMinutes,
			SessionCount: e.SessionCount,
			EventCount:   e.EventCount,
		})
	}
	return repository.SaveReportInput{
		GeneratedAt:          rep.GeneratedAt,
		MimeType:             rep.Criteria.MimeType,
		ModifiedAfter:        rep.Criteria.ModifiedAfter,
		InactivityGapSeconds: int64(rep.Rules.InactivityGap / time.Second),
		MinSessionMinutes:    rep.Rules.MinSessionMinutes,
		TotalMinutes:         rep.TotalMinutes(),
		FailureCount:         len(rep.Failures),
		Documents:            docs,
	}
}

func formatMinutesHM(minutes int64) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func formatGap(d time.Duration) string {
	if d%time.Minute == 0 {
		return fmt.Sprintf("%d分", int64(d/time.Minute))
	}
	return d.String()
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func safeLocation(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
