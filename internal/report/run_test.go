package report

import (
	"context"
	"testing"
	"time"

	"github.com/foxseedlab/edittime/internal/activity"
	"github.com/foxseedlab/edittime/internal/config"
	"github.com/foxseedlab/edittime/internal/document"
	"github.com/foxseedlab/edittime/internal/webhook"
)

// blockingActivitySource returns immediately for ready documents and blocks
// until the context ends for every other one.
type blockingActivitySource struct {
	ready map[string][]activity.Record
}

func (s *blockingActivitySource) ListRecords(ctx context.Context, documentID string) ([]activity.Record, error) {
	if records, ok := s.ready[documentID]; ok {
		return records, nil
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

type contextCheckingWebhookSender struct {
	payloads []webhook.ReportWebhookPayload
	ctxErrs  []error
}

func (s *contextCheckingWebhookSender) SendReport(ctx context.Context, payload webhook.ReportWebhookPayload) error {
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	if err := ctx.Err(); err != nil {
		return err
	}
	s.payloads = append(s.payloads, payload)
	return nil
}

func TestBuildAndPublish_PartialReportReachesSinksAfterBuildDeadline(t *testing.T) {
	docs := &mockDocumentSource{docs: []document.Document{
		{ID: "fast", Name: "fast"},
		{ID: "stuck", Name: "stuck"},
	}}
	records := &blockingActivitySource{ready: map[string][]activity.Record{
		"fast": recordsAtMinutes(0, 3),
	}}
	wh := &contextCheckingWebhookSender{}
	publisher := NewPublisher(&config.Config{ReportTimezone: "UTC"}, nil, wh, nil)

	rep, err := BuildAndPublish(context.Background(), newTestBuilder(docs, records), publisher, defaultParams(), 50*time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Entries) != 1 || len(rep.Failures) != 1 {
		t.Fatalf("expected partial report, got entries=%d failures=%d", len(rep.Entries), len(rep.Failures))
	}
	if len(wh.ctxErrs) != 1 || wh.ctxErrs[0] != nil {
		t.Fatalf("webhook saw a finished context: %v", wh.ctxErrs)
	}
	if len(wh.payloads) != 1 || len(wh.payloads[0].Documents) != 1 || len(wh.payloads[0].Failures) != 1 {
		t.Fatalf("unexpected webhook payloads: %+v", wh.payloads)
	}
}

func TestBuildAndPublish_ListFailureSkipsPublish(t *testing.T) {
	docs := &mockDocumentSource{err: context.DeadlineExceeded}
	wh := &contextCheckingWebhookSender{}
	publisher := NewPublisher(&config.Config{ReportTimezone: "UTC"}, nil, wh, nil)

	if _, err := BuildAndPublish(context.Background(), newTestBuilder(docs, &mockActivitySource{}), publisher, defaultParams(), time.Second, time.Second); err == nil {
		t.Fatal("expected error when documents cannot be listed")
	}
	if len(wh.ctxErrs) != 0 {
		t.Fatalf("publish should not run, got %d calls", len(wh.ctxErrs))
	}
}
