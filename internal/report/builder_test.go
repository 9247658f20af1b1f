package report

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/foxseedlab/edittime/internal/activity"
	"github.com/foxseedlab/edittime/internal/document"
)

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type mockDocumentSource struct {
	docs        []document.Document
	err         error
	gotCriteria document.Criteria
	listCalls   int
}

func (m *mockDocumentSource) ListDocuments(_ context.Context, criteria document.Criteria) ([]document.Document, error) {
	m.listCalls++
	m.gotCriteria = criteria
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

type mockActivitySource struct {
	mu      sync.Mutex
	records map[string][]activity.Record
	errs    map[string]error
	delays  map[string]time.Duration
	calls   []string
}

func (m *mockActivitySource) ListRecords(ctx context.Context, documentID string) ([]activity.Record, error) {
	m.mu.Lock()
	m.calls = append(m.calls, documentID)
	delay := m.delays[documentID]
	m.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := m.errs[documentID]; err != nil {
		return nil, err
	}
	return m.records[documentID], nil
}

func recordsAtMinutes(minutes ...int) []activity.Record {
	records := make([]activity.Record, 0, len(minutes))
	for _, m := range minutes {
		ts := baseTime.Add(time.Duration(m) * time.Minute)
		records = append(records, activity.Record{Timestamp: &ts})
	}
	return records
}

func newTestBuilder(docs *mockDocumentSource, records *mockActivitySource) *Builder {
	b := NewBuilder(docs, records)
	b.now = func() time.Time { return baseTime.Add(24 * time.Hour) }
	return b
}

func defaultParams() Params {
	return Params{
		Criteria:    document.Criteria{MimeType: document.GoogleDocsMimeType, ModifiedAfter: baseTime.Add(-7 * 24 * time.Hour)},
		Rules:       activity.DefaultRules(),
		Concurrency: 4,
	}
}

func TestAggregate_EmptyEventsYieldsNoEntry(t *testing.T) {
	if _, ok := Aggregate(document.Document{ID: "doc-1"}, nil, activity.DefaultRules()); ok {
		t.Fatal("expected no entry for a document without events")
	}
}

func TestAggregate_SumsSessions(t *testing.T) {
	events := activity.EventsFromRecords(recordsAtMinutes(0, 2, 4, 10, 12))
	entry, ok := Aggregate(document.Document{ID: "doc-1", Name: "企画書"}, events, activity.DefaultRules())
	if !ok {
		t.Fatal("expected an entry")
	}
	if entry.TotalMinutes != 6 || entry.SessionCount != 2 || entry.EventCount != 5 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.DocumentID != "doc-1" || entry.DocumentName != "企画書" {
		t.Fatalf("unexpected identity: %+v", entry)
	}
}

func TestBuild_SkipsDocumentsWithoutEvents(t *testing.T) {
	docs := &mockDocumentSource{docs: []document.Document{
		{ID: "doc-1", Name: "first"},
		{ID: "doc-2", Name: "second"},
	}}
	records := &mockActivitySource{records: map[string][]activity.Record{
		"doc-1": recordsAtMinutes(0, 1),
	}}

	rep, err := newTestBuilder(docs, records).Build(context.Background(), defaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Entries) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(rep.Entries))
	}
	if rep.Entries[0].DocumentID != "doc-1" || rep.Entries[0].TotalMinutes != 1 {
		t.Fatalf("unexpected entry: %+v", rep.Entries[0])
	}
	if len(rep.Failures) != 0 {
		t.Fatalf("expected no failures, got %+v", rep.Failures)
	}
}

func TestBuild_RecordsWithoutTimeAreDropped(t *testing.T) {
	docs := &mockDocumentSource{docs: []document.Document{{ID: "doc-1"}}}
	records := &mockActivitySource{records: map[string][]activity.Record{
		"doc-1": {{}, {TimeRange: &activity.TimeRange{Start: baseTime}}},
	}}

	rep, err := newTestBuilder(docs, records).Build(context.Background(), defaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Entries) != 0 {
		t.Fatalf("expected no entries, got %+v", rep.Entries)
	}
}

func TestBuild_PreservesDocumentOrderUnderConcurrency(t *testing.T) {
	docs := &mockDocumentSource{docs: []document.Document{
		{ID: "slow"}, {ID: "fast"}, {ID: "medium"},
	}}
	records := &mockActivitySource{
		records: map[string][]activity.Record{
			"slow":   recordsAtMinutes(0),
			"fast":   recordsAtMinutes(0, 3),
			"medium": recordsAtMinutes(0, 2),
		},
		delays: map[string]time.Duration{
			"slow":   60 * time.Millisecond,
			"medium": 20 * time.Millisecond,
		},
	}

	rep, err := newTestBuilder(docs, records).Build(context.Background(), defaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"slow", "fast", "medium"}
	if len(rep.Entries) != len(want) {
		t.Fatalf("unexpected entry count: %d", len(rep.Entries))
	}
	for i, id := range want {
		if rep.Entries[i].DocumentID != id {
			t.Fatalf("entry %d: got %s want %s", i, rep.Entries[i].DocumentID, id)
		}
	}
}

func TestBuild_FetchFailureDoesNotAbortBatch(t *testing.T) {
	docs := &mockDocumentSource{docs: []document.Document{
		{ID: "doc-1", Name: "broken"},
		{ID: "doc-2", Name: "fine"},
	}}
	records := &mockActivitySource{
		records: map[string][]activity.Record{"doc-2": recordsAtMinutes(0, 5)},
		errs:    map[string]error{"doc-1": errors.New("googleapi: Error 500")},
	}

	rep, err := newTestBuilder(docs, records).Build(context.Background(), defaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Entries) != 1 || rep.Entries[0].DocumentID != "doc-2" || rep.Entries[0].TotalMinutes != 5 {
		t.Fatalf("unexpected entries: %+v", rep.Entries)
	}
	if len(rep.Failures) != 1 || rep.Failures[0].DocumentID != "doc-1" {
		t.Fatalf("unexpected failures: %+v", rep.Failures)
	}
}

func TestBuild_ListFailureIsReturned(t *testing.T) {
	docs := &mockDocumentSource{err: errors.New("drive unavailable")}
	if _, err := newTestBuilder(docs, &mockActivitySource{}).Build(context.Background(), defaultParams()); err == nil {
		t.Fatal("expected error when documents cannot be listed")
	}
}

func TestBuild_PassesCriteriaAndRules(t *testing.T) {
	docs := &mockDocumentSource{docs: []document.Document{{ID: "doc-1"}}}
	records := &mockActivitySource{records: map[string][]activity.Record{"doc-1": recordsAtMinutes(0, 8)}}
	params := defaultParams()
	params.Rules = activity.Rules{InactivityGap: 10 * time.Minute, MinSessionMinutes: 1}

	rep, err := newTestBuilder(docs, records).Build(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs.gotCriteria != params.Criteria {
		t.Fatalf("criteria not forwarded: %+v", docs.gotCriteria)
	}
	if len(rep.Entries) != 1 || rep.Entries[0].TotalMinutes != 8 || rep.Entries[0].SessionCount != 1 {
		t.Fatalf("custom gap not applied: %+v", rep.Entries)
	}
}

func TestBuild_CancelledContextMarksDocumentsFailed(t *testing.T) {
	docs := &mockDocumentSource{docs: []document.Document{{ID: "doc-1"}, {ID: "doc-2"}}}
	records := &mockActivitySource{records: map[string][]activity.Record{
		"doc-1": recordsAtMinutes(0),
		"doc-2": recordsAtMinutes(0),
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := newTestBuilder(docs, records).Build(ctx, defaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Entries) != 0 || len(rep.Failures) != 2 {
		t.Fatalf("expected all documents failed, got entries=%d failures=%d", len(rep.Entries), len(rep.Failures))
	}
	if !errors.Is(rep.Failures[0].Err, context.Canceled) {
		t.Fatalf("unexpected failure error: %v", rep.Failures[0].Err)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	docs := &mockDocumentSource{docs: []document.Document{{ID: "doc-1"}, {ID: "doc-2"}}}
	records := &mockActivitySource{records: map[string][]activity.Record{
		"doc-1": recordsAtMinutes(12, 0, 10, 4, 2),
		"doc-2": recordsAtMinutes(30),
	}}
	b := newTestBuilder(docs, records)

	first, err := b.Build(context.Background(), defaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := b.Build(context.Background(), defaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Entries) != len(second.Entries) {
		t.Fatalf("entry count differs: %d vs %d", len(first.Entries), len(second.Entries))
	}
	for i := range first.Entries {
		if first.Entries[i] != second.Entries[i] {
			t.Fatalf("entry %d differs: %+v vs %+v", i, first.Entries[i], second.Entries[i])
		}
	}
	if first.TotalMinutes() != 7 {
		t.Fatalf("unexpected total: %d", first.TotalMinutes())
	}
}
