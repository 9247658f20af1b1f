package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/foxseedlab/edittime/internal/activity"
	"github.com/foxseedlab/edittime/internal/document"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 1

type Params struct {
	Criteria    document.Criteria
	Rules       activity.Rules
	Concurrency int
}

type Builder struct {
	documents document.Source
	records   activity.Source
	now       func() time.Time
}

func NewBuilder(documents document.Source, records activity.Source) *Builder {
	return &Builder{
		documents: documents,
		records:   records,
		now:       time.Now,
	}
}

type documentResult struct {
	entry    DocumentReport
	hasEntry bool
	err      error
}

// Build lists the candidate documents and aggregates each one. Activity
// fetches run in parallel up to Concurrency, but entries keep the order in
// which the document source returned the documents.
func (b *Builder) Build(ctx context.Context, params Params) (*Report, error) {
	slog.Info("listing candidate documents", "mime_type", params.Criteria.MimeType, "modified_after", params.Criteria.ModifiedAfter)
	docs, err := b.documents.ListDocuments(ctx, params.Criteria)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	slog.Info("candidate documents listed", "documents", len(docs))

	results := make([]documentResult, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(params.Concurrency, defaultConcurrency))
	for i, doc := range docs {
		if gctx.Err() != nil {
			results[i].err = gctx.Err()
			continue
		}
		g.Go(func() error {
			results[i] = b.buildDocument(gctx, doc, params.Rules)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{
		GeneratedAt: b.now(),
		Criteria:    params.Criteria,
		Rules:       params.Rules,
		Entries:     make([]DocumentReport, 0, len(docs)),
	}
	for i, res := range results {
		switch {
		case res.err != nil:
			rep.Failures = append(rep.Failures, Failure{DocumentID: docs[i].ID, DocumentName: docs[i].Name, Err: res.err})
		case res.hasEntry:
			rep.Entries = append(rep.Entries, res.entry)
		}
	}
	slog.Info("report built", "documents", len(docs), "entries", len(rep.Entries), "failures", len(rep.Failures), "total_minutes", rep.TotalMinutes())
	return rep, nil
}

func (b *Builder) buildDocument(ctx context.Context, doc document.Document, rules activity.Rules) documentResult {
	if err := ctx.Err(); err != nil {
		return documentResult{err: err}
	}
	records, err := b.records.ListRecords(ctx, doc.ID)
	if err != nil {
		slog.Warn("failed to fetch activity; treating document as having no edits", "document_id", doc.ID, "document_name", doc.Name, "error", err)
		return documentResult{err: err}
	}
	events := activity.EventsFromRecords(records)
	slog.Debug("activity fetched", "document_id", doc.ID, "records", len(records), "events", len(events))
	entry, ok := Aggregate(doc, events, rules)
	return documentResult{entry: entry, hasEntry: ok}
}
