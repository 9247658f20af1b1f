package report

import (
	"time"

	"github.com/foxseedlab/edittime/internal/activity"
	"github.com/foxseedlab/edittime/internal/document"
)

// DocumentReport is the editing total for one document with at least one event.
type DocumentReport struct {
	DocumentID   string
	DocumentName string
	TotalMinutes int64
	SessionCount int
	EventCount   int
}

// Failure records a document whose activity could not be fetched. The
// document contributes no entry to the report.
type Failure struct {
	DocumentID   string
	DocumentName string
	Err          error
}

type Report struct {
	GeneratedAt time.Time
	Criteria    document.Criteria
	Rules       activity.Rules
	Entries     []DocumentReport
	Failures    []Failure
}

func (r *Report) TotalMinutes() int64 {
	var total int64
	for _, e := range r.Entries {
		total += e.TotalMinutes
	}
	return total
}

// Aggregate sums the session durations of one document. Documents without
// events produce no report.
func Aggregate(doc document.Document, events []activity.EditEvent, rules activity.Rules) (DocumentReport, bool) {
	if len(events) == 0 {
		return DocumentReport{}, false
	}
	sessions := activity.BuildSessions(events, rules.InactivityGap)
	var total int64
	for _, s := range sessions {
		total += activity.SessionDuration(s, rules.MinSessionMinutes)
	}
	return DocumentReport{
		DocumentID:   doc.ID,
		DocumentName: doc.Name,
		TotalMinutes: total,
		SessionCount: len(sessions),
		EventCount:   len(events),
	}, true
}
