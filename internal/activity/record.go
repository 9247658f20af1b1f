package activity

import (
	"context"
	"time"
)

type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Record is a raw activity entry as reported by an activity source. At most
// one of Timestamp and TimeRange is normally set.
type Record struct {
	Timestamp *time.Time
	TimeRange *TimeRange
}

type Source interface {
	ListRecords(ctx context.Context, documentID string) ([]Record, error)
}

// ExtractTimestamp prefers the direct instant and falls back to the end of
// the range. Records with neither yield false.
func ExtractTimestamp(r Record) (time.Time, bool) {
	switch {
	case r.Timestamp != nil && !r.Timestamp.IsZero():
		return *r.Timestamp, true
	case r.TimeRange != nil && !r.TimeRange.End.IsZero():
		return r.TimeRange.End, true
	default:
		return time.Time{}, false
	}
}

func EventsFromRecords(records []Record) []EditEvent {
	events := make([]EditEvent, 0, len(records))
	for _, r := range records {
		ts, ok := ExtractTimestamp(r)
		if !ok {
			continue
		}
		events = append(events, EditEvent{Timestamp: ts.UTC()})
	}
	return events
}
