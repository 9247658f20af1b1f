package activity

import (
	"slices"
	"time"
)

const (
	DefaultInactivityGap     = 5 * time.Minute
	DefaultMinSessionMinutes = 1
)

// EditEvent is a single instant at which an edit was observed on a document.
type EditEvent struct {
	Timestamp time.Time
}

// Session is a chronologically ordered, non-empty run of events whose
// consecutive gaps never exceed the inactivity gap.
type Session []EditEvent

type Rules struct {
	InactivityGap     time.Duration
	MinSessionMinutes int64
}

func DefaultRules() Rules {
	return Rules{
		InactivityGap:     DefaultInactivityGap,
		MinSessionMinutes: DefaultMinSessionMinutes,
	}
}

// BuildSessions sorts events and splits them wherever two neighbours are
// more than gap apart. A gap of exactly gap keeps the session open.
func BuildSessions(events []EditEvent, gap time.Duration) []Session {
	if len(events) == 0 {
		return nil
	}
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b EditEvent) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	sessions := make([]Session, 0, 1)
	start := 0
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Timestamp.Sub(sorted[i-1].Timestamp) > gap {
			sessions = append(sessions, Session(sorted[start:i:i]))
			start = i
		}
	}
	return append(sessions, Session(sorted[start:]))
}

// SessionDuration returns the session length in whole minutes, rounding
// half a minute up, and never less than floorMinutes. An empty session is 0.
func SessionDuration(s Session, floorMinutes int64) int64 {
	if len(s) == 0 {
		return 0
	}
	return max(floorMinutes, roundMinutes(s.Span()))
}

// Span is the time between the first and last event.
func (s Session) Span() time.Duration {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Timestamp.Sub(s[0].Timestamp)
}

// Duration.Round rounds halfway values away from zero.
func roundMinutes(d time.Duration) int64 {
	return int64(d.Round(time.Minute) / time.Minute)
}
