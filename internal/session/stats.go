// Package session aggregates per-session statistics over a parsed transcript.
package session

import (
	"time"

	"github.com/samber/lo"

	"github.com/sessionlab/cxv/internal/domain"
)

// Stats summarizes one session's event stream
type Stats struct {
	Total     int                 // Total emitted events
	ByKind    map[domain.Kind]int // Event count per kind
	ToolCalls int                 // Convenience counter for tool invocations
	Errors    int                 // System events flagged as errors (aborted turns)
	FirstTS   string              // Timestamp of the first timestamped event
	LastTS    string              // Timestamp of the last timestamped event
	Tokens    domain.TokenUsage   // Last cumulative usage counter seen
}

// Collect computes stats in one pass over events in source order.
func Collect(events []domain.Event) *Stats {
	s := &Stats{
		Total:  len(events),
		ByKind: lo.CountValuesBy(events, func(e domain.Event) domain.Kind { return e.Kind }),
	}

	for _, e := range events {
		if e.Timestamp != "" {
			if s.FirstTS == "" {
				s.FirstTS = e.Timestamp
			}
			s.LastTS = e.Timestamp
		}
		switch {
		case e.Kind == domain.KindToolCall:
			s.ToolCalls++
		case e.Kind == domain.KindSystem && e.IsError:
			s.Errors++
		case e.Kind == domain.KindTokenUsage && e.Usage != nil:
			// Counters are cumulative; the last one is the session total
			s.Tokens = *e.Usage
		}
	}

	return s
}

// Duration returns the wall-clock span between the first and last timestamped
// events, or zero when timestamps are missing or unparseable.
func (s *Stats) Duration() time.Duration {
	first, err := time.Parse(time.RFC3339, s.FirstTS)
	if err != nil {
		return 0
	}
	last, err := time.Parse(time.RFC3339, s.LastTS)
	if err != nil {
		return 0
	}
	if last.Before(first) {
		return 0
	}
	return last.Sub(first)
}

// Count returns the number of events of the given kind.
func (s *Stats) Count(k domain.Kind) int {
	return s.ByKind[k]
}
