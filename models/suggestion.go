package models

import (
	"fmt"
	"time"
)

// WallClockLayout is the timestamp format exchanged with the model and the client.
const WallClockLayout = "2006-01-02 15:04:05"

// PendingSuggestion is the one slot proposed in a previous turn and not yet
// confirmed. The client keeps it and sends it back verbatim.
type PendingSuggestion struct {
	SuggestedTime string `json:"suggested_time"`
	Summary       string `json:"summary"`
	Duration      int    `json:"duration"` // minutes
}

// NewPendingSuggestion renders a slot start into the wire format.
func NewPendingSuggestion(start time.Time, summary string, duration time.Duration) *PendingSuggestion {
	return &PendingSuggestion{
		SuggestedTime: start.Format(WallClockLayout),
		Summary:       summary,
		Duration:      int(duration / time.Minute),
	}
}

// Slot parses the suggestion back into an interval anchored in loc.
func (p *PendingSuggestion) Slot(loc *time.Location) (Slot, error) {
	if p == nil || p.SuggestedTime == "" {
		return Slot{}, fmt.Errorf("empty suggestion")
	}
	if p.Duration <= 0 || p.Duration > MaxDurationMinutes {
		return Slot{}, fmt.Errorf("invalid suggestion duration %d", p.Duration)
	}
	start, err := time.ParseInLocation(WallClockLayout, p.SuggestedTime, loc)
	if err != nil {
		return Slot{}, fmt.Errorf("invalid suggested_time %q: %w", p.SuggestedTime, err)
	}
	return Slot{Start: start, End: start.Add(time.Duration(p.Duration) * time.Minute)}, nil
}
