package models

import (
	"errors"
	"time"
)

// Intent is the scheduling action the language model recognised in a message.
type Intent string

const (
	IntentBook              Intent = "book"
	IntentCheckAvailability Intent = "check_availability"
	IntentConfirm           Intent = "confirm"
	IntentClarify           Intent = "clarify"
)

// Known reports whether the intent belongs to the closed set the engine handles.
func (i Intent) Known() bool {
	switch i {
	case IntentBook, IntentCheckAvailability, IntentConfirm, IntentClarify:
		return true
	}
	return false
}

const (
	DefaultDurationMinutes = 60
	MaxDurationMinutes     = 24 * 60
	DefaultBookingSummary  = "Appointment"
	DefaultMeetingSummary  = "Meeting"
)

var (
	// ErrInvertedWindow is returned by Validate when the window ends before it starts.
	ErrInvertedWindow = errors.New("start_time is after end_time")

	// ErrDurationOutOfRange is returned for durations longer than a day.
	ErrDurationOutOfRange = errors.New("duration out of range")
)

// StructuredIntent is the extractor's view of one user message. Times are
// wall-clock values in the assistant's configured zone.
type StructuredIntent struct {
	Intent          Intent     `json:"intent"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Summary         *string    `json:"summary,omitempty"`
	Reply           *string    `json:"reply,omitempty"`
}

// Validate rejects intents whose window is inverted or whose duration exceeds
// MaxDurationMinutes.
func (si *StructuredIntent) Validate() error {
	if si.StartTime != nil && si.EndTime != nil && si.StartTime.After(*si.EndTime) {
		return ErrInvertedWindow
	}
	if si.DurationMinutes != nil && *si.DurationMinutes > MaxDurationMinutes {
		return ErrDurationOutOfRange
	}
	return nil
}

// IsPointRequest reports a request for one exact instant: a start with no end,
// or an end equal to the start.
func (si *StructuredIntent) IsPointRequest() bool {
	return si.StartTime != nil && (si.EndTime == nil || si.EndTime.Equal(*si.StartTime))
}

// IsWindowRequest reports a request for any slot inside [start, end).
func (si *StructuredIntent) IsWindowRequest() bool {
	return si.StartTime != nil && si.EndTime != nil && si.StartTime.Before(*si.EndTime)
}

// Duration returns the requested duration, falling back to the default for
// absent, non-positive or out-of-range values.
func (si *StructuredIntent) Duration() time.Duration {
	if si.DurationMinutes == nil || *si.DurationMinutes <= 0 || *si.DurationMinutes > MaxDurationMinutes {
		return DefaultDurationMinutes * time.Minute
	}
	return time.Duration(*si.DurationMinutes) * time.Minute
}

// SummaryOr returns the summary or the given fallback when it is absent or blank.
func (si *StructuredIntent) SummaryOr(fallback string) string {
	if si.Summary == nil || *si.Summary == "" {
		return fallback
	}
	return *si.Summary
}

// ReplyOr returns the extractor's reply or the fallback.
func (si *StructuredIntent) ReplyOr(fallback string) string {
	if si.Reply == nil || *si.Reply == "" {
		return fallback
	}
	return *si.Reply
}
