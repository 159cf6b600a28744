package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval is returned for intervals that do not end after they start.
var ErrInvalidInterval = errors.New("interval must end after it starts")

// CheckInterval rejects empty and inverted intervals.
func CheckInterval(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}

// Slot is a candidate interval [Start, End).
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration of the slot.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Appointment is a booked calendar entry as reported by the calendar backend.
type Appointment struct {
	ID        string    `json:"id" bson:"id"`
	Summary   string    `json:"summary" bson:"summary"`
	Start     time.Time `json:"start" bson:"start"`
	End       time.Time `json:"end" bson:"end"`
	Link      string    `json:"link,omitempty" bson:"link,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
