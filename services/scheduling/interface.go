package scheduling

import (
	"context"
	"time"

	"slotwise/models"
)

// AvailabilityOracle answers free/busy questions for the calendar.
type AvailabilityOracle interface {
	IsFree(ctx context.Context, start, end time.Time) (bool, error)
}

// BookingSink commits appointments to the calendar.
type BookingSink interface {
	CreateAppointment(ctx context.Context, summary string, start, end time.Time) (*models.Appointment, error)
}

// Calendar is a backend that is both oracle and sink.
type Calendar interface {
	AvailabilityOracle
	BookingSink
}

// IntentExtractor turns free text into a structured intent. Any failure to
// produce a well-formed intent is reported as an error.
type IntentExtractor interface {
	Extract(ctx context.Context, text string, now time.Time) (*models.StructuredIntent, error)
}

// Negotiator decides one turn from an already extracted intent.
type Negotiator interface {
	Negotiate(ctx context.Context, intent *models.StructuredIntent, pending *models.PendingSuggestion) Outcome
}

// Assistant runs a full conversational turn.
type Assistant interface {
	HandleTurn(ctx context.Context, req models.ChatRequest) models.ChatResponse
}
