package ai

import (
	"context"
	"time"

	"slotwise/models"
)

// CompletionClient sends one prompt to a language model and returns its text.
type CompletionClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// IntentCache remembers extracted intents for identical messages sent within
// the same minute.
type IntentCache interface {
	Get(ctx context.Context, now time.Time, text string) (*models.StructuredIntent, bool, error)
	Set(ctx context.Context, now time.Time, text string, intent *models.StructuredIntent) error
}
