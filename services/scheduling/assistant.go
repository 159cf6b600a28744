package scheduling

import (
	"context"
	"errors"
	"strings"
	"time"

	"slotwise/models"

	"go.uber.org/zap"
)

// ErrNoIntent is reported when an extractor returns neither an intent nor an error.
var ErrNoIntent = errors.New("extractor returned no intent")

// DefaultAssistant glues the extractor to the negotiation engine. It keeps no
// state between turns; the pending suggestion travels with the request.
type DefaultAssistant struct {
	Extractor IntentExtractor
	Engine    Negotiator
	Now       func() time.Time
	Logger    *zap.Logger
}

// NewAssistant builds an assistant with the wall clock.
func NewAssistant(extractor IntentExtractor, engine Negotiator, logger *zap.Logger) *DefaultAssistant {
	return &DefaultAssistant{
		Extractor: extractor,
		Engine:    engine,
		Now:       time.Now,
		Logger:    logger,
	}
}

// HandleTurn processes one message. Extraction problems are absorbed into a
// generic "could not understand" reply that leaves the pending suggestion as is.
func (a *DefaultAssistant) HandleTurn(ctx context.Context, req models.ChatRequest) models.ChatResponse {
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return models.NewChatResponse(MsgCouldNotUnderstand, req.LastSuggested)
	}

	intent, err := a.extract(ctx, text)
	if err != nil {
		logger.Warn("intent extraction failed", zap.String("text", text), zap.Error(err))
		return models.NewChatResponse(MsgCouldNotUnderstand, req.LastSuggested)
	}

	outcome := a.Engine.Negotiate(ctx, intent, req.LastSuggested)
	fields := []zap.Field{
		zap.String("intent", string(intent.Intent)),
		zap.Bool("suggested", outcome.Suggestion != nil),
	}
	if outcome.Booked != nil {
		fields = append(fields, zap.String("appointmentID", outcome.Booked.ID), zap.Time("start", outcome.Booked.Start))
	}
	logger.Info("turn handled", fields...)

	return models.NewChatResponse(outcome.Reply, outcome.Suggestion)
}

func (a *DefaultAssistant) extract(ctx context.Context, text string) (*models.StructuredIntent, error) {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	intent, err := a.Extractor.Extract(ctx, text, now())
	if err != nil {
		return nil, err
	}
	if intent == nil {
		return nil, ErrNoIntent
	}
	if err := intent.Validate(); err != nil {
		return nil, err
	}
	return intent, nil
}
