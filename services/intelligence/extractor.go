package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"slotwise/models"

	"go.uber.org/zap"
)

// acceptedLayouts are tried in order when reading model timestamps.
var acceptedLayouts = []string{
	models.WallClockLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// Extractor turns free text into a StructuredIntent using a language model.
type Extractor struct {
	client  CompletionClient
	cache   IntentCache
	loc     *time.Location
	timeout time.Duration
	logger  *zap.Logger
}

// NewExtractor builds an extractor. cache may be nil; a zero timeout disables
// the per-call deadline.
func NewExtractor(client CompletionClient, cache IntentCache, loc *time.Location, timeout time.Duration, logger *zap.Logger) *Extractor {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{client: client, cache: cache, loc: loc, timeout: timeout, logger: logger}
}

// Extract asks the model for the intent behind text, relative to now.
func (x *Extractor) Extract(ctx context.Context, text string, now time.Time) (*models.StructuredIntent, error) {
	now = now.In(x.loc)

	if x.cache != nil {
		intent, ok, err := x.cache.Get(ctx, now, text)
		if err != nil {
			x.logger.Warn("intent cache lookup failed", zap.Error(err))
		} else if ok {
			x.logger.Debug("intent cache hit", zap.String("intent", string(intent.Intent)))
			return inLocation(intent, x.loc), nil
		}
	}

	callCtx := ctx
	if x.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, x.timeout)
		defer cancel()
	}

	completion, err := x.client.GenerateContent(callCtx, BuildPrompt(text, now))
	if err != nil {
		return nil, newLLMError(err)
	}

	intent, err := ParseIntent(completion, x.loc)
	if err != nil {
		x.logger.Debug("unparseable completion", zap.String("completion", completion), zap.Error(err))
		return nil, err
	}

	if x.cache != nil {
		if err := x.cache.Set(ctx, now, text, intent); err != nil {
			x.logger.Warn("intent cache store failed", zap.Error(err))
		}
	}
	return intent, nil
}

type rawIntent struct {
	Intent          string          `json:"intent"`
	StartTime       *string         `json:"start_time"`
	EndTime         *string         `json:"end_time"`
	DurationMinutes json.RawMessage `json:"duration_minutes"`
	Summary         *string         `json:"summary"`
	Reply           *string         `json:"reply"`
}

// ParseIntent reads the outermost JSON object of a completion. Timestamps are
// wall-clock values in loc; RFC 3339 values are converted into loc.
func ParseIntent(completion string, loc *time.Location) (*models.StructuredIntent, error) {
	body := extractJSON(completion)
	if body == "" {
		return nil, newParseError("no JSON object in completion", nil)
	}

	var raw rawIntent
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, newParseError("invalid JSON", err)
	}

	intent := &models.StructuredIntent{
		Intent:  models.Intent(strings.ToLower(strings.TrimSpace(raw.Intent))),
		Summary: nonEmpty(raw.Summary),
		Reply:   nonEmpty(raw.Reply),
	}
	if intent.Intent == "" {
		return nil, newParseError("missing intent", nil)
	}

	var err error
	if intent.StartTime, err = parseTimestamp(raw.StartTime, loc); err != nil {
		return nil, newParseError("invalid start_time", err)
	}
	if intent.EndTime, err = parseTimestamp(raw.EndTime, loc); err != nil {
		return nil, newParseError("invalid end_time", err)
	}
	if intent.DurationMinutes, err = parseMinutes(raw.DurationMinutes); err != nil {
		return nil, newParseError("invalid duration_minutes", err)
	}
	if err := intent.Validate(); err != nil {
		return nil, newParseError("invalid window", err)
	}
	return intent, nil
}

// inLocation re-anchors cached timestamps, which come back with a fixed offset.
func inLocation(intent *models.StructuredIntent, loc *time.Location) *models.StructuredIntent {
	if intent.StartTime != nil {
		t := intent.StartTime.In(loc)
		intent.StartTime = &t
	}
	if intent.EndTime != nil {
		t := intent.EndTime.In(loc)
		intent.EndTime = &t
	}
	return intent
}

func extractJSON(content string) string {
	start := strings.Index(content, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(content, "}")
	if end == -1 || end <= start {
		return ""
	}
	return content[start : end+1]
}

func parseTimestamp(value *string, loc *time.Location) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*value)
	if s == "" || strings.EqualFold(s, "null") {
		return nil, nil
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, nil
		}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("unrecognised timestamp %q", s)
	}
	t = t.In(loc)
	return &t, nil
}

// parseMinutes accepts a JSON number or a numeric string holding a whole
// number of minutes no larger than models.MaxDurationMinutes.
func parseMinutes(raw json.RawMessage) (*int, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("duration %q is not a whole number of minutes", s)
	}
	if math.Abs(f) > models.MaxDurationMinutes {
		return nil, fmt.Errorf("duration %q: %w", s, models.ErrDurationOutOfRange)
	}
	minutes := int(f)
	return &minutes, nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
