package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	completion string
	err        error
	prompts    []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.completion, f.err
}

type memoryCache struct {
	entries map[string]*models.StructuredIntent
	err     error
}

func (m *memoryCache) Get(_ context.Context, now time.Time, text string) (*models.StructuredIntent, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	intent, ok := m.entries[intentKey(now, text)]
	return intent, ok, nil
}

func (m *memoryCache) Set(_ context.Context, now time.Time, text string, intent *models.StructuredIntent) error {
	if m.err != nil {
		return m.err
	}
	m.entries[intentKey(now, text)] = intent
	return nil
}

var extractNow = time.Date(2025, time.July, 15, 9, 0, 0, 0, time.UTC)

func TestExtract_ParsesFencedCompletion(t *testing.T) {
	client := &fakeClient{completion: "```json\n" + `{
  "intent": "book",
  "start_time": "2025-07-16 15:00:00",
  "end_time": "2025-07-16 15:00:00",
  "duration_minutes": 30,
  "summary": "Call",
  "reply": "Booking."
}` + "\n```"}
	extractor := NewExtractor(client, nil, time.UTC, time.Second, nil)

	intent, err := extractor.Extract(context.Background(), "30 minute call tomorrow at 3pm", extractNow)

	require.NoError(t, err)
	assert.Equal(t, models.IntentBook, intent.Intent)
	assert.Equal(t, time.Date(2025, time.July, 16, 15, 0, 0, 0, time.UTC), *intent.StartTime)
	assert.True(t, intent.IsPointRequest())
	assert.Equal(t, 30, *intent.DurationMinutes)
	assert.Equal(t, "Call", *intent.Summary)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], `User: "30 minute call tomorrow at 3pm"`)
}

func TestExtract_ClientFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("503")}
	extractor := NewExtractor(client, nil, time.UTC, 0, nil)

	_, err := extractor.Extract(context.Background(), "hi", extractNow)

	assert.ErrorIs(t, err, ErrLLMFailed)
	assert.NotErrorIs(t, err, ErrUnparseableIntent)
}

func TestExtract_UsesCache(t *testing.T) {
	cache := &memoryCache{entries: map[string]*models.StructuredIntent{}}
	client := &fakeClient{completion: `{"intent": "confirm"}`}
	extractor := NewExtractor(client, cache, time.UTC, 0, nil)

	first, err := extractor.Extract(context.Background(), "Yes", extractNow)
	require.NoError(t, err)
	second, err := extractor.Extract(context.Background(), "yes", extractNow.Add(30*time.Second))
	require.NoError(t, err)

	assert.Len(t, client.prompts, 1)
	assert.Equal(t, models.IntentConfirm, first.Intent)
	assert.Equal(t, first.Intent, second.Intent)
}

func TestExtract_RelativeRequestIsNotReusedLater(t *testing.T) {
	cache := &memoryCache{entries: map[string]*models.StructuredIntent{}}
	client := &fakeClient{completion: `{"intent":"book","start_time":"2025-07-15 11:00:00"}`}
	extractor := NewExtractor(client, cache, time.UTC, 0, nil)

	first, err := extractor.Extract(context.Background(), "book in two hours", extractNow)
	require.NoError(t, err)

	client.completion = `{"intent":"book","start_time":"2025-07-15 15:00:00"}`
	later, err := extractor.Extract(context.Background(), "book in two hours", extractNow.Add(4*time.Hour))
	require.NoError(t, err)

	assert.Len(t, client.prompts, 2)
	assert.Equal(t, 11, first.StartTime.Hour())
	assert.Equal(t, 15, later.StartTime.Hour())
}

func TestExtract_CacheFailureIsIgnored(t *testing.T) {
	cache := &memoryCache{err: errors.New("redis down")}
	client := &fakeClient{completion: `{"intent": "confirm"}`}
	extractor := NewExtractor(client, cache, time.UTC, 0, nil)

	intent, err := extractor.Extract(context.Background(), "yes", extractNow)

	require.NoError(t, err)
	assert.Equal(t, models.IntentConfirm, intent.Intent)
}

func TestParseIntent(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)

	t.Run("nulls are absent", func(t *testing.T) {
		intent, err := ParseIntent(`{"intent":"clarify","start_time":null,"end_time":"","duration_minutes":null,"summary":null,"reply":"Which Monday?"}`, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, models.IntentClarify, intent.Intent)
		assert.Nil(t, intent.StartTime)
		assert.Nil(t, intent.EndTime)
		assert.Nil(t, intent.DurationMinutes)
		assert.Nil(t, intent.Summary)
		assert.Equal(t, "Which Monday?", *intent.Reply)
	})

	t.Run("wall clock is read in the configured zone", func(t *testing.T) {
		intent, err := ParseIntent(`{"intent":"book","start_time":"2025-07-16T15:00:00"}`, est)
		require.NoError(t, err)
		assert.True(t, time.Date(2025, time.July, 16, 15, 0, 0, 0, est).Equal(*intent.StartTime))
		assert.Equal(t, est, intent.StartTime.Location())
	})

	t.Run("rfc3339 is converted", func(t *testing.T) {
		intent, err := ParseIntent(`{"intent":"book","start_time":"2025-07-16T20:00:00Z"}`, est)
		require.NoError(t, err)
		assert.Equal(t, 15, intent.StartTime.Hour())
	})

	t.Run("string duration", func(t *testing.T) {
		intent, err := ParseIntent(`{"intent":"book","start_time":"2025-07-16 15:00","duration_minutes":"45"}`, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, 45, *intent.DurationMinutes)
	})

	t.Run("a full day is accepted", func(t *testing.T) {
		intent, err := ParseIntent(`{"intent":"book","start_time":"2025-07-16 00:00","duration_minutes":1440}`, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, intent.Duration())
	})

	t.Run("intent is normalised", func(t *testing.T) {
		intent, err := ParseIntent(`{"intent":" Check_Availability "}`, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, models.IntentCheckAvailability, intent.Intent)
	})

	failures := map[string]string{
		"no json":        "Sorry, I cannot help with that.",
		"broken json":    `{"intent": "book",`,
		"missing intent": `{"start_time": "2025-07-16 15:00:00"}`,
		"bad timestamp":  `{"intent":"book","start_time":"next tuesday"}`,
		"bad duration":   `{"intent":"book","duration_minutes":"an hour"}`,
		"inverted":       `{"intent":"book","start_time":"2025-07-16 17:00:00","end_time":"2025-07-16 13:00:00"}`,
		"huge duration":  `{"intent":"book","start_time":"2025-07-16 14:00:00","duration_minutes":200000000}`,
		"float overflow": `{"intent":"book","duration_minutes":1e30}`,
		"fractional":     `{"intent":"book","duration_minutes":30.5}`,
		"nan duration":   `{"intent":"book","duration_minutes":"NaN"}`,
		"over a day":     `{"intent":"book","duration_minutes":"1441"}`,
	}
	for name, completion := range failures {
		t.Run(name, func(t *testing.T) {
			_, err := ParseIntent(completion, time.UTC)
			assert.ErrorIs(t, err, ErrUnparseableIntent)
		})
	}
}
