package scheduling

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	appointmentRepo "slotwise/database/repository/appointment"
	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const overflowingMinutes = 200000000

func TestNegotiate_ConfirmOversizedSuggestionIsMalformed(t *testing.T) {
	oracle := alwaysFree()
	sink := &fakeSink{}
	engine := newTestEngine(oracle, sink, fixedNow)
	pending := &models.PendingSuggestion{SuggestedTime: "2025-07-15 14:00:00", Summary: "Meeting", Duration: overflowingMinutes}

	out := engine.Negotiate(context.Background(), &models.StructuredIntent{Intent: models.IntentConfirm}, pending)

	assert.Equal(t, MsgNothingToConfirm, out.Reply)
	assert.Nil(t, out.Suggestion)
	assert.Empty(t, oracle.queries)
	assert.Empty(t, sink.calls)
}

func TestNegotiate_OversizedBookDurationIsRejected(t *testing.T) {
	oracle := alwaysFree()
	sink := &fakeSink{}
	engine := newTestEngine(oracle, sink, fixedNow)
	pending := models.NewPendingSuggestion(at(15, 16, 0), "Meeting", time.Hour)

	for _, intent := range []*models.StructuredIntent{
		bookAt(at(15, 14, 0), overflowingMinutes),
		window(models.IntentCheckAvailability, at(15, 13, 0), at(15, 17, 0), overflowingMinutes),
	} {
		out := engine.Negotiate(context.Background(), intent, pending)

		assert.Equal(t, MsgCouldNotUnderstand, out.Reply)
		assert.Equal(t, pending, out.Suggestion)
	}
	assert.Empty(t, oracle.queries)
	assert.Empty(t, sink.calls)
}

func TestNegotiate_FullDayDurationIsBooked(t *testing.T) {
	sink := &fakeSink{}
	engine := newTestEngine(alwaysFree(), sink, fixedNow)

	engine.Negotiate(context.Background(), bookAt(at(16, 9, 0), models.MaxDurationMinutes), nil)

	require.Len(t, sink.calls, 1)
	assert.Equal(t, at(17, 9, 0), sink.calls[0].End)
}

func TestAvailabilityChecker_InvertedSlotIsBusy(t *testing.T) {
	oracle := alwaysFree()
	checker := availabilityChecker{oracle: oracle, logger: zap.NewNop()}

	assert.False(t, checker.free(context.Background(), models.Slot{Start: at(15, 14, 0), End: at(15, 13, 0)}))
	assert.False(t, checker.free(context.Background(), models.Slot{Start: at(15, 14, 0), End: at(15, 14, 0)}))
	assert.Empty(t, oracle.queries)
}

func TestNegotiate_OversizedDurationsNeverDoubleBookStoredAppointment(t *testing.T) {
	repo, err := appointmentRepo.NewSQLiteAppointmentRepo(filepath.Join(t.TempDir(), "appointments.db"), time.UTC)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	ctx := context.Background()
	_, err = repo.CreateAppointment(ctx, "Existing", at(15, 14, 0), at(15, 15, 0))
	require.NoError(t, err)

	engine := newTestEngine(repo, repo, fixedNow)
	confirm := engine.Negotiate(ctx, &models.StructuredIntent{Intent: models.IntentConfirm},
		&models.PendingSuggestion{SuggestedTime: "2025-07-15 14:00:00", Summary: "Meeting", Duration: overflowingMinutes})
	book := engine.Negotiate(ctx, bookAt(at(15, 14, 0), overflowingMinutes), nil)

	assert.Nil(t, confirm.Booked)
	assert.Nil(t, book.Booked)
	stored, err := repo.ListBetween(ctx, time.Time{}, at(16, 0, 0))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Existing", stored[0].Summary)
}
