package appointmentRepo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SQLiteAppointmentRepo {
	t.Helper()
	repo, err := NewSQLiteAppointmentRepo(filepath.Join(t.TempDir(), "data", "appointments.db"), time.UTC)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func hm(hour, minute int) time.Time {
	return time.Date(2025, time.July, 15, hour, minute, 0, 0, time.UTC)
}

func TestSQLiteRepo_OverlapIsHalfOpen(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	appt, err := repo.CreateAppointment(ctx, "Meeting", hm(14, 0), hm(15, 0))
	require.NoError(t, err)
	assert.NotEmpty(t, appt.ID)

	cases := map[string]struct {
		start, end time.Time
		free       bool
	}{
		"same interval":   {hm(14, 0), hm(15, 0), false},
		"starts inside":   {hm(14, 30), hm(15, 30), false},
		"ends inside":     {hm(13, 30), hm(14, 15), false},
		"covers":          {hm(13, 0), hm(16, 0), false},
		"touches before":  {hm(13, 0), hm(14, 0), true},
		"touches after":   {hm(15, 0), hm(16, 0), true},
		"different hours": {hm(9, 0), hm(10, 0), true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			free, err := repo.IsFree(ctx, tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.free, free)
		})
	}
}

func TestSQLiteRepo_RejectsEmptyAndInvertedIntervals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateAppointment(ctx, "Existing", hm(14, 0), hm(15, 0))
	require.NoError(t, err)

	// An overflowed duration puts the end before the start, which the overlap
	// predicate would otherwise report as free.
	minutes := 200000000
	wrapped := hm(14, 0).Add(time.Duration(minutes) * time.Minute)
	require.True(t, wrapped.Before(hm(14, 0)))

	for name, end := range map[string]time.Time{
		"inverted": wrapped,
		"empty":    hm(14, 0),
	} {
		t.Run(name, func(t *testing.T) {
			free, err := repo.IsFree(ctx, hm(14, 0), end)
			assert.ErrorIs(t, err, models.ErrInvalidInterval)
			assert.False(t, free)

			appt, err := repo.CreateAppointment(ctx, "Overlapping", hm(14, 0), end)
			assert.ErrorIs(t, err, models.ErrInvalidInterval)
			assert.Nil(t, appt)
		})
	}

	appts, err := repo.ListBetween(ctx, time.Time{}, hm(23, 0))
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, "Existing", appts[0].Summary)
}

func TestSQLiteRepo_ListBetween(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateAppointment(ctx, "Late", hm(16, 0), hm(17, 0))
	require.NoError(t, err)
	_, err = repo.CreateAppointment(ctx, "Early", hm(9, 0), hm(9, 30))
	require.NoError(t, err)
	_, err = repo.CreateAppointment(ctx, "Evening", hm(19, 0), hm(20, 0))
	require.NoError(t, err)

	appts, err := repo.ListBetween(ctx, hm(9, 0), hm(18, 0))
	require.NoError(t, err)
	require.Len(t, appts, 2)
	assert.Equal(t, "Early", appts[0].Summary)
	assert.Equal(t, "Late", appts[1].Summary)
	assert.True(t, hm(16, 0).Equal(appts[1].Start))
	assert.Equal(t, time.UTC, appts[1].Start.Location())
}

func TestSQLiteRepo_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.db")
	ctx := context.Background()

	repo, err := NewSQLiteAppointmentRepo(path, time.UTC)
	require.NoError(t, err)
	_, err = repo.CreateAppointment(ctx, "Meeting", hm(14, 0), hm(15, 0))
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteAppointmentRepo(path, time.UTC)
	require.NoError(t, err)
	defer reopened.Close()

	free, err := reopened.IsFree(ctx, hm(14, 15), hm(14, 45))
	require.NoError(t, err)
	assert.False(t, free)
	assert.NoError(t, reopened.Ping(ctx))
}
