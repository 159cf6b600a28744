package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotwise/models"
)

// fixedNow is a Tuesday morning before business hours.
var fixedNow = time.Date(2025, time.July, 15, 8, 0, 0, 0, time.UTC)

func clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.July, day, hour, minute, 0, 0, time.UTC)
}

// fakeOracle answers from a predicate and records every query.
type fakeOracle struct {
	freeFn  func(start, end time.Time) bool
	errFn   func(start, end time.Time) error
	queries []models.Slot
}

func (o *fakeOracle) IsFree(_ context.Context, start, end time.Time) (bool, error) {
	o.queries = append(o.queries, models.Slot{Start: start, End: end})
	if o.errFn != nil {
		if err := o.errFn(start, end); err != nil {
			return false, err
		}
	}
	if o.freeFn == nil {
		return true, nil
	}
	return o.freeFn(start, end), nil
}

func alwaysFree() *fakeOracle { return &fakeOracle{} }

func neverFree() *fakeOracle {
	return &fakeOracle{freeFn: func(time.Time, time.Time) bool { return false }}
}

// freeOnlyAt reports exactly the given starts as free.
func freeOnlyAt(starts ...time.Time) *fakeOracle {
	return &fakeOracle{freeFn: func(start, _ time.Time) bool {
		for _, s := range starts {
			if s.Equal(start) {
				return true
			}
		}
		return false
	}}
}

// busyBetween reports any interval overlapping one of the busy slots as taken.
func busyBetween(busy ...models.Slot) *fakeOracle {
	return &fakeOracle{freeFn: func(start, end time.Time) bool {
		for _, b := range busy {
			if start.Before(b.End) && end.After(b.Start) {
				return false
			}
		}
		return true
	}}
}

type bookingCall struct {
	Summary    string
	Start, End time.Time
}

// fakeSink records commits and can be told to fail.
type fakeSink struct {
	calls []bookingCall
	err   error
}

func (s *fakeSink) CreateAppointment(_ context.Context, summary string, start, end time.Time) (*models.Appointment, error) {
	s.calls = append(s.calls, bookingCall{Summary: summary, Start: start, End: end})
	if s.err != nil {
		return nil, s.err
	}
	return &models.Appointment{
		ID:      fmt.Sprintf("appt-%d", len(s.calls)),
		Summary: summary,
		Start:   start,
		End:     end,
	}, nil
}

// fakeExtractor returns a canned intent or error.
type fakeExtractor struct {
	intent *models.StructuredIntent
	err    error
	texts  []string
}

func (f *fakeExtractor) Extract(_ context.Context, text string, _ time.Time) (*models.StructuredIntent, error) {
	f.texts = append(f.texts, text)
	return f.intent, f.err
}

var errCalendarDown = errors.New("calendar unreachable")

func ptr[T any](v T) *T { return &v }
