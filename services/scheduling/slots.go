package scheduling

import (
	"context"
	"time"

	"slotwise/models"

	"go.uber.org/zap"
)

// Search policy. Candidates start on quarter hours between 09:00 and 20:45;
// only the start is bounded, a slot may run past 21:00.
const (
	SlotStep           = 15 * time.Minute
	DayStartHour       = 9
	LastStartHour      = 20
	DefaultHorizonDays = 14
)

var quarterHours = [...]int{0, 15, 30, 45}

// SlotFinder scans the calendar forward for the first free interval.
type SlotFinder struct {
	checker     availabilityChecker
	horizonDays int
	now         func() time.Time
}

// NewSlotFinder builds a finder over oracle. A non-positive horizon falls back
// to DefaultHorizonDays; a nil clock falls back to time.Now.
func NewSlotFinder(oracle AvailabilityOracle, horizonDays int, now func() time.Time, logger *zap.Logger) *SlotFinder {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotFinder{
		checker:     availabilityChecker{oracle: oracle, logger: logger},
		horizonDays: horizonDays,
		now:         now,
	}
}

// HorizonDays is the number of days FindNextSlot scans by default.
func (f *SlotFinder) HorizonDays() int {
	return f.horizonDays
}

// FindNextSlot returns the start of the first free slot of the given duration
// at or after `after`. The first day is scanned from after's hour and minute,
// every following day from 09:00. sameDayOnly limits the scan to after's date;
// otherwise horizonDays days are scanned (the finder's horizon when <= 0).
// Slots that already started relative to the finder's clock are never returned.
func (f *SlotFinder) FindNextSlot(ctx context.Context, after time.Time, duration time.Duration, sameDayOnly bool, horizonDays int) (time.Time, bool) {
	days := horizonDays
	if days <= 0 {
		days = f.horizonDays
	}
	if sameDayOnly {
		days = 1
	}

	now := f.now()
	loc := after.Location()
	for offset := 0; offset < days; offset++ {
		day := time.Date(after.Year(), after.Month(), after.Day()+offset, 0, 0, 0, 0, loc)

		startHour, startMinute := DayStartHour, 0
		if offset == 0 {
			startHour, startMinute = after.Hour(), after.Minute()
		}

		for hour := startHour; hour <= LastStartHour; hour++ {
			for _, minute := range quarterHours {
				if hour == startHour && minute < startMinute {
					continue
				}
				if ctx.Err() != nil {
					return time.Time{}, false
				}

				start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
				if start.Before(after) || start.Before(now) {
					continue
				}
				if f.checker.free(ctx, models.Slot{Start: start, End: start.Add(duration)}) {
					return start, true
				}
			}
		}
	}
	return time.Time{}, false
}

// ScanWindow returns the earliest free quarter-hour-aligned slot that fits
// entirely inside [from, to). Business hours do not apply here: the caller's
// window is used as given. Slots in the past are skipped.
func (f *SlotFinder) ScanWindow(ctx context.Context, from, to time.Time, duration time.Duration) (time.Time, bool) {
	now := f.now()
	for start := alignToStep(from); !start.Add(duration).After(to); start = start.Add(SlotStep) {
		if ctx.Err() != nil {
			return time.Time{}, false
		}
		if start.Before(now) {
			continue
		}
		if f.checker.free(ctx, models.Slot{Start: start, End: start.Add(duration)}) {
			return start, true
		}
	}
	return time.Time{}, false
}

// alignToStep rounds t up to the next wall-clock quarter hour.
func alignToStep(t time.Time) time.Time {
	hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	steps := (t.Sub(hour) + SlotStep - 1) / SlotStep
	return hour.Add(steps * SlotStep)
}
