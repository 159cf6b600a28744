package scheduling

import (
	"context"
	"time"

	"slotwise/models"

	"go.uber.org/zap"
)

// Outcome is the result of one negotiated turn. Suggestion is what the client
// must send back next turn; nil clears it.
type Outcome struct {
	Reply      string
	Suggestion *models.PendingSuggestion
	Booked     *models.Appointment
}

// EngineConfig carries the engine's policy knobs.
type EngineConfig struct {
	Location    *time.Location
	HorizonDays int
	Now         func() time.Time
}

// NegotiationEngine maps an intent plus the pending suggestion to a reply,
// booking only when the user asked for an exact, free instant or confirmed a
// suggestion that is still free.
//
// The confirm path re-checks the slot right before committing. Two clients
// confirming the same slot at the same moment can still both pass the check;
// the calendar is not locked between check and insert.
type NegotiationEngine struct {
	slots   *SlotFinder
	checker availabilityChecker
	sink    BookingSink
	loc     *time.Location
	now     func() time.Time
	logger  *zap.Logger
}

// NewNegotiationEngine wires the engine to its calendar collaborators.
func NewNegotiationEngine(oracle AvailabilityOracle, sink BookingSink, cfg EngineConfig, logger *zap.Logger) *NegotiationEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &NegotiationEngine{
		slots:   NewSlotFinder(oracle, cfg.HorizonDays, cfg.Now, logger),
		checker: availabilityChecker{oracle: oracle, logger: logger},
		sink:    sink,
		loc:     cfg.Location,
		now:     cfg.Now,
		logger:  logger,
	}
}

// Negotiate runs one turn. It never fails: every problem becomes reply text.
func (e *NegotiationEngine) Negotiate(ctx context.Context, intent *models.StructuredIntent, pending *models.PendingSuggestion) Outcome {
	if intent == nil {
		return Outcome{Reply: MsgCouldNotUnderstand, Suggestion: pending}
	}
	if err := intent.Validate(); err != nil {
		e.logger.Warn("rejecting invalid intent", zap.Error(err))
		return Outcome{Reply: MsgCouldNotUnderstand, Suggestion: pending}
	}

	switch intent.Intent {
	case models.IntentConfirm:
		return e.confirm(ctx, pending)
	case models.IntentClarify:
		return Outcome{Reply: intent.ReplyOr(MsgClarifyFallback), Suggestion: pending}
	case models.IntentBook:
		return e.book(ctx, intent, pending)
	case models.IntentCheckAvailability:
		return e.checkAvailability(ctx, intent, pending)
	default:
		e.logger.Info("unrecognized intent", zap.String("intent", string(intent.Intent)))
		return Outcome{Reply: intent.ReplyOr(MsgUnrecognized), Suggestion: pending}
	}
}

func (e *NegotiationEngine) confirm(ctx context.Context, pending *models.PendingSuggestion) Outcome {
	if pending == nil {
		return Outcome{Reply: MsgNothingToConfirm}
	}
	slot, err := pending.Slot(e.loc)
	if err != nil {
		e.logger.Warn("discarding malformed suggestion", zap.Error(err))
		return Outcome{Reply: MsgNothingToConfirm}
	}
	summary := pending.Summary
	if summary == "" {
		summary = models.DefaultMeetingSummary
	}

	if !slot.Start.Before(e.now()) && e.checker.free(ctx, slot) {
		appt, err := e.sink.CreateAppointment(ctx, summary, slot.Start, slot.End)
		if err != nil {
			e.logger.Error("booking confirmed slot failed", zap.Time("start", slot.Start), zap.Error(err))
			return Outcome{Reply: MsgConfirmFailed, Suggestion: pending}
		}
		return Outcome{Reply: msgConfirmed(slot.Start), Booked: appt}
	}

	next, ok := e.slots.FindNextSlot(ctx, e.searchFrom(slot.Start.Add(SlotStep)), slot.Duration(), false, 0)
	if !ok {
		return Outcome{Reply: msgNoSlots(e.slots.HorizonDays())}
	}
	return e.propose(msgNoLongerAvailable(next), next, summary, slot.Duration())
}

func (e *NegotiationEngine) book(ctx context.Context, intent *models.StructuredIntent, pending *models.PendingSuggestion) Outcome {
	duration := intent.Duration()
	summary := intent.SummaryOr(models.DefaultBookingSummary)

	switch {
	case intent.IsPointRequest():
		return e.bookPoint(ctx, *intent.StartTime, duration, summary)
	case intent.IsWindowRequest():
		return e.bookWindow(ctx, *intent.StartTime, *intent.EndTime, duration, summary)
	default:
		return Outcome{Reply: MsgCouldNotParse, Suggestion: pending}
	}
}

func (e *NegotiationEngine) bookPoint(ctx context.Context, start time.Time, duration time.Duration, summary string) Outcome {
	now := e.now()
	slot := models.Slot{Start: start, End: start.Add(duration)}
	passed := start.Before(now)

	if !passed && e.checker.free(ctx, slot) {
		appt, err := e.sink.CreateAppointment(ctx, summary, slot.Start, slot.End)
		if err != nil {
			e.logger.Error("booking requested slot failed", zap.Time("start", start), zap.Error(err))
			return Outcome{
				Reply:      msgBookingFailed(start),
				Suggestion: models.NewPendingSuggestion(start, summary, duration),
			}
		}
		return Outcome{Reply: msgBooked(start), Booked: appt}
	}

	from := e.searchFrom(start.Add(SlotStep))
	if sameDate(start, now.In(e.loc)) {
		if next, ok := e.slots.FindNextSlot(ctx, from, duration, true, 0); ok {
			if passed {
				return e.propose(msgPassed(start, next), next, summary, duration)
			}
			return e.propose(msgNextToday(start, next), next, summary, duration)
		}
		tomorrow := time.Date(start.Year(), start.Month(), start.Day()+1, DayStartHour, 0, 0, 0, start.Location())
		if next, ok := e.slots.FindNextSlot(ctx, tomorrow, duration, false, 0); ok {
			return e.propose(msgNoMoreToday(next), next, summary, duration)
		}
		return Outcome{Reply: msgNoSlots(e.slots.HorizonDays())}
	}

	next, ok := e.slots.FindNextSlot(ctx, from, duration, false, 0)
	if !ok {
		return Outcome{Reply: msgNoSlots(e.slots.HorizonDays())}
	}
	switch {
	case passed:
		return e.propose(msgPassed(start, next), next, summary, duration)
	case sameDate(start, next):
		return e.propose(msgNextSameDay(start, next), next, summary, duration)
	default:
		return e.propose(msgNextOtherDay(start, next), next, summary, duration)
	}
}

func (e *NegotiationEngine) bookWindow(ctx context.Context, from, to time.Time, duration time.Duration, summary string) Outcome {
	if start, ok := e.slots.ScanWindow(ctx, from, to, duration); ok {
		return e.propose(msgWindowAvailable(start), start, summary, duration)
	}
	next, ok := e.slots.FindNextSlot(ctx, e.searchFrom(to), duration, false, 0)
	if !ok {
		return Outcome{Reply: msgNoSlots(e.slots.HorizonDays())}
	}
	return e.propose(msgWindowTaken(next), next, summary, duration)
}

func (e *NegotiationEngine) checkAvailability(ctx context.Context, intent *models.StructuredIntent, pending *models.PendingSuggestion) Outcome {
	duration := intent.Duration()
	summary := intent.SummaryOr(models.DefaultMeetingSummary)

	switch {
	case intent.IsWindowRequest():
		from, to := *intent.StartTime, *intent.EndTime
		if start, ok := e.slots.ScanWindow(ctx, from, to, duration); ok {
			return e.propose(msgFreeTime(start), start, summary, duration)
		}
		next, ok := e.slots.FindNextSlot(ctx, e.searchFrom(to), duration, false, 0)
		if !ok {
			return Outcome{Reply: msgFullyBooked(e.slots.HorizonDays())}
		}
		return e.propose(msgNoFreeTime(next), next, summary, duration)

	case intent.IsPointRequest():
		start := *intent.StartTime
		slot := models.Slot{Start: start, End: start.Add(duration)}
		if !start.Before(e.now()) && e.checker.free(ctx, slot) {
			return e.propose(msgSlotFree(start), start, summary, duration)
		}
		next, ok := e.slots.FindNextSlot(ctx, e.searchFrom(start.Add(SlotStep)), duration, false, 0)
		if !ok {
			return Outcome{Reply: msgFullyBooked(e.slots.HorizonDays())}
		}
		return e.propose(msgSlotTaken(start, next), next, summary, duration)

	default:
		return Outcome{Reply: MsgCouldNotParse, Suggestion: pending}
	}
}

func (e *NegotiationEngine) propose(reply string, start time.Time, summary string, duration time.Duration) Outcome {
	return Outcome{
		Reply:      reply,
		Suggestion: models.NewPendingSuggestion(start, summary, duration),
	}
}

// searchFrom moves a search start that lies in the past up to now, so the
// horizon is counted from today rather than from a date that already went by.
func (e *NegotiationEngine) searchFrom(t time.Time) time.Time {
	now := e.now().In(t.Location())
	if t.Before(now) {
		return now
	}
	return t
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
