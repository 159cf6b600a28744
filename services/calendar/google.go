package calendar

import (
	"context"
	"fmt"
	"time"

	"slotwise/models"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendar answers availability from, and books into, one Google calendar.
type GoogleCalendar struct {
	svc        *gcal.Service
	calendarID string
	loc        *time.Location
	now        func() time.Time
}

// NewGoogleCalendar builds the calendar service. Credentials come from opts,
// typically option.WithCredentialsFile.
func NewGoogleCalendar(ctx context.Context, calendarID string, loc *time.Location, opts ...option.ClientOption) (*GoogleCalendar, error) {
	opts = append([]option.ClientOption{option.WithScopes(gcal.CalendarEventsScope)}, opts...)
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}
	return &GoogleCalendar{svc: svc, calendarID: calendarID, loc: loc, now: time.Now}, nil
}

// IsFree reports whether no event overlaps [start, end).
func (g *GoogleCalendar) IsFree(ctx context.Context, start, end time.Time) (bool, error) {
	if err := models.CheckInterval(start, end); err != nil {
		return false, err
	}
	events, err := g.svc.Events.List(g.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("list events: %w", err)
	}
	return len(events.Items) == 0, nil
}

func (g *GoogleCalendar) CreateAppointment(ctx context.Context, summary string, start, end time.Time) (*models.Appointment, error) {
	if err := models.CheckInterval(start, end); err != nil {
		return nil, err
	}
	event := &gcal.Event{
		Summary: summary,
		Start:   g.eventTime(start),
		End:     g.eventTime(end),
	}
	created, err := g.svc.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return &models.Appointment{
		ID:        created.Id,
		Summary:   summary,
		Start:     start,
		End:       end,
		Link:      created.HtmlLink,
		CreatedAt: g.now(),
	}, nil
}

// Ping checks that the calendar is reachable with the configured credentials.
func (g *GoogleCalendar) Ping(ctx context.Context) error {
	_, err := g.svc.Events.List(g.calendarID).
		TimeMin(g.now().Format(time.RFC3339)).
		MaxResults(1).
		Context(ctx).
		Do()
	return err
}

// eventTime carries the zone name when it is an IANA name Google accepts.
func (g *GoogleCalendar) eventTime(t time.Time) *gcal.EventDateTime {
	edt := &gcal.EventDateTime{DateTime: t.Format(time.RFC3339)}
	if name := g.loc.String(); name != "Local" {
		edt.TimeZone = name
	}
	return edt
}
