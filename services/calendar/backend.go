package calendar

import (
	"context"
	"fmt"

	"slotwise/config"
	"slotwise/database"
	appointmentRepo "slotwise/database/repository/appointment"
	"slotwise/services/scheduling"

	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Backend is a calendar the assistant can query, book into and health-check.
type Backend interface {
	scheduling.Calendar
	Ping(ctx context.Context) error
}

// Open builds the backend selected by CALENDAR_BACKEND. The returned close
// function releases its connections.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Backend, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.CalendarBackend {
	case config.BackendGoogle:
		var opts []option.ClientOption
		if cfg.GoogleCredentials != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GoogleCredentials))
		}
		cal, err := NewGoogleCalendar(ctx, cfg.GoogleCalendarID, cfg.Location(), opts...)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using Google Calendar backend", zap.String("calendarID", cfg.GoogleCalendarID))
		return cal, noop, nil

	case config.BackendMongo:
		client, err := database.InitDB(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		repo := appointmentRepo.NewMongoAppointmentRepo(client, cfg.DatabaseName)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = database.CloseDB(ctx)
			return nil, nil, err
		}
		logger.Info("Using MongoDB calendar backend", zap.String("database", cfg.DatabaseName))
		return repo, database.CloseDB, nil

	case config.BackendSQLite:
		repo, err := appointmentRepo.NewSQLiteAppointmentRepo(cfg.SQLitePath, cfg.Location())
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using SQLite calendar backend", zap.String("path", cfg.SQLitePath))
		return repo, func(context.Context) error { return repo.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown calendar backend %q", cfg.CalendarBackend)
	}
}
