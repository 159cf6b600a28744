package appointmentRepo

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"slotwise/models"
)

// SQLiteAppointmentRepo keeps appointments in a local SQLite file. Times are
// stored as unix seconds.
type SQLiteAppointmentRepo struct {
	db      *sql.DB
	loc     *time.Location
	now     func() time.Time
	writeMu sync.Mutex
}

// NewSQLiteAppointmentRepo opens (and if needed creates) the database at dbPath.
// Appointments read back are reported in loc.
func NewSQLiteAppointmentRepo(dbPath string, loc *time.Location) (*SQLiteAppointmentRepo, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	if loc == nil {
		loc = time.Local
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo := &SQLiteAppointmentRepo{db: db, loc: loc, now: time.Now}
	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return repo, nil
}

func (s *SQLiteAppointmentRepo) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS appointments (
		id TEXT PRIMARY KEY,
		summary TEXT NOT NULL,
		start_at INTEGER NOT NULL,
		end_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_appointments_span ON appointments(start_at, end_at);
	`
	_, err := s.db.Exec(query)
	return err
}

func (s *SQLiteAppointmentRepo) IsFree(ctx context.Context, start, end time.Time) (bool, error) {
	if err := models.CheckInterval(start, end); err != nil {
		return false, err
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM appointments WHERE start_at < ? AND end_at > ?`,
		end.Unix(), start.Unix(),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query overlap: %w", err)
	}
	return n == 0, nil
}

func (s *SQLiteAppointmentRepo) CreateAppointment(ctx context.Context, summary string, start, end time.Time) (*models.Appointment, error) {
	if err := models.CheckInterval(start, end); err != nil {
		return nil, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	appt := models.Appointment{
		ID:        uuid.New().String(),
		Summary:   summary,
		Start:     start,
		End:       end,
		CreatedAt: s.now(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO appointments (id, summary, start_at, end_at, created_at) VALUES (?, ?, ?, ?, ?)`,
		appt.ID, appt.Summary, start.Unix(), end.Unix(), appt.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	return &appt, nil
}

func (s *SQLiteAppointmentRepo) ListBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, summary, start_at, end_at, created_at FROM appointments
		WHERE start_at < ? AND end_at > ? ORDER BY start_at`,
		to.Unix(), from.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appts []models.Appointment
	for rows.Next() {
		var appt models.Appointment
		var startAt, endAt, createdAt int64
		if err := rows.Scan(&appt.ID, &appt.Summary, &startAt, &endAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appt.Start = time.Unix(startAt, 0).In(s.loc)
		appt.End = time.Unix(endAt, 0).In(s.loc)
		appt.CreatedAt = time.Unix(createdAt, 0).In(s.loc)
		appts = append(appts, appt)
	}
	return appts, rows.Err()
}

// Ping reports whether the database is reachable.
func (s *SQLiteAppointmentRepo) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteAppointmentRepo) Close() error {
	return s.db.Close()
}
