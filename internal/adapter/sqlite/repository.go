package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/webinardesk/webinardesk/internal/domain"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// WebinarRepository implements domain.WebinarRepository using SQLite.
type WebinarRepository struct {
	db *sql.DB
}

// Compile-time check: WebinarRepository implements domain.WebinarRepository.
var _ domain.WebinarRepository = (*WebinarRepository)(nil)

// New opens a SQLite database, runs migrations, and returns a ready repository.
func New(dataSourceName string) (*WebinarRepository, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return NewFromDB(db)
}

// NewFromDB wraps an existing database connection, runs migrations, and
// returns a ready repository. Use this when the *sql.DB has been
// pre-configured (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*WebinarRepository, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &WebinarRepository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *WebinarRepository) Close() error {
	return r.db.Close()
}

// DB returns the underlying database connection for use by other adapters
// (e.g., river).
func (r *WebinarRepository) DB() *sql.DB {
	return r.db
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

const timeFormat = time.RFC3339

func (r *WebinarRepository) Create(ctx context.Context, w domain.Webinar) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO webinars (id, organizer_id, title, start_date, end_date, seats, version)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.OrganizerID, w.Title,
		w.StartDate.UTC().Format(timeFormat),
		w.EndDate.UTC().Format(timeFormat),
		w.Seats, w.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateWebinarError{ID: w.ID}
		}
		return fmt.Errorf("inserting webinar: %w", err)
	}
	return nil
}

func (r *WebinarRepository) FindByID(ctx context.Context, id string) (domain.Webinar, error) {
	return r.scanWebinar(r.db.QueryRowContext(ctx,
		`SELECT id, organizer_id, title, start_date, end_date, seats, version
		 FROM webinars WHERE id = ?`, id,
	))
}

// Update overwrites the stored record. The write is conditional on the
// entity's version so a read-modify-write race between two callers cannot
// silently lose an update.
func (r *WebinarRepository) Update(ctx context.Context, w domain.Webinar) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE webinars
		 SET title = ?, start_date = ?, end_date = ?, seats = ?, version = version + 1
		 WHERE id = ? AND version = ?`,
		w.Title,
		w.StartDate.UTC().Format(timeFormat),
		w.EndDate.UTC().Format(timeFormat),
		w.Seats, w.ID, w.Version,
	)
	if err != nil {
		return fmt.Errorf("updating webinar: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		// Either the id is unknown or the version moved underneath us.
		if _, findErr := r.FindByID(ctx, w.ID); findErr != nil {
			return findErr
		}
		return &domain.ConflictError{ID: w.ID}
	}

	return nil
}

func (r *WebinarRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Webinar, error) {
	query := `SELECT id, organizer_id, title, start_date, end_date, seats, version FROM webinars`
	var args []any

	if filter.OrganizerID != "" {
		query += ` WHERE organizer_id = ?`
		args = append(args, filter.OrganizerID)
	}

	query += ` ORDER BY start_date ASC, id ASC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing webinars: %w", err)
	}
	defer rows.Close()

	var webinars []domain.Webinar
	for rows.Next() {
		w, err := r.scanWebinarFromRows(rows)
		if err != nil {
			return nil, err
		}
		webinars = append(webinars, w)
	}

	return webinars, rows.Err()
}

// scanWebinar scans a single row from QueryRow into a domain.Webinar.
func (r *WebinarRepository) scanWebinar(row *sql.Row) (domain.Webinar, error) {
	var w domain.Webinar
	var startDate, endDate string

	err := row.Scan(&w.ID, &w.OrganizerID, &w.Title, &startDate, &endDate, &w.Seats, &w.Version)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Webinar{}, domain.ErrWebinarNotFound
		}
		return domain.Webinar{}, fmt.Errorf("scanning webinar: %w", err)
	}

	w.StartDate, _ = time.Parse(timeFormat, startDate)
	w.EndDate, _ = time.Parse(timeFormat, endDate)

	return w, nil
}

// scanWebinarFromRows scans a single row from Rows (used in List).
func (r *WebinarRepository) scanWebinarFromRows(rows *sql.Rows) (domain.Webinar, error) {
	var w domain.Webinar
	var startDate, endDate string

	err := rows.Scan(&w.ID, &w.OrganizerID, &w.Title, &startDate, &endDate, &w.Seats, &w.Version)
	if err != nil {
		return domain.Webinar{}, fmt.Errorf("scanning webinar row: %w", err)
	}

	w.StartDate, _ = time.Parse(timeFormat, startDate)
	w.EndDate, _ = time.Parse(timeFormat, endDate)

	return w, nil
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
