// Package sqlstore implements repository.SpecRepository on database/sql through sqlx.
// Queries are written with '?' placeholders and rebound for the driver the
// *sqlx.DB was opened with, so the same statements serve PostgreSQL and SQLite.
package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"specshare/internal/model"
	"specshare/internal/repository"
)

// SpecStore is a SQL implementation of repository.SpecRepository.
// It uses parameterized queries only and contains no business logic.
type SpecStore struct {
	db *sqlx.DB

	insertQuery  string
	contentQuery string
	rowQuery     string
}

// NewSpecStore creates a new SpecStore over db.
func NewSpecStore(db *sqlx.DB) *SpecStore {
	return &SpecStore{
		db: db,
		insertQuery: db.Rebind(`
			INSERT INTO specs (id, content, title, summary, step_count, version)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING created_at
		`),
		contentQuery: db.Rebind(`SELECT content FROM specs WHERE id = ?`),
		rowQuery: db.Rebind(`
			SELECT id, content, title, summary, step_count, version, created_at
			FROM specs
			WHERE id = ?
		`),
	}
}

var _ repository.SpecRepository = (*SpecStore)(nil)

// specRow mirrors the specs table for struct scanning.
type specRow struct {
	ID        string    `db:"id"`
	Content   string    `db:"content"`
	Title     string    `db:"title"`
	Summary   string    `db:"summary"`
	StepCount int       `db:"step_count"`
	Version   string    `db:"version"`
	CreatedAt timestamp `db:"created_at"`
}

// Create inserts a new spec row and returns the stored record.
func (s *SpecStore) Create(ctx context.Context, spec *model.Spec) (*model.Spec, error) {
	var createdAt timestamp
	err := s.db.QueryRowxContext(ctx, s.insertQuery,
		spec.ID,
		spec.Content,
		spec.Title,
		spec.Summary,
		spec.StepCount,
		spec.Version,
	).Scan(&createdAt)
	if err != nil {
		return nil, err
	}

	out := *spec
	out.CreatedAt = time.Time(createdAt)
	return &out, nil
}

// FindContent fetches only the content column.
func (s *SpecStore) FindContent(ctx context.Context, id string) (string, error) {
	var content string
	if err := s.db.GetContext(ctx, &content, s.contentQuery, id); err != nil {
		return "", err
	}
	return content, nil
}

// FindByID fetches a single spec by its id.
func (s *SpecStore) FindByID(ctx context.Context, id string) (*model.Spec, error) {
	var row specRow
	if err := s.db.GetContext(ctx, &row, s.rowQuery, id); err != nil {
		return nil, err
	}
	return &model.Spec{
		ID:        row.ID,
		Content:   row.Content,
		Title:     row.Title,
		Summary:   row.Summary,
		StepCount: row.StepCount,
		Version:   row.Version,
		CreatedAt: time.Time(row.CreatedAt),
	}, nil
}

// timestamp scans created_at from either driver: pgx yields time.Time for
// TIMESTAMPTZ, SQLite stores ISO-8601 text.
type timestamp time.Time

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (ts *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts = timestamp(v.UTC())
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("sqlstore: cannot scan %T into created_at", src)
	}
}

func (ts *timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts = timestamp(t.UTC())
			return nil
		}
	}
	return fmt.Errorf("sqlstore: unrecognized created_at %q", s)
}
