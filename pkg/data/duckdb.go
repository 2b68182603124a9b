package data

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS preferences (
		name  VARCHAR PRIMARY KEY,
		value VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		book_id    VARCHAR PRIMARY KEY,
		chapter    DOUBLE NOT NULL,
		page       INTEGER NOT NULL,
		group_id   VARCHAR NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
}

// Progress is the last position read in a book.
type Progress struct {
	BookID    string
	Chapter   float64
	Page      int
	Group     string
	UpdatedAt time.Time
}

// InitDuckDB opens the database at path, creating parent directories and
// tables as needed.
func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return db, nil
}

// Repository persists preferences and reading progress.
type Repository struct {
	db *sql.DB
}

func NewDuckDBRepository(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// GetPreference returns the stored value for name and whether one exists.
func (r *Repository) GetPreference(name string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM preferences WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", name, err)
	}
	return value, true, nil
}

func (r *Repository) SetPreference(name, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO preferences (name, value) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value`,
		name, value)
	if err != nil {
		return fmt.Errorf("failed to write preference %s: %w", name, err)
	}
	return nil
}

func (r *Repository) SaveProgress(progress *Progress) error {
	if progress == nil || progress.BookID == "" {
		return fmt.Errorf("progress requires a book id")
	}
	if progress.UpdatedAt.IsZero() {
		progress.UpdatedAt = time.Now()
	}
	_, err := r.db.Exec(`
		INSERT INTO progress (book_id, chapter, page, group_id, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (book_id) DO UPDATE SET
			chapter = excluded.chapter,
			page = excluded.page,
			group_id = excluded.group_id,
			updated_at = excluded.updated_at`,
		progress.BookID, progress.Chapter, progress.Page, progress.Group, progress.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save progress for %s: %w", progress.BookID, err)
	}
	return nil
}

// GetProgress returns nil without error when the book has no progress.
func (r *Repository) GetProgress(bookID string) (*Progress, error) {
	p := &Progress{}
	err := r.db.QueryRow(`
		SELECT book_id, chapter, page, group_id, updated_at FROM progress WHERE book_id = ?`,
		bookID).Scan(&p.BookID, &p.Chapter, &p.Page, &p.Group, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read progress for %s: %w", bookID, err)
	}
	return p, nil
}

// ListProgress returns all progress entries, most recently read first.
func (r *Repository) ListProgress() ([]*Progress, error) {
	rows, err := r.db.Query(`
		SELECT book_id, chapter, page, group_id, updated_at FROM progress ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	var out []*Progress
	for rows.Next() {
		p := &Progress{}
		if err := rows.Scan(&p.BookID, &p.Chapter, &p.Page, &p.Group, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) DeleteProgress(bookID string) error {
	if _, err := r.db.Exec(`DELETE FROM progress WHERE book_id = ?`, bookID); err != nil {
		return fmt.Errorf("failed to delete progress for %s: %w", bookID, err)
	}
	return nil
}
