// Package history remembers recently opened level files in a SQLite
// database, using the pure-Go modernc.org/sqlite driver.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/milk9111/leveleditor/config"
)

// ErrUnknown is returned by Forget for a path with no history.
var ErrUnknown = errors.New("history: unknown path")

// Store wraps the history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is one remembered document.
type Entry struct {
	Path       string
	CellWidth  int
	CellHeight int
	Opens      int
	LastOpened time.Time
}

// Open creates or opens the database at dbPath. A leading ~ is expanded and
// parent directories are created.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("history: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: cannot connect to database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			path TEXT PRIMARY KEY,
			cell_width INTEGER NOT NULL DEFAULT 0,
			cell_height INTEGER NOT NULL DEFAULT 0,
			opens INTEGER NOT NULL DEFAULT 0,
			last_opened INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_documents_last_opened ON documents(last_opened DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Touch records that path was opened or saved with the given grid size.
func (s *Store) Touch(path string, cellW, cellH int) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("history: %s: %w", path, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO documents (path, cell_width, cell_height, opens, last_opened)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(path) DO UPDATE SET
			cell_width = excluded.cell_width,
			cell_height = excluded.cell_height,
			opens = opens + 1,
			last_opened = excluded.last_opened`,
		abs, cellW, cellH, s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("history: cannot record %s: %w", abs, err)
	}
	return nil
}

// Recent returns up to limit entries, most recently opened first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT path, cell_width, cell_height, opens, last_opened
		FROM documents
		ORDER BY last_opened DESC, path ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: cannot query recent documents: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ns int64
		if err := rows.Scan(&e.Path, &e.CellWidth, &e.CellHeight, &e.Opens, &ns); err != nil {
			return nil, fmt.Errorf("history: cannot scan row: %w", err)
		}
		e.LastOpened = time.Unix(0, ns)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Forget removes path from the history.
func (s *Store) Forget(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("history: %s: %w", path, err)
	}
	res, err := s.db.Exec("DELETE FROM documents WHERE path = ?", abs)
	if err != nil {
		return fmt.Errorf("history: cannot forget %s: %w", abs, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknown, abs)
	}
	return nil
}
