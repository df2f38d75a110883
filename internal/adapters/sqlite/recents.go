// Package sqlite persists the titles a user asked for.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"vibary/internal/ports"
)

const schemaVersion = "1"

// DefaultKeep bounds how many titles are retained
const DefaultKeep = 50

// Recents implements ports.RecentTitles using SQLite
type Recents struct {
	db     *sql.DB
	dbPath string
	keep   int
	now    func() time.Time
}

// Ensure Recents implements RecentTitles
var _ ports.RecentTitles = (*Recents)(nil)

// Open initializes the store at dbPath, creating it when missing.
// An empty dbPath uses DefaultPath.
func Open(dbPath string) (*Recents, error) {
	if dbPath == "" {
		dbPath = DefaultPath()
	}
	dbPath = expandHome(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS recent_titles (
			title TEXT PRIMARY KEY COLLATE NOCASE,
			submitted_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_recent_submitted ON recent_titles(submitted_at);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Recents{db: db, dbPath: dbPath, keep: DefaultKeep, now: time.Now}, nil
}

// DefaultPath returns the database location under the XDG data directory
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "vibary", "recents.db")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Path returns the database file in use
func (r *Recents) Path() string {
	return r.dbPath
}

// Remember records title as the latest submission. Titles differing only in
// case are the same entry. Entries beyond the retention bound are pruned.
func (r *Recents) Remember(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Replace keeps the latest casing of the title
	if _, err := tx.ExecContext(ctx, `DELETE FROM recent_titles WHERE title = ?`, title); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO recent_titles (title, submitted_at) VALUES (?, ?)
	`, title, r.now().UnixNano()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM recent_titles WHERE title NOT IN (
			SELECT title FROM recent_titles ORDER BY submitted_at DESC LIMIT ?
		)
	`, r.keep); err != nil {
		return err
	}
	return tx.Commit()
}

// Last returns the most recent title, or "" when none was recorded
func (r *Recents) Last(ctx context.Context) (string, error) {
	var title string
	err := r.db.QueryRowContext(ctx, `
		SELECT title FROM recent_titles ORDER BY submitted_at DESC LIMIT 1
	`).Scan(&title)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return title, nil
}

// List returns up to limit titles, newest first. limit <= 0 lists all.
func (r *Recents) List(ctx context.Context, limit int) ([]ports.RecentTitle, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT title, submitted_at FROM recent_titles
		ORDER BY submitted_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []ports.RecentTitle
	for rows.Next() {
		var t ports.RecentTitle
		var nanos int64
		if err := rows.Scan(&t.Title, &nanos); err != nil {
			return nil, err
		}
		t.SubmittedAt = time.Unix(0, nanos)
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

// Close closes the database connection
func (r *Recents) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
