// Package storage provides SQLite-based persistence for viewing sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for session persistence.
type Store struct {
	db *sql.DB
}

// Session is one run of the screensaver, local or over SSH.
type Session struct {
	ID           int64
	Mode         string // "local" or "ssh"
	User         string
	Remote       string
	Glyphs       string
	Image        string
	StartedAt    time.Time
	Ended        bool
	DurationSecs int
	Ticks        int64
	DropsSpawned int64
	RevealCycles int64
}

// SessionEnd carries the counters recorded when a session finishes.
type SessionEnd struct {
	Duration     time.Duration
	Ticks        int64
	DropsSpawned int64
	RevealCycles int64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			username TEXT NOT NULL DEFAULT '',
			remote TEXT NOT NULL DEFAULT '',
			glyphs TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			drops_spawned INTEGER NOT NULL DEFAULT 0,
			reveal_cycles INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_mode ON sessions(mode);
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

// StartSession records a new session and returns its ID.
func (s *Store) StartSession(sess Session) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO sessions (mode, username, remote, glyphs, image) VALUES (?, ?, ?, ?, ?)",
		sess.Mode, sess.User, sess.Remote, sess.Glyphs, sess.Image,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot start session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// EndSession stores the final counters of a session.
func (s *Store) EndSession(id int64, end SessionEnd) error {
	res, err := s.db.Exec(
		`UPDATE sessions
		 SET ended = 1, duration_secs = ?, ticks = ?, drops_spawned = ?, reveal_cycles = ?
		 WHERE id = ?`,
		int(end.Duration.Seconds()), end.Ticks, end.DropsSpawned, end.RevealCycles, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: no session with id %d", id)
	}
	return nil
}

const sessionColumns = `id, mode, username, remote, glyphs, image, started_at, ended,
	duration_secs, ticks, drops_spawned, reveal_cycles`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var sess Session
	var startedAt any
	var ended int
	err := row.Scan(
		&sess.ID,
		&sess.Mode,
		&sess.User,
		&sess.Remote,
		&sess.Glyphs,
		&sess.Image,
		&startedAt,
		&ended,
		&sess.DurationSecs,
		&sess.Ticks,
		&sess.DropsSpawned,
		&sess.RevealCycles,
	)
	if err != nil {
		return sess, err
	}
	sess.Ended = ended != 0
	sess.StartedAt = parseTime(startedAt)
	return sess, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SessionByID retrieves one session. Returns nil, nil if it does not exist.
func (s *Store) SessionByID(id int64) (*Session, error) {
	sess, err := scanSession(s.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &sess, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// ClearSessions deletes every recorded session.
func (s *Store) ClearSessions() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// SessionStats contains aggregated statistics for a group of sessions.
type SessionStats struct {
	Mode         string
	Count        int
	TotalSecs    int64
	AvgSecs      float64
	LongestSecs  int
	RevealCycles int64
	LastSeen     time.Time
}

// StatsByMode retrieves aggregated statistics per session mode.
func (s *Store) StatsByMode() (map[string]*SessionStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), COALESCE(SUM(duration_secs), 0), COALESCE(AVG(duration_secs), 0),
		        COALESCE(MAX(duration_secs), 0), COALESCE(SUM(reveal_cycles), 0), MAX(started_at)
		 FROM sessions
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get session stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SessionStats)
	for rows.Next() {
		var st SessionStats
		var lastSeen any
		if err := rows.Scan(&st.Mode, &st.Count, &st.TotalSecs, &st.AvgSecs, &st.LongestSecs, &st.RevealCycles, &lastSeen); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastSeen = parseTime(lastSeen)
		stats[st.Mode] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
