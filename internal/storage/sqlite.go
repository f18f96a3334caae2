// Package storage provides SQLite-based persistence for game scores and
// jigsaw progress. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/jigsaw-tetris/internal/puzzle"
)

// ErrCorruptProgress is returned when a stored progress document cannot be
// decoded or fails validation.
var ErrCorruptProgress = errors.New("storage: corrupt progress")

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished game.
type ScoreEntry struct {
	ID        int64
	RunID     string
	Profile   string
	Score     int
	Level     int
	Lines     int
	CreatedAt time.Time
}

// Result is a finished game to record.
type Result struct {
	Profile string
	Score   int
	Level   int
	Lines   int
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite is not concurrent for writes
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot enable WAL: %w", err)
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			profile TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			lines INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_profile ON scores(profile, score DESC);

		CREATE TABLE IF NOT EXISTS progress (
			profile TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// SaveScore records a finished game and returns its run ID.
func (s *Store) SaveScore(r Result) (string, error) {
	runID := uuid.New().String()
	_, err := s.db.Exec(
		"INSERT INTO scores (run_id, profile, score, level, lines) VALUES (?, ?, ?, ?, ?)",
		runID, r.Profile, r.Score, r.Level, r.Lines,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save score: %w", err)
	}
	return runID, nil
}

// TopScores retrieves the best N games, optionally for one profile.
// An empty profile selects every profile.
func (s *Store) TopScores(profile string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, profile, score, level, lines, created_at
		 FROM scores
		 WHERE ? = '' OR profile = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		profile, profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Profile, &e.Score, &e.Level, &e.Lines, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score, optionally for one profile.
// Returns 0 if no scores exist.
func (s *Store) HighScore(profile string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE ? = '' OR profile = ?",
		profile, profile,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes the scores of one profile, or all scores when profile
// is empty.
func (s *Store) ClearScores(profile string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE ? = '' OR profile = ?", profile, profile)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over recorded games.
type Stats struct {
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalLines int
	BestLevel  int
	LastPlayed time.Time
}

// Stats aggregates the games of one profile, or of every profile when
// profile is empty.
func (s *Store) Stats(profile string) (*Stats, error) {
	stats := &Stats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(lines), 0), COALESCE(MAX(level), 0), MAX(created_at)
		 FROM scores WHERE ? = '' OR profile = ?`,
		profile, profile,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalLines, &stats.BestLevel, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// SaveProgress stores the jigsaw progress document for a profile,
// replacing any previous one.
func (s *Store) SaveProgress(profile string, p puzzle.Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("storage: cannot encode progress: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO progress (profile, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		profile, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// LoadProgress returns the stored progress for a profile.
// found is false when the profile has never been saved. A stored document
// that cannot be used yields ErrCorruptProgress.
func (s *Store) LoadProgress(profile string) (puzzle.Progress, bool, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM progress WHERE profile = ?", profile).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return puzzle.Progress{}, false, nil
	}
	if err != nil {
		return puzzle.Progress{}, false, fmt.Errorf("storage: cannot load progress: %w", err)
	}

	var p puzzle.Progress
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return puzzle.Progress{}, true, fmt.Errorf("%w: %w", ErrCorruptProgress, err)
	}
	if err := p.Validate(); err != nil {
		return puzzle.Progress{}, true, fmt.Errorf("%w: %w", ErrCorruptProgress, err)
	}
	return p, true, nil
}

// Profiles lists every profile with saved progress, most recent first.
func (s *Store) Profiles() ([]string, error) {
	rows, err := s.db.Query("SELECT profile FROM progress ORDER BY updated_at DESC, profile ASC")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ResetProgress deletes the saved progress of a profile.
func (s *Store) ResetProgress(profile string) error {
	if _, err := s.db.Exec("DELETE FROM progress WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// Ensure Store implements ProgressStore
var _ puzzle.ProgressStore = (*Store)(nil)

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
