// Package storage records finished Aether Rift runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Runs in progress are never stored; a run cannot be resumed.
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

// sqliteTime is the layout CURRENT_TIMESTAMP produces.
const sqliteTime = "2006-01-02 15:04:05"

// DefaultTickRate is assumed for runs recorded without a tick rate.
const DefaultTickRate = 60

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is a single finished run.
type Run struct {
	ID            int64
	Player        string
	Outcome       string // "won" or "lost"
	Energy        int
	PortalsActive int
	PortalsTotal  int
	Ticks         int
	TickRate      int // Ticks per second the run was played at
	Seed          int64
	CreatedAt     time.Time
}

// Duration returns the wall-clock length of the run at its tick rate.
func (r Run) Duration() time.Duration {
	rate := r.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Duration(r.Ticks) * time.Second / time.Duration(rate)
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			outcome TEXT NOT NULL,
			energy INTEGER NOT NULL,
			portals_active INTEGER NOT NULL,
			portals_total INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL DEFAULT 60,
			seed INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_energy ON runs(energy DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.addTickRate()
}

// addTickRate upgrades histories created before runs kept their tick rate.
func (s *Store) addTickRate() error {
	rows, err := s.db.Query("PRAGMA table_info(runs)")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			dflt       sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &primaryKey); err != nil {
			return err
		}
		if name == "tick_rate" {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE runs ADD COLUMN tick_rate INTEGER NOT NULL DEFAULT %d", DefaultTickRate))
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Outcome != "won" && r.Outcome != "lost" {
		return 0, fmt.Errorf("storage: cannot save run with outcome %q", r.Outcome)
	}

	if r.TickRate <= 0 {
		r.TickRate = DefaultTickRate
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (player, outcome, energy, portals_active, portals_total, ticks, tick_rate, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Player, r.Outcome, r.Energy, r.PortalsActive, r.PortalsTotal, r.Ticks, r.TickRate, r.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the N runs with the most energy.
// Ties go to the faster run, then the earlier one.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, player, outcome, energy, portals_active, portals_total, ticks, tick_rate, seed, created_at
		 FROM runs
		 ORDER BY energy DESC, ticks ASC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// RecentRuns retrieves the N most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, player, outcome, energy, portals_active, portals_total, ticks, tick_rate, seed, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// PlayerRuns retrieves the N most recent runs of one player.
func (s *Store) PlayerRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, player, outcome, energy, portals_active, portals_total, ticks, tick_rate, seed, created_at
		 FROM runs
		 WHERE player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, limit,
	)
}

// queryRuns runs a SELECT over the runs columns and scans every row.
func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Player,
			&r.Outcome,
			&r.Energy,
			&r.PortalsActive,
			&r.PortalsTotal,
			&r.Ticks,
			&r.TickRate,
			&r.Seed,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestEnergy returns the highest energy of any recorded run.
// Returns 0 if no runs exist.
func (s *Store) BestEnergy() (int, error) {
	var energy sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(energy) FROM runs").Scan(&energy); err != nil {
		return 0, fmt.Errorf("storage: cannot query best energy: %w", err)
	}

	if !energy.Valid {
		return 0, nil
	}

	return int(energy.Int64), nil
}

// ClearRuns deletes the whole run history.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all runs.
type Stats struct {
	Runs       int
	Wins       int
	Losses     int
	BestEnergy int
	AvgEnergy  float64
	TotalTicks int64
	LastPlayed time.Time
}

// WinRate returns the share of runs that were won, in [0, 1].
func (st Stats) WinRate() float64 {
	if st.Runs == 0 {
		return 0
	}
	return float64(st.Wins) / float64(st.Runs)
}

// Stats retrieves aggregated statistics over the run history.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(energy), 0),
		        COALESCE(AVG(energy), 0),
		        COALESCE(SUM(ticks), 0)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.Wins, &stats.Losses, &stats.BestEnergy, &stats.AvgEnergy, &stats.TotalTicks)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(sqliteTime, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
