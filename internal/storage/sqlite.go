// Package storage provides SQLite-based persistence for race results,
// standings and tick-by-tick replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/shell-derby/internal/race"
)

// Store manages the SQLite database connection for race persistence.
type Store struct {
	db *sql.DB
}

// RaceRecord is one stored race result row.
type RaceRecord struct {
	ID            int64
	CourseID      string
	EndReason     string
	TotalTicks    int64
	CompletedTime float64
	WinnerID      string
	EntrantCount  int
	CreatedAt     time.Time
}

// StandingRecord is one stored per-entrant finish row.
type StandingRecord struct {
	ID           int64
	RaceID       int64
	EntrantID    string
	Name         string
	Rank         int // 0 = unranked at race end
	Position     float64
	TopSpeed     float64
	AverageSpeed float64
	RaceTime     float64
	Status       string
}

// EntrantStats aggregates an entrant's career across stored races.
type EntrantStats struct {
	EntrantID   string
	Races       int
	Wins        int
	Podiums     int // rank 1-3
	BestTime    float64
	AvgPosition float64
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS races (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			course_id TEXT NOT NULL,
			end_reason TEXT NOT NULL,
			total_ticks INTEGER NOT NULL,
			completed_time REAL NOT NULL,
			winner_id TEXT,
			entrant_count INTEGER NOT NULL DEFAULT 0,
			result_json TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_races_course ON races(course_id);
		CREATE INDEX IF NOT EXISTS idx_races_recent ON races(created_at DESC);

		CREATE TABLE IF NOT EXISTS standings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			race_id INTEGER NOT NULL REFERENCES races(id),
			entrant_id TEXT NOT NULL,
			name TEXT NOT NULL,
			rank INTEGER NOT NULL DEFAULT 0,
			position REAL NOT NULL,
			top_speed REAL NOT NULL,
			average_speed REAL NOT NULL,
			race_time REAL NOT NULL,
			status TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_standings_race ON standings(race_id);
		CREATE INDEX IF NOT EXISTS idx_standings_entrant ON standings(entrant_id);

		CREATE TABLE IF NOT EXISTS replays (
			race_id INTEGER NOT NULL REFERENCES races(id),
			tick INTEGER NOT NULL,
			snapshot_json TEXT NOT NULL,
			PRIMARY KEY (race_id, tick)
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

// SaveResult records a finished race and its standings in one
// transaction. Returns the ID of the inserted race.
func (s *Store) SaveResult(res race.Result) (int64, error) {
	resultJSON, err := json.Marshal(res)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode result: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	r, err := tx.Exec(
		`INSERT INTO races (course_id, end_reason, total_ticks, completed_time, winner_id, entrant_count, result_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.CourseID,
		string(res.EndReason),
		int64(res.TotalTicks), //#nosec G115 -- tick counts fit int64
		res.CompletedTime,
		res.WinnerID,
		len(res.Standings),
		string(resultJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save race: %w", err)
	}
	raceID, err := r.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO standings (race_id, entrant_id, name, rank, position, top_speed, average_speed, race_time, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare standings insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range res.Standings {
		if _, err := stmt.Exec(
			raceID, e.ID, e.Name, e.Rank, e.Position,
			e.TopSpeed, e.AverageSpeed, e.RaceTime, string(e.Status),
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save standing for %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit race: %w", err)
	}
	return raceID, nil
}

// RecentRaces retrieves the most recent stored races.
func (s *Store) RecentRaces(limit int) ([]RaceRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, course_id, end_reason, total_ticks, completed_time, winner_id, entrant_count, created_at
		 FROM races
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query races: %w", err)
	}
	defer rows.Close()

	var records []RaceRecord
	for rows.Next() {
		rec, err := scanRace(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// RaceByID retrieves one race row. Returns nil if the race does not exist.
func (s *Store) RaceByID(id int64) (*RaceRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, course_id, end_reason, total_ticks, completed_time, winner_id, entrant_count, created_at
		 FROM races WHERE id = ?`,
		id,
	)
	rec, err := scanRace(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Result decodes the full stored result for a race. Returns nil if the
// race does not exist.
func (s *Store) Result(raceID int64) (*race.Result, error) {
	var data string
	err := s.db.QueryRow(`SELECT result_json FROM races WHERE id = ?`, raceID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}

	var res race.Result
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		return nil, fmt.Errorf("storage: cannot decode result: %w", err)
	}
	return &res, nil
}

// Standings retrieves the stored standings for a race, ranked finishers
// first.
func (s *Store) Standings(raceID int64) ([]StandingRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, race_id, entrant_id, name, rank, position, top_speed, average_speed, race_time, status
		 FROM standings
		 WHERE race_id = ?
		 ORDER BY CASE WHEN rank = 0 THEN 1 ELSE 0 END, rank ASC, position DESC`,
		raceID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query standings: %w", err)
	}
	defer rows.Close()

	var records []StandingRecord
	for rows.Next() {
		var rec StandingRecord
		if err := rows.Scan(
			&rec.ID, &rec.RaceID, &rec.EntrantID, &rec.Name, &rec.Rank,
			&rec.Position, &rec.TopSpeed, &rec.AverageSpeed, &rec.RaceTime, &rec.Status,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan standing: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// GetEntrantStats aggregates an entrant's record across every stored
// race it appears in.
func (s *Store) GetEntrantStats(entrantID string) (*EntrantStats, error) {
	stats := &EntrantStats{EntrantID: entrantID}

	var bestTime sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN rank = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN rank BETWEEN 1 AND 3 THEN 1 ELSE 0 END), 0),
		        MIN(CASE WHEN rank > 0 THEN race_time END),
		        COALESCE(AVG(position), 0)
		 FROM standings WHERE entrant_id = ?`,
		entrantID,
	).Scan(&stats.Races, &stats.Wins, &stats.Podiums, &bestTime, &stats.AvgPosition)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get entrant stats: %w", err)
	}

	if bestTime.Valid {
		stats.BestTime = bestTime.Float64
	}
	return stats, nil
}

// Leaderboard ranks entrants by wins across every stored race, ties
// broken by podium count.
func (s *Store) Leaderboard(limit int) ([]EntrantStats, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT entrant_id,
		        COUNT(*),
		        COALESCE(SUM(CASE WHEN rank = 1 THEN 1 ELSE 0 END), 0) AS wins,
		        COALESCE(SUM(CASE WHEN rank BETWEEN 1 AND 3 THEN 1 ELSE 0 END), 0) AS podiums,
		        COALESCE(AVG(position), 0)
		 FROM standings
		 GROUP BY entrant_id
		 ORDER BY wins DESC, podiums DESC, entrant_id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var stats []EntrantStats
	for rows.Next() {
		var e EntrantStats
		if err := rows.Scan(&e.EntrantID, &e.Races, &e.Wins, &e.Podiums, &e.AvgPosition); err != nil {
			return nil, fmt.Errorf("storage: cannot scan leaderboard row: %w", err)
		}
		stats = append(stats, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRace(row scanner) (RaceRecord, error) {
	var rec RaceRecord
	var winner sql.NullString
	var createdAt any

	if err := row.Scan(
		&rec.ID, &rec.CourseID, &rec.EndReason, &rec.TotalTicks,
		&rec.CompletedTime, &winner, &rec.EntrantCount, &createdAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return rec, err
		}
		return rec, fmt.Errorf("storage: cannot scan race: %w", err)
	}

	if winner.Valid {
		rec.WinnerID = winner.String
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		rec.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			rec.CreatedAt = parsed
		}
	}
	return rec, nil
}
