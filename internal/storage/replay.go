package storage

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/shell-derby/internal/race"
)

// SaveReplay stores a race's snapshot stream in one transaction. Callers
// typically collect snapshots through a run sink and persist them after
// the race ends.
func (s *Store) SaveReplay(raceID int64, snapshots []race.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO replays (race_id, tick, snapshot_json) VALUES (?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare replay insert: %w", err)
	}
	defer stmt.Close()

	for _, snap := range snapshots {
		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("storage: cannot encode snapshot %d: %w", snap.Tick, err)
		}
		if _, err := stmt.Exec(raceID, int64(snap.Tick), string(data)); err != nil { //#nosec G115 -- tick counts fit int64
			return fmt.Errorf("storage: cannot save snapshot %d: %w", snap.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return nil
}

// ReplaySnapshots loads the stored snapshot stream for a race in tick
// order.
func (s *Store) ReplaySnapshots(raceID int64) ([]race.Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT snapshot_json FROM replays WHERE race_id = ? ORDER BY tick ASC`,
		raceID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	defer rows.Close()

	var snapshots []race.Snapshot
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("storage: cannot scan snapshot: %w", err)
		}
		var snap race.Snapshot
		if err := json.Unmarshal([]byte(data), &snap); err != nil {
			return nil, fmt.Errorf("storage: cannot decode snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return snapshots, nil
}

// ReplayTickCount reports how many snapshots are stored for a race.
func (s *Store) ReplayTickCount(raceID int64) (int, error) {
	var n int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM replays WHERE race_id = ?`, raceID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count replay ticks: %w", err)
	}
	return n, nil
}
