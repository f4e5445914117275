package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/shell-derby/internal/race"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult() race.Result {
	return race.Result{
		CourseID:      "meadow",
		EndReason:     race.EndCompleted,
		TotalTicks:    900,
		CompletedTime: 30,
		WinnerID:      "a",
		Standings: []race.EntrantState{
			{ID: "a", Name: "Alpha", Rank: 1, Position: 1200, TopSpeed: 15, AverageSpeed: 12, RaceTime: 28, Status: race.StatusFinished},
			{ID: "b", Name: "Beta", Rank: 2, Position: 1200, TopSpeed: 14, AverageSpeed: 11, RaceTime: 29.5, Status: race.StatusFinished},
			{ID: "c", Name: "Gamma", Rank: 0, Position: 800, TopSpeed: 13, AverageSpeed: 10, RaceTime: 30, Status: race.StatusRacing},
		},
		AverageFinishTime: 28.75,
		FastestEntrant:    "a",
		LongestDistance:   1200,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSaveAndRetrieveResult(t *testing.T) {
	store := openTestStore(t)

	raceID, err := store.SaveResult(sampleResult())
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if raceID <= 0 {
		t.Fatalf("Expected positive race ID, got %d", raceID)
	}

	rec, err := store.RaceByID(raceID)
	if err != nil {
		t.Fatalf("RaceByID() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("Saved race not found")
	}
	if rec.CourseID != "meadow" || rec.WinnerID != "a" || rec.EntrantCount != 3 {
		t.Errorf("Race record mismatch: %+v", rec)
	}

	res, err := store.Result(raceID)
	if err != nil {
		t.Fatalf("Result() failed: %v", err)
	}
	if res == nil {
		t.Fatal("Stored result not found")
	}
	if res.WinnerID != "a" || len(res.Standings) != 3 {
		t.Errorf("Decoded result mismatch: %+v", res)
	}
}

func TestStandingsOrdering(t *testing.T) {
	store := openTestStore(t)

	raceID, err := store.SaveResult(sampleResult())
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	standings, err := store.Standings(raceID)
	if err != nil {
		t.Fatalf("Standings() failed: %v", err)
	}
	if len(standings) != 3 {
		t.Fatalf("Expected 3 standings, got %d", len(standings))
	}

	// Ranked entrants first, unranked last.
	if standings[0].EntrantID != "a" || standings[1].EntrantID != "b" || standings[2].EntrantID != "c" {
		t.Errorf("Standings out of order: %v, %v, %v",
			standings[0].EntrantID, standings[1].EntrantID, standings[2].EntrantID)
	}
	if standings[2].Rank != 0 {
		t.Errorf("Unranked entrant should keep rank 0, got %d", standings[2].Rank)
	}
}

func TestRecentRaces(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveResult(sampleResult()); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	records, err := store.RecentRaces(3)
	if err != nil {
		t.Fatalf("RecentRaces() failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 races with limit, got %d", len(records))
	}
	// Most recent first.
	for i := 1; i < len(records); i++ {
		if records[i-1].ID < records[i].ID {
			t.Errorf("Races not in recency order: %d before %d", records[i-1].ID, records[i].ID)
		}
	}
}

func TestRaceByIDMissing(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.RaceByID(999)
	if err != nil {
		t.Fatalf("RaceByID() failed: %v", err)
	}
	if rec != nil {
		t.Error("Missing race should return nil")
	}
}

func TestEntrantStatsAggregation(t *testing.T) {
	store := openTestStore(t)

	// "a" wins twice, "b" comes second twice.
	for i := 0; i < 2; i++ {
		if _, err := store.SaveResult(sampleResult()); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	stats, err := store.GetEntrantStats("a")
	if err != nil {
		t.Fatalf("GetEntrantStats() failed: %v", err)
	}
	if stats.Races != 2 || stats.Wins != 2 || stats.Podiums != 2 {
		t.Errorf("Stats mismatch for a: %+v", stats)
	}
	if stats.BestTime != 28 {
		t.Errorf("Best time should be 28, got %g", stats.BestTime)
	}

	stats, err = store.GetEntrantStats("c")
	if err != nil {
		t.Fatalf("GetEntrantStats() failed: %v", err)
	}
	if stats.Wins != 0 || stats.Races != 2 {
		t.Errorf("Stats mismatch for c: %+v", stats)
	}
	if stats.BestTime != 0 {
		t.Errorf("Unranked entrant should have no best time, got %g", stats.BestTime)
	}
}

func TestLeaderboard(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := store.SaveResult(sampleResult()); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	board, err := store.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(board) != 3 {
		t.Fatalf("Expected 3 entrants on the leaderboard, got %d", len(board))
	}
	if board[0].EntrantID != "a" || board[0].Wins != 3 {
		t.Errorf("Leaderboard should rank a first with 3 wins: %+v", board[0])
	}
}

func TestReplayRoundTrip(t *testing.T) {
	store := openTestStore(t)

	raceID, err := store.SaveResult(sampleResult())
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	snapshots := []race.Snapshot{
		{Tick: 1, CourseID: "meadow", TrackLength: 1200,
			Entrants: []race.EntrantState{{ID: "a", Position: 10, Status: race.StatusRacing}}},
		{Tick: 2, CourseID: "meadow", TrackLength: 1200,
			Entrants: []race.EntrantState{{ID: "a", Position: 20, Status: race.StatusRacing}}},
	}
	if err := store.SaveReplay(raceID, snapshots); err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	n, err := store.ReplayTickCount(raceID)
	if err != nil {
		t.Fatalf("ReplayTickCount() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 stored ticks, got %d", n)
	}

	back, err := store.ReplaySnapshots(raceID)
	if err != nil {
		t.Fatalf("ReplaySnapshots() failed: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(back))
	}
	for i := range snapshots {
		if back[i].Hash() != snapshots[i].Hash() {
			t.Errorf("Snapshot %d changed through storage", i)
		}
	}
}

func TestReplayEmpty(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveReplay(1, nil); err != nil {
		t.Errorf("Saving an empty replay should be a no-op, got %v", err)
	}
	snaps, err := store.ReplaySnapshots(1)
	if err != nil {
		t.Fatalf("ReplaySnapshots() failed: %v", err)
	}
	if len(snaps) != 0 {
		t.Errorf("Expected no snapshots, got %d", len(snaps))
	}
}
