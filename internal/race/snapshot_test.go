package race

import (
	"encoding/json"
	"testing"

	"github.com/vovakirdan/shell-derby/internal/terrain"
)

func TestLeaderboardOrdering(t *testing.T) {
	snap := Snapshot{
		Entrants: []EntrantState{
			{ID: "a", Position: 500, Rank: 0},
			{ID: "b", Position: 1000, Rank: 2, Status: StatusFinished},
			{ID: "c", Position: 1000, Rank: 1, Status: StatusFinished},
			{ID: "d", Position: 700, Rank: 0},
			{ID: "e", Position: 500, Rank: 0},
		},
	}

	got := snap.Leaderboard()
	want := []string{"c", "b", "d", "a", "e"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Leaderboard = %v, want %v", got, want)
		}
	}
}

func TestSnapshotEntrantLookup(t *testing.T) {
	snap := Snapshot{Entrants: []EntrantState{{ID: "a", Position: 42}}}

	e, ok := snap.Entrant("a")
	if !ok || e.Position != 42 {
		t.Errorf("Entrant lookup failed: %+v, %v", e, ok)
	}
	if _, ok := snap.Entrant("zz"); ok {
		t.Error("Unknown id should not be found")
	}
}

func TestSnapshotHashSensitivity(t *testing.T) {
	base := Snapshot{
		Tick:        10,
		TrackLength: 1000,
		Entrants:    []EntrantState{{ID: "a", Position: 100, Energy: 50, Status: StatusRacing}},
	}

	same := base
	same.Entrants = []EntrantState{{ID: "a", Position: 100, Energy: 50, Status: StatusRacing}}
	if base.Hash() != same.Hash() {
		t.Error("Identical snapshots should hash equal")
	}

	moved := same
	moved.Entrants = []EntrantState{{ID: "a", Position: 100.0001, Energy: 50, Status: StatusRacing}}
	if base.Hash() == moved.Hash() {
		t.Error("Position change should change the hash")
	}

	rested := same
	rested.Entrants = []EntrantState{{ID: "a", Position: 100, Energy: 50, Status: StatusResting}}
	if base.Hash() == rested.Hash() {
		t.Error("Status change should change the hash")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	cfg := flatConfig(500)
	s := mustSim(t, cfg, pair())
	s.Step()

	snap := s.Snapshot()
	snap.Entrants[0].Position = 99999
	snap.Entrants[0].Energy = -1

	fresh := s.Snapshot()
	if fresh.Entrants[0].Position == 99999 {
		t.Error("Mutating a snapshot must not affect simulation state")
	}
}

func TestSnapshotTerrainAhead(t *testing.T) {
	cfg := flatConfig(1000)
	cfg.Segments = []terrain.Segment{
		{Start: 0, End: 100, Type: terrain.Grass},
		{Start: 100, End: 200, Type: terrain.Mud},
		{Start: 200, End: 300, Type: terrain.Water},
		{Start: 300, End: 400, Type: terrain.Sand},
		{Start: 400, End: 500, Type: terrain.Rock},
		{Start: 500, End: 600, Type: terrain.Rough},
		{Start: 600, End: 1000, Type: terrain.Track},
	}

	s := mustSim(t, cfg, pair())
	snap := s.Snapshot()

	if len(snap.TerrainAhead) != terrainWindow {
		t.Fatalf("Terrain window should hold %d segments, got %d", terrainWindow, len(snap.TerrainAhead))
	}
	if snap.TerrainAhead[0].Type != terrain.Grass {
		t.Errorf("Window should start at the leader's segment, got %s", snap.TerrainAhead[0].Type)
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	cfg := flatConfig(500)
	s := mustSim(t, cfg, pair())
	snap, _ := s.Step()

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var back Snapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Hash() != snap.Hash() {
		t.Error("Snapshot should survive a JSON round trip")
	}
}

// Snapshot queries work directly on a returned value; callers never need
// a variable just to take its address.
func TestSnapshotMethodsOnReturnedValue(t *testing.T) {
	cfg := flatConfig(500)
	s := mustSim(t, cfg, pair())
	s.Step()

	if s.Snapshot().Hash() == 0 {
		t.Error("Hash of a live snapshot should not be zero")
	}
	if _, ok := s.Snapshot().Entrant("swimmer"); !ok {
		t.Error("Entrant lookup on a returned snapshot failed")
	}
	if got := len(s.Snapshot().Leaderboard()); got != 2 {
		t.Errorf("Leaderboard length = %d, want 2", got)
	}
}
