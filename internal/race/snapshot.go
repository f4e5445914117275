package race

import (
	"math"
	"sort"

	"github.com/vovakirdan/shell-derby/internal/terrain"
)

// terrainWindow is how many upcoming segments a snapshot carries.
const terrainWindow = 5

// Snapshot is the immutable per-tick aggregate exposed to external
// consumers: renderers, loggers, replay stores. Entrant records are
// copies; retaining snapshots never affects simulation state. The whole
// struct serializes to JSON.
type Snapshot struct {
	Tick        uint64  `json:"tick"`
	ElapsedMS   float64 `json:"elapsed_ms"`
	CourseID    string  `json:"course_id"`
	TrackLength float64 `json:"track_length"`

	Entrants     []EntrantState    `json:"entrants"` // ascending entrant id
	TerrainAhead []terrain.Segment `json:"terrain_ahead"`

	Finished bool   `json:"finished"`
	WinnerID string `json:"winner_id,omitempty"`

	TotalEntrants    int `json:"total_entrants"`
	FinishedEntrants int `json:"finished_entrants"`
	ActiveEntrants   int `json:"active_entrants"`
}

// Leaderboard returns entrant ids ordered by race standing: ranked
// finishers first, then the rest by descending position with ascending
// id as the tie-break.
func (s Snapshot) Leaderboard() []string {
	order := make([]EntrantState, len(s.Entrants))
	copy(order, s.Entrants)
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		switch {
		case a.Rank != 0 && b.Rank != 0:
			return a.Rank < b.Rank
		case a.Rank != b.Rank:
			return a.Rank != 0
		case a.Position != b.Position:
			return a.Position > b.Position
		default:
			return a.ID < b.ID
		}
	})

	ids := make([]string, len(order))
	for i, e := range order {
		ids[i] = e.ID
	}
	return ids
}

// Entrant returns the snapshot record for an id, if present.
func (s Snapshot) Entrant(id string) (EntrantState, bool) {
	for _, e := range s.Entrants {
		if e.ID == id {
			return e, true
		}
	}
	return EntrantState{}, false
}

// Hash folds the snapshot's simulation-relevant fields into a single
// value for determinism checks: two runs of the same race must produce
// identical hash sequences.
func (s Snapshot) Hash() uint64 {
	h := s.Tick
	h = h*31 + math.Float64bits(s.TrackLength)
	h = h*31 + uint64(s.FinishedEntrants) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.ActiveEntrants)   //#nosec G115 -- hash computation
	if s.Finished {
		h = h*31 + 1
	}
	for _, e := range s.Entrants {
		for _, c := range e.ID {
			h = h*31 + uint64(c)
		}
		h = h*31 + math.Float64bits(e.Position)
		h = h*31 + math.Float64bits(e.Energy)
		h = h*31 + math.Float64bits(e.Velocity)
		h = h*31 + uint64(e.Rank)        //#nosec G115 -- hash computation
		h = h*31 + uint64(e.Checkpoints) //#nosec G115 -- hash computation
		for _, c := range e.Status {
			h = h*31 + uint64(c)
		}
	}
	return h
}
