package race

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/shell-derby/internal/genome"
	"github.com/vovakirdan/shell-derby/internal/terrain"
)

// Status is an entrant's race state. Finished and crashed are terminal:
// once set, the entrant's distance and energy never change again.
type Status string

const (
	StatusRacing   Status = "racing"
	StatusResting  Status = "resting"
	StatusFinished Status = "finished"
	StatusCrashed  Status = "crashed"
)

// Terminal reports whether the status freezes the entrant.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusCrashed
}

// Entrant describes one racer at construction time: identity plus genome.
// The genome is shared read-only; it never mutates during the race.
type Entrant struct {
	ID     string
	Name   string
	Genome genome.Genome
}

// EntrantState is the full mutable state of one racer. It is owned
// exclusively by the engine/arbiter pair; external consumers only ever
// see copies inside snapshots. All fields are plain values so a struct
// copy is a deep copy.
type EntrantState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Lane int    `json:"lane"`

	Position  float64 `json:"position"` // distance along the track
	Energy    float64 `json:"energy"`   // clamped to [0, MaxEnergy]
	MaxEnergy float64 `json:"max_energy"`
	Velocity  float64 `json:"velocity"`

	Resting bool   `json:"resting"`
	Status  Status `json:"status"`

	Rank        int `json:"rank,omitempty"` // 0 until finished; set once
	Checkpoints int `json:"checkpoints"`

	TopSpeed     float64 `json:"top_speed"`
	AverageSpeed float64 `json:"average_speed"`
	RaceTime     float64 `json:"race_time"` // seconds actively racing
}

// EnergyFraction returns energy as a fraction of maximum in [0, 1].
func (e *EntrantState) EnergyFraction() float64 {
	return e.Energy / e.MaxEnergy
}

// Active reports whether the entrant is still moving down the track.
func (e *EntrantState) Active() bool {
	return e.Status == StatusRacing
}

// racer pairs an entrant's mutable state with its immutable genetics.
// The derived stats and trait mask are computed once at race start.
type racer struct {
	state  *EntrantState
	genome genome.Genome
	stats  genome.DerivedStats
	mask   terrain.TraitMask
}

// newRacers validates every entrant, derives stats, and returns racers in
// ascending entrant-id order. Processing order is part of the determinism
// contract: rank tie-breaks depend on it.
func newRacers(cfg *Config, entrants []Entrant) ([]*racer, error) {
	if len(entrants) == 0 {
		return nil, fmt.Errorf("race: no entrants")
	}

	seen := make(map[string]bool, len(entrants))
	racers := make([]*racer, 0, len(entrants))
	for i := range entrants {
		ent := &entrants[i]
		if ent.ID == "" {
			return nil, fmt.Errorf("race: entrant %d has empty id", i)
		}
		if seen[ent.ID] {
			return nil, fmt.Errorf("race: duplicate entrant id %q", ent.ID)
		}
		seen[ent.ID] = true

		if err := ent.Genome.Validate(); err != nil {
			return nil, fmt.Errorf("race: entrant %q: %w", ent.ID, err)
		}

		racers = append(racers, &racer{
			state: &EntrantState{
				ID:        ent.ID,
				Name:      ent.Name,
				Energy:    cfg.MaxEnergy,
				MaxEnergy: cfg.MaxEnergy,
				Status:    StatusRacing,
			},
			genome: ent.Genome,
			stats:  genome.Derive(&ent.Genome),
			mask:   terrain.MaskOf(&ent.Genome),
		})
	}

	// Fixed ascending-id processing order.
	sort.Slice(racers, func(i, j int) bool {
		return racers[i].state.ID < racers[j].state.ID
	})
	for i, r := range racers {
		r.state.Lane = i % cfg.LaneCount
	}
	return racers, nil
}
