package race

import "github.com/vovakirdan/shell-derby/internal/terrain"

// Event is emitted by the arbiter for every entrant state transition it
// observes during a tick. Ticks without transitions emit nothing. Events
// are produced, never mutated; the orchestrator drains the per-tick list.
type Event interface {
	raceEvent()

	// Kind returns the event's stable name for logging and storage.
	Kind() string
}

// EnergyDepletedEvent fires when an entrant's energy reaches zero.
type EnergyDepletedEvent struct {
	EntrantID string
	Tick      uint64
}

func (EnergyDepletedEvent) raceEvent()   {}
func (EnergyDepletedEvent) Kind() string { return "energy-depleted" }

// EnteredRestEvent fires when the arbiter forces an entrant into rest at
// or below the low-energy threshold.
type EnteredRestEvent struct {
	EntrantID string
	Tick      uint64
	Energy    float64
}

func (EnteredRestEvent) raceEvent()   {}
func (EnteredRestEvent) Kind() string { return "entered-rest" }

// ExitedRestEvent fires when a resting entrant recovers past the
// recovered threshold and resumes racing.
type ExitedRestEvent struct {
	EntrantID string
	Tick      uint64
	Energy    float64
}

func (ExitedRestEvent) raceEvent()   {}
func (ExitedRestEvent) Kind() string { return "exited-rest" }

// EnergyWarningEvent fires once per downward crossing of the warning or
// critical threshold. Advisory only; it drives no state change.
type EnergyWarningEvent struct {
	EntrantID string
	Tick      uint64
	Fraction  float64
	Critical  bool
}

func (EnergyWarningEvent) raceEvent()   {}
func (EnergyWarningEvent) Kind() string { return "energy-warning" }

// EntrantFinishedEvent fires when an entrant crosses the finish distance
// and receives its rank.
type EntrantFinishedEvent struct {
	EntrantID string
	Tick      uint64
	Rank      int
	RaceTime  float64
}

func (EntrantFinishedEvent) raceEvent()   {}
func (EntrantFinishedEvent) Kind() string { return "entrant-finished" }

// HazardTriggeredEvent fires when a hazard roll crashes an entrant.
type HazardTriggeredEvent struct {
	EntrantID string
	Tick      uint64
	Terrain   terrain.Type
	Position  float64
}

func (HazardTriggeredEvent) raceEvent()   {}
func (HazardTriggeredEvent) Kind() string { return "hazard-triggered" }

// CheckpointPassedEvent fires each time an entrant crosses a checkpoint.
type CheckpointPassedEvent struct {
	EntrantID string
	Tick      uint64
	Index     int // 1-based checkpoint number
	Position  float64
}

func (CheckpointPassedEvent) raceEvent()   {}
func (CheckpointPassedEvent) Kind() string { return "checkpoint-passed" }

// LeaderChangedEvent fires when the furthest non-crashed entrant changes.
type LeaderChangedEvent struct {
	Tick      uint64
	NewLeader string
	OldLeader string // empty on the first assignment
	Position  float64
}

func (LeaderChangedEvent) raceEvent()   {}
func (LeaderChangedEvent) Kind() string { return "leader-changed" }

// EndReason explains why a race finished.
type EndReason string

const (
	EndCompleted EndReason = "completed" // every entrant finished or crashed
	EndMaxTicks  EndReason = "max_ticks"
	EndMaxTime   EndReason = "max_time"
)

// RaceFinishedEvent fires exactly once, on the tick the race ends.
// Entrants still racing at a forced stop stay unranked.
type RaceFinishedEvent struct {
	Tick     uint64
	Reason   EndReason
	WinnerID string // empty if nobody finished
}

func (RaceFinishedEvent) raceEvent()   {}
func (RaceFinishedEvent) Kind() string { return "race-finished" }
