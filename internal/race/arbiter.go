package race

import (
	"math/rand"

	"github.com/vovakirdan/shell-derby/internal/terrain"
)

// Metrics aggregates arbiter observations across the race. Informational
// only; nothing in the simulation reads them back.
type Metrics struct {
	LeaderChanges    int `json:"leader_changes"`
	ExhaustionEvents int `json:"exhaustion_events"`
	RecoveryEvents   int `json:"recovery_events"`
	CheckpointPasses int `json:"checkpoint_passes"`
}

// arbiter enforces race rules over the engine's output: rest hysteresis,
// hazard rolls, rank assignment, checkpoint and leader tracking, and
// race-completion detection. It holds no state beyond the entrant states
// it shares with the engine plus the bookkeeping below.
type arbiter struct {
	cfg         *Config
	course      *terrain.Course
	catalog     *terrain.Catalog
	rng         *rand.Rand // hazard rolls only; nil unless hazards enabled
	checkpoints []float64

	nextRank     int
	finishOrder  []string
	leader       string
	raceFinished bool
	endReason    EndReason
	metrics      Metrics

	// prevWarn tracks the last observed warning band per entrant so each
	// downward crossing emits exactly one event. 0 = none, 1 = warning,
	// 2 = critical.
	prevWarn map[string]int
}

func newArbiter(cfg *Config, course *terrain.Course, catalog *terrain.Catalog) *arbiter {
	a := &arbiter{
		cfg:      cfg,
		course:   course,
		catalog:  catalog,
		nextRank: 1,
		prevWarn: make(map[string]int),
	}
	if cfg.HazardsEnabled {
		a.rng = rand.New(rand.NewSource(cfg.Seed))
	}
	if cfg.CheckpointInterval > 0 {
		for pos := cfg.CheckpointInterval; pos < cfg.TrackLength; pos += cfg.CheckpointInterval {
			a.checkpoints = append(a.checkpoints, pos)
		}
	}
	return a
}

// evaluate applies the rule set to the post-physics states for one tick
// and returns the transitions observed, in entrant processing order.
// It is the only place ranks are assigned and the only place status
// changes outside the engine's rest recovery.
func (a *arbiter) evaluate(tick uint64, dt float64, racers []*racer) []Event {
	if a.raceFinished {
		return nil
	}

	var events []Event
	for _, r := range racers {
		st := r.state
		if st.Status.Terminal() {
			continue
		}

		events = a.checkCheckpoints(events, tick, st)

		// Finish wins over every other transition this tick. Ties at
		// identical positions resolve by processing order, which is
		// ascending entrant id.
		if st.Position >= a.cfg.TrackLength {
			st.Position = a.cfg.TrackLength
			st.Status = StatusFinished
			st.Resting = false
			st.Velocity = 0
			st.Rank = a.nextRank
			a.nextRank++
			a.finishOrder = append(a.finishOrder, st.ID)
			events = append(events, EntrantFinishedEvent{
				EntrantID: st.ID,
				Tick:      tick,
				Rank:      st.Rank,
				RaceTime:  st.RaceTime,
			})
			continue
		}

		if a.rng != nil && !st.Resting {
			if ev, crashed := a.rollHazard(tick, r, dt); crashed {
				events = append(events, ev)
				continue
			}
		}

		events = a.checkEnergy(events, tick, st)
	}

	events = a.checkLeader(events, tick, racers)
	events = a.checkCompletion(events, tick, dt, racers)
	return events
}

// checkEnergy drives the racing<->resting hysteresis and the advisory
// warning events.
func (a *arbiter) checkEnergy(events []Event, tick uint64, st *EntrantState) []Event {
	frac := st.EnergyFraction()

	switch {
	case !st.Resting && frac <= a.cfg.Thresholds.Low:
		st.Resting = true
		st.Status = StatusResting
		st.Velocity = 0
		a.metrics.ExhaustionEvents++
		if st.Energy == 0 {
			events = append(events, EnergyDepletedEvent{EntrantID: st.ID, Tick: tick})
		}
		events = append(events, EnteredRestEvent{EntrantID: st.ID, Tick: tick, Energy: st.Energy})

	case st.Resting && frac >= a.cfg.Thresholds.Recovered:
		st.Resting = false
		st.Status = StatusRacing
		a.metrics.RecoveryEvents++
		events = append(events, ExitedRestEvent{EntrantID: st.ID, Tick: tick, Energy: st.Energy})

	case !st.Resting:
		band := 0
		if frac <= a.cfg.Thresholds.Critical {
			band = 2
		} else if frac <= a.cfg.Thresholds.Warning {
			band = 1
		}
		if band > a.prevWarn[st.ID] {
			events = append(events, EnergyWarningEvent{
				EntrantID: st.ID,
				Tick:      tick,
				Fraction:  frac,
				Critical:  band == 2,
			})
		}
		a.prevWarn[st.ID] = band
	}

	return events
}

// rollHazard crashes an entrant with probability proportional to the
// terrain's hazard chance and inversely to the genome's stability there.
// The roll consumes the arbiter's private RNG, so hazard outcomes are
// reproducible per seed.
func (a *arbiter) rollHazard(tick uint64, r *racer, dt float64) (Event, bool) {
	st := r.state
	seg := a.course.At(st.Position)
	chance := terrain.BaseProperties(seg.Type).HazardChance
	if chance <= 0 {
		return nil, false
	}

	mods := a.catalog.ModifiersForMask(seg.Type, r.mask)
	p := chance * dt / mods.Stability
	if a.rng.Float64() >= p {
		return nil, false
	}

	st.Status = StatusCrashed
	st.Resting = false
	st.Velocity = 0
	return HazardTriggeredEvent{
		EntrantID: st.ID,
		Tick:      tick,
		Terrain:   seg.Type,
		Position:  st.Position,
	}, true
}

// checkCheckpoints advances the entrant's checkpoint counter past every
// checkpoint at or behind its position.
func (a *arbiter) checkCheckpoints(events []Event, tick uint64, st *EntrantState) []Event {
	for st.Checkpoints < len(a.checkpoints) && st.Position >= a.checkpoints[st.Checkpoints] {
		st.Checkpoints++
		a.metrics.CheckpointPasses++
		events = append(events, CheckpointPassedEvent{
			EntrantID: st.ID,
			Tick:      tick,
			Index:     st.Checkpoints,
			Position:  a.checkpoints[st.Checkpoints-1],
		})
	}
	return events
}

// checkLeader tracks the furthest non-crashed entrant. Ties keep the
// incumbent leader; among equals the first in processing order wins.
func (a *arbiter) checkLeader(events []Event, tick uint64, racers []*racer) []Event {
	var lead *EntrantState
	for _, r := range racers {
		st := r.state
		if st.Status == StatusCrashed {
			continue
		}
		if lead == nil || st.Position > lead.Position {
			lead = st
		}
	}
	if lead == nil || lead.ID == a.leader {
		return events
	}

	// An incumbent at equal position keeps the lead.
	if a.leader != "" {
		for _, r := range racers {
			if r.state.ID == a.leader && r.state.Status != StatusCrashed && r.state.Position >= lead.Position {
				return events
			}
		}
	}

	old := a.leader
	a.leader = lead.ID
	a.metrics.LeaderChanges++
	return append(events, LeaderChangedEvent{
		Tick:      tick,
		NewLeader: lead.ID,
		OldLeader: old,
		Position:  lead.Position,
	})
}

// checkCompletion ends the race when every entrant is terminal or when a
// configured hard stop is reached, whichever comes first.
func (a *arbiter) checkCompletion(events []Event, tick uint64, dt float64, racers []*racer) []Event {
	allDone := true
	for _, r := range racers {
		if !r.state.Status.Terminal() {
			allDone = false
			break
		}
	}

	var reason EndReason
	switch {
	case allDone:
		reason = EndCompleted
	case a.cfg.MaxTicks > 0 && tick >= uint64(a.cfg.MaxTicks):
		reason = EndMaxTicks
	case a.cfg.MaxTime > 0 && float64(tick)*dt >= a.cfg.MaxTime:
		reason = EndMaxTime
	default:
		return events
	}

	a.raceFinished = true
	a.endReason = reason
	winner := ""
	if len(a.finishOrder) > 0 {
		winner = a.finishOrder[0]
	}
	return append(events, RaceFinishedEvent{Tick: tick, Reason: reason, WinnerID: winner})
}
