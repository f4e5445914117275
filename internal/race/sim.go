package race

import (
	"context"
	"fmt"

	"github.com/vovakirdan/shell-derby/internal/terrain"
)

// Simulation drives one race: a strict physics -> arbiter -> snapshot
// pipeline per tick, single-threaded, with no I/O on the hot path.
// Construction validates everything; once ticking, the simulation cannot
// fail. Independent simulations share no state and may run in parallel
// with each other.
type Simulation struct {
	cfg     Config
	course  *terrain.Course
	catalog *terrain.Catalog
	engine  *engine
	arbiter *arbiter

	tick     uint64
	finished bool
}

// New builds a simulation from a validated configuration and entrant
// list. Every configuration error (malformed terrain, out-of-bound
// genome traits, bad rates) surfaces here; no race partially initializes.
func New(cfg Config, entrants []Entrant) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	course, err := cfg.BuildCourse()
	if err != nil {
		return nil, fmt.Errorf("race: %w", err)
	}
	racers, err := newRacers(&cfg, entrants)
	if err != nil {
		return nil, err
	}

	catalog := terrain.NewCatalog()
	return &Simulation{
		cfg:     cfg,
		course:  course,
		catalog: catalog,
		engine:  newEngine(&cfg, course, catalog, racers),
		arbiter: newArbiter(&cfg, course, catalog),
	}, nil
}

// Config returns the race configuration.
func (s *Simulation) Config() Config { return s.cfg }

// Course returns the validated course.
func (s *Simulation) Course() *terrain.Course { return s.course }

// Finished reports whether the race has ended.
func (s *Simulation) Finished() bool { return s.finished }

// Tick returns the number of ticks simulated so far.
func (s *Simulation) Tick() uint64 { return s.tick }

// Step advances the race by exactly one tick and returns the snapshot
// plus the transitions observed. Stepping a finished race returns the
// final snapshot unchanged with no events. A tick is atomic: observers
// never see partial state.
func (s *Simulation) Step() (Snapshot, []Event) {
	if s.finished {
		return s.Snapshot(), nil
	}

	dt := s.cfg.dt()
	s.tick++
	s.engine.advance(dt)
	events := s.arbiter.evaluate(s.tick, dt, s.engine.racers)
	if s.arbiter.raceFinished {
		s.finished = true
	}
	return s.Snapshot(), events
}

// Snapshot composes the current immutable race view: entrant copies, the
// terrain window ahead of the leader, and aggregate counts.
func (s *Simulation) Snapshot() Snapshot {
	states := s.engine.states()

	snap := Snapshot{
		Tick:          s.tick,
		ElapsedMS:     float64(s.tick) * s.cfg.dt() * 1000,
		CourseID:      s.cfg.CourseID,
		TrackLength:   s.cfg.TrackLength,
		Entrants:      make([]EntrantState, len(states)),
		Finished:      s.finished,
		TotalEntrants: len(states),
	}

	leadPos := 0.0
	for i, st := range states {
		snap.Entrants[i] = *st
		switch {
		case st.Status == StatusFinished:
			snap.FinishedEntrants++
		case st.Active():
			snap.ActiveEntrants++
		}
		if !st.Status.Terminal() && st.Position > leadPos {
			leadPos = st.Position
		}
	}

	snap.TerrainAhead = s.course.Window(leadPos, terrainWindow)
	if len(s.arbiter.finishOrder) > 0 {
		snap.WinnerID = s.arbiter.finishOrder[0]
	}
	return snap
}

// Result assembles the terminal race result. Valid only once the race
// has finished.
func (s *Simulation) Result() (Result, error) {
	if !s.finished {
		return Result{}, fmt.Errorf("race: result requested before race finished")
	}
	snap := s.Snapshot()
	return newResult(&s.cfg, &snap, s.arbiter), nil
}

// Sink receives each tick's snapshot and events. Returning an error
// stops the run.
type Sink func(Snapshot, []Event) error

// Run drives the simulation to completion. Cancellation is checked only
// between ticks, so observers never see a torn tick; a cancelled race
// simply stops producing snapshots. The sink may be nil.
func (s *Simulation) Run(ctx context.Context, sink Sink) (Result, error) {
	for !s.finished {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		snap, events := s.Step()
		if sink != nil {
			if err := sink(snap, events); err != nil {
				return Result{}, err
			}
		}
	}
	return s.Result()
}
