package config

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/shell-derby/internal/race"
	"github.com/vovakirdan/shell-derby/internal/roster"
	"github.com/vovakirdan/shell-derby/internal/terrain"
)

// Build turns the file configuration into a runnable race configuration
// plus its entrant list. Archetype genomes are generated from the race
// seed, so the same file describes the same race every time.
func (c *DerbyConfig) Build() (race.Config, []race.Entrant, error) {
	cfg := race.Config{
		LaneCount:          c.Race.LaneCount,
		TickRate:           c.Race.TickRate,
		MaxTicks:           c.Race.MaxTicks,
		MaxTime:            c.Race.MaxTime,
		BaseSpeed:          c.Race.BaseSpeed,
		EnergyDrainRate:    c.Race.EnergyDrainRate,
		RecoveryRate:       c.Race.RecoveryRate,
		MaxEnergy:          c.Race.MaxEnergy,
		SubSteps:           c.Race.SubSteps,
		CheckpointInterval: c.Race.CheckpointInterval,
		HazardsEnabled:     c.Race.HazardsEnabled,
		Seed:               c.Race.Seed,
		Thresholds:         c.Race.Thresholds,
	}

	course, courseID, err := c.Course.build()
	if err != nil {
		return race.Config{}, nil, err
	}
	cfg.CourseID = courseID
	cfg.TrackLength = course.Length()
	cfg.Segments = course.Segments()

	entrants, err := c.buildEntrants()
	if err != nil {
		return race.Config{}, nil, err
	}
	return cfg, entrants, nil
}

// build resolves the course source: inline segments win, then a builtin
// name, then the mixed generator.
func (c *CourseSettings) build() (*terrain.Course, string, error) {
	switch {
	case len(c.Segments) > 0:
		if c.Length <= 0 {
			return nil, "", fmt.Errorf("config: inline course needs a positive length")
		}
		course, err := terrain.NewCourse(c.Length, c.Segments)
		if err != nil {
			return nil, "", fmt.Errorf("config: %w", err)
		}
		return course, "custom", nil

	case c.Name != "":
		course, err := terrain.BuiltinCourse(c.Name)
		if err != nil {
			return nil, "", fmt.Errorf("config: %w", err)
		}
		return course, c.Name, nil

	case c.Length > 0 && c.SegmentLength > 0:
		course, err := terrain.Mixed(c.Length, c.SegmentLength)
		if err != nil {
			return nil, "", fmt.Errorf("config: %w", err)
		}
		return course, "mixed", nil

	default:
		return nil, "", fmt.Errorf("config: no course specified")
	}
}

func (c *DerbyConfig) buildEntrants() ([]race.Entrant, error) {
	if len(c.Entrants) == 0 {
		return nil, fmt.Errorf("config: no entrants specified")
	}

	rng := rand.New(rand.NewSource(c.Race.Seed))
	entrants := make([]race.Entrant, 0, len(c.Entrants))
	for i, spec := range c.Entrants {
		if spec.ID == "" {
			return nil, fmt.Errorf("config: entrant %d has no id", i)
		}

		ent := race.Entrant{ID: spec.ID, Name: spec.Name}
		if ent.Name == "" {
			ent.Name = spec.ID
		}

		switch {
		case spec.Genome != nil:
			ent.Genome = *spec.Genome
		case spec.Archetype != "":
			g, err := roster.Create(spec.Archetype, rng)
			if err != nil {
				return nil, fmt.Errorf("config: entrant %q: %w", spec.ID, err)
			}
			ent.Genome = g
		default:
			return nil, fmt.Errorf("config: entrant %q needs an archetype or a genome", spec.ID)
		}

		if err := ent.Genome.Validate(); err != nil {
			return nil, fmt.Errorf("config: entrant %q: %w", spec.ID, err)
		}
		entrants = append(entrants, ent)
	}
	return entrants, nil
}
