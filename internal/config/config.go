// Package config provides YAML-based race configuration loading for the
// derby: race settings, course selection, and the entrant roster.
package config

import (
	"github.com/vovakirdan/shell-derby/internal/genome"
	"github.com/vovakirdan/shell-derby/internal/race"
	"github.com/vovakirdan/shell-derby/internal/terrain"
)

// DerbyConfig is the top-level configuration file: simulation settings,
// the course to race on, and who races.
type DerbyConfig struct {
	Race     RaceSettings   `yaml:"race"`
	Course   CourseSettings `yaml:"course"`
	Entrants []EntrantSpec  `yaml:"entrants"`
}

// RaceSettings mirror the simulation's tunables.
type RaceSettings struct {
	TickRate int     `yaml:"tick_rate"`
	MaxTicks int     `yaml:"max_ticks"`
	MaxTime  float64 `yaml:"max_time"`

	LaneCount int `yaml:"lane_count"`

	BaseSpeed       float64 `yaml:"base_speed"`
	EnergyDrainRate float64 `yaml:"energy_drain_rate"`
	RecoveryRate    float64 `yaml:"recovery_rate"`
	MaxEnergy       float64 `yaml:"max_energy"`

	SubSteps           int     `yaml:"sub_steps"`
	CheckpointInterval float64 `yaml:"checkpoint_interval"`

	HazardsEnabled bool  `yaml:"hazards_enabled"`
	Seed           int64 `yaml:"seed"`

	Thresholds race.EnergyThresholds `yaml:"thresholds"`
}

// CourseSettings select the track. Exactly one source applies, checked in
// order: inline segments, a builtin course name, then the mixed
// generator (length plus segment_length).
type CourseSettings struct {
	Name string `yaml:"name,omitempty"` // builtin course name

	// Inline course definition.
	Length   float64           `yaml:"length,omitempty"`
	Segments []terrain.Segment `yaml:"segments,omitempty"`

	// Mixed generator: rotate through the standard terrain sequence in
	// fixed-length chunks. Requires length.
	SegmentLength float64 `yaml:"segment_length,omitempty"`
}

// EntrantSpec describes one racer: either a roster archetype or a full
// inline genome. An inline genome wins when both are present.
type EntrantSpec struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name,omitempty"`
	Archetype string         `yaml:"archetype,omitempty"`
	Genome    *genome.Genome `yaml:"genome,omitempty"`
}
