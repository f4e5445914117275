package config

import (
	_ "embed"

	"github.com/vovakirdan/shell-derby/internal/race"
)

//go:embed defaults/derby.yaml
var defaultDerbyYAML []byte

// DefaultDerbyConfig returns the default race configuration: the builtin
// gauntlet course with one entrant per archetype.
func DefaultDerbyConfig() DerbyConfig {
	return DerbyConfig{
		Race: RaceSettings{
			TickRate:           30,
			MaxTicks:           20000,
			MaxTime:            300,
			LaneCount:          8,
			BaseSpeed:          10,
			EnergyDrainRate:    1,
			RecoveryRate:       2,
			MaxEnergy:          100,
			SubSteps:           2,
			CheckpointInterval: 100,
			Seed:               1,
			Thresholds:         race.DefaultThresholds(),
		},
		Course: CourseSettings{
			Name: "gauntlet",
		},
		Entrants: []EntrantSpec{
			{ID: "t1", Name: "Torrent", Archetype: "swimmer"},
			{ID: "t2", Name: "Granite", Archetype: "climber"},
			{ID: "t3", Name: "Steady", Archetype: "balanced"},
			{ID: "t4", Name: "Scraps", Archetype: "wild"},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultDerbyYAML
}
