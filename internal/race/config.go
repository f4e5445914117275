// Package race implements the deterministic race simulation engine: the
// sub-stepped physics integrator, the arbiter state machine over entrant
// status, and the per-tick snapshot/event plumbing. One Simulation per
// race; independent races share nothing and may run in parallel.
package race

import (
	"fmt"

	"github.com/vovakirdan/shell-derby/internal/terrain"
)

// EnergyThresholds define the rest hysteresis band as fractions of max
// energy: an entrant enters rest at or below Low and exits only at or
// above Recovered. Recovered must be strictly greater than Low so the
// state cannot flap at the boundary.
type EnergyThresholds struct {
	Low       float64 `yaml:"low" json:"low"`
	Recovered float64 `yaml:"recovered" json:"recovered"`
	Warning   float64 `yaml:"warning" json:"warning"`   // advisory event only
	Critical  float64 `yaml:"critical" json:"critical"` // advisory event only
}

// DefaultThresholds returns the standard hysteresis band.
func DefaultThresholds() EnergyThresholds {
	return EnergyThresholds{Low: 0.2, Recovered: 0.6, Warning: 0.35, Critical: 0.1}
}

func (t EnergyThresholds) validate() error {
	if t.Low <= 0 || t.Low >= 1 {
		return fmt.Errorf("race: low threshold %g outside (0, 1)", t.Low)
	}
	if t.Recovered <= t.Low || t.Recovered > 1 {
		return fmt.Errorf("race: recovered threshold %g must be in (low, 1]", t.Recovered)
	}
	return nil
}

// Config is the immutable race configuration. Built once by the caller,
// validated once at race construction; the simulation never re-reads
// external state after that.
type Config struct {
	CourseID    string  `yaml:"course_id" json:"course_id"`
	TrackLength float64 `yaml:"track_length" json:"track_length"`
	LaneCount   int     `yaml:"lane_count" json:"lane_count"`

	TickRate int     `yaml:"tick_rate" json:"tick_rate"` // simulation ticks per second
	MaxTicks int     `yaml:"max_ticks" json:"max_ticks"` // hard stop; 0 disables
	MaxTime  float64 `yaml:"max_time" json:"max_time"`   // seconds; 0 disables

	BaseSpeed       float64 `yaml:"base_speed" json:"base_speed"`
	EnergyDrainRate float64 `yaml:"energy_drain_rate" json:"energy_drain_rate"`
	RecoveryRate    float64 `yaml:"recovery_rate" json:"recovery_rate"`
	MaxEnergy       float64 `yaml:"max_energy" json:"max_energy"`

	// SubSteps divides each tick into N equal integration intervals.
	// Changing N changes precision, never the qualitative outcome.
	SubSteps int `yaml:"sub_steps" json:"sub_steps"`

	// CheckpointInterval places a checkpoint every N distance units;
	// 0 disables checkpoints.
	CheckpointInterval float64 `yaml:"checkpoint_interval" json:"checkpoint_interval"`

	// HazardsEnabled turns on the per-tick crash roll. Off by default so
	// the base simulation is completely RNG-free.
	HazardsEnabled bool  `yaml:"hazards_enabled" json:"hazards_enabled"`
	Seed           int64 `yaml:"seed" json:"seed"` // hazard RNG seed

	Thresholds EnergyThresholds  `yaml:"thresholds" json:"thresholds"`
	Segments   []terrain.Segment `yaml:"segments" json:"segments"`
}

// DefaultConfig returns a runnable baseline configuration. Segments are
// left empty; callers fill them in or build them from a named course.
func DefaultConfig() Config {
	return Config{
		CourseID:           "default",
		TrackLength:        1500,
		LaneCount:          8,
		TickRate:           30,
		MaxTicks:           20000,
		MaxTime:            300,
		BaseSpeed:          10,
		EnergyDrainRate:    1,
		RecoveryRate:       2,
		MaxEnergy:          100,
		SubSteps:           2,
		CheckpointInterval: 100,
		Thresholds:         DefaultThresholds(),
	}
}

// Validate checks every configuration invariant. Any violation is fatal
// at construction time; a race never partially initializes.
func (c *Config) Validate() error {
	if c.TrackLength <= 0 {
		return fmt.Errorf("race: track length must be positive, got %g", c.TrackLength)
	}
	if c.LaneCount < 1 {
		return fmt.Errorf("race: lane count must be at least 1, got %d", c.LaneCount)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("race: tick rate must be positive, got %d", c.TickRate)
	}
	if c.MaxTicks < 0 || c.MaxTime < 0 {
		return fmt.Errorf("race: max ticks/time must not be negative")
	}
	if c.MaxTicks == 0 && c.MaxTime == 0 {
		return fmt.Errorf("race: at least one of max_ticks and max_time must be set")
	}
	if c.BaseSpeed <= 0 {
		return fmt.Errorf("race: base speed must be positive, got %g", c.BaseSpeed)
	}
	if c.EnergyDrainRate <= 0 || c.RecoveryRate <= 0 {
		return fmt.Errorf("race: energy drain and recovery rates must be positive")
	}
	if c.MaxEnergy <= 0 {
		return fmt.Errorf("race: max energy must be positive, got %g", c.MaxEnergy)
	}
	if c.SubSteps < 1 {
		return fmt.Errorf("race: sub-steps must be at least 1, got %d", c.SubSteps)
	}
	if c.CheckpointInterval < 0 {
		return fmt.Errorf("race: checkpoint interval must not be negative")
	}
	if err := c.Thresholds.validate(); err != nil {
		return err
	}
	return nil
}

// BuildCourse validates the segment list against the track length and
// returns the immutable course. Malformed terrain (gaps, overlaps) fails
// here, before any tick runs.
func (c *Config) BuildCourse() (*terrain.Course, error) {
	return terrain.NewCourse(c.TrackLength, c.Segments)
}

// dt returns the tick duration in seconds.
func (c *Config) dt() float64 {
	return 1.0 / float64(c.TickRate)
}
