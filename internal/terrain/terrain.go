// Package terrain models the track surface: the closed set of terrain
// types, per-type base properties, contiguous segment courses, and the
// interaction calculus that maps (terrain type, genome trait class) pairs
// to multiplicative speed/energy/stability modifiers.
package terrain

import "fmt"

// Type is a terrain surface type. The set is closed; adding a type means
// extending the base property table and the interaction rules.
type Type uint8

const (
	Grass Type = iota
	Mud
	Water
	Sand
	Rock
	Rough
	Track
	Finish

	typeCount
)

// Types lists every terrain type in declaration order.
func Types() []Type {
	out := make([]Type, 0, typeCount)
	for t := Type(0); t < typeCount; t++ {
		out = append(out, t)
	}
	return out
}

func (t Type) String() string {
	switch t {
	case Grass:
		return "grass"
	case Mud:
		return "mud"
	case Water:
		return "water"
	case Sand:
		return "sand"
	case Rock:
		return "rock"
	case Rough:
		return "rough"
	case Track:
		return "track"
	case Finish:
		return "finish"
	default:
		return "unknown"
	}
}

// ParseType converts a terrain name to its Type.
func ParseType(s string) (Type, error) {
	for t := Type(0); t < typeCount; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("terrain: unknown type %q", s)
}

// MarshalText serializes the type as its name ("grass", "mud", ...).
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a terrain name. Used by both YAML and JSON codecs.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Properties are the genome-independent baseline characteristics of a
// terrain type.
type Properties struct {
	SpeedModifier   float64 // movement speed multiplier
	EnergyDrain     float64 // energy drain multiplier
	Difficulty      float64 // overall difficulty rating
	HazardChance    float64 // per-second chance of a hazard roll
	RecoveryPenalty float64 // extra energy cost to recover here
}

var baseProperties = map[Type]Properties{
	Grass:  {SpeedModifier: 1.0, EnergyDrain: 1.0, Difficulty: 1.0, HazardChance: 0.05, RecoveryPenalty: 0.0},
	Mud:    {SpeedModifier: 0.6, EnergyDrain: 1.5, Difficulty: 2.0, HazardChance: 0.15, RecoveryPenalty: 0.2},
	Water:  {SpeedModifier: 0.4, EnergyDrain: 1.2, Difficulty: 2.5, HazardChance: 0.10, RecoveryPenalty: 0.3},
	Sand:   {SpeedModifier: 0.7, EnergyDrain: 1.3, Difficulty: 1.5, HazardChance: 0.08, RecoveryPenalty: 0.1},
	Rock:   {SpeedModifier: 0.5, EnergyDrain: 1.4, Difficulty: 2.0, HazardChance: 0.12, RecoveryPenalty: 0.2},
	Rough:  {SpeedModifier: 0.8, EnergyDrain: 1.2, Difficulty: 1.3, HazardChance: 0.10, RecoveryPenalty: 0.1},
	Track:  {SpeedModifier: 1.1, EnergyDrain: 0.9, Difficulty: 0.8, HazardChance: 0.02, RecoveryPenalty: 0.0},
	Finish: {SpeedModifier: 1.0, EnergyDrain: 1.0, Difficulty: 0.5, HazardChance: 0.0, RecoveryPenalty: 0.0},
}

// BaseProperties returns the baseline properties for a terrain type.
// Unknown types fall back to identity properties rather than failing:
// a tick must never error on a lookup.
func BaseProperties(t Type) Properties {
	if p, ok := baseProperties[t]; ok {
		return p
	}
	return Properties{SpeedModifier: 1.0, EnergyDrain: 1.0, Difficulty: 1.0}
}
