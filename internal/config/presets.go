package config

// IntensityPreset represents a named race intensity level. Intensity
// scales energy pressure and hazards without touching the course or the
// genomes, so the same roster can run a casual parade or a brutal grind.
type IntensityPreset string

const (
	IntensityCasual   IntensityPreset = "casual"
	IntensityStandard IntensityPreset = "standard"
	IntensityBrutal   IntensityPreset = "brutal"
)

// ApplyIntensityPreset modifies the race settings for a preset. Unknown
// presets leave the settings untouched.
func ApplyIntensityPreset(s *RaceSettings, preset IntensityPreset) {
	switch preset {
	case IntensityCasual:
		s.EnergyDrainRate *= 0.5
		s.RecoveryRate *= 1.5
		s.HazardsEnabled = false
	case IntensityStandard:
		// Baseline values as configured.
	case IntensityBrutal:
		s.EnergyDrainRate *= 2.0
		s.RecoveryRate *= 0.75
		s.HazardsEnabled = true
	}
}

// ValidIntensity reports whether the preset name is recognized.
func ValidIntensity(preset IntensityPreset) bool {
	switch preset {
	case IntensityCasual, IntensityStandard, IntensityBrutal:
		return true
	}
	return false
}
