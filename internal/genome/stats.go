package genome

// Physical baselines shared by every entrant. Genetic modifiers scale
// these; they are not tunable per race.
const (
	baseMaxSpeed        = 25.0 // hard speed ceiling before genetics
	baseAcceleration    = 10.0 // units/s^2
	baseDeceleration    = 5.0  // units/s^2
	baseTurnRate        = 90.0 // degrees/s
	baseMass            = 50.0 // arbitrary mass units
	baseDrag            = 0.3
	baseCollisionRadius = 16.0
)

// DerivedStats are the physical capabilities computed from a genome.
// Pure function of the genome: derived once at race start and cached for
// the race's lifetime, never recomputed mid-race.
type DerivedStats struct {
	MaxSpeed        float64 // absolute speed ceiling, units/s
	Acceleration    float64 // approach rate toward target speed
	Deceleration    float64
	TurnRate        float64 // degrees/s
	Mass            float64
	Drag            float64
	CollisionRadius float64

	// SpeedRatio scales the race's base speed; clamped to [0.5, 1.5].
	SpeedRatio float64
	// EnergyEfficiency divides energy drain; clamped to [0.5, 1.5].
	EnergyEfficiency float64
}

// Derive computes the physics stats for a genome. The genome must already
// be validated; Derive performs no checks of its own.
func Derive(g *Genome) DerivedStats {
	ratio := speedRatio(g)
	eff := energyEfficiency(g)

	mass := baseMass * g.ShellSizeModifier * g.LegThicknessModifier
	drag := baseDrag * g.ShellSizeModifier / g.HeadSizeModifier

	return DerivedStats{
		MaxSpeed:         baseMaxSpeed * ratio,
		Acceleration:     baseAcceleration * baseMass / mass,
		Deceleration:     baseDeceleration * baseMass / mass,
		TurnRate:         baseTurnRate / g.ShellSizeModifier,
		Mass:             mass,
		Drag:             drag,
		CollisionRadius:  baseCollisionRadius * g.ShellSizeModifier,
		SpeedRatio:       ratio,
		EnergyEfficiency: eff,
	}
}

// speedRatio folds limb shape, stride length and shell drag into a single
// base-speed multiplier.
func speedRatio(g *Genome) float64 {
	m := 1.0

	switch g.Limbs {
	case LimbFins:
		m *= 1.2
	case LimbFeet:
		m *= 1.1
	}

	// Stride: leg length maps [0.5, 1.5] onto [1.0, 1.4].
	m *= 0.8 + 0.4*g.LegLength

	// Oversized shells add drag.
	if g.ShellSizeModifier > 1.0 {
		m *= 2.0 - g.ShellSizeModifier
	}

	return clamp(m, 0.5, 1.5)
}

// energyEfficiency folds shell weight and leg thickness into a drain
// divisor: higher means less energy spent per unit of effort.
func energyEfficiency(g *Genome) float64 {
	e := 1.0

	// Light shells conserve energy.
	if g.ShellSizeModifier < 1.0 {
		e *= 1.0 + 0.2*(1.0-g.ShellSizeModifier)
	}

	// Thick legs endure.
	e *= 0.9 + 0.2*g.LegThicknessModifier

	return clamp(e, 0.5, 1.5)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
