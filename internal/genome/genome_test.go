package genome

import (
	"math/rand"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	g := Default()
	if err := g.Validate(); err != nil {
		t.Fatalf("Default genome should validate, got %v", err)
	}
}

func TestValidateBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Genome)
	}{
		{"shell_pattern_density low", func(g *Genome) { g.ShellPatternDensity = 0.05 }},
		{"shell_pattern_density high", func(g *Genome) { g.ShellPatternDensity = 1.1 }},
		{"shell_pattern_opacity low", func(g *Genome) { g.ShellPatternOpacity = 0.2 }},
		{"shell_size_modifier low", func(g *Genome) { g.ShellSizeModifier = 0.4 }},
		{"shell_size_modifier high", func(g *Genome) { g.ShellSizeModifier = 1.6 }},
		{"body_pattern_density high", func(g *Genome) { g.BodyPatternDensity = 2.0 }},
		{"head_size_modifier low", func(g *Genome) { g.HeadSizeModifier = 0.6 }},
		{"leg_length high", func(g *Genome) { g.LegLength = 1.51 }},
		{"leg_thickness_modifier high", func(g *Genome) { g.LegThicknessModifier = 1.4 }},
		{"eye_size_modifier low", func(g *Genome) { g.EyeSizeModifier = 0.7 }},
	}

	for _, tc := range cases {
		g := Default()
		tc.mutate(&g)
		if err := g.Validate(); err == nil {
			t.Errorf("%s: expected validation error, got nil", tc.name)
		}
	}
}

func TestValidateBoundaryValuesAccepted(t *testing.T) {
	g := Default()
	g.ShellPatternDensity = 0.1
	g.ShellPatternOpacity = 1.0
	g.ShellSizeModifier = 1.5
	g.LegLength = 0.5
	g.LegThicknessModifier = 0.7
	g.EyeSizeModifier = 1.2

	if err := g.Validate(); err != nil {
		t.Errorf("Boundary values should be accepted, got %v", err)
	}
}

func TestValidateEnums(t *testing.T) {
	g := Default()
	g.ShellPatternType = "plaid"
	if err := g.Validate(); err == nil {
		t.Error("Unknown shell pattern should be rejected")
	}

	g = Default()
	g.BodyPatternType = ""
	if err := g.Validate(); err == nil {
		t.Error("Empty body pattern should be rejected")
	}

	g = Default()
	g.Limbs = "wheels"
	if err := g.Validate(); err == nil {
		t.Error("Unknown limb shape should be rejected")
	}
}

func TestSizeClasses(t *testing.T) {
	g := Default()

	g.ShellSizeModifier = 1.3
	if g.ShellClass() != SizeLarge {
		t.Errorf("Shell 1.3 should be large, got %v", g.ShellClass())
	}
	g.ShellSizeModifier = 1.2
	if g.ShellClass() != SizeNormal {
		t.Errorf("Shell 1.2 should be normal (threshold is strict), got %v", g.ShellClass())
	}
	g.ShellSizeModifier = 0.7
	if g.ShellClass() != SizeSmall {
		t.Errorf("Shell 0.7 should be small, got %v", g.ShellClass())
	}

	g.LegLength = 1.25
	if g.LegClass() != SizeLarge {
		t.Errorf("Legs 1.25 should be long, got %v", g.LegClass())
	}
	g.LegLength = 0.8
	if g.LegClass() != SizeNormal {
		t.Errorf("Legs 0.8 should be normal (threshold is strict), got %v", g.LegClass())
	}
	g.LegLength = 0.79
	if g.LegClass() != SizeSmall {
		t.Errorf("Legs 0.79 should be short, got %v", g.LegClass())
	}
}

func TestDeriveNeutralGenome(t *testing.T) {
	g := Default()
	stats := Derive(&g)

	// Default genome: flippers, leg length 1.0, shell 1.0 -> ratio 1.2,
	// thickness 1.0 -> efficiency 1.1.
	if !approx(stats.SpeedRatio, 1.2) {
		t.Errorf("Default speed ratio should be 1.2, got %g", stats.SpeedRatio)
	}
	if !approx(stats.EnergyEfficiency, 1.1) {
		t.Errorf("Default energy efficiency should be 1.1, got %g", stats.EnergyEfficiency)
	}
	if !approx(stats.MaxSpeed, 25.0*1.2) {
		t.Errorf("Max speed should scale the 25.0 ceiling, got %g", stats.MaxSpeed)
	}
	if !approx(stats.Mass, 50.0) {
		t.Errorf("Neutral modifiers should give base mass, got %g", stats.Mass)
	}
}

func TestDeriveClamps(t *testing.T) {
	// Fins + max legs pushes the raw ratio past 1.5.
	g := Default()
	g.Limbs = LimbFins
	g.LegLength = 1.5
	stats := Derive(&g)
	if stats.SpeedRatio != 1.5 {
		t.Errorf("Speed ratio should clamp to 1.5, got %g", stats.SpeedRatio)
	}

	// Huge shell and short legs push the ratio down.
	g = Default()
	g.Limbs = LimbFlippers
	g.LegLength = 0.5
	g.ShellSizeModifier = 1.5
	stats = Derive(&g)
	if stats.SpeedRatio < 0.5 {
		t.Errorf("Speed ratio should never go below 0.5, got %g", stats.SpeedRatio)
	}

	// Small shell + thick legs: efficiency stays within [0.5, 1.5].
	g = Default()
	g.ShellSizeModifier = 0.5
	g.LegThicknessModifier = 1.3
	stats = Derive(&g)
	if stats.EnergyEfficiency > 1.5 {
		t.Errorf("Energy efficiency should clamp to 1.5, got %g", stats.EnergyEfficiency)
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	g := Random(rand.New(rand.NewSource(7)))
	a := Derive(&g)
	b := Derive(&g)
	if a != b {
		t.Errorf("Derive should be a pure function: %+v vs %+v", a, b)
	}
}

func TestRandomAlwaysValid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		g := Random(rng)
		if err := g.Validate(); err != nil {
			t.Fatalf("Random genome %d failed validation: %v", i, err)
		}
	}
}

func TestRandomReproducible(t *testing.T) {
	g1 := Random(rand.New(rand.NewSource(99)))
	g2 := Random(rand.New(rand.NewSource(99)))
	if g1 != g2 {
		t.Error("Same seed should produce identical genomes")
	}
}

func TestArchetypes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	s := Swimmer(rng)
	if s.Limbs != LimbFins {
		t.Errorf("Swimmer should have fins, got %s", s.Limbs)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Swimmer should validate: %v", err)
	}

	c := Climber(rng)
	if c.Limbs != LimbFeet {
		t.Errorf("Climber should have feet, got %s", c.Limbs)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Climber should validate: %v", err)
	}

	b := Balanced(rng)
	if b != Default() {
		t.Error("Balanced should equal the default genome")
	}
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
