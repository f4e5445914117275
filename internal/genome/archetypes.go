package genome

import "math/rand"

// Random generates a wild genome from the given RNG. Every trait stays
// inside its declared bound, so the result always passes Validate. The
// caller owns the RNG; seeding it is what makes generation reproducible.
func Random(rng *rand.Rand) Genome {
	shellPatterns := []ShellPattern{ShellHex, ShellSpots, ShellStripes, ShellRings}
	bodyPatterns := []BodyPattern{BodySolid, BodyMottled, BodySpeckled, BodyMarbled}
	limbShapes := []LimbShape{LimbFins, LimbFeet, LimbFlippers}

	return Genome{
		ShellBaseColor: RGB{
			R: uint8(20 + rng.Intn(61)),
			G: uint8(100 + rng.Intn(81)),
			B: uint8(20 + rng.Intn(61)),
		},
		ShellPatternType: shellPatterns[rng.Intn(len(shellPatterns))],
		ShellPatternColor: RGB{
			R: uint8(150 + rng.Intn(106)),
			G: uint8(150 + rng.Intn(106)),
			B: uint8(150 + rng.Intn(106)),
		},
		ShellPatternDensity: uniform(rng, 0.2, 0.8),
		ShellPatternOpacity: uniform(rng, 0.5, 0.9),
		ShellSizeModifier:   uniform(rng, 0.8, 1.2),

		BodyBaseColor: RGB{
			R: uint8(80 + rng.Intn(61)),
			G: uint8(120 + rng.Intn(61)),
			B: uint8(30 + rng.Intn(51)),
		},
		BodyPatternType: bodyPatterns[rng.Intn(len(bodyPatterns))],
		BodyPatternColor: RGB{
			R: uint8(60 + rng.Intn(61)),
			G: uint8(80 + rng.Intn(61)),
			B: uint8(30 + rng.Intn(41)),
		},
		BodyPatternDensity: uniform(rng, 0.1, 0.6),

		HeadSizeModifier: uniform(rng, 0.85, 1.15),
		HeadColor: RGB{
			R: uint8(100 + rng.Intn(61)),
			G: uint8(70 + rng.Intn(51)),
			B: uint8(30 + rng.Intn(41)),
		},

		LegLength:            uniform(rng, 0.8, 1.2),
		Limbs:                limbShapes[rng.Intn(len(limbShapes))],
		LegThicknessModifier: uniform(rng, 0.85, 1.15),
		LegColor: RGB{
			R: uint8(80 + rng.Intn(51)),
			G: uint8(50 + rng.Intn(41)),
			B: uint8(20 + rng.Intn(31)),
		},

		EyeColor: RGB{
			R: uint8(rng.Intn(51)),
			G: uint8(rng.Intn(51)),
			B: uint8(rng.Intn(51)),
		},
		EyeSizeModifier: uniform(rng, 0.9, 1.1),
	}
}

// Swimmer builds a genome tuned for water: fins, long limbs, a
// streamlined body.
func Swimmer(rng *rand.Rand) Genome {
	g := Random(rng)
	g.Limbs = LimbFins
	g.LegLength = 1.3
	g.BodyPatternDensity = 0.2
	return g
}

// Climber builds a genome tuned for rock and sand: feet, sturdy legs, a
// light shell.
func Climber(rng *rand.Rand) Genome {
	g := Random(rng)
	g.Limbs = LimbFeet
	g.LegThicknessModifier = 1.2
	g.ShellSizeModifier = 0.9
	return g
}

// Balanced returns the all-purpose default genome.
func Balanced(rng *rand.Rand) Genome {
	_ = rng
	return Default()
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
