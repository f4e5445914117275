package roster

import (
	"github.com/vovakirdan/shell-derby/internal/genome"
)

func init() {
	Register("wild", "randomized traits across the full wild range", genome.Random)
	Register("swimmer", "fins and long limbs, built for water", genome.Swimmer)
	Register("climber", "feet and sturdy legs, built for rock and sand", genome.Climber)
	Register("balanced", "the all-purpose baseline genome", genome.Balanced)
}
