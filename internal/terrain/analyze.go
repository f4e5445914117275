package terrain

import (
	"fmt"
	"math"

	"github.com/vovakirdan/shell-derby/internal/genome"
)

// TerrainRating is the analysis verdict for one terrain type.
type TerrainRating struct {
	Type      Type      `json:"type"`
	Bonus     float64   `json:"bonus"` // combined multiplier; 1.0 is neutral
	Modifiers Modifiers `json:"modifiers"`
}

// Analysis partitions every terrain type for a genome into exactly one of
// advantage, disadvantage or neutral. Consumed by breeding and roster
// tooling, not by the simulation loop.
type Analysis struct {
	Advantages     []TerrainRating `json:"advantages"`
	Disadvantages  []TerrainRating `json:"disadvantages"`
	Neutral        []Type          `json:"neutral"`
	Specialization string          `json:"specialization"`
}

// Advantage/disadvantage cutoffs on the combined bonus.
const (
	advantageCutoff    = 1.1
	disadvantageCutoff = 0.9
)

// Analyze rates every terrain type for the genome. The combined bonus
// rewards speed and stability and penalizes energy drain:
// speed / energy * stability.
func (c *Catalog) Analyze(g *genome.Genome) Analysis {
	mask := MaskOf(g)
	var a Analysis

	for _, t := range Types() {
		m := c.ModifiersForMask(t, mask)
		bonus := m.Speed / m.Energy * m.Stability

		rating := TerrainRating{Type: t, Bonus: bonus, Modifiers: m}
		switch {
		case bonus > advantageCutoff:
			a.Advantages = append(a.Advantages, rating)
		case bonus < disadvantageCutoff:
			a.Disadvantages = append(a.Disadvantages, rating)
		default:
			a.Neutral = append(a.Neutral, t)
		}
	}

	a.Specialization = specialization(a.Advantages, a.Disadvantages)
	return a
}

// specialization summarizes the partition as a roster-facing label.
func specialization(adv, dis []TerrainRating) string {
	switch {
	case len(adv) >= 3:
		return "specialized (multiple terrains)"
	case len(adv) == 2:
		return "specialized (dual terrain)"
	case len(adv) == 1:
		return fmt.Sprintf("specialized (%s)", adv[0].Type)
	case len(dis) >= 2:
		return "struggler"
	default:
		return "balanced"
	}
}

// BestTerrain returns the terrain type with the highest combined bonus
// for the genome.
func (c *Catalog) BestTerrain(g *genome.Genome) (Type, float64) {
	mask := MaskOf(g)
	best := Grass
	bestBonus := math.Inf(-1)
	for _, t := range Types() {
		m := c.ModifiersForMask(t, mask)
		bonus := m.Speed / m.Energy * m.Stability
		if bonus > bestBonus {
			best, bestBonus = t, bonus
		}
	}
	return best, bestBonus
}
