package terrain

import (
	"github.com/vovakirdan/shell-derby/internal/genome"
)

// TraitClass is a genome-derived capability class relevant to terrain.
// Each class occupies one bit in a TraitMask.
type TraitClass uint8

const (
	TraitFins TraitClass = iota
	TraitFeet
	TraitFlippers
	TraitLargeShell
	TraitSmallShell
	TraitLongLegs
	TraitShortLegs
)

// TraitMask is the set of trait classes a genome expresses. It is the
// genome half of the interaction table key, so two genomes with the same
// mask interact with terrain identically.
type TraitMask uint8

// Has reports whether the mask contains the given class.
func (m TraitMask) Has(c TraitClass) bool {
	return m&(1<<c) != 0
}

// MaskOf encodes the terrain-relevant classes of a genome: exactly one
// limb class, at most one shell-size class, at most one leg-length class.
func MaskOf(g *genome.Genome) TraitMask {
	var m TraitMask

	switch g.Limbs {
	case genome.LimbFins:
		m |= 1 << TraitFins
	case genome.LimbFeet:
		m |= 1 << TraitFeet
	default:
		m |= 1 << TraitFlippers
	}

	switch g.ShellClass() {
	case genome.SizeLarge:
		m |= 1 << TraitLargeShell
	case genome.SizeSmall:
		m |= 1 << TraitSmallShell
	}

	switch g.LegClass() {
	case genome.SizeLarge:
		m |= 1 << TraitLongLegs
	case genome.SizeSmall:
		m |= 1 << TraitShortLegs
	}

	return m
}

// Modifiers is a multiplicative triple applied to an entrant's movement on
// one terrain type. Identity is {1, 1, 1}.
type Modifiers struct {
	Speed     float64 `json:"speed"`
	Energy    float64 `json:"energy"`
	Stability float64 `json:"stability"`
}

// Identity returns the neutral modifier triple.
func Identity() Modifiers {
	return Modifiers{Speed: 1, Energy: 1, Stability: 1}
}

// traitCase is one row of a terrain's interaction rule: the first case
// whose class the genome expresses wins; otherwise the fallback applies.
type traitCase struct {
	class TraitClass
	mods  Modifiers
}

type interactionRule struct {
	cases    []traitCase
	fallback Modifiers
}

// interactions encodes how trait classes perform on each terrain type.
// Terrain types absent from the table (rough, finish) interact neutrally
// with every genome.
var interactions = map[Type]interactionRule{
	Water: {
		cases: []traitCase{
			{TraitFins, Modifiers{Speed: 1.5, Energy: 0.8, Stability: 1.3}},
			{TraitFlippers, Modifiers{Speed: 1.2, Energy: 0.9, Stability: 1.1}},
		},
		fallback: Modifiers{Speed: 0.6, Energy: 1.4, Stability: 0.7},
	},
	Mud: {
		cases: []traitCase{
			{TraitFeet, Modifiers{Speed: 1.3, Energy: 0.9, Stability: 1.2}},
			{TraitLargeShell, Modifiers{Speed: 0.7, Energy: 1.3, Stability: 0.8}},
		},
		fallback: Modifiers{Speed: 0.8, Energy: 1.1, Stability: 0.9},
	},
	Sand: {
		cases: []traitCase{
			{TraitFeet, Modifiers{Speed: 1.2, Energy: 0.9, Stability: 1.1}},
			{TraitShortLegs, Modifiers{Speed: 1.3, Energy: 0.8, Stability: 1.2}},
		},
		fallback: Modifiers{Speed: 0.9, Energy: 1.1, Stability: 0.9},
	},
	Rock: {
		cases: []traitCase{
			{TraitFeet, Modifiers{Speed: 1.1, Energy: 1.0, Stability: 1.1}},
			{TraitLargeShell, Modifiers{Speed: 0.8, Energy: 1.2, Stability: 0.7}},
		},
		fallback: Modifiers{Speed: 0.9, Energy: 1.1, Stability: 0.8},
	},
	Grass: {
		cases: []traitCase{
			{TraitLongLegs, Modifiers{Speed: 1.1, Energy: 0.9, Stability: 1.0}},
		},
		fallback: Identity(),
	},
	Track: {
		cases: []traitCase{
			{TraitFlippers, Modifiers{Speed: 1.2, Energy: 0.9, Stability: 1.1}},
		},
		fallback: Modifiers{Speed: 1.1, Energy: 0.9, Stability: 1.0},
	},
}

// interaction resolves the genome-side multiplier triple for one terrain
// type. Pure function of (terrain type, trait mask).
func interaction(t Type, mask TraitMask) Modifiers {
	rule, ok := interactions[t]
	if !ok {
		return Identity()
	}
	for _, c := range rule.cases {
		if mask.Has(c.class) {
			return c.mods
		}
	}
	return rule.fallback
}

type memoKey struct {
	terrain Type
	mask    TraitMask
}

// Catalog computes the final per-tick modifier triple for a (terrain,
// genome) pair: the trait interaction composed multiplicatively with the
// terrain's base properties. Results are memoized per catalog instance;
// the cache is a performance optimization only, and scoping it to the
// catalog keeps independent races fully isolated.
type Catalog struct {
	memo map[memoKey]Modifiers
}

// NewCatalog creates an empty catalog. One per race instance.
func NewCatalog() *Catalog {
	return &Catalog{memo: make(map[memoKey]Modifiers)}
}

// Modifiers returns the combined triple for a genome on a terrain type.
// Unknown terrain types yield identity modifiers; the lookup never fails.
func (c *Catalog) Modifiers(t Type, g *genome.Genome) Modifiers {
	return c.ModifiersForMask(t, MaskOf(g))
}

// ModifiersForMask is the mask-keyed variant used on the hot path, where
// the caller has already cached the genome's mask.
func (c *Catalog) ModifiersForMask(t Type, mask TraitMask) Modifiers {
	key := memoKey{terrain: t, mask: mask}
	if m, ok := c.memo[key]; ok {
		return m
	}

	if t >= typeCount {
		m := Identity()
		c.memo[key] = m
		return m
	}

	base := BaseProperties(t)
	inter := interaction(t, mask)
	m := Modifiers{
		Speed:     base.SpeedModifier * inter.Speed,
		Energy:    base.EnergyDrain * inter.Energy,
		Stability: inter.Stability,
	}
	c.memo[key] = m
	return m
}

// CacheSize reports how many (terrain, mask) pairs have been memoized.
func (c *Catalog) CacheSize() int { return len(c.memo) }
