// Package genome defines the immutable 17-trait genetic descriptor that
// drives every entrant's physical capabilities, plus the derived physics
// stats computed from it. Genomes never mutate during a race; every
// consumer holds them read-only.
package genome

import (
	"fmt"
)

// ShellPattern is the shell pattern trait.
type ShellPattern string

const (
	ShellHex     ShellPattern = "hex"
	ShellSpots   ShellPattern = "spots"
	ShellStripes ShellPattern = "stripes"
	ShellRings   ShellPattern = "rings"
)

// BodyPattern is the body pattern trait.
type BodyPattern string

const (
	BodySolid    BodyPattern = "solid"
	BodyMottled  BodyPattern = "mottled"
	BodySpeckled BodyPattern = "speckled"
	BodyMarbled  BodyPattern = "marbled"
)

// LimbShape is the limb shape trait. It is the single strongest terrain
// discriminator: fins swim, feet climb, flippers sit in between.
type LimbShape string

const (
	LimbFins     LimbShape = "fins"
	LimbFeet     LimbShape = "feet"
	LimbFlippers LimbShape = "flippers"
)

// RGB is a color trait: three 0-255 channels.
type RGB struct {
	R uint8 `yaml:"r" json:"r"`
	G uint8 `yaml:"g" json:"g"`
	B uint8 `yaml:"b" json:"b"`
}

// Genome is the complete trait set for one entrant, grouped as
// shell / body / head / limbs+eyes. Continuous traits carry documented
// bounds; Validate checks them all once at construction time so that no
// per-tick code ever has to re-check.
type Genome struct {
	// Shell
	ShellBaseColor      RGB          `yaml:"shell_base_color" json:"shell_base_color"`
	ShellPatternType    ShellPattern `yaml:"shell_pattern_type" json:"shell_pattern_type"`
	ShellPatternColor   RGB          `yaml:"shell_pattern_color" json:"shell_pattern_color"`
	ShellPatternDensity float64      `yaml:"shell_pattern_density" json:"shell_pattern_density"` // [0.1, 1.0]
	ShellPatternOpacity float64      `yaml:"shell_pattern_opacity" json:"shell_pattern_opacity"` // [0.3, 1.0]
	ShellSizeModifier   float64      `yaml:"shell_size_modifier" json:"shell_size_modifier"`     // [0.5, 1.5]

	// Body
	BodyBaseColor      RGB         `yaml:"body_base_color" json:"body_base_color"`
	BodyPatternType    BodyPattern `yaml:"body_pattern_type" json:"body_pattern_type"`
	BodyPatternColor   RGB         `yaml:"body_pattern_color" json:"body_pattern_color"`
	BodyPatternDensity float64     `yaml:"body_pattern_density" json:"body_pattern_density"` // [0.1, 1.0]

	// Head
	HeadSizeModifier float64 `yaml:"head_size_modifier" json:"head_size_modifier"` // [0.7, 1.3]
	HeadColor        RGB     `yaml:"head_color" json:"head_color"`

	// Limbs
	LegLength            float64   `yaml:"leg_length" json:"leg_length"` // [0.5, 1.5]
	Limbs                LimbShape `yaml:"limb_shape" json:"limb_shape"`
	LegThicknessModifier float64   `yaml:"leg_thickness_modifier" json:"leg_thickness_modifier"` // [0.7, 1.3]
	LegColor             RGB       `yaml:"leg_color" json:"leg_color"`

	// Eyes
	EyeColor        RGB     `yaml:"eye_color" json:"eye_color"`
	EyeSizeModifier float64 `yaml:"eye_size_modifier" json:"eye_size_modifier"` // [0.8, 1.2]
}

// bound describes the closed range for one continuous trait.
type bound struct {
	name string
	min  float64
	max  float64
	get  func(*Genome) float64
}

var continuousBounds = []bound{
	{"shell_pattern_density", 0.1, 1.0, func(g *Genome) float64 { return g.ShellPatternDensity }},
	{"shell_pattern_opacity", 0.3, 1.0, func(g *Genome) float64 { return g.ShellPatternOpacity }},
	{"shell_size_modifier", 0.5, 1.5, func(g *Genome) float64 { return g.ShellSizeModifier }},
	{"body_pattern_density", 0.1, 1.0, func(g *Genome) float64 { return g.BodyPatternDensity }},
	{"head_size_modifier", 0.7, 1.3, func(g *Genome) float64 { return g.HeadSizeModifier }},
	{"leg_length", 0.5, 1.5, func(g *Genome) float64 { return g.LegLength }},
	{"leg_thickness_modifier", 0.7, 1.3, func(g *Genome) float64 { return g.LegThicknessModifier }},
	{"eye_size_modifier", 0.8, 1.2, func(g *Genome) float64 { return g.EyeSizeModifier }},
}

// Validate checks every continuous trait against its declared bound and
// every enum trait against its closed value set. A genome that passes
// Validate once is valid for the lifetime of the race.
func (g *Genome) Validate() error {
	for _, b := range continuousBounds {
		v := b.get(g)
		if v < b.min || v > b.max {
			return fmt.Errorf("genome: %s = %g outside [%g, %g]", b.name, v, b.min, b.max)
		}
	}

	switch g.ShellPatternType {
	case ShellHex, ShellSpots, ShellStripes, ShellRings:
	default:
		return fmt.Errorf("genome: unknown shell_pattern_type %q", g.ShellPatternType)
	}

	switch g.BodyPatternType {
	case BodySolid, BodyMottled, BodySpeckled, BodyMarbled:
	default:
		return fmt.Errorf("genome: unknown body_pattern_type %q", g.BodyPatternType)
	}

	switch g.Limbs {
	case LimbFins, LimbFeet, LimbFlippers:
	default:
		return fmt.Errorf("genome: unknown limb_shape %q", g.Limbs)
	}

	return nil
}

// Default returns the baseline genome: forest-green hex shell, flippers,
// every modifier at its neutral midpoint.
func Default() Genome {
	return Genome{
		ShellBaseColor:      RGB{34, 139, 34},
		ShellPatternType:    ShellHex,
		ShellPatternColor:   RGB{255, 255, 255},
		ShellPatternDensity: 0.5,
		ShellPatternOpacity: 0.8,
		ShellSizeModifier:   1.0,

		BodyBaseColor:      RGB{107, 142, 35},
		BodyPatternType:    BodySolid,
		BodyPatternColor:   RGB{85, 107, 47},
		BodyPatternDensity: 0.3,

		HeadSizeModifier: 1.0,
		HeadColor:        RGB{139, 90, 43},

		LegLength:            1.0,
		Limbs:                LimbFlippers,
		LegThicknessModifier: 1.0,
		LegColor:             RGB{101, 67, 33},

		EyeColor:        RGB{0, 0, 0},
		EyeSizeModifier: 1.0,
	}
}

// SizeClass buckets a continuous modifier into small/normal/large. Terrain
// interaction rules only care about the bucket, not the exact value.
type SizeClass int

const (
	SizeNormal SizeClass = iota
	SizeSmall
	SizeLarge
)

// ShellClass classifies the shell size modifier. Shells above 1.2 count as
// large (sink in mud, clumsy on rock); below 0.8 as small.
func (g *Genome) ShellClass() SizeClass {
	switch {
	case g.ShellSizeModifier > 1.2:
		return SizeLarge
	case g.ShellSizeModifier < 0.8:
		return SizeSmall
	default:
		return SizeNormal
	}
}

// LegClass classifies leg length. Legs above 1.2 count as long (fast on
// grass); below 0.8 as short (stable on sand).
func (g *Genome) LegClass() SizeClass {
	switch {
	case g.LegLength > 1.2:
		return SizeLarge
	case g.LegLength < 0.8:
		return SizeSmall
	default:
		return SizeNormal
	}
}
