package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shell-derby/internal/genome"
	"github.com/vovakirdan/shell-derby/internal/roster"
	"github.com/vovakirdan/shell-derby/internal/terrain"
)

var rosterCmd = &cobra.Command{
	Use:   "roster [archetype]",
	Short: "Inspect archetypes and their terrain fit",
	Long: `Without arguments, lists every registered archetype. With an
archetype id, generates a genome from it and prints its derived stats
and terrain analysis.

The --seed flag makes the generated genome reproducible.

Examples:
  derby roster
  derby roster swimmer
  derby roster wild --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRoster,
}

func runRoster(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		listArchetypes()
		return
	}

	id := args[0]
	if !roster.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown archetype %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'derby roster' to see available archetypes.")
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //#nosec G404 -- genome generation, not crypto

	g, err := roster.Create(id, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printGenomeReport(id, seed, &g)
}

func listArchetypes() {
	archetypes := roster.List()

	fmt.Println("Available archetypes:")
	fmt.Println()

	maxIDLen := 2
	for _, a := range archetypes {
		if len(a.ID) > maxIDLen {
			maxIDLen = len(a.ID)
		}
	}
	for _, a := range archetypes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, a.ID, a.Description)
	}

	fmt.Println()
	fmt.Println("Run 'derby roster <id>' for stats and terrain fit.")
}

func printGenomeReport(id string, seed int64, g *genome.Genome) {
	stats := genome.Derive(g)
	catalog := terrain.NewCatalog()
	analysis := catalog.Analyze(g)

	fmt.Printf("Archetype %q (seed %d)\n", id, seed)
	fmt.Println()
	fmt.Printf("  Limbs: %s, legs %.2f (thickness %.2f), shell %.2f\n",
		g.Limbs, g.LegLength, g.LegThicknessModifier, g.ShellSizeModifier)
	fmt.Printf("  Speed ratio: %.2f   Energy efficiency: %.2f\n",
		stats.SpeedRatio, stats.EnergyEfficiency)
	fmt.Printf("  Specialization: %s\n", analysis.Specialization)
	fmt.Println()

	if len(analysis.Advantages) > 0 {
		fmt.Println("  Strong terrain:")
		for _, r := range analysis.Advantages {
			fmt.Printf("    %-7s  bonus %.2f (speed %.2f, drain %.2f, stability %.2f)\n",
				r.Type.String(), r.Bonus, r.Modifiers.Speed, r.Modifiers.Energy, r.Modifiers.Stability)
		}
	}
	if len(analysis.Disadvantages) > 0 {
		fmt.Println("  Weak terrain:")
		for _, r := range analysis.Disadvantages {
			fmt.Printf("    %-7s  bonus %.2f (speed %.2f, drain %.2f, stability %.2f)\n",
				r.Type.String(), r.Bonus, r.Modifiers.Speed, r.Modifiers.Energy, r.Modifiers.Stability)
		}
	}
	if len(analysis.Neutral) > 0 {
		fmt.Print("  Neutral: ")
		for i, t := range analysis.Neutral {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(t.String())
		}
		fmt.Println()
	}

	best, bonus := catalog.BestTerrain(g)
	fmt.Println()
	fmt.Printf("  Best terrain: %s (%.2f)\n", best.String(), bonus)
}
