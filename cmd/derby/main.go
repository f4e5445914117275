// derby is a terminal racing simulator: genetically-defined creatures
// race across heterogeneous terrain, live in your terminal or over SSH.
//
// Usage:
//
//	derby run                - Run a race headless and print the result
//	derby watch              - Watch a race live in the terminal
//	derby serve              - Start SSH server for remote spectating
//	derby tracks             - List built-in courses
//	derby roster             - Inspect archetypes and terrain fit
//	derby results            - Show stored race results
//	derby leaderboard        - Career standings across stored races
//
// Global flags:
//
//	--config <path>  - Path to a derby config YAML
//	--seed <value>   - Override the RNG seed (0 = keep config seed)
//	--db <path>      - Results database path (default: ~/.derby/derby.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shell-derby/internal/config"
	"github.com/vovakirdan/shell-derby/internal/race"
)

var (
	// Global flags
	flagConfig string
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "derby",
	Short: "Shell Derby - creature races in your terminal",
	Long: `Shell Derby is a deterministic racing simulator. Each racer is defined
by a genome; terrain on the course rewards or punishes its traits.

Available commands:
  run          - Run a race headless and print the result
  watch        - Watch a race live in the terminal
  serve        - Start SSH server for remote spectating
  tracks       - List built-in courses
  roster       - Inspect archetypes and their terrain fit
  results      - Show stored race results
  leaderboard  - Career standings across stored races

Examples:
  derby watch
  derby run --intensity brutal
  derby run --config ./my-derby.yaml --replay
  derby roster swimmer
  derby results 3`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to derby config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed override (0 = keep config seed)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.derby/derby.db", "Path to results database")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tracksCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(leaderboardCmd)
}

// loadRace loads the derby config and applies the global flag overrides
// shared by run and watch.
func loadRace(intensity string) (race.Config, []race.Entrant, error) {
	derby, err := config.Load(flagConfig)
	if err != nil {
		return race.Config{}, nil, fmt.Errorf("cannot load config: %w", err)
	}

	if intensity != "" {
		preset := config.IntensityPreset(intensity)
		if !config.ValidIntensity(preset) {
			return race.Config{}, nil, fmt.Errorf("unknown intensity %q (want casual, standard or brutal)", intensity)
		}
		config.ApplyIntensityPreset(&derby.Race, preset)
	}
	if flagSeed != 0 {
		derby.Race.Seed = flagSeed
	}

	cfg, entrants, err := derby.Build()
	if err != nil {
		return race.Config{}, nil, fmt.Errorf("invalid race configuration: %w", err)
	}
	return cfg, entrants, nil
}
