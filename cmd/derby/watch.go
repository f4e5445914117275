package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shell-derby/internal/platform/tui"
	"github.com/vovakirdan/shell-derby/internal/storage"
)

var flagWatchIntensity string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a race live in the terminal",
	Long: `Run a race and watch it live. The race is fully deterministic; input
only controls playback, never the outcome.

Controls:
  Space/P    - Pause
  +/- or h/l - Playback speed
  R          - Restart with a fresh seed (after the race ends)
  Q/Ctrl+C   - Quit

Examples:
  derby watch
  derby watch --intensity brutal
  derby watch --config ./my-derby.yaml --seed 42`,
	Run: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchIntensity, "intensity", "", "Intensity preset: casual, standard, brutal")
}

func runWatch(_ *cobra.Command, _ []string) {
	cfg, entrants, err := loadRace(flagWatchIntensity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size early; resize messages take over from there.
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - the race still runs
		store = nil
	}

	runErr := tui.Run(cfg, entrants, store, width, height)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running race: %v\n", runErr)
		os.Exit(1)
	}
}
