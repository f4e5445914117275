package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shell-derby/internal/race"
	"github.com/vovakirdan/shell-derby/internal/storage"
)

var (
	flagRunIntensity string
	flagRunReplay    bool
	flagRunQuiet     bool
	flagRunNoSave    bool
)

// replaySampleTicks is how often the replay sink keeps a snapshot.
const replaySampleTicks = 10

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a race headless and print the result",
	Long: `Run a race without the live view. Race events are logged as they
happen and the final standings are printed when the race ends.

The result is stored in the results database unless --no-save is given.
With --replay, sampled snapshots are stored alongside the result so the
race can be inspected later.

Examples:
  derby run
  derby run --seed 42 --quiet
  derby run --intensity brutal --replay
  derby run --config ./my-derby.yaml --no-save`,
	Run: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagRunIntensity, "intensity", "", "Intensity preset: casual, standard, brutal")
	runCmd.Flags().BoolVar(&flagRunReplay, "replay", false, "Store sampled snapshots for later inspection")
	runCmd.Flags().BoolVar(&flagRunQuiet, "quiet", false, "Suppress per-event logging")
	runCmd.Flags().BoolVar(&flagRunNoSave, "no-save", false, "Do not store the result")
}

func runRun(_ *cobra.Command, _ []string) {
	cfg, entrants, err := loadRace(flagRunIntensity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sim, err := race.New(cfg, entrants)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "derby"})
	if flagRunQuiet {
		logger.SetLevel(log.ErrorLevel)
	}

	var replay []race.Snapshot
	sink := func(snap race.Snapshot, events []race.Event) error {
		for _, ev := range events {
			logEvent(logger, snap.Tick, ev)
		}
		if flagRunReplay && (len(events) > 0 || snap.Tick%replaySampleTicks == 0) {
			replay = append(replay, snap)
		}
		return nil
	}

	res, err := sim.Run(context.Background(), sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running race: %v\n", err)
		os.Exit(1)
	}

	printResult(&res)

	if flagRunNoSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		return
	}
	defer store.Close()

	raceID, err := store.SaveResult(res)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not store result: %v\n", err)
		return
	}
	if flagRunReplay {
		if err := store.SaveReplay(raceID, replay); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not store replay: %v\n", err)
		}
	}
	fmt.Printf("\nStored as race #%d\n", raceID)
}

// logEvent reports one arbiter event through the structured logger.
func logEvent(logger *log.Logger, tick uint64, ev race.Event) {
	switch e := ev.(type) {
	case race.EntrantFinishedEvent:
		logger.Info("finished", "tick", tick, "entrant", e.EntrantID, "rank", e.Rank, "time", fmt.Sprintf("%.1fs", e.RaceTime))
	case race.LeaderChangedEvent:
		logger.Info("new leader", "tick", tick, "entrant", e.NewLeader, "position", fmt.Sprintf("%.0f", e.Position))
	case race.HazardTriggeredEvent:
		logger.Warn("crashed", "tick", tick, "entrant", e.EntrantID, "terrain", e.Terrain.String(), "position", fmt.Sprintf("%.0f", e.Position))
	case race.EnteredRestEvent:
		logger.Info("resting", "tick", tick, "entrant", e.EntrantID)
	case race.ExitedRestEvent:
		logger.Info("recovered", "tick", tick, "entrant", e.EntrantID)
	case race.EnergyWarningEvent:
		if e.Critical {
			logger.Warn("energy critical", "tick", tick, "entrant", e.EntrantID)
		} else {
			logger.Debug("energy low", "tick", tick, "entrant", e.EntrantID)
		}
	case race.RaceFinishedEvent:
		logger.Info("race over", "tick", tick, "reason", string(e.Reason), "winner", e.WinnerID)
	default:
		logger.Debug(ev.Kind(), "tick", tick)
	}
}

// printResult writes the final standings table to stdout.
func printResult(res *race.Result) {
	fmt.Printf("Race result - %s (%s, %.1fs simulated)\n", res.CourseID, res.EndReason, res.CompletedTime)
	fmt.Println()

	fmt.Printf("  %-4s  %-12s  %-8s  %-9s  %-9s  %s\n", "Rank", "Entrant", "Status", "Distance", "Top speed", "Time")
	fmt.Printf("  %-4s  %-12s  %-8s  %-9s  %-9s  %s\n", "----", "-------", "------", "--------", "---------", "----")
	for _, e := range res.Standings {
		rank := "-"
		if e.Rank != 0 {
			rank = fmt.Sprintf("%d", e.Rank)
		}
		raceTime := "-"
		if e.Status == race.StatusFinished {
			raceTime = fmt.Sprintf("%.1fs", e.RaceTime)
		}
		fmt.Printf("  %-4s  %-12s  %-8s  %9.1f  %9.1f  %s\n",
			rank, e.Name, string(e.Status), e.Position, e.TopSpeed, raceTime)
	}

	fmt.Println()
	if res.WinnerID != "" {
		fmt.Printf("Winner: %s\n", res.WinnerID)
	} else {
		fmt.Println("No finisher.")
	}
	if res.AverageFinishTime > 0 {
		fmt.Printf("Average finish time: %.1fs\n", res.AverageFinishTime)
	}
	fmt.Printf("Lead changes: %d, rests: %d, checkpoint passes: %d\n",
		res.Metrics.LeaderChanges, res.Metrics.ExhaustionEvents, res.Metrics.CheckpointPasses)
}
