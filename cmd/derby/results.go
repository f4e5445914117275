package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shell-derby/internal/storage"
)

var flagResultsLimit int

var resultsCmd = &cobra.Command{
	Use:   "results [race-id]",
	Short: "Show stored race results",
	Long: `Without arguments, lists the most recent stored races. With a race
id, prints that race's standings and replay coverage.

Examples:
  derby results
  derby results --limit 20
  derby results 3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Career standings across stored races",
	Long: `Aggregate every stored race into per-entrant career standings:
races entered, wins, podium finishes and best finish time.

Examples:
  derby leaderboard
  derby leaderboard --limit 5`,
	Run: runLeaderboard,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Maximum rows to show")
	leaderboardCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Maximum rows to show")
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runResults(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if len(args) == 1 {
		raceID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: race id must be a number, got %q\n", args[0])
			os.Exit(1)
		}
		printRace(store, raceID)
		return
	}

	races, err := store.RecentRaces(flagResultsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving races: %v\n", err)
		os.Exit(1)
	}

	if len(races) == 0 {
		fmt.Println("No races recorded yet.")
		fmt.Println()
		fmt.Println("Run 'derby run' to race.")
		return
	}

	fmt.Println("Recent races:")
	fmt.Println()
	fmt.Printf("  %-4s  %-10s  %-10s  %-12s  %-8s  %s\n", "ID", "Course", "Reason", "Winner", "Entrants", "Date")
	fmt.Printf("  %-4s  %-10s  %-10s  %-12s  %-8s  %s\n", "--", "------", "------", "------", "--------", "----")
	for _, r := range races {
		winner := r.WinnerID
		if winner == "" {
			winner = "-"
		}
		fmt.Printf("  %-4d  %-10s  %-10s  %-12s  %-8d  %s\n",
			r.ID, r.CourseID, r.EndReason, winner, r.EntrantCount,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Println("Run 'derby results <id>' for full standings.")
}

func printRace(store *storage.Store, raceID int64) {
	rec, err := store.RaceByID(raceID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving race: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "Error: no race with id %d\n", raceID)
		os.Exit(1)
	}

	fmt.Printf("Race #%d - %s (%s, %.1fs simulated, %s)\n",
		rec.ID, rec.CourseID, rec.EndReason, rec.CompletedTime,
		rec.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Println()

	standings, err := store.Standings(raceID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving standings: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-9s  %s\n", "Rank", "Entrant", "Status", "Distance", "Time")
	fmt.Printf("  %-4s  %-12s  %-8s  %-9s  %s\n", "----", "-------", "------", "--------", "----")
	for _, s := range standings {
		rank := "-"
		if s.Rank != 0 {
			rank = strconv.Itoa(s.Rank)
		}
		raceTime := "-"
		if s.Status == "finished" {
			raceTime = fmt.Sprintf("%.1fs", s.RaceTime)
		}
		fmt.Printf("  %-4s  %-12s  %-8s  %9.1f  %s\n", rank, s.Name, s.Status, s.Position, raceTime)
	}

	ticks, err := store.ReplayTickCount(raceID)
	if err == nil && ticks > 0 {
		fmt.Println()
		fmt.Printf("Replay: %d stored snapshots\n", ticks)
	}
}

func runLeaderboard(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	entries, err := store.Leaderboard(flagResultsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving leaderboard: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No races recorded yet.")
		return
	}

	fmt.Println("Career leaderboard:")
	fmt.Println()
	fmt.Printf("  %-4s  %-12s  %-6s  %-5s  %-8s  %s\n", "Rank", "Entrant", "Races", "Wins", "Podiums", "Best time")
	fmt.Printf("  %-4s  %-12s  %-6s  %-5s  %-8s  %s\n", "----", "-------", "-----", "----", "-------", "---------")
	for i, e := range entries {
		bestTime := "-"
		if e.BestTime > 0 {
			bestTime = fmt.Sprintf("%.1fs", e.BestTime)
		}
		fmt.Printf("  %-4d  %-12s  %-6d  %-5d  %-8d  %s\n",
			i+1, e.EntrantID, e.Races, e.Wins, e.Podiums, bestTime)
	}
}
