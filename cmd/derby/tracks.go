package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shell-derby/internal/terrain"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks [name]",
	Short: "List built-in courses",
	Long: `Without arguments, lists every built-in course. With a course name,
prints its segment layout.

Examples:
  derby tracks
  derby tracks tidal`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTracks,
}

func runTracks(_ *cobra.Command, args []string) {
	if len(args) == 1 {
		printCourse(args[0])
		return
	}

	fmt.Println("Built-in courses:")
	fmt.Println()
	for _, name := range terrain.BuiltinCourseNames() {
		course, err := terrain.BuiltinCourse(name)
		if err != nil {
			continue
		}
		fmt.Printf("  %-10s  %6.0f units, %d segments\n", name, course.Length(), len(course.Segments()))
	}
	fmt.Println()
	fmt.Println("Run 'derby tracks <name>' for the segment layout.")
}

func printCourse(name string) {
	course, err := terrain.BuiltinCourse(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'derby tracks' to see available courses.")
		os.Exit(1)
	}

	fmt.Printf("Course %q - %.0f units\n", name, course.Length())
	fmt.Println()
	fmt.Printf("  %-9s  %-9s  %-7s  %-6s  %s\n", "Start", "End", "Type", "Speed", "Drain")
	fmt.Printf("  %-9s  %-9s  %-7s  %-6s  %s\n", "-----", "---", "----", "-----", "-----")
	for _, seg := range course.Segments() {
		fmt.Printf("  %9.0f  %9.0f  %-7s  %6.2f  %5.2f\n",
			seg.Start, seg.End, seg.Type.String(),
			seg.EffectiveSpeedModifier(), seg.EffectiveEnergyDrain())
	}
}
