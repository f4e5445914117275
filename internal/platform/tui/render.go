package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shell-derby/internal/race"
	"github.com/vovakirdan/shell-derby/internal/terrain"
)

// terrainStyles maps terrain types to lipgloss styles for the track strip.
var terrainStyles = map[terrain.Type]lipgloss.Style{
	terrain.Grass:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	terrain.Mud:    lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	terrain.Water:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	terrain.Sand:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	terrain.Rock:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	terrain.Rough:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	terrain.Track:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	terrain.Finish: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
}

// terrainRunes gives each terrain type a distinct strip character so the
// track reads even without color.
var terrainRunes = map[terrain.Type]rune{
	terrain.Grass:  '.',
	terrain.Mud:    '~',
	terrain.Water:  '≈',
	terrain.Sand:   ':',
	terrain.Rock:   '^',
	terrain.Rough:  '#',
	terrain.Track:  '-',
	terrain.Finish: '|',
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	restingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	crashedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	finishedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// statusBadges are the fixed-width markers shown next to each lane.
var statusBadges = map[race.Status]string{
	race.StatusRacing:   dimStyle.Render("  >>  "),
	race.StatusResting:  restingStyle.Render(" rest "),
	race.StatusFinished: finishedStyle.Render(" done "),
	race.StatusCrashed:  crashedStyle.Render("crash "),
}

// energyBarWidth is the width of each entrant's energy gauge.
const energyBarWidth = 16

// energyBar renders an entrant's energy fraction. The bar is stateless;
// ViewAs draws directly from the fraction each frame.
var energyBar = func() progress.Model {
	p := progress.New(
		progress.WithGradient("#d75f5f", "#5fd75f"),
		progress.WithoutPercentage(),
	)
	p.Width = energyBarWidth
	return p
}()

// renderRace draws the full watch view for the model's current snapshot.
func renderRace(m *Model) string {
	var sb strings.Builder

	snap := &m.snap
	trackWidth := m.width - 30
	if trackWidth < 20 {
		trackWidth = 20
	}
	if trackWidth > 100 {
		trackWidth = 100
	}

	sb.WriteString(renderHeader(m, snap))
	sb.WriteString("\n\n")
	sb.WriteString(renderTrack(m, snap, trackWidth))
	sb.WriteString("\n")
	sb.WriteString(renderLeaderboard(snap))

	if len(m.events) > 0 {
		sb.WriteString("\n")
		sb.WriteString(renderEvents(m.events))
	}

	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(errStyle.Render("error: " + m.err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(renderFooter(m, snap))
	return sb.String()
}

func renderHeader(m *Model, snap *race.Snapshot) string {
	title := titleStyle.Render(fmt.Sprintf(" Shell Derby — %s ", snap.CourseID))

	status := fmt.Sprintf("tick %d  %.1fs  %.0f units  speed x%d",
		snap.Tick, snap.ElapsedMS/1000, snap.TrackLength, speedSteps[m.speedIdx])
	if m.paused {
		status += "  [paused]"
	}
	return title + "\n" + dimStyle.Render(status)
}

// renderTrack draws one lane per entrant: a terrain-colored strip with the
// entrant's marker at its scaled position, plus energy and status.
func renderTrack(m *Model, snap *race.Snapshot, trackWidth int) string {
	strip := terrainStrip(m.sim.Course(), trackWidth)

	var sb strings.Builder
	for i := range snap.Entrants {
		e := &snap.Entrants[i]

		pos := int(e.Position / snap.TrackLength * float64(trackWidth-1))
		if pos >= trackWidth {
			pos = trackWidth - 1
		}

		sb.WriteString(nameStyle.Render(fmt.Sprintf("%-10s", truncate(e.Name, 10))))
		sb.WriteByte(' ')
		for x, cell := range strip {
			if x == pos {
				sb.WriteString(markerFor(e))
			} else {
				sb.WriteString(cell)
			}
		}
		sb.WriteByte(' ')
		sb.WriteString(energyBar.ViewAs(e.EnergyFraction()))
		sb.WriteString(statusBadges[e.Status])
		sb.WriteByte('\n')
	}
	return sb.String()
}

// terrainStrip pre-renders the course as one styled cell per column.
func terrainStrip(course *terrain.Course, width int) []string {
	cells := make([]string, width)
	length := course.Length()
	for x := range cells {
		seg := course.At(float64(x) / float64(width-1) * length)
		style, ok := terrainStyles[seg.Type]
		if !ok {
			style = dimStyle
		}
		r, ok := terrainRunes[seg.Type]
		if !ok {
			r = '?'
		}
		cells[x] = style.Render(string(r))
	}
	return cells
}

func markerFor(e *race.EntrantState) string {
	switch e.Status {
	case race.StatusCrashed:
		return crashedStyle.Render("x")
	case race.StatusFinished:
		return finishedStyle.Render("@")
	case race.StatusResting:
		return restingStyle.Render("z")
	default:
		return titleStyle.Render("@")
	}
}

// renderLeaderboard shows the standings in snapshot order: ranked
// finishers first, then by distance.
func renderLeaderboard(snap *race.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Standings"))
	sb.WriteByte('\n')

	for i, id := range snap.Leaderboard() {
		e, ok := snap.Entrant(id)
		if !ok {
			continue
		}
		line := fmt.Sprintf("%2d. %-10s %7.1f  %5.1f u/s",
			i+1, truncate(e.Name, 10), e.Position, e.Velocity)
		if e.Rank != 0 {
			line += fmt.Sprintf("  finished %.1fs", e.RaceTime)
		}
		if e.ID == snap.WinnerID && snap.WinnerID != "" {
			sb.WriteString(finishedStyle.Render(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// renderEvents shows the rolling feed of recent arbiter events.
func renderEvents(events []race.Event) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Events"))
	sb.WriteByte('\n')
	for _, ev := range events {
		sb.WriteString(dimStyle.Render("  " + describeEvent(ev)))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// describeEvent turns an arbiter event into a one-line feed entry.
func describeEvent(ev race.Event) string {
	switch e := ev.(type) {
	case race.EntrantFinishedEvent:
		return fmt.Sprintf("%s finished #%d in %.1fs", e.EntrantID, e.Rank, e.RaceTime)
	case race.LeaderChangedEvent:
		if e.OldLeader == "" {
			return fmt.Sprintf("%s takes the lead", e.NewLeader)
		}
		return fmt.Sprintf("%s overtakes %s at %.0f", e.NewLeader, e.OldLeader, e.Position)
	case race.EnteredRestEvent:
		return fmt.Sprintf("%s stops to rest", e.EntrantID)
	case race.ExitedRestEvent:
		return fmt.Sprintf("%s back in the race", e.EntrantID)
	case race.EnergyDepletedEvent:
		return fmt.Sprintf("%s is out of energy", e.EntrantID)
	case race.EnergyWarningEvent:
		if e.Critical {
			return fmt.Sprintf("%s critically low on energy", e.EntrantID)
		}
		return fmt.Sprintf("%s running low on energy", e.EntrantID)
	case race.HazardTriggeredEvent:
		return fmt.Sprintf("%s crashes on %s at %.0f", e.EntrantID, e.Terrain, e.Position)
	case race.CheckpointPassedEvent:
		return fmt.Sprintf("%s passes checkpoint %d", e.EntrantID, e.Index)
	case race.RaceFinishedEvent:
		if e.WinnerID == "" {
			return fmt.Sprintf("race over (%s), no finisher", e.Reason)
		}
		return fmt.Sprintf("race over, %s wins", e.WinnerID)
	default:
		return ev.Kind()
	}
}

func renderFooter(m *Model, snap *race.Snapshot) string {
	if snap.Finished {
		saved := ""
		if m.savedRaceID != 0 {
			saved = fmt.Sprintf("  saved as race #%d", m.savedRaceID)
		}
		return dimStyle.Render("race finished" + saved + "  •  r restart  •  q quit")
	}
	return dimStyle.Render("space pause  •  +/- speed  •  q quit")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
