// Package tui provides the Bubble Tea integration for the derby.
// It handles the terminal UI loop, input mapping, and race playback.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameRate caps how often frames are drawn. Simulation tick rates
// above the cap are handled by advancing several ticks per frame, so
// playback stays realtime without redrawing faster than a terminal can
// usefully show.
const maxFrameRate = 60

// TickMsg is sent to trigger the next playback frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends frame messages at the
// simulation tick rate, capped at maxFrameRate.
func tickCmd(tickRate int) tea.Cmd {
	rate := tickRate
	if rate <= 0 || rate > maxFrameRate {
		rate = maxFrameRate
	}
	interval := time.Second / time.Duration(rate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ticksPerFrame returns how many simulation ticks each frame advances at
// playback speed 1. One tick per frame until the tick rate exceeds the
// frame cap, then enough ticks to keep up.
func ticksPerFrame(tickRate int) int {
	if tickRate <= maxFrameRate {
		return 1
	}
	return (tickRate + maxFrameRate - 1) / maxFrameRate
}
