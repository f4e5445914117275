package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// WatchAction is a viewer-level action derived from input. The viewer
// never feeds input into the simulation itself; races run hands-off.
type WatchAction int

const (
	WatchActionNone WatchAction = iota
	WatchActionQuit
	WatchActionPause
	WatchActionRestart
	WatchActionSpeedUp
	WatchActionSpeedDown
)

// KeyMapper translates Bubble Tea key messages to watch actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a watch action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) WatchAction {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return WatchActionQuit
	case " ", "p":
		return WatchActionPause
	case "r":
		return WatchActionRestart
	case "+", "=", "right", "l":
		return WatchActionSpeedUp
	case "-", "left", "h":
		return WatchActionSpeedDown
	}
	return WatchActionNone
}
