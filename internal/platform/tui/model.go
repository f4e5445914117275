package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shell-derby/internal/race"
	"github.com/vovakirdan/shell-derby/internal/storage"
)

// speedSteps are the available playback multipliers: simulation ticks
// advanced per render tick.
var speedSteps = []int{1, 2, 4, 8}

// Model is the Bubble Tea model for watching a race. It owns the
// simulation and advances it from the tick loop; key input only touches
// playback (pause, speed, restart), never race state.
type Model struct {
	cfg      race.Config
	entrants []race.Entrant

	sim    *race.Simulation
	snap   race.Snapshot
	events []race.Event // rolling feed, newest last

	store       *storage.Store
	resultSaved bool
	savedRaceID int64

	keyMapper *KeyMapper
	width     int
	height    int
	paused    bool
	speedIdx  int
	quitting  bool
	err       error
}

// maxEventFeed bounds the rolling event feed shown under the track.
const maxEventFeed = 6

// NewModel creates a new Bubble Tea model for the given race. The store
// may be nil; results are then simply not persisted.
func NewModel(cfg race.Config, entrants []race.Entrant, store *storage.Store) (Model, error) {
	sim, err := race.New(cfg, entrants)
	if err != nil {
		return Model{}, err
	}

	return Model{
		cfg:       cfg,
		entrants:  entrants,
		sim:       sim,
		snap:      sim.Snapshot(),
		store:     store,
		keyMapper: NewKeyMapper(),
		width:     80,
		height:    24,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKey(msg) {
	case WatchActionQuit:
		m.quitting = true
		return m, tea.Quit

	case WatchActionPause:
		m.paused = !m.paused

	case WatchActionSpeedUp:
		if m.speedIdx < len(speedSteps)-1 {
			m.speedIdx++
		}

	case WatchActionSpeedDown:
		if m.speedIdx > 0 {
			m.speedIdx--
		}

	case WatchActionRestart:
		if m.sim.Finished() {
			return m.restart()
		}
	}

	return m, nil
}

// restart builds a fresh race from the same roster. The hazard seed is
// bumped so repeated hazard races do not replay identically.
func (m Model) restart() (tea.Model, tea.Cmd) {
	cfg := m.cfg
	cfg.Seed++
	sim, err := race.New(cfg, m.entrants)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.cfg = cfg
	m.sim = sim
	m.snap = sim.Snapshot()
	m.events = nil
	m.resultSaved = false
	m.savedRaceID = 0
	m.paused = false
	return m, tickCmd(m.cfg.TickRate)
}

// handleTick advances the simulation.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.sim.Finished() {
		m.saveResult()
		// Stop ticking; the final frame stays up until quit or restart.
		return m, nil
	}

	if !m.paused {
		steps := speedSteps[m.speedIdx] * ticksPerFrame(m.cfg.TickRate)
		for i := 0; i < steps && !m.sim.Finished(); i++ {
			snap, events := m.sim.Step()
			m.snap = snap
			m.events = append(m.events, events...)
		}
		if n := len(m.events); n > maxEventFeed {
			m.events = m.events[n-maxEventFeed:]
		}
	}

	return m, tickCmd(m.cfg.TickRate)
}

// saveResult persists the finished race once. Best effort: a storage
// failure is shown but does not interrupt the viewer.
func (m *Model) saveResult() {
	if m.resultSaved || m.store == nil {
		return
	}
	m.resultSaved = true

	res, err := m.sim.Result()
	if err != nil {
		m.err = err
		return
	}
	id, err := m.store.SaveResult(res)
	if err != nil {
		m.err = err
		return
	}
	m.savedRaceID = id
}

// View renders the current race state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return renderRace(&m)
}

// Run starts the Bubble Tea program watching one race. Width and height
// seed the layout until the first resize message arrives.
func Run(cfg race.Config, entrants []race.Entrant, store *storage.Store, width, height int) error {
	model, err := NewModel(cfg, entrants, store)
	if err != nil {
		return err
	}
	model.width = width
	model.height = height

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
