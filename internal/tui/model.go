package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/tracker"
	"github.com/julianstephens/ritual/internal/tui/components/history"
	"github.com/julianstephens/ritual/internal/tui/components/readings"
	"github.com/julianstephens/ritual/internal/tui/components/today"
)

// readingWindowDays is how far back the Readings tab lists sessions.
const readingWindowDays = 7

type ReadingFormModel struct {
	Title    string
	Chapters string
	Note     string
}

type Model struct {
	tracker       *tracker.Tracker
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	todayModel    today.Model
	historyModel  history.Model
	readingsModel readings.Model
	form          *huh.Form
	readingForm   *ReadingFormModel
	interval      time.Duration
	// tickID invalidates ticks scheduled before the Today view was last left.
	tickID int
	// historyReq tags history reloads; only the newest response is applied.
	historyReq      int
	pendingDeleteID string
	pendingTitle    string
	status          string
	err             error
	quitting        bool
	width           int
	height          int
}

func NewModel(t *tracker.Tracker) Model {
	interval := time.Duration(constants.DefaultTickIntervalSec) * time.Second
	if settings, err := t.Settings(); err == nil {
		interval = time.Duration(settings.TickIntervalSec) * time.Second
	}
	prof := t.Profile()

	return Model{
		tracker:       t,
		state:         constants.StateToday,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		todayModel:    today.New(prof.Morning, prof.Evening, 0, 0),
		historyModel:  history.New(),
		readingsModel: readings.New(0, 0),
		interval:      interval,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSnapshot(), m.scheduleTick())
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateToday:
		keys = append(keys, m.keys.Toggle, m.keys.Victory, m.keys.Meeting)
	case constants.StateHistory:
		keys = append(keys, m.keys.Refresh)
	case constants.StateReadings:
		keys = append(keys, m.keys.Add, m.keys.Delete)
	case constants.StateConfirmDelete:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case constants.StateToday:
		actions = []key.Binding{m.keys.Toggle, m.keys.Victory, m.keys.Meeting}
	case constants.StateReadings:
		actions = []key.Binding{m.keys.Add, m.keys.Delete}
	}
	return [][]key.Binding{global, navigation, actions}
}
