package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/daystatus"
	"github.com/julianstephens/ritual/internal/logger"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/tracker"
	"github.com/julianstephens/ritual/internal/tui/components/readings"
	"github.com/julianstephens/ritual/internal/tui/components/today"
)

type tickMsg struct {
	id int
	at time.Time
}

type snapshotMsg struct {
	snap tracker.Snapshot
	err  error
}

type historyMsg struct {
	req     int
	records []models.DayRecord
	today   string
	streak  int
	err     error
}

type readingsMsg struct {
	logs []models.ReadingLog
	err  error
}

// actionMsg reports the result of a write. The dashboard reloads afterwards
// whether or not the write succeeded.
type actionMsg struct {
	status string
	err    error
}

var tabs = []constants.SessionState{constants.StateToday, constants.StateHistory, constants.StateReadings}

func (m Model) scheduleTick() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg{id: id, at: t}
	})
}

func (m Model) loadSnapshot() tea.Cmd {
	t := m.tracker
	return func() tea.Msg {
		snap, err := t.Snapshot()
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m *Model) loadHistory() tea.Cmd {
	m.historyReq++
	req, t := m.historyReq, m.tracker
	return func() tea.Msg {
		records, now, err := t.History(0)
		if err != nil {
			return historyMsg{req: req, err: err}
		}
		day := now.Format(constants.DateFormat)
		return historyMsg{req: req, records: records, today: day, streak: tracker.CurrentStreak(records, day)}
	}
}

func (m Model) loadReadings() tea.Cmd {
	t := m.tracker
	return func() tea.Msg {
		logs, err := t.Readings(readingWindowDays)
		return readingsMsg{logs: logs, err: err}
	}
}

// switchTo changes the visible tab. Leaving Today stops its tick; coming
// back starts a fresh one.
func (m *Model) switchTo(s constants.SessionState) tea.Cmd {
	m.tickID++
	m.state = s
	m.status = ""
	switch s {
	case constants.StateToday:
		return tea.Batch(m.loadSnapshot(), m.scheduleTick())
	case constants.StateHistory:
		return m.loadHistory()
	case constants.StateReadings:
		return m.loadReadings()
	}
	return nil
}

func (m *Model) cycle(step int) tea.Cmd {
	for i, s := range tabs {
		if s == m.state {
			return m.switchTo(tabs[(i+step+len(tabs))%len(tabs)])
		}
	}
	return nil
}

func (m Model) refresh() tea.Cmd {
	switch m.state {
	case constants.StateReadings:
		return tea.Batch(m.loadSnapshot(), m.loadReadings())
	default:
		return m.loadSnapshot()
	}
}

func (m Model) toggleHabit(id string) tea.Cmd {
	t := m.tracker
	return func() tea.Msg {
		out, checked, err := t.ToggleHabit(id)
		if err != nil {
			if out.ReloadErr != nil {
				err = errors.Join(err, out.ReloadErr)
			}
			return actionMsg{err: err}
		}
		if checked {
			return actionMsg{status: "Checked " + id}
		}
		return actionMsg{status: "Unchecked " + id}
	}
}

func (m Model) claimVictory() tea.Cmd {
	t := m.tracker
	return func() tea.Msg {
		_, _, err := t.ClaimVictory()
		switch {
		case errors.Is(err, daystatus.ErrAlreadyClaimed):
			return actionMsg{status: "Victory already claimed today"}
		case errors.Is(err, daystatus.ErrOutsideWindow):
			return actionMsg{status: "The window is closed"}
		case err != nil:
			return actionMsg{err: err}
		}
		return actionMsg{status: "Victory claimed!"}
	}
}

func (m Model) toggleMeeting() tea.Cmd {
	t, on := m.tracker, !m.todayModel.Snapshot().Record.MeetingMode
	return func() tea.Msg {
		if _, err := t.SetMeetingMode(on); err != nil {
			return actionMsg{err: err}
		}
		if on {
			return actionMsg{status: "Meeting mode on"}
		}
		return actionMsg{status: "Meeting mode off"}
	}
}

func (m Model) deleteReading(id string) tea.Cmd {
	t := m.tracker
	return func() tea.Msg {
		if err := t.DeleteReading(id); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "Reading session deleted"}
	}
}

func (m Model) addReading(f ReadingFormModel) tea.Cmd {
	t := m.tracker
	return func() tea.Msg {
		chapters, _ := strconv.Atoi(strings.TrimSpace(f.Chapters))
		l, err := t.AddReading(strings.TrimSpace(f.Title), chapters, strings.TrimSpace(f.Note))
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: fmt.Sprintf("Logged %s", l.BookTitle)}
	}
}

func (m *Model) openReadingForm() tea.Cmd {
	m.readingForm = &ReadingFormModel{Chapters: "1"}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Book").
				Value(&m.readingForm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("book title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Chapters").
				Value(&m.readingForm.Chapters).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return errors.New("enter a whole number")
					}
					return nil
				}),
			huh.NewText().
				Title("Note").
				Value(&m.readingForm.Note),
		),
	)
	m.previousState = m.state
	m.state = constants.StateAddReading
	return m.form.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == constants.StateAddReading {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		h, v := frameStyle.GetFrameSize()
		contentHeight := msg.Height - v - 5
		m.todayModel.SetSize(msg.Width-h, contentHeight)
		m.readingsModel.SetSize(msg.Width-h, contentHeight)
		return m, nil

	case tickMsg:
		if msg.id != m.tickID || m.state != constants.StateToday {
			return m, nil
		}
		return m, tea.Batch(m.loadSnapshot(), m.scheduleTick())

	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.todayModel.SetSnapshot(msg.snap)
		return m, nil

	case historyMsg:
		if msg.req != m.historyReq {
			return m, nil
		}
		if msg.err != nil {
			m.historyModel.SetError(msg.err)
			return m, nil
		}
		m.historyModel.SetRecords(msg.records, msg.today, msg.streak)
		return m, nil

	case readingsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.readingsModel.SetLogs(msg.logs)
		return m, nil

	case actionMsg:
		m.status, m.err = msg.status, msg.err
		if msg.err != nil {
			logger.Warn("Dashboard action failed", "error", msg.err)
		}
		return m, m.refresh()

	case today.ToggleHabitMsg:
		return m, m.toggleHabit(msg.ID)

	case readings.AddReadingMsg:
		return m, m.openReadingForm()

	case readings.DeleteReadingMsg:
		m.pendingDeleteID, m.pendingTitle = msg.ID, msg.Title
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		if m.state == constants.StateConfirmDelete {
			return m.updateConfirm(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			return m, m.cycle(1)
		case key.Matches(msg, m.keys.ShiftTab):
			return m, m.cycle(-1)
		case key.Matches(msg, m.keys.Refresh):
			if m.state == constants.StateHistory {
				return m, m.loadHistory()
			}
			return m, m.refresh()
		}
		if m.state == constants.StateToday {
			switch {
			case key.Matches(msg, m.keys.Victory):
				return m, m.claimVictory()
			case key.Matches(msg, m.keys.Meeting):
				return m, m.toggleMeeting()
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case constants.StateReadings:
		m.readingsModel, cmd = m.readingsModel.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		f := *m.readingForm
		m.form, m.readingForm = nil, nil
		return m, m.addReading(f)
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		id := m.pendingDeleteID
		m.state = m.previousState
		m.pendingDeleteID, m.pendingTitle = "", ""
		return m, m.deleteReading(id)
	case key.Matches(msg, m.keys.Cancel):
		m.state = m.previousState
		m.pendingDeleteID, m.pendingTitle = "", ""
	}
	return m, nil
}
