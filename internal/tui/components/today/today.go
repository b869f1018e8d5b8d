// Package today renders the dashboard's main view: greeting, victory window
// and the two habit stacks as one checklist.
package today

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ritual/internal/daystatus"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/tracker"
)

var (
	greetingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	windowBoxStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(44)

	openStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	closedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	claimedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

type ToggleHabitMsg struct {
	ID string
}

// Item is one habit row in the checklist.
type Item struct {
	Habit   models.Habit
	Stack   models.Stack
	Checked bool
}

func (i Item) Title() string {
	if i.Checked {
		return "✓ " + i.Habit.Label
	}
	return "○ " + i.Habit.Label
}

func (i Item) Description() string { return string(i.Stack) }

func (i Item) FilterValue() string { return i.Habit.Label }

type Model struct {
	list    list.Model
	toggle  key.Binding
	snap    tracker.Snapshot
	loaded  bool
	morning []models.Habit
	evening []models.Habit
}

func New(morning, evening []models.Habit, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)

	return Model{
		list:    l,
		toggle:  key.NewBinding(key.WithKeys(" ", "enter")),
		morning: morning,
		evening: evening,
	}
}

// SetSnapshot replaces the displayed state, keeping the cursor in place.
func (m *Model) SetSnapshot(snap tracker.Snapshot) {
	m.snap = snap
	m.loaded = true

	checked := make(map[string]bool, len(snap.Checks))
	for _, c := range snap.Checks {
		checked[string(c.Stack)+"/"+c.HabitID] = true
	}
	var items []list.Item
	for _, s := range []struct {
		stack  models.Stack
		habits []models.Habit
	}{
		{models.StackMorning, m.morning},
		{models.StackEvening, m.evening},
	} {
		for _, h := range s.habits {
			items = append(items, Item{Habit: h, Stack: s.stack, Checked: checked[string(s.stack)+"/"+h.ID]})
		}
	}
	m.list.SetItems(items)
}

// MarkOptimistic flips the displayed check before the store confirms it and
// re-derives the header's progress and rating from the local checks.
func (m *Model) MarkOptimistic(id string) {
	for i, it := range m.list.Items() {
		item, ok := it.(Item)
		if !ok || item.Habit.ID != id {
			continue
		}
		item.Checked = !item.Checked
		m.list.SetItem(i, item)

		m.snap.Checks, _ = daystatus.ToggleCheck(m.snap.Checks, models.HabitCheck{
			Date: m.snap.Day, HabitID: id, Stack: item.Stack, CheckedAt: m.snap.Now,
		})
		m.snap.MorningProgress = daystatus.Progress(models.StackMorning, m.morning, m.snap.Checks)
		m.snap.EveningProgress = daystatus.Progress(models.StackEvening, m.evening, m.snap.Checks)
		complete := daystatus.StackComplete(item.Stack, m.stack(item.Stack), m.snap.Checks)
		m.snap.Record = daystatus.Apply(m.snap.Record, daystatus.SetStackComplete(item.Stack, complete)).Next
		return
	}
}

func (m Model) stack(s models.Stack) []models.Habit {
	if s == models.StackEvening {
		return m.evening
	}
	return m.morning
}

func (m Model) Snapshot() tracker.Snapshot {
	return m.snap
}

func (m Model) Items() []list.Item {
	return m.list.Items()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.toggle) {
		if i, ok := m.list.SelectedItem().(Item); ok {
			m.MarkOptimistic(i.Habit.ID)
			return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) header() string {
	s := m.snap
	var b strings.Builder
	b.WriteString(greetingStyle.Render(s.Greeting))
	b.WriteString("  ")
	b.WriteString(clockStyle.Render(s.Now.Format("Mon Jan 2 15:04")))
	b.WriteString("\n\n")

	mode := "primary window"
	if s.Record.MeetingMode {
		mode = "meeting mode (fallback window)"
	}
	var status string
	switch {
	case s.Record.WakeUpCompleted:
		status = claimedStyle.Render("Victory claimed ✓")
	case s.Result.InWindow:
		status = openStyle.Render("Window open, press v to claim")
	default:
		status = closedStyle.Render("Opens in " + s.Countdown.String())
	}
	b.WriteString(windowBoxStyle.Render(fmt.Sprintf("%s  %s\n%s", s.Window, mode, status)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Morning %3d%%   Evening %3d%%   Reading %d   Today: %s\n",
		s.MorningProgress, s.EveningProgress, len(s.Readings), s.Record.Rating))
	return b.String()
}

func (m Model) View() string {
	if !m.loaded {
		return "Loading..."
	}
	if len(m.list.Items()) == 0 {
		return m.header() + "\n  No habits configured. Edit your profile to add some."
	}
	return m.header() + "\n" + m.list.View()
}

// SetSize leaves room above the list for the header.
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, max(height-8, 3))
}
