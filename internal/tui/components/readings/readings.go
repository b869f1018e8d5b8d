package readings

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ritual/internal/models"
)

type AddReadingMsg struct{}

type DeleteReadingMsg struct {
	ID    string
	Title string
}

type Item struct {
	Log models.ReadingLog
}

func (i Item) Title() string { return i.Log.BookTitle }

func (i Item) Description() string {
	desc := fmt.Sprintf("%s · %d chapter(s)", i.Log.CreatedAt.Local().Format("Jan 2 15:04"), i.Log.ChaptersRead)
	if i.Log.Note != "" {
		desc += " · " + i.Log.Note
	}
	return desc
}

func (i Item) FilterValue() string { return i.Log.BookTitle }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "log reading"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}
	return Model{list: l, keys: keys}
}

// SetLogs shows logs newest first.
func (m *Model) SetLogs(logs []models.ReadingLog) {
	items := make([]list.Item, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		items = append(items, Item{Log: logs[i]})
	}
	m.list.SetItems(items)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddReadingMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteReadingMsg{ID: i.Log.ID, Title: i.Log.BookTitle} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No reading sessions this week.\n  Press 'a' to log one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
