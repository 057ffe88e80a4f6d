package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/giuliopime/crossfade/internal/analysis"
	"github.com/giuliopime/crossfade/internal/models"
	"github.com/giuliopime/crossfade/internal/platform"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HistoryListView ViewState = iota
	DetailView
)

// HistoryBrowser is the persistence surface the TUI reads and mutates.
type HistoryBrowser interface {
	Query(filter string) ([]*models.TrackAnalysis, error)
	Delete(id string) error
}

// Model represents the TUI application state.
type Model struct {
	view     ViewState
	store    HistoryBrowser
	actions  analysis.Actions
	width    int
	height   int
	list     list.Model
	selected *models.TrackAnalysis
	status   string
	err      error
	help     help.Model
	keys     keyMap
}

type historyFetchedMsg struct {
	analyses []*models.TrackAnalysis
	err      error
}

type recordDeletedMsg struct {
	err error
}

type actionDoneMsg struct {
	note string
	err  error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(store HistoryBrowser, actions analysis.Actions) *Model {
	return &Model{
		view:    HistoryListView,
		store:   store,
		actions: actions,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by loading the analysis history.
func (m *Model) Init() tea.Cmd {
	return m.fetchHistory()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.list.Width() == 0 {
			m.list.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case HistoryListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case historyFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.analyses))
		for i, a := range msg.analyses {
			items[i] = analysisItem{analysis: a}
		}
		m.list = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.list.Title = "Analyzed Tracks"
		m.list.SetSize(m.width-4, m.height-8)
		return m, nil

	case recordDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Delete failed: %v", msg.err)
			return m, nil
		}
		m.status = "Deleted"
		m.view = HistoryListView
		m.selected = nil
		return m, m.fetchHistory()

	case actionDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Action failed: %v", msg.err)
		} else {
			m.status = msg.note
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case HistoryListView:
		return m.renderList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list's filter input is active, every key belongs to it.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.list.SelectedItem().(analysisItem); ok {
			m.selected = item.analysis
			m.status = ""
			m.view = DetailView
		}
		return m, nil
	case key.Matches(msg, m.keys.delete):
		if item, ok := m.list.SelectedItem().(analysisItem); ok {
			return m, m.deleteRecord(item.analysis.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = HistoryListView
		m.selected = nil
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.copy):
		if url := primaryURL(m.selected); url != "" {
			return m, m.runAction("Copied link", func() error { return m.actions.Copy(url) })
		}
		m.status = "No link to copy"
		return m, nil
	case key.Matches(msg, m.keys.open):
		if url := primaryURL(m.selected); url != "" {
			return m, m.runAction("Opened in browser", func() error { return m.actions.Open(url) })
		}
		m.status = "No link to open"
		return m, nil
	case key.Matches(msg, m.keys.delete):
		return m, m.deleteRecord(m.selected.ID)
	}
	return m, nil
}

func (m *Model) fetchHistory() tea.Cmd {
	return func() tea.Msg {
		analyses, err := m.store.Query("")
		return historyFetchedMsg{analyses: analyses, err: err}
	}
}

func (m *Model) deleteRecord(id string) tea.Cmd {
	return func() tea.Msg {
		return recordDeletedMsg{err: m.store.Delete(id)}
	}
}

func (m *Model) runAction(note string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{note: note, err: fn()}
	}
}

func (m *Model) renderList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.delete, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	status := ""
	if m.status != "" {
		status = "\n" + styles.warn.Render(m.status)
	}

	return fmt.Sprintf("%s%s\n\n%s", m.list.View(), status, helpView)
}

func (m *Model) renderDetail() string {
	a := m.selected
	if a == nil {
		return ""
	}

	title := styles.title.Render(fmt.Sprintf("%s - %s", a.Title, a.ArtistName))

	info := ""
	if a.AlbumTitle != "" {
		info += fmt.Sprintf("Album: %s\n", a.AlbumTitle)
	}
	if a.ISRC != "" {
		info += fmt.Sprintf("ISRC: %s\n", a.ISRC)
	}
	info += fmt.Sprintf("Analyzed: %s\n", a.DateAnalyzed.Format("2006-01-02 15:04"))

	links := "\n"
	for _, p := range platform.All() {
		if url := a.URLFor(p); url != "" {
			links += fmt.Sprintf("%s %s\n", styles.ok.Render(p.DisplayName()+":"), url)
		} else {
			links += fmt.Sprintf("%s not available\n", styles.help.Render(p.DisplayName()+":"))
		}
	}

	status := ""
	if m.status != "" {
		status = "\n" + styles.warn.Render(m.status)
	}

	helpKeys := []key.Binding{m.keys.copy, m.keys.open, m.keys.delete, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s%s\n\n%s", title, info, links, status, helpView)
}

// primaryURL picks the first available platform link in display order.
func primaryURL(a *models.TrackAnalysis) string {
	if a == nil {
		return ""
	}
	for _, p := range platform.All() {
		if url := a.URLFor(p); url != "" {
			return url
		}
	}
	return ""
}
