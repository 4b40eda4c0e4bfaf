// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Provides interactive full-screen interface for CRM operations
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"crmdeck/store"
	"crmdeck/theme"
)

// ViewMode represents the current TUI view.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewBoard
	ViewDashboard
)

// EntityType represents the type of entity being viewed.
type EntityType int

const (
	EntityContacts EntityType = iota
	EntityLeads
	EntityDeals
	EntityTasks
)

const entityTypeCount = 4

// Model is the main bubbletea model.
type Model struct {
	entities *store.EntityStore
	themes   *store.ThemeStore
	session  *store.SessionStore

	viewMode   ViewMode
	entityType EntityType
	th         theme.Theme

	// List view state
	selectedRow int
	searchInput textinput.Model
	searching   bool

	// Board view state
	boardCol int
	boardRow int

	// UI state
	width  int
	height int
	status string
}

// NewModel creates a new TUI model.
func NewModel(entities *store.EntityStore, themes *store.ThemeStore, session *store.SessionStore) Model {
	search := textinput.New()
	search.Placeholder = "search"
	search.CharLimit = 64

	return Model{
		entities:    entities,
		themes:      themes,
		session:     session,
		viewMode:    ViewList,
		entityType:  EntityContacts,
		th:          theme.ForDark(themes.IsDark()),
		searchInput: search,
		width:       80,
		height:      24,
	}
}

// Run starts the interactive program.
func Run(entities *store.EntityStore, themes *store.ThemeStore, session *store.SessionStore) error {
	p := tea.NewProgram(NewModel(entities, themes, session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewBoard:
		return m.renderBoardView()
	case ViewDashboard:
		return m.renderDashboardView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search input captures everything except escape/enter while active.
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.searchInput.SetValue("")
			m.searchInput.Blur()
			return m, nil
		case "enter":
			m.searching = false
			m.searchInput.Blur()
			m.selectedRow = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "t":
		if err := m.themes.Toggle(); err != nil {
			m.status = "theme toggle failed: " + err.Error()
		} else {
			m.th = theme.ForDark(m.themes.IsDark())
		}
		return m, nil
	case "b":
		m.viewMode = ViewBoard
		return m, nil
	case "d":
		m.viewMode = ViewDashboard
		return m, nil
	case "l", "esc":
		m.viewMode = ViewList
		return m, nil
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewBoard:
		return m.handleBoardKeys(msg)
	}
	return m, nil
}
