// ABOUTME: List view rendering for the TUI
// ABOUTME: Entity tabs, filtered tables, and key handling
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"crmdeck/views"
)

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(m.th.Title.Render("CRMDECK"))
	if user := m.session.Current(); user != nil {
		s.WriteString(m.th.Faint.Render("  " + user.Name + " (" + user.Role + ")"))
	}
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.searching {
		s.WriteString(m.searchInput.View())
		s.WriteString("\n\n")
	} else if q := m.searchInput.Value(); q != "" {
		s.WriteString(m.th.Faint.Render("filter: " + q))
		s.WriteString("\n\n")
	}

	s.WriteString(m.renderTable())
	s.WriteString("\n\n")

	if m.status != "" {
		s.WriteString(m.th.Danger.Render(m.status))
		s.WriteString("\n")
	}
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"Contacts", "Leads", "Deals", "Tasks"}
	var rendered []string

	for i, tab := range tabs {
		if EntityType(i) == m.entityType {
			rendered = append(rendered, m.th.TabActive.Render(tab))
		} else {
			rendered = append(rendered, m.th.TabIdle.Render("  "+tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	switch m.entityType {
	case EntityContacts:
		return m.renderContactsTable()
	case EntityLeads:
		return m.renderLeadsTable()
	case EntityDeals:
		return m.renderDealsTable()
	case EntityTasks:
		return m.renderTasksTable()
	}
	return ""
}

func (m Model) tableHeight() int {
	h := m.height - 10
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) renderContactsTable() string {
	contacts := views.FilterContacts(m.entities.Snapshot().Contacts, views.ContactFilter{Term: m.searchInput.Value()})

	columns := []table.Column{
		{Title: "Name", Width: 25},
		{Title: "Email", Width: 28},
		{Title: "Company", Width: 20},
		{Title: "Position", Width: 18},
	}

	var rows []table.Row
	for _, c := range contacts {
		rows = append(rows, table.Row{c.Name, c.Email, c.Company, c.Position})
	}

	return m.buildTable(columns, rows)
}

func (m Model) renderLeadsTable() string {
	leads := views.FilterLeads(m.entities.Snapshot().Leads, views.LeadFilter{Term: m.searchInput.Value()})

	columns := []table.Column{
		{Title: "Name", Width: 25},
		{Title: "Company", Width: 20},
		{Title: "Value", Width: 10},
		{Title: "Status", Width: 12},
		{Title: "Source", Width: 14},
	}

	var rows []table.Row
	for _, l := range leads {
		rows = append(rows, table.Row{
			l.Name,
			l.Company,
			fmt.Sprintf("$%.0f", float64(l.Value)/100.0),
			l.Status,
			l.Source,
		})
	}

	return m.buildTable(columns, rows)
}

func (m Model) renderDealsTable() string {
	deals := views.FilterDeals(m.entities.Snapshot().Deals, views.DealFilter{Term: m.searchInput.Value()})

	columns := []table.Column{
		{Title: "Title", Width: 30},
		{Title: "Value", Width: 10},
		{Title: "Stage", Width: 15},
		{Title: "Prob", Width: 6},
	}

	var rows []table.Row
	for _, d := range deals {
		rows = append(rows, table.Row{
			d.Title,
			fmt.Sprintf("$%.0f", float64(d.Value)/100.0),
			d.Stage,
			fmt.Sprintf("%d%%", d.Probability),
		})
	}

	return m.buildTable(columns, rows)
}

func (m Model) renderTasksTable() string {
	tasks := views.FilterTasks(m.entities.Snapshot().Tasks, views.TaskFilter{Term: m.searchInput.Value()})
	now := time.Now()

	columns := []table.Column{
		{Title: "Title", Width: 30},
		{Title: "Due", Width: 16},
		{Title: "Priority", Width: 10},
		{Title: "Status", Width: 12},
	}

	var rows []table.Row
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
			if t.IsOverdue(now) {
				due += " ⚠"
			}
		}
		rows = append(rows, table.Row{t.Title, due, t.Priority, t.Status})
	}

	return m.buildTable(columns, rows)
}

func (m Model) buildTable(columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch tabs",
		"/: Search",
		"b: Board",
		"d: Dashboard",
		"t: Theme",
		"q: Quit",
	}
	return m.th.Faint.Render(strings.Join(help, " • "))
}

// currentRowCount reports how many rows the active tab shows under the
// current search filter, so cursor movement can be clamped against it.
func (m Model) currentRowCount() int {
	snap := m.entities.Snapshot()
	term := m.searchInput.Value()
	switch m.entityType {
	case EntityContacts:
		return len(views.FilterContacts(snap.Contacts, views.ContactFilter{Term: term}))
	case EntityLeads:
		return len(views.FilterLeads(snap.Leads, views.LeadFilter{Term: term}))
	case EntityDeals:
		return len(views.FilterDeals(snap.Deals, views.DealFilter{Term: term}))
	case EntityTasks:
		return len(views.FilterTasks(snap.Tasks, views.TaskFilter{Term: term}))
	}
	return 0
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < m.currentRowCount()-1 {
			m.selectedRow++
		}
	case "tab":
		m.entityType = (m.entityType + 1) % entityTypeCount
		m.selectedRow = 0
	case "/":
		m.searching = true
		m.status = ""
		return m, m.searchInput.Focus()
	}

	return m, nil
}
