// ABOUTME: Pipeline board and dashboard rendering for the TUI
// ABOUTME: Column navigation and stage moves for deals
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"crmdeck/models"
	"crmdeck/views"
	"crmdeck/viz"
)

const boardColumnWidth = 22

func (m Model) renderBoardView() string {
	var s strings.Builder

	s.WriteString(m.th.Title.Render("PIPELINE"))
	s.WriteString("\n\n")

	columns := views.PipelineColumns(m.entities.Snapshot().Deals)

	rendered := make([]string, 0, len(columns))
	for i, col := range columns {
		rendered = append(rendered, m.renderBoardColumn(col, i == m.boardCol))
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	s.WriteString("\n\n")

	if m.status != "" {
		s.WriteString(m.th.Faint.Render(m.status))
		s.WriteString("\n")
	}
	s.WriteString(m.renderBoardHelp())

	return s.String()
}

func (m Model) renderBoardColumn(col views.StageColumn, active bool) string {
	var b strings.Builder

	header := fmt.Sprintf("%s (%d)", col.Stage, len(col.Deals))
	if active {
		b.WriteString(m.th.TabActive.Render(header))
	} else {
		b.WriteString(m.th.Subtitle.Render(header))
	}
	b.WriteString("\n")
	b.WriteString(m.th.Faint.Render(fmt.Sprintf("$%.0f", float64(col.Value)/100.0)))
	b.WriteString("\n\n")

	for i, d := range col.Deals {
		line := truncate(d.Title, boardColumnWidth-4)
		if active && i == m.boardRow {
			b.WriteString(m.th.Highlight.Render("> " + line))
		} else {
			b.WriteString(m.th.Primary.Render("  " + line))
		}
		b.WriteString("\n")
		b.WriteString(m.th.Faint.Render(fmt.Sprintf("  $%.0f", float64(d.Value)/100.0)))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(boardColumnWidth).
		PaddingRight(2).
		Render(b.String())
}

func truncate(s string, max int) string {
	if max < 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func (m Model) renderBoardHelp() string {
	help := []string{
		"←/→: Column",
		"↑/↓: Deal",
		"[/]: Move deal",
		"l: List",
		"d: Dashboard",
		"t: Theme",
		"q: Quit",
	}
	return m.th.Faint.Render(strings.Join(help, " • "))
}

func (m Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := views.PipelineColumns(m.entities.Snapshot().Deals)

	switch msg.String() {
	case "left", "h":
		if m.boardCol > 0 {
			m.boardCol--
			m.boardRow = 0
		}
	case "right":
		if m.boardCol < len(columns)-1 {
			m.boardCol++
			m.boardRow = 0
		}
	case "up", "k":
		if m.boardRow > 0 {
			m.boardRow--
		}
	case "down", "j":
		if m.boardCol < len(columns) && m.boardRow < len(columns[m.boardCol].Deals)-1 {
			m.boardRow++
		}
	case "[":
		return m.moveSelectedDeal(columns, m.boardCol-1)
	case "]":
		return m.moveSelectedDeal(columns, m.boardCol+1)
	}

	return m, nil
}

func (m Model) moveSelectedDeal(columns []views.StageColumn, targetCol int) (tea.Model, tea.Cmd) {
	if targetCol < 0 || targetCol >= len(models.Stages) {
		return m, nil
	}
	if m.boardCol >= len(columns) || m.boardRow >= len(columns[m.boardCol].Deals) {
		return m, nil
	}

	deal := columns[m.boardCol].Deals[m.boardRow]
	target := views.DropTarget{Stage: models.Stages[targetCol]}

	moved, err := views.MoveDealStage(m.entities, deal.ID, target)
	if err != nil {
		m.status = "move failed: " + err.Error()
		return m, nil
	}
	if moved {
		m.status = fmt.Sprintf("moved %q to %s", deal.Title, target.Stage)
		m.boardCol = targetCol
		m.boardRow = 0
	}

	return m, nil
}

func (m Model) renderDashboardView() string {
	stats := viz.GenerateDashboardStats(m.entities.Snapshot(), time.Now())

	var s strings.Builder
	s.WriteString(viz.RenderDashboard(stats))
	s.WriteString("\n")
	s.WriteString(m.th.Faint.Render("l: List • b: Board • t: Theme • q: Quit"))

	return s.String()
}
