// ABOUTME: Tests for TUI key handling
// ABOUTME: Covers list cursor clamping and tab cycling against a temporary store
package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"crmdeck/models"
	"crmdeck/store"
)

func setupTestModel(t *testing.T) Model {
	t.Helper()

	kv, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		_ = kv.Close()
	})

	entities, err := store.NewEntityStore(kv)
	if err != nil {
		t.Fatalf("NewEntityStore failed: %v", err)
	}
	themes, err := store.NewThemeStore(kv)
	if err != nil {
		t.Fatalf("NewThemeStore failed: %v", err)
	}
	session, err := store.NewSessionStore(kv)
	if err != nil {
		t.Fatalf("NewSessionStore failed: %v", err)
	}

	return NewModel(entities, themes, session)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()

	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func TestListCursorClampsToRowCount(t *testing.T) {
	m := setupTestModel(t)

	for _, name := range []string{"Ada", "Grace"} {
		if _, err := m.entities.AddContact(models.Contact{Name: name}); err != nil {
			t.Fatalf("AddContact failed: %v", err)
		}
	}

	down := tea.KeyMsg{Type: tea.KeyDown}
	for i := 0; i < 5; i++ {
		m = press(t, m, down)
	}
	if m.selectedRow != 1 {
		t.Errorf("cursor drifted past the last row: %d", m.selectedRow)
	}

	up := tea.KeyMsg{Type: tea.KeyUp}
	for i := 0; i < 5; i++ {
		m = press(t, m, up)
	}
	if m.selectedRow != 0 {
		t.Errorf("cursor moved above the first row: %d", m.selectedRow)
	}
}

func TestListCursorStaysPutOnEmptyTab(t *testing.T) {
	m := setupTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.selectedRow != 0 {
		t.Errorf("cursor moved with no rows: %d", m.selectedRow)
	}
}

func TestTabCyclesEntitiesAndResetsCursor(t *testing.T) {
	m := setupTestModel(t)

	for _, name := range []string{"Ada", "Grace"} {
		if _, err := m.entities.AddContact(models.Contact{Name: name}); err != nil {
			t.Fatalf("AddContact failed: %v", err)
		}
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.entityType != EntityLeads {
		t.Errorf("tab did not advance the entity tab: %d", m.entityType)
	}
	if m.selectedRow != 0 {
		t.Errorf("tab did not reset the cursor: %d", m.selectedRow)
	}

	for i := 0; i < 3; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	if m.entityType != EntityContacts {
		t.Errorf("tab cycling did not wrap around: %d", m.entityType)
	}
}
