// ABOUTME: Tests for the session and theme stores
// ABOUTME: Covers role selection, logout, patch merging, and flag persistence
package store

import (
	"testing"

	"crmdeck/models"
)

func TestLoginRoleSelection(t *testing.T) {
	kv := setupTestKV(t)
	s, err := NewSessionStore(kv)
	if err != nil {
		t.Fatalf("NewSessionStore failed: %v", err)
	}

	cases := []struct {
		email string
		role  string
	}{
		{AdminEmail, models.RoleAdmin},
		{ManagerEmail, models.RoleManager},
		{"jane.doe@example.com", models.RoleSalesperson},
	}

	for _, tc := range cases {
		user, err := s.Login(tc.email, "whatever")
		if err != nil {
			t.Fatalf("Login(%s) failed: %v", tc.email, err)
		}
		if user.Role != tc.role {
			t.Errorf("Login(%s): want role %s, got %s", tc.email, tc.role, user.Role)
		}
		if user.ID == "" {
			t.Errorf("Login(%s): user id not set", tc.email)
		}
		if !s.IsAuthenticated() {
			t.Errorf("Login(%s): store not authenticated", tc.email)
		}
	}
}

func TestLoginFabricatesName(t *testing.T) {
	kv := setupTestKV(t)
	s, err := NewSessionStore(kv)
	if err != nil {
		t.Fatalf("NewSessionStore failed: %v", err)
	}

	user, err := s.Login("jane.doe@example.com", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Name != "Jane Doe" {
		t.Errorf("expected fabricated name Jane Doe, got %q", user.Name)
	}
}

func TestLogoutClearsUser(t *testing.T) {
	kv := setupTestKV(t)
	s, err := NewSessionStore(kv)
	if err != nil {
		t.Fatalf("NewSessionStore failed: %v", err)
	}

	if _, err := s.Login("someone@example.com", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if s.IsAuthenticated() {
		t.Error("store still authenticated after logout")
	}
	if s.Current() != nil {
		t.Error("Current should be nil after logout")
	}

	// Logged-out session survives a reload.
	reloaded, err := NewSessionStore(kv)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.IsAuthenticated() {
		t.Error("reloaded store should be logged out")
	}
}

func TestUpdateUserMergesFields(t *testing.T) {
	kv := setupTestKV(t)
	s, err := NewSessionStore(kv)
	if err != nil {
		t.Fatalf("NewSessionStore failed: %v", err)
	}

	// No-op when logged out.
	name := "Nobody"
	if err := s.UpdateUser(UserPatch{Name: &name}); err != nil {
		t.Fatalf("UpdateUser while logged out should not error: %v", err)
	}
	if s.Current() != nil {
		t.Error("UpdateUser while logged out created a user")
	}

	user, err := s.Login("sam@example.com", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	avatar := "https://example.com/sam.png"
	if err := s.UpdateUser(UserPatch{Avatar: &avatar}); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	got := s.Current()
	if got.Avatar != avatar {
		t.Errorf("avatar not merged: %q", got.Avatar)
	}
	if got.Email != user.Email || got.Role != user.Role {
		t.Error("fields absent from the patch were changed")
	}
}

func TestSessionPersistsAcrossReload(t *testing.T) {
	kv := setupTestKV(t)
	s, err := NewSessionStore(kv)
	if err != nil {
		t.Fatalf("NewSessionStore failed: %v", err)
	}

	if _, err := s.Login(AdminEmail, "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	reloaded, err := NewSessionStore(kv)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	user := reloaded.Current()
	if user == nil {
		t.Fatal("session lost across reload")
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role lost across reload: %s", user.Role)
	}
}

func TestThemeToggle(t *testing.T) {
	kv := setupTestKV(t)
	s, err := NewThemeStore(kv)
	if err != nil {
		t.Fatalf("NewThemeStore failed: %v", err)
	}

	if s.IsDark() {
		t.Error("theme should default to light")
	}
	if err := s.Toggle(); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !s.IsDark() {
		t.Error("toggle did not flip the flag")
	}

	reloaded, err := NewThemeStore(kv)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reloaded.IsDark() {
		t.Error("theme flag lost across reload")
	}
}

func TestNameFromEmail(t *testing.T) {
	cases := map[string]string{
		"jane.doe@example.com":  "Jane Doe",
		"sam@example.com":       "Sam",
		"a_b-c@example.com":     "A B C",
		"@example.com":          "CRM User",
		"plain":                 "Plain",
		AdminEmail:              "Admin",
	}

	for email, want := range cases {
		if got := nameFromEmail(email); got != want {
			t.Errorf("nameFromEmail(%q): want %q, got %q", email, want, got)
		}
	}
}
