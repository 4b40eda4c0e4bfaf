// ABOUTME: Session store holding the current user
// ABOUTME: Login fabricates a user from the email; no credential check
package store

import (
	"encoding/json"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"crmdeck/models"
)

// Role-selection addresses. Anything else logs in as a salesperson.
const (
	AdminEmail   = "admin@crmdeck.io"
	ManagerEmail = "manager@crmdeck.io"
)

// LoginDelay simulates network latency on login. Login always succeeds once
// the delay elapses; the password is accepted but never checked.
const LoginDelay = 800 * time.Millisecond

type sessionSnapshot struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"is_authenticated"`
}

// SessionStore owns the current user, persisted independently of the entity
// collections.
type SessionStore struct {
	mu    sync.Mutex
	kv    *KV
	state sessionSnapshot
}

// NewSessionStore rehydrates the session snapshot, or starts logged out.
func NewSessionStore(kv *KV) (*SessionStore, error) {
	s := &SessionStore{kv: kv}

	raw, err := kv.Get(sessionKey)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		_ = json.Unmarshal(raw, &s.state)
	}

	return s, nil
}

func (s *SessionStore) persist() error {
	raw, err := json.Marshal(s.state)
	if err != nil {
		return err
	}
	return s.kv.Set(sessionKey, raw)
}

// Login waits the simulated latency, then fabricates a user from the email
// address. The password parameter exists only to mirror the login form.
func (s *SessionStore) Login(email, _ string) (*models.User, error) {
	time.Sleep(LoginDelay)

	role := models.RoleSalesperson
	switch email {
	case AdminEmail:
		role = models.RoleAdmin
	case ManagerEmail:
		role = models.RoleManager
	}

	user := &models.User{
		ID:    newUserID(),
		Name:  nameFromEmail(email),
		Email: email,
		Role:  role,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = user
	s.state.IsAuthenticated = true
	if err := s.persist(); err != nil {
		return nil, err
	}

	u := *user
	return &u, nil
}

// Logout clears the current user.
func (s *SessionStore) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = nil
	s.state.IsAuthenticated = false
	return s.persist()
}

// UserPatch carries partial user updates. Nil fields are left unchanged.
type UserPatch struct {
	Name   *string
	Email  *string
	Role   *string
	Avatar *string
}

// UpdateUser merges the patch into the current user. No-op when logged out.
func (s *SessionStore) UpdateUser(patch UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil {
		return nil
	}
	if patch.Name != nil {
		s.state.User.Name = *patch.Name
	}
	if patch.Email != nil {
		s.state.User.Email = *patch.Email
	}
	if patch.Role != nil {
		s.state.User.Role = *patch.Role
	}
	if patch.Avatar != nil {
		s.state.User.Avatar = *patch.Avatar
	}
	return s.persist()
}

// Current returns a copy of the logged-in user, or nil when logged out.
func (s *SessionStore) Current() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsAuthenticated || s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// IsAuthenticated reports whether a user is logged in.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsAuthenticated
}

func newUserID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0) //nolint:gosec // not security sensitive
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// nameFromEmail turns "jane.doe@example.com" into "Jane Doe".
func nameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	if local == "" {
		return "CRM User"
	}

	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	name := strings.Join(parts, " ")
	if name == "" {
		return "CRM User"
	}
	return name
}
