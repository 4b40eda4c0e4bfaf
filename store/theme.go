// ABOUTME: Theme store holding the dark/light flag
// ABOUTME: Persisted under its own key, independent of the entity snapshot
package store

import (
	"encoding/json"
	"sync"
)

type themeSnapshot struct {
	IsDark bool `json:"is_dark"`
}

// ThemeStore owns the single dark-mode flag.
type ThemeStore struct {
	mu    sync.Mutex
	kv    *KV
	state themeSnapshot
}

// NewThemeStore rehydrates the flag, defaulting to light.
func NewThemeStore(kv *KV) (*ThemeStore, error) {
	s := &ThemeStore{kv: kv}

	raw, err := kv.Get(themeKey)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		_ = json.Unmarshal(raw, &s.state)
	}

	return s, nil
}

// IsDark reports the current flag.
func (s *ThemeStore) IsDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsDark
}

// Toggle flips the flag and persists it.
func (s *ThemeStore) Toggle() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsDark = !s.state.IsDark
	raw, err := json.Marshal(s.state)
	if err != nil {
		return err
	}
	return s.kv.Set(themeKey, raw)
}
