// Package store is the persisted key-value contract used for settings, the
// cached prayer schedule, and the last known location. Values are JSON
// documents with last-write-wins semantics per key; no transactional
// guarantees are offered or needed.
package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/go-salat/internal/config"
)

// Store reads and writes JSON documents by key.
// Get reports found=false when the key has never been written.
type Store interface {
	Get(key string, dst any) (found bool, err error)
	Set(key string, value any) error
	Delete(key string)
}

// Preferences adapts fyne.Preferences to the Store contract, persisting
// documents across process restarts in the platform preference storage.
type Preferences struct {
	Prefs fyne.Preferences
}

// NewPreferences wraps the application preference storage.
func NewPreferences(prefs fyne.Preferences) *Preferences {
	return &Preferences{Prefs: prefs}
}

func (p *Preferences) Get(key string, dst any) (bool, error) {
	raw := p.Prefs.String(key)
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("%s: %w", config.ErrStoreDecode, err)
	}
	return true, nil
}

func (p *Preferences) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	p.Prefs.SetString(key, string(raw))
	return nil
}

func (p *Preferences) Delete(key string) {
	p.Prefs.RemoveValue(key)
}

// Memory is an in-process Store for tests and headless runs.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string, dst any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("%s: %w", config.ErrStoreDecode, err)
	}
	return true, nil
}

func (m *Memory) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = string(raw)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
}
