// Package locks provides keyed mutual exclusion with a fixed acquisition order
package locks

import (
	"sort"
	"sync"

	"github.com/mcdev12/rosterbot/go/internal/models"
)

// OwnerKey is the lock key guarding an owner's team and roster
func OwnerKey(owner models.OwnerID) string {
	return "owner:" + string(owner)
}

// PlayerKey is the lock key guarding a player's free-agent status
func PlayerKey(player models.PlayerID) string {
	return "player:" + string(player)
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// Manager hands out per-key mutexes. Callers that need several keys must take
// them in one Lock call so they are acquired in sorted order; that total order
// rules out cyclic waits.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewManager creates an empty lock manager
func NewManager() *Manager {
	return &Manager{
		entries: make(map[string]*entry),
	}
}

// Lock blocks until every key is held and returns the function that releases them
func (m *Manager) Lock(keys ...string) (unlock func()) {
	ordered := dedupe(keys)

	held := make([]*entry, 0, len(ordered))
	for _, key := range ordered {
		e := m.acquire(key)
		e.mu.Lock()
		held = append(held, e)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].mu.Unlock()
				m.release(ordered[i])
			}
		})
	}
}

// Size returns the number of keys currently referenced
func (m *Manager) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Manager) acquire(key string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		e = &entry{}
		m.entries[key] = e
	}
	e.refs++
	return e
}

func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(m.entries, key)
	}
}

func dedupe(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
