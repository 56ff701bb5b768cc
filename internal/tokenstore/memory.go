package tokenstore

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

// Memory is an in-process Store used in tests and local development. Expired
// entries are dropped on read.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: map[string]memoryEntry{}, now: time.Now}
}

// Save stores token -> userID until now+ttl.
func (m *Memory) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[token] = memoryEntry{userID: userID, expiresAt: m.now().Add(ttl)}
	return nil
}

// Get returns the owning user id or "" when absent or expired.
func (m *Memory) Get(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[token]
	if !ok {
		return "", nil
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, token)
		return "", nil
	}
	return e.userID, nil
}

// Delete removes the token and reports whether a live entry was present.
// Absent and already-expired tokens count as not present, matching DEL on a
// key Redis has expired.
func (m *Memory) Delete(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[token]
	if !ok {
		return false, nil
	}
	delete(m.entries, token)
	return !m.now().After(e.expiresAt), nil
}
