package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/celltower/game/engine"
	"github.com/wricardo/mcp-training/celltower/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = service.ErrSessionAlreadyExists
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

const (
	// maxIDAttempts bounds retries when a generated ID collides
	maxIDAttempts = 16

	// MaxIDLength caps caller-chosen session IDs
	MaxIDLength = 32
)

// Manager handles puzzle session lifecycle. Sessions live in memory only.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*service.Session
	now      func() time.Time
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
		now:      time.Now,
	}
}

// key normalises an ID for lookup; IDs are case-insensitive
func key(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// validID accepts letters, digits, '-' and '_' up to MaxIDLength
func validID(id string) bool {
	if id == "" || len(id) > MaxIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// Create starts a session on puzzle. An empty id is replaced with a random
// 4-character one.
func (m *Manager) Create(id string, puzzle *engine.Puzzle) (*service.Session, error) {
	if puzzle == nil {
		return nil, fmt.Errorf("failed to create session: %w", service.ErrPuzzleNotFound)
	}

	id = strings.TrimSpace(id)
	if id != "" && !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		generated, err := m.generateSessionID()
		if err != nil {
			return nil, err
		}
		id = generated
	} else if _, taken := m.sessions[key(id)]; taken {
		return nil, ErrSessionAlreadyExists
	}

	sess := service.NewSession(id, puzzle)
	sess.CreatedAt = m.now()
	sess.LastAccessedAt = sess.CreatedAt
	m.sessions[key(id)] = sess

	return sess, nil
}

// Get looks a session up by ID
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if sess, ok := m.sessions[key(id)]; ok {
		return sess, nil
	}
	return nil, ErrSessionNotFound
}

// List returns all active sessions, oldest first
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	m.mu.RUnlock()

	slices.SortFunc(result, func(a, b *service.Session) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Delete removes a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(id)
	if _, ok := m.sessions[k]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, k)
	return nil
}

// Touch marks a session as used now, postponing its expiry
func (m *Manager) Touch(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[key(id)]
	if !ok {
		return ErrSessionNotFound
	}
	sess.LastAccessedAt = m.now()
	return nil
}

// Expire removes sessions idle for longer than maxAge and returns their IDs
// in sorted order
func (m *Manager) Expire(maxAge time.Duration) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxAge)

	var expired []string
	for k, sess := range m.sessions {
		if sess.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, k)
			expired = append(expired, sess.ID)
		}
	}

	slices.Sort(expired)
	return expired
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID returns an unused random 4-character hex ID.
// Caller must hold the write lock.
func (m *Manager) generateSessionID() (string, error) {
	buf := make([]byte, 2)
	for i := 0; i < maxIDAttempts; i++ {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate session ID: %w", err)
		}
		id := hex.EncodeToString(buf)
		if _, taken := m.sessions[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate session ID after %d attempts", maxIDAttempts)
}
