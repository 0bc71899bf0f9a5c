package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guideflow/guideflow/pkg/guideflow/core"
	"github.com/guideflow/guideflow/pkg/guideflow/domain"
)

// SessionManager owns the live preview/run sessions. Sessions are in-memory
// only: a session pins the document it was started against, so edits made
// after Start are not visible to it, and nothing is persisted when the
// process stops.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*managedSession
	clock    core.Clock
	maxIdle  time.Duration
}

type managedSession struct {
	doc        *domain.FlowDocument
	initialID  string
	state      Session
	lastActive time.Time
}

func NewSessionManager(clock core.Clock, maxIdle time.Duration) *SessionManager {
	if clock == nil {
		clock = core.NewRealClock()
	}
	return &SessionManager{
		sessions: make(map[string]*managedSession),
		clock:    clock,
		maxIdle:  maxIdle,
	}
}

// StartSweeper expires idle sessions at the given interval until the context
// is cancelled.
func (m *SessionManager) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Session sweeper stopping due to context cancel")
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *SessionManager) sweep() {
	cutoff := m.clock.Now().Add(-m.maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.lastActive.Before(cutoff) {
			slog.Info("Expiring idle preview session", "session_id", id, "last_active", s.lastActive)
			delete(m.sessions, id)
		}
	}
}

// Open starts a session over the given document at initialStepID and returns
// the session id. The document is deep-copied so later edits to the caller's
// value cannot change a running session.
func (m *SessionManager) Open(doc *domain.FlowDocument, initialStepID string) (string, Session) {
	if initialStepID == "" {
		initialStepID = domain.StartStepID
	}
	id := uuid.NewString()
	state := Start(initialStepID)
	m.mu.Lock()
	m.sessions[id] = &managedSession{
		doc:        doc.Clone(),
		initialID:  initialStepID,
		state:      state,
		lastActive: m.clock.Now(),
	}
	m.mu.Unlock()
	return id, state
}

// Get returns the current state and pinned document of a session.
func (m *SessionManager) Get(id string) (*domain.FlowDocument, Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, Session{}, ErrSessionNotFound
	}
	return s.doc, s.state, nil
}

// Close drops a session; closing an unknown session is not an error.
func (m *SessionManager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Apply runs op against the session's current state and stores the result.
// A failed op leaves the stored state untouched, mirroring the engine's
// input-unchanged failure semantics.
func (m *SessionManager) Apply(id string, op func(doc *domain.FlowDocument, s Session) (Session, error)) (*domain.FlowDocument, Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, Session{}, ErrSessionNotFound
	}
	s.lastActive = m.clock.Now()
	next, err := op(s.doc, s.state)
	if err != nil {
		return s.doc, s.state, err
	}
	s.state = next
	return s.doc, next, nil
}

// Reset rewinds a session to its initial step, discarding history and checks.
func (m *SessionManager) Reset(id string) (*domain.FlowDocument, Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, Session{}, ErrSessionNotFound
	}
	s.lastActive = m.clock.Now()
	s.state = Reset(s.initialID)
	return s.doc, s.state, nil
}
