package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/spellclash/spellclash-server/internal/catalog"
	"github.com/spellclash/spellclash-server/internal/game"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned when a match id has no live session.
var ErrSessionNotFound = errors.New("session not found")

// Registry owns the live matches keyed by id. It is an explicit service
// injected where needed, never ambient process state.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	rules    Rules
	pacer    game.Pacer
	catalog  *catalog.Catalog
	logger   *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(cat *catalog.Catalog, rules Rules, pacer game.Pacer, logger *zap.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		rules:    rules,
		pacer:    pacer,
		catalog:  cat,
		logger:   logger,
	}
}

// Create starts a new match between two seats over the given emitter and
// returns its session.
func (r *Registry) Create(a, b Seat, emitter game.Emitter) *Session {
	id := uuid.NewString()
	s := New(id, a, b, r.catalog, emitter, r.pacer, r.rules, r.logger)

	r.mu.Lock()
	r.sessions[id] = s
	count := len(r.sessions)
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.Info("session created",
			zap.String("session_id", id),
			zap.String("player_a", a.PlayerID),
			zap.String("player_b", b.PlayerID),
			zap.Int("active_sessions", count),
		)
	}
	return s
}

// Get returns the session for an id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove drops a session from the registry.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	_, existed := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if existed && r.logger != nil {
		r.logger.Info("session removed", zap.String("session_id", id))
	}
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// List returns the ids of all live sessions.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}
