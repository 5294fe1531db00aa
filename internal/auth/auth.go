// Package auth verifies player identity. The core only ever consumes the
// verified user id this package produces.
package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserExists         = errors.New("user already exists")
)

type tokenEntry struct {
	userID    string
	expiresAt time.Time
}

// Store keeps bcrypt password hashes and the opaque session tokens issued
// against them.
type Store struct {
	mu       sync.RWMutex
	hashes   map[string][]byte
	tokens   map[string]tokenEntry
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewStore creates an empty credential store.
func NewStore(tokenTTL time.Duration, logger *zap.Logger) *Store {
	return &Store{
		hashes:   make(map[string][]byte),
		tokens:   make(map[string]tokenEntry),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Register stores a new user's password hash.
func (s *Store) Register(userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.hashes[userID]; exists {
		return ErrUserExists
	}
	s.hashes[userID] = hash
	if s.logger != nil {
		s.logger.Info("user registered", zap.String("user_id", userID))
	}
	return nil
}

// Authenticate checks the password and issues an opaque token with the
// configured TTL.
func (s *Store) Authenticate(userID, password string) (string, error) {
	s.mu.RLock()
	hash, ok := s.hashes[userID]
	s.mu.RUnlock()
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		if s.logger != nil {
			s.logger.Warn("authentication failed", zap.String("user_id", userID))
		}
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = tokenEntry{
		userID:    userID,
		expiresAt: time.Now().Add(s.tokenTTL),
	}
	s.mu.Unlock()
	return token, nil
}

// Verify resolves a token to its verified user id.
func (s *Store) Verify(token string) (string, error) {
	s.mu.RLock()
	entry, ok := s.tokens[token]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return "", ErrInvalidToken
	}
	return entry.userID, nil
}

// Revoke invalidates a token.
func (s *Store) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// Sweep drops expired tokens. Intended to run periodically.
func (s *Store) Sweep() int {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for token, entry := range s.tokens {
		if now.After(entry.expiresAt) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed
}
