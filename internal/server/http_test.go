package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spellclash/spellclash-server/internal/catalog"
	"github.com/spellclash/spellclash-server/internal/game"
	"github.com/spellclash/spellclash-server/internal/session"
)

func TestUnseatClearsAbandonedMatch(t *testing.T) {
	srv := NewServer(NewHub(nil), nil, nil, nil, nil, zaptest.NewLogger(t))

	srv.seat("m1", session.Seat{PlayerID: "alice"})
	srv.mu.Lock()
	require.Len(t, srv.pending["m1"], 1)
	srv.mu.Unlock()

	srv.unseat("m1", "alice")
	srv.mu.Lock()
	_, held := srv.pending["m1"]
	srv.mu.Unlock()
	assert.False(t, held, "a lone disconnect must free the match id")

	// Unseating a match nobody waits on is a no-op.
	srv.unseat("m2", "bob")
}

func TestUnseatKeepsRemainingSeat(t *testing.T) {
	srv := NewServer(NewHub(nil), nil, nil, nil, nil, nil)

	srv.seat("m1", session.Seat{PlayerID: "alice"})
	srv.unseat("m1", "carol")

	srv.mu.Lock()
	defer srv.mu.Unlock()
	require.Len(t, srv.pending["m1"], 1)
	assert.Equal(t, "alice", srv.pending["m1"][0].PlayerID)
}

func TestFinishedSessionClearsRoutingEntry(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cat, err := catalog.Default(logger)
	require.NoError(t, err)

	rules := session.Rules{StartHealth: 2, StartMana: 10, HandSize: 1, ManaPerRound: 0}
	registry := session.NewRegistry(cat, rules, game.Pacer{}, logger)
	srv := NewServer(NewHub(logger), nil, nil, cat, registry, logger)

	srv.seat("m1", session.Seat{PlayerID: "alice", Deck: []string{"spark"}})
	srv.seat("m1", session.Seat{PlayerID: "bob", Deck: []string{"spark"}})

	srv.mu.Lock()
	sessionID, routed := srv.bySession["m1"]
	srv.mu.Unlock()
	require.True(t, routed, "the second seat must start the session")

	sess, err := registry.Get(sessionID)
	require.NoError(t, err)
	require.NoError(t, sess.Submit("alice", []string{"spark"}))
	require.NoError(t, sess.Submit("bob", []string{"spark"}))

	<-sess.Done()
	require.Eventually(t, func() bool {
		srv.mu.Lock()
		_, live := srv.bySession["m1"]
		srv.mu.Unlock()
		return !live && registry.Count() == 0
	}, time.Second, 10*time.Millisecond, "finished matches must release routing state")
}
