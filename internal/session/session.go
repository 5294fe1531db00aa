// Package session owns per-match state across rounds: the two players, the
// round counter, who goes first, and the hand/deck bookkeeping between
// resolutions. One resolver is created per round and discarded.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spellclash/spellclash-server/internal/catalog"
	"github.com/spellclash/spellclash-server/internal/game"
	"go.uber.org/zap"
)

// State is the session lifecycle.
type State int

const (
	StateWaiting State = iota
	StateResolving
	StateFinished
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "WAITING"
	case StateResolving:
		return "RESOLVING"
	case StateFinished:
		return "FINISHED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrUnknownPlayer    = errors.New("player not in session")
	ErrAlreadySubmitted = errors.New("player already submitted this round")
	ErrNotAcceptingSubs = errors.New("session is not accepting submissions")
	ErrCardNotInHand    = errors.New("submitted card not in hand")
)

// Rules are the match-level tunables, sourced from configuration.
type Rules struct {
	StartHealth  int
	StartMana    int
	HandSize     int
	ManaPerRound int
}

// Seat describes one participant at session creation: a verified user id and
// their resolved deck (already validated for length/ownership).
type Seat struct {
	PlayerID string
	Deck     []string
}

type seatState struct {
	player    *game.PlayerState
	deck      []string
	submitted []string
	hasSub    bool
	drawn     int
}

// Session is one two-player match.
type Session struct {
	ID string

	mu      sync.Mutex
	state   State
	round   int
	firstID string
	seats   map[string]*seatState
	order   [2]string

	catalog *catalog.Catalog
	emitter game.Emitter
	pacer   game.Pacer
	rules   Rules
	replay  *game.ReplayLog
	done    chan struct{}
	logger  *zap.Logger
}

// New creates a session, deals the first hands and emits the first
// round-start payloads.
func New(id string, a, b Seat, cat *catalog.Catalog, emitter game.Emitter, pacer game.Pacer, rules Rules, logger *zap.Logger) *Session {
	s := &Session{
		ID:      id,
		state:   StateWaiting,
		firstID: a.PlayerID,
		seats:   make(map[string]*seatState, 2),
		order:   [2]string{a.PlayerID, b.PlayerID},
		catalog: cat,
		emitter: emitter,
		pacer:   pacer,
		rules:   rules,
		replay:  game.NewReplayLog(),
		done:    make(chan struct{}),
		logger:  logger,
	}
	for _, seat := range []Seat{a, b} {
		s.seats[seat.PlayerID] = &seatState{
			player: &game.PlayerState{
				ID:     seat.PlayerID,
				Health: rules.StartHealth,
				Mana:   rules.StartMana,
			},
			deck: append([]string(nil), seat.Deck...),
		}
	}
	s.mu.Lock()
	s.beginRound()
	s.mu.Unlock()
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Round returns the current round number (1-based).
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// Replay returns the recorded delta stream for the match.
func (s *Session) Replay() *game.ReplayLog { return s.replay }

// Done is closed when the match reaches a terminal state.
func (s *Session) Done() <-chan struct{} { return s.done }

// Player returns the live state for a participant.
func (s *Session) Player(id string) (*game.PlayerState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat, ok := s.seats[id]
	if !ok {
		return nil, false
	}
	return seat.player, true
}

// beginRound advances the round counter, deals hands and sends each player
// their round-start snapshot. Caller holds the lock.
func (s *Session) beginRound() {
	s.round++
	for _, id := range s.order {
		s.drawHand(s.seats[id])
	}
	for _, id := range s.order {
		seat := s.seats[id]
		opp := s.seats[s.opponentOf(id)]
		s.emitter.SendTo(id, game.RoundStart{
			Type:           game.EventRoundStart,
			Round:          s.round,
			Hand:           game.CardViews(seat.player.Hand),
			DropZone:       game.CardViews(seat.player.DropZone),
			Health:         seat.player.Health,
			Mana:           seat.player.Mana,
			Drawn:          seat.drawn,
			OpponentHealth: opp.player.Health,
			OpponentMana:   opp.player.Mana,
			GoesFirst:      id == s.firstID,
		})
	}
	if s.logger != nil {
		s.logger.Info("round started",
			zap.String("session_id", s.ID),
			zap.Int("round", s.round),
			zap.String("first", s.firstID),
		)
	}
}

// drawHand tops the hand up to hand size plus the pending draw bonus. The
// bonus is consumed by the draw.
func (s *Session) drawHand(seat *seatState) {
	want := s.rules.HandSize + seat.player.DrawBonus
	seat.player.DrawBonus = 0
	seat.drawn = 0
	for len(seat.player.Hand) < want && len(seat.deck) > 0 {
		id := seat.deck[0]
		seat.deck = seat.deck[1:]
		card, err := s.catalog.Instantiate(id)
		if err != nil {
			// Decks are validated against the catalog at persistence time.
			if s.logger != nil {
				s.logger.Warn("skipping unknown deck card",
					zap.String("session_id", s.ID),
					zap.String("card_id", id),
				)
			}
			continue
		}
		seat.player.Hand = append(seat.player.Hand, card)
		seat.drawn++
	}
}

func (s *Session) opponentOf(id string) string {
	if s.order[0] == id {
		return s.order[1]
	}
	return s.order[0]
}

// Submit records a player's ordered dropzone submission for the current
// round. Submitted cards leave the hand. When the second submission arrives
// the round resolves on the session's own goroutine.
func (s *Session) Submit(playerID string, cardIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateWaiting {
		return ErrNotAcceptingSubs
	}
	seat, ok := s.seats[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	if seat.hasSub {
		return ErrAlreadySubmitted
	}

	hand := seat.player.Hand
	for _, id := range cardIDs {
		idx := -1
		for i, c := range hand {
			if c.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: %s", ErrCardNotInHand, id)
		}
		hand = append(hand[:idx], hand[idx+1:]...)
	}
	seat.player.Hand = hand
	seat.submitted = append([]string(nil), cardIDs...)
	seat.hasSub = true

	if s.logger != nil {
		s.logger.Debug("submission received",
			zap.String("session_id", s.ID),
			zap.String("player_id", playerID),
			zap.Int("cards", len(cardIDs)),
		)
	}

	for _, other := range s.seats {
		if !other.hasSub {
			return nil
		}
	}
	s.state = StateResolving
	go s.resolveRound()
	return nil
}

// resolveRound drives one resolver over the collected submissions and
// advances to the next round or a terminal state.
func (s *Session) resolveRound() {
	s.mu.Lock()
	subs := make(map[string][]string, 2)
	for id, seat := range s.seats {
		subs[id] = seat.submitted
		seat.submitted = nil
		seat.hasSub = false
	}
	p1 := s.seats[s.order[0]].player
	p2 := s.seats[s.order[1]].player
	resolver := game.NewResolver(p1, p2, s.firstID, s.catalog, s.emitter, s.pacer, s.logger)
	resolver.SetReplay(s.replay)
	s.mu.Unlock()

	// The resolver exclusively owns both player states and the queue while
	// it runs; the session lock is released so reads elsewhere do not stall
	// behind pacing delays.
	res, err := resolver.Resolve(subs)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		// Fatal to this match only. Clients get a generic error signal,
		// distinct from the structured game-over.
		if s.logger != nil {
			s.logger.Error("round resolution failed",
				zap.String("session_id", s.ID),
				zap.Int("round", s.round),
				zap.Error(err),
			)
		}
		s.emitter.Broadcast(game.ErrorEvent{Type: game.EventError, Message: "round resolution failed"})
		s.emitter.Shutdown()
		s.state = StateFailed
		close(s.done)
		return
	}

	if res.GameOver {
		s.state = StateFinished
		close(s.done)
		return
	}

	s.firstID = resolver.NextFirstID()
	for _, seat := range s.seats {
		seat.player.Mana += s.rules.ManaPerRound
	}
	s.state = StateWaiting
	s.beginRound()
}
