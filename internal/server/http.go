package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/spellclash/spellclash-server/internal/auth"
	"github.com/spellclash/spellclash-server/internal/catalog"
	"github.com/spellclash/spellclash-server/internal/repository"
	"github.com/spellclash/spellclash-server/internal/session"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server ties the transport to auth, deck storage and the match registry.
type Server struct {
	hub      *Hub
	authStr  *auth.Store
	decks    *repository.DeckRepository
	catalog  *catalog.Catalog
	registry *session.Registry
	logger   *zap.Logger

	mu        sync.Mutex
	pending   map[string][]session.Seat // match id -> seats waiting for an opponent
	bySession map[string]string         // match id -> running session id

	httpSrv *http.Server
}

// NewServer builds the HTTP/websocket front.
func NewServer(hub *Hub, authStore *auth.Store, decks *repository.DeckRepository, cat *catalog.Catalog, registry *session.Registry, logger *zap.Logger) *Server {
	return &Server{
		hub:      hub,
		authStr:  authStore,
		decks:    decks,
		catalog:  cat,
		registry: registry,
		logger:   logger,
		pending:  make(map[string][]session.Seat),
	}
}

// Routes registers all handlers on a mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/decks", s.handleDecks)
	mux.HandleFunc("/ws", s.handleWS)
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	s.Routes(mux)
	s.httpSrv = &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.httpSrv.Shutdown(context.Background())
	}
}

type credentials struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.UserID == "" || creds.Password == "" {
		http.Error(w, "user_id and password required", http.StatusBadRequest)
		return
	}
	if err := s.authStr.Register(creds.UserID, creds.Password); err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			http.Error(w, "user exists", http.StatusConflict)
			return
		}
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	token, err := s.authStr.Authenticate(creds.UserID, creds.Password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// bearerUser resolves the Authorization header to a verified user id.
func (s *Server) bearerUser(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		return "", false
	}
	userID, err := s.authStr.Verify(token)
	if err != nil {
		return "", false
	}
	return userID, true
}

type deckPayload struct {
	Name  string   `json:"name"`
	Cards []string `json:"cards"`
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.bearerUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if s.decks == nil {
		http.Error(w, "deck storage unavailable", http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if name := r.URL.Query().Get("name"); name != "" {
			deck, err := s.decks.Get(r.Context(), userID, name)
			if errors.Is(err, repository.ErrDeckNotFound) {
				http.Error(w, "deck not found", http.StatusNotFound)
				return
			}
			if err != nil {
				http.Error(w, "load failed", http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(deckPayload{Name: deck.Name, Cards: deck.Cards})
			return
		}
		names, err := s.decks.List(r.Context(), userID)
		if err != nil {
			http.Error(w, "list failed", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(names)

	case http.MethodPut, http.MethodPost:
		var payload deckPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
			http.Error(w, "deck name and cards required", http.StatusBadRequest)
			return
		}
		for _, id := range payload.Cards {
			if !s.catalog.Has(id) {
				http.Error(w, "unknown card id: "+id, http.StatusBadRequest)
				return
			}
		}
		err := s.decks.Save(r.Context(), repository.Deck{
			UserID: userID,
			Name:   payload.Name,
			Cards:  payload.Cards,
		})
		if err != nil {
			http.Error(w, "save failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case http.MethodDelete:
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "name required", http.StatusBadRequest)
			return
		}
		if err := s.decks.Delete(r.Context(), userID, name); err != nil {
			http.Error(w, "delete failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleWS attaches an authenticated player to a match channel. The first
// player to attach waits; the second attach starts the session.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	matchID := r.URL.Query().Get("match")
	if token == "" || matchID == "" {
		http.Error(w, "token and match required", http.StatusBadRequest)
		return
	}
	userID, err := s.authStr.Verify(token)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	deckIDs, err := s.resolveDeck(r, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("websocket upgrade failed", zap.Error(err))
		}
		return
	}

	client := NewClient(userID, conn, s.logger)
	s.hub.Join(matchID, client)
	go client.WritePump()

	s.seat(matchID, session.Seat{PlayerID: userID, Deck: deckIDs})

	client.ReadPump(func(data []byte) {
		s.handleClientMessage(matchID, userID, data)
	})
	s.hub.Leave(matchID, client)
	s.unseat(matchID, userID)
}

// resolveDeck picks the player's saved deck by name, or the starter deck
// when none was named.
func (s *Server) resolveDeck(r *http.Request, userID string) ([]string, error) {
	name := r.URL.Query().Get("deck")
	if name == "" || s.decks == nil {
		return starterDeck(), nil
	}
	deck, err := s.decks.Get(r.Context(), userID, name)
	if errors.Is(err, repository.ErrDeckNotFound) {
		return nil, errors.New("deck not found")
	}
	if err != nil {
		return nil, errors.New("deck load failed")
	}
	return deck.Cards, nil
}

// seat queues a participant; the second seat for a match starts the session.
func (s *Server) seat(matchID string, seat session.Seat) {
	s.mu.Lock()
	seats := append(s.pending[matchID], seat)
	if len(seats) < 2 {
		s.pending[matchID] = seats
		s.mu.Unlock()
		return
	}
	delete(s.pending, matchID)
	s.mu.Unlock()

	sess := s.registry.Create(seats[0], seats[1], NewMatchChannel(s.hub, matchID))
	s.mu.Lock()
	s.live(matchID, sess.ID)
	s.mu.Unlock()

	go func() {
		<-sess.Done()
		s.registry.Remove(sess.ID)
		s.mu.Lock()
		delete(s.bySession, matchID)
		s.mu.Unlock()
	}()
}

// unseat drops a participant who disconnected before an opponent arrived,
// so an abandoned match id does not hold a seat forever.
func (s *Server) unseat(matchID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seats := s.pending[matchID]
	for i, seat := range seats {
		if seat.PlayerID == userID {
			seats = append(seats[:i], seats[i+1:]...)
			break
		}
	}
	if len(seats) == 0 {
		delete(s.pending, matchID)
		return
	}
	s.pending[matchID] = seats
}

// live maps the transport-level match id to the created session id.
func (s *Server) live(matchID, sessionID string) {
	if s.bySession == nil {
		s.bySession = make(map[string]string)
	}
	s.bySession[matchID] = sessionID
}

type clientMessage struct {
	Type  string   `json:"type"`
	Cards []string `json:"cards"`
}

// handleClientMessage routes one inbound frame from a participant.
func (s *Server) handleClientMessage(matchID, userID string, data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		if s.logger != nil {
			s.logger.Debug("bad client frame", zap.String("player_id", userID), zap.Error(err))
		}
		return
	}

	switch msg.Type {
	case "submit":
		s.mu.Lock()
		sessionID := s.bySession[matchID]
		s.mu.Unlock()
		sess, err := s.registry.Get(sessionID)
		if err != nil {
			return
		}
		if err := sess.Submit(userID, msg.Cards); err != nil {
			if s.logger != nil {
				s.logger.Debug("submission rejected",
					zap.String("player_id", userID),
					zap.Error(err),
				)
			}
		}
	default:
		if s.logger != nil {
			s.logger.Debug("unknown message type",
				zap.String("type", msg.Type),
				zap.String("player_id", userID),
			)
		}
	}
}

// starterDeck is used when a player attaches without naming a saved deck.
func starterDeck() []string {
	return []string{
		"spark", "spring", "fireball", "cloud", "manafont",
		"spark", "divination", "totem", "haste", "drain",
		"curse", "ward", "slow", "amplify", "embers",
	}
}
